package model

// Table is a physical table in the dining room.  ReservationID points at
// the reservation currently seated there, or is nil when the table is free.
type Table struct {
	ID            uint64  `json:"table_id"`
	Name          string  `json:"table_name"`
	Capacity      int     `json:"capacity"`
	ReservationID *uint64 `json:"reservation_id"`
	CreatedAt     string  `json:"created_at,omitempty"`
	UpdatedAt     string  `json:"updated_at,omitempty"`
}

// Occupied reports whether a reservation is seated at the table.
func (t *Table) Occupied() bool {
	return t.ReservationID != nil
}
