// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records seating activity.
package queue

// Queue names used for seating events.
const (
	TableSeatedQueue  = "table.seated"
	TableClearedQueue = "table.cleared"
)

// TableSeatedEvent is published when a reservation is seated at a table.
// It carries enough information for downstream consumers to log or notify
// without querying the primary database.
type TableSeatedEvent struct {
	TableID       uint64 `json:"table_id"`
	TableName     string `json:"table_name"`
	ReservationID uint64 `json:"reservation_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	People        int    `json:"people"`
	SeatedAt      string `json:"seated_at"`
}

// TableClearedEvent is published when an occupied table is cleared and its
// reservation finishes.
type TableClearedEvent struct {
	TableID       uint64 `json:"table_id"`
	TableName     string `json:"table_name"`
	ReservationID uint64 `json:"reservation_id"`
	ClearedAt     string `json:"cleared_at"`
}
