package model

// Reservation statuses.  A reservation starts as StatusBooked, moves to
// StatusSeated when a table is assigned and ends as StatusFinished when the
// table is cleared.  StatusCancelled is a terminal state reached directly
// from booked.
const (
	StatusBooked    = "booked"
	StatusSeated    = "seated"
	StatusFinished  = "finished"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the four reservation statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusBooked, StatusSeated, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

// Reservation records a booking for a party at the restaurant.
// Date and time are kept as the strings the API exchanges
// ("YYYY-MM-DD" and "HH:MM"); the repository projects the DATE and
// TIME columns into these shapes when scanning rows.
//
// Fields:
//  ID           – primary key identifier.
//  FirstName    – guest first name.
//  LastName     – guest last name.
//  MobileNumber – contact phone number, free-form.
//  Date         – reservation calendar date.
//  Time         – reservation time of day, 24-hour.
//  People       – party size, always positive.
//  Status       – lifecycle status (booked, seated, finished, cancelled).
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Reservation struct {
	ID           uint64 `json:"reservation_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	MobileNumber string `json:"mobile_number"`
	Date         string `json:"reservation_date"`
	Time         string `json:"reservation_time"`
	People       int    `json:"people"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}
