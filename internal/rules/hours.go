package rules

import (
	"fmt"
	"time"
)

// Hours describes when the restaurant accepts reservations.  Open and Close
// are minutes since midnight and both bounds are inclusive: a reservation at
// exactly Open or exactly Close is allowed.  ClosedDay is the weekday on
// which no reservations are taken at all.
type Hours struct {
	Open      int
	Close     int
	ClosedDay time.Weekday
}

// DefaultHours matches the restaurant's published schedule: reservations
// from 10:30 (630) through 21:30 (1290), closed on Tuesdays.
var DefaultHours = Hours{Open: 630, Close: 1290, ClosedDay: time.Tuesday}

// Clock renders a minutes-since-midnight value as "HH:MM" for error messages.
func Clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
