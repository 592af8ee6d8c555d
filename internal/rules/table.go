package rules

import (
	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// ValidateTable checks the shape of a table payload: a name of at least two
// characters and a positive capacity.
func ValidateTable(t *model.Table) error {
	var v Violations

	if len(t.Name) < 2 {
		v.Add("table_name")
	}
	if t.Capacity < 1 {
		v.Add("capacity")
	}

	return v.Err("One or more inputs are invalid")
}

// ValidateSeating checks that a reservation can be seated at a table: the
// party must fit the table's capacity and the table must not already be
// occupied.  The caller is expected to have resolved both rows and rejected
// an already-seated reservation beforehand.
func ValidateSeating(t *model.Table, res *model.Reservation) error {
	var v Violations

	if res.People > t.Capacity {
		v.Add("the party size exceeds the table capacity")
	}
	if t.Occupied() {
		v.Addf("the table is already occupied by reservation %d", *t.ReservationID)
	}

	return v.Err("One or more inputs are invalid")
}
