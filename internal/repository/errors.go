// Package repository provides data access to the reservations and tables
// MySQL tables.  Sentinel errors let handlers distinguish a missing row
// from a database failure and map each to the right HTTP status.
package repository

import "errors"

// ErrReservationNotFound is returned when a reservation id does not exist.
// Handlers translate it into an HTTP 404 response.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrTableNotFound is returned when a table id does not exist.  Handlers
// translate it into an HTTP 404 response.
var ErrTableNotFound = errors.New("table not found")
