package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// reservationColumns projects the reservations row into the string shapes
// the API exchanges: DATE as "YYYY-MM-DD", TIME as "HH:MM" and timestamps
// as RFC3339 in UTC.  Every read in this repository goes through it so the
// JSON representation stays identical across endpoints.
const reservationColumns = `reservation_id, first_name, last_name, mobile_number,
       DATE_FORMAT(reservation_date, '%Y-%m-%d'),
       TIME_FORMAT(reservation_time, '%H:%i'),
       people, status,
       DATE_FORMAT(created_at, '%Y-%m-%dT%H:%i:%sZ'),
       DATE_FORMAT(updated_at, '%Y-%m-%dT%H:%i:%sZ')`

// ReservationRepo provides CRUD operations for reservations.  All
// timestamps are assumed to be stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(s rowScanner) (*model.Reservation, error) {
	var res model.Reservation
	var createdAt, updatedAt sql.NullString
	err := s.Scan(
		&res.ID, &res.FirstName, &res.LastName, &res.MobileNumber,
		&res.Date, &res.Time, &res.People, &res.Status,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	res.CreatedAt = createdAt.String
	res.UpdatedAt = updatedAt.String
	return &res, nil
}

// Create inserts a new reservation and re-reads the stored row so the
// caller gets back generated id, defaults and timestamps.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations
	           (first_name, last_name, mobile_number, reservation_date, reservation_time, people, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		res.FirstName, res.LastName, res.MobileNumber,
		res.Date, res.Time, res.People, res.Status,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*res = *stored
	return nil
}

// GetByID returns a single reservation.  When no reservation with the given
// id exists, ErrReservationNotFound is returned.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE reservation_id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ListByDate returns every reservation on the given date except finished
// ones, ordered by reservation time.
func (r *ReservationRepo) ListByDate(ctx context.Context, date string) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + `
	      FROM reservations
	      WHERE reservation_date = ? AND status <> 'finished'
	      ORDER BY reservation_time`
	return r.queryMany(ctx, q, date)
}

// SearchByMobile returns reservations whose mobile number contains the
// digits of the given fragment, ignoring punctuation on both sides, ordered
// by reservation date.  All statuses are included so past bookings can be
// found.
func (r *ReservationRepo) SearchByMobile(ctx context.Context, fragment string) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + `
	      FROM reservations
	      WHERE REPLACE(REPLACE(REPLACE(REPLACE(mobile_number, '(', ''), ')', ''), '-', ''), ' ', '')
	            LIKE CONCAT('%', ?, '%')
	      ORDER BY reservation_date`
	return r.queryMany(ctx, q, digitsOnly(fragment))
}

// Update overwrites every editable field of the reservation and re-reads
// the stored row.  The caller must have validated the payload already.
func (r *ReservationRepo) Update(ctx context.Context, id uint64, res *model.Reservation) (*model.Reservation, error) {
	const q = `UPDATE reservations
	           SET first_name = ?, last_name = ?, mobile_number = ?,
	               reservation_date = ?, reservation_time = ?, people = ?, status = ?
	           WHERE reservation_id = ?`
	_, err := r.db.ExecContext(ctx, q,
		res.FirstName, res.LastName, res.MobileNumber,
		res.Date, res.Time, res.People, res.Status, id,
	)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// UpdateStatus changes only the status column and returns the stored row.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, status string) (*model.Reservation, error) {
	const q = `UPDATE reservations SET status = ? WHERE reservation_id = ?`
	if _, err := r.db.ExecContext(ctx, q, status, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *ReservationRepo) queryMany(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// digitsOnly strips everything but digits from a phone-number fragment so
// the LIKE pattern compares digits against digits.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
