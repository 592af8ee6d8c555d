package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

const tableColumns = `table_id, table_name, capacity, reservation_id,
       DATE_FORMAT(created_at, '%Y-%m-%dT%H:%i:%sZ'),
       DATE_FORMAT(updated_at, '%Y-%m-%dT%H:%i:%sZ')`

// TableRepo provides data access to the tables table and owns the two
// transactional state transitions of the system: seating a reservation at a
// table and clearing it again.  Each transition touches a tables row and a
// reservations row; the pair must commit together or not at all, so both
// writes always run inside a single transaction.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo returns a new TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

func scanTable(s rowScanner) (*model.Table, error) {
	var t model.Table
	var resID sql.NullInt64
	var createdAt, updatedAt sql.NullString
	err := s.Scan(&t.ID, &t.Name, &t.Capacity, &resID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if resID.Valid {
		id := uint64(resID.Int64)
		t.ReservationID = &id
	}
	t.CreatedAt = createdAt.String
	t.UpdatedAt = updatedAt.String
	return &t, nil
}

// Create inserts a new table and re-reads the stored row to populate the
// generated id and timestamps.
func (r *TableRepo) Create(ctx context.Context, t *model.Table) error {
	const q = `INSERT INTO tables (table_name, capacity, reservation_id) VALUES (?, ?, ?)`
	var resID any
	if t.ReservationID != nil {
		resID = *t.ReservationID
	}
	result, err := r.db.ExecContext(ctx, q, t.Name, t.Capacity, resID)
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
	*t = *stored
	return nil
}

// GetByID returns a single table.  When no table with the given id exists,
// ErrTableNotFound is returned.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (*model.Table, error) {
	q := `SELECT ` + tableColumns + ` FROM tables WHERE table_id = ?`
	t, err := scanTable(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List returns every table ordered by name.
func (r *TableRepo) List(ctx context.Context) ([]model.Table, error) {
	q := `SELECT ` + tableColumns + ` FROM tables ORDER BY table_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]model.Table, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// Seat links the table to the reservation and cascades the reservation's
// status to "seated".  Both updates run in one transaction; the updated
// table row is read back inside the same transaction and returned after
// commit.
func (r *TableRepo) Seat(ctx context.Context, tableID, reservationID uint64) (*model.Table, error) {
	return r.transition(ctx, tableID, reservationID, true)
}

// Clear unlinks the table from its reservation and cascades the
// reservation's status to "finished".  Like Seat, both updates commit
// together or not at all.
func (r *TableRepo) Clear(ctx context.Context, tableID, reservationID uint64) (*model.Table, error) {
	return r.transition(ctx, tableID, reservationID, false)
}

func (r *TableRepo) transition(ctx context.Context, tableID, reservationID uint64, seat bool) (*model.Table, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var occupant any
	status := model.StatusFinished
	if seat {
		occupant = reservationID
		status = model.StatusSeated
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE tables SET reservation_id = ? WHERE table_id = ?`,
		occupant, tableID,
	); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE reservations SET status = ? WHERE reservation_id = ?`,
		status, reservationID,
	); err != nil {
		return nil, err
	}

	q := `SELECT ` + tableColumns + ` FROM tables WHERE table_id = ?`
	t, err := scanTable(tx.QueryRowContext(ctx, q, tableID))
	if err == sql.ErrNoRows {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return t, nil
}
