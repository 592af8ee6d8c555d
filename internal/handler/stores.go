package handler

import (
	"context"

	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/queue"
)

// ReservationStore is the persistence surface the reservation handlers
// depend on.  *repository.ReservationRepo satisfies it; tests substitute
// in-memory fakes.
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	ListByDate(ctx context.Context, date string) ([]model.Reservation, error)
	SearchByMobile(ctx context.Context, fragment string) ([]model.Reservation, error)
	Update(ctx context.Context, id uint64, res *model.Reservation) (*model.Reservation, error)
	UpdateStatus(ctx context.Context, id uint64, status string) (*model.Reservation, error)
}

// TableStore is the persistence surface the table handlers depend on.
// Seat and Clear are the transactional transitions: each updates the table
// row and cascades the linked reservation's status in one atomic unit,
// returning the updated table row.
type TableStore interface {
	Create(ctx context.Context, t *model.Table) error
	GetByID(ctx context.Context, id uint64) (*model.Table, error)
	List(ctx context.Context) ([]model.Table, error)
	Seat(ctx context.Context, tableID, reservationID uint64) (*model.Table, error)
	Clear(ctx context.Context, tableID, reservationID uint64) (*model.Table, error)
}

// EventPublisher sends seating events to the message broker.  Publishing is
// best-effort: handlers log failures and never fail the request over them.
type EventPublisher interface {
	TableSeated(ctx context.Context, ev queue.TableSeatedEvent) error
	TableCleared(ctx context.Context, ev queue.TableClearedEvent) error
}
