package handler_test

import (
	"context"
	"net/http/httptest"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/handler"
	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
	"github.com/iliyamo/restaurant-reservation/internal/router"
	"github.com/iliyamo/restaurant-reservation/internal/rules"
)

// The clock every handler test runs under: Friday 2026-08-28 at noon.
var testNow = time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)

// memReservations is an in-memory ReservationStore used to exercise the
// handlers without a database.
type memReservations struct {
	byID   map[uint64]*model.Reservation
	nextID uint64
}

func newMemReservations() *memReservations {
	return &memReservations{byID: map[uint64]*model.Reservation{}}
}

func (m *memReservations) Create(_ context.Context, res *model.Reservation) error {
	m.nextID++
	res.ID = m.nextID
	cp := *res
	m.byID[res.ID] = &cp
	return nil
}

func (m *memReservations) GetByID(_ context.Context, id uint64) (*model.Reservation, error) {
	res, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrReservationNotFound
	}
	cp := *res
	return &cp, nil
}

func (m *memReservations) ListByDate(_ context.Context, date string) ([]model.Reservation, error) {
	list := make([]model.Reservation, 0)
	for _, res := range m.byID {
		if res.Date == date && res.Status != model.StatusFinished {
			list = append(list, *res)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Time < list[j].Time })
	return list, nil
}

func (m *memReservations) SearchByMobile(_ context.Context, fragment string) ([]model.Reservation, error) {
	digits := func(s string) string {
		var b strings.Builder
		for _, r := range s {
			if r >= '0' && r <= '9' {
				b.WriteRune(r)
			}
		}
		return b.String()
	}
	list := make([]model.Reservation, 0)
	for _, res := range m.byID {
		if strings.Contains(digits(res.MobileNumber), digits(fragment)) {
			list = append(list, *res)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date < list[j].Date })
	return list, nil
}

func (m *memReservations) Update(_ context.Context, id uint64, res *model.Reservation) (*model.Reservation, error) {
	if _, ok := m.byID[id]; !ok {
		return nil, repository.ErrReservationNotFound
	}
	cp := *res
	cp.ID = id
	m.byID[id] = &cp
	out := cp
	return &out, nil
}

func (m *memReservations) UpdateStatus(_ context.Context, id uint64, status string) (*model.Reservation, error) {
	res, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrReservationNotFound
	}
	res.Status = status
	cp := *res
	return &cp, nil
}

// memTables is an in-memory TableStore whose Seat and Clear mimic the
// transactional cascade: the table row and the linked reservation's status
// change together.
type memTables struct {
	byID         map[uint64]*model.Table
	reservations *memReservations
	nextID       uint64
}

func newMemTables(res *memReservations) *memTables {
	return &memTables{byID: map[uint64]*model.Table{}, reservations: res}
}

func (m *memTables) Create(_ context.Context, t *model.Table) error {
	m.nextID++
	t.ID = m.nextID
	cp := *t
	m.byID[t.ID] = &cp
	return nil
}

func (m *memTables) GetByID(_ context.Context, id uint64) (*model.Table, error) {
	t, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrTableNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTables) List(_ context.Context) ([]model.Table, error) {
	list := make([]model.Table, 0)
	for _, t := range m.byID {
		list = append(list, *t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (m *memTables) Seat(_ context.Context, tableID, reservationID uint64) (*model.Table, error) {
	t, ok := m.byID[tableID]
	if !ok {
		return nil, repository.ErrTableNotFound
	}
	rid := reservationID
	t.ReservationID = &rid
	if res, ok := m.reservations.byID[reservationID]; ok {
		res.Status = model.StatusSeated
	}
	cp := *t
	return &cp, nil
}

func (m *memTables) Clear(_ context.Context, tableID, reservationID uint64) (*model.Table, error) {
	t, ok := m.byID[tableID]
	if !ok {
		return nil, repository.ErrTableNotFound
	}
	t.ReservationID = nil
	if res, ok := m.reservations.byID[reservationID]; ok {
		res.Status = model.StatusFinished
	}
	cp := *t
	return &cp, nil
}

// newTestServer wires the handlers onto a fresh Echo instance with
// in-memory stores and a pinned clock.
func newTestServer() (*echo.Echo, *memReservations, *memTables) {
	resStore := newMemReservations()
	tblStore := newMemTables(resStore)
	rh := &handler.ReservationHandler{
		Store: resStore,
		Hours: rules.DefaultHours,
		Now:   func() time.Time { return testNow },
	}
	th := &handler.TableHandler{Tables: tblStore, Reservations: resStore}
	e := echo.New()
	router.Register(e, rh, th, router.Options{})
	return e, resStore, tblStore
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req = httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
