package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/queue"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
	"github.com/iliyamo/restaurant-reservation/internal/rules"
)

// TableHandler serves the /tables endpoints.  Seating and clearing are the
// only operations in the system that touch two entities at once; the
// handler validates the pair up front and delegates the paired writes to
// the store's transactional Seat and Clear so no half-updated state is ever
// observable.
type TableHandler struct {
	Tables       TableStore
	Reservations ReservationStore

	// Events, when non-nil, receives a seating event after each
	// successful transition.  Publishing is fire-and-forget.
	Events EventPublisher
}

// Create handles POST /tables.
func (h *TableHandler) Create(c echo.Context) error {
	t, err := bindData[model.Table](c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := rules.ValidateTable(t); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Tables.Create(c.Request().Context(), t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": t})
}

// List handles GET /tables, ordered by table name.
func (h *TableHandler) List(c echo.Context) error {
	list, err := h.Tables.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": list})
}

// Seat handles PUT /tables/:id/seat.  The referenced reservation must exist
// and not already be seated; the table must be free and large enough for
// the party.  On success both rows are updated atomically and the updated
// table is returned.
func (h *TableHandler) Seat(c echo.Context) error {
	tableID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || tableID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	body, err := bindData[struct {
		ReservationID uint64 `json:"reservation_id"`
	}](c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if body.ReservationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation_id is required"})
	}

	ctx := c.Request().Context()
	table, err := h.Tables.GetByID(ctx, tableID)
	if errors.Is(err, repository.ErrTableNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": fmt.Sprintf("table %d does not exist", tableID),
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	res, err := h.Reservations.GetByID(ctx, body.ReservationID)
	if errors.Is(err, repository.ErrReservationNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": fmt.Sprintf("reservation %d does not exist", body.ReservationID),
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if res.Status == model.StatusSeated {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": fmt.Sprintf("reservation %d has already been seated", res.ID),
		})
	}
	if err := rules.ValidateSeating(table, res); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	updated, err := h.Tables.Seat(ctx, tableID, res.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	h.publishSeated(updated, res)
	return c.JSON(http.StatusOK, echo.Map{"data": updated})
}

// Clear handles DELETE /tables/:id/seat.  The table must exist and be
// occupied; the occupying reservation is finished and the table freed in
// one atomic transition.
func (h *TableHandler) Clear(c echo.Context) error {
	tableID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || tableID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}

	ctx := c.Request().Context()
	table, err := h.Tables.GetByID(ctx, tableID)
	if errors.Is(err, repository.ErrTableNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": fmt.Sprintf("table %d does not exist", tableID),
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !table.Occupied() {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": fmt.Sprintf("table %d is not occupied", tableID),
		})
	}

	reservationID := *table.ReservationID
	updated, err := h.Tables.Clear(ctx, tableID, reservationID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	h.publishCleared(updated, reservationID)
	return c.JSON(http.StatusOK, echo.Map{"data": updated})
}

func (h *TableHandler) publishSeated(t *model.Table, res *model.Reservation) {
	if h.Events == nil {
		return
	}
	ev := queue.TableSeatedEvent{
		TableID:       t.ID,
		TableName:     t.Name,
		ReservationID: res.ID,
		FirstName:     res.FirstName,
		LastName:      res.LastName,
		People:        res.People,
		SeatedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.Events.TableSeated(ctx, ev); err != nil {
			log.Printf("table-handler: publish seated event: %v", err)
		}
	}()
}

func (h *TableHandler) publishCleared(t *model.Table, reservationID uint64) {
	if h.Events == nil {
		return
	}
	ev := queue.TableClearedEvent{
		TableID:       t.ID,
		TableName:     t.Name,
		ReservationID: reservationID,
		ClearedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.Events.TableCleared(ctx, ev); err != nil {
			log.Printf("table-handler: publish cleared event: %v", err)
		}
	}()
}
