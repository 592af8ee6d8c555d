package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
	"github.com/iliyamo/restaurant-reservation/internal/rules"
)

// ReservationHandler serves the /reservations endpoints.  Every mutating
// request runs the full validation chain (shape, date legality, opening
// hours) before any write; validation failures short-circuit with a 400 and
// nothing is persisted.
type ReservationHandler struct {
	Store ReservationStore
	Hours rules.Hours

	// Now is the clock used by the date and time rules.  Nil means
	// time.Now; tests pin it to exercise weekday and same-day branches.
	Now func() time.Time
}

func (h *ReservationHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// bindData unwraps the `{"data": ...}` envelope every mutating request uses.
func bindData[T any](c echo.Context) (*T, error) {
	var body struct {
		Data *T `json:"data"`
	}
	if err := c.Bind(&body); err != nil {
		return nil, errors.New("invalid request body")
	}
	if body.Data == nil {
		return nil, errors.New("data is missing")
	}
	return body.Data, nil
}

// Create handles POST /reservations.  A new booking must pass the shape,
// future-date and opening-hours checks; its status starts as "booked".
func (h *ReservationHandler) Create(c echo.Context) error {
	res, err := bindData[model.Reservation](c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.validate(res); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if res.Status == "" {
		res.Status = model.StatusBooked
	}
	if err := h.Store.Create(c.Request().Context(), res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": res})
}

// validate runs the chain shared by create and edit.  The advisory is-today
// flag from the date check feeds the time check so same-day bookings cannot
// land in the past.
func (h *ReservationHandler) validate(res *model.Reservation) error {
	if err := rules.ValidateReservation(res); err != nil {
		return err
	}
	isToday, err := rules.ValidateFutureDate(res, h.now(), h.Hours)
	if err != nil {
		return err
	}
	return rules.ValidateOpenHours(res, isToday, h.now(), h.Hours)
}

// List handles GET /reservations.  With ?date it lists the day's bookings
// (finished ones excluded, ordered by time); with ?mobile_number it searches
// by phone-number digit fragment, ordered by date.
func (h *ReservationHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if date := c.QueryParam("date"); date != "" {
		list, err := h.Store.ListByDate(ctx, date)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return c.JSON(http.StatusOK, echo.Map{"data": list})
	}
	if mobile := c.QueryParam("mobile_number"); mobile != "" {
		list, err := h.Store.SearchByMobile(ctx, mobile)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return c.JSON(http.StatusOK, echo.Map{"data": list})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "a date or mobile_number query parameter is required"})
}

// Get handles GET /reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	res, jsonErr := h.lookup(c)
	if res == nil {
		return jsonErr // lookup already wrote the response
	}
	return c.JSON(http.StatusOK, echo.Map{"data": res})
}

// Edit handles PUT /reservations/:id.  The reservation must exist and the
// replacement payload passes the same chain as a new booking.
func (h *ReservationHandler) Edit(c echo.Context) error {
	existing, jsonErr := h.lookup(c)
	if existing == nil {
		return jsonErr
	}
	res, err := bindData[model.Reservation](c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.validate(res); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if res.Status == "" {
		res.Status = model.StatusBooked
	}
	updated, err := h.Store.Update(c.Request().Context(), existing.ID, res)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": updated})
}

// UpdateStatus handles PUT /reservations/:id/status.  Transitions out of
// "finished" are blocked and the requested status must be a known value.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	existing, jsonErr := h.lookup(c)
	if existing == nil {
		return jsonErr
	}
	body, err := bindData[struct {
		Status string `json:"status"`
	}](c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := rules.ValidateStatusChange(existing.Status, body.Status); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	updated, err := h.Store.UpdateStatus(c.Request().Context(), existing.ID, body.Status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": updated})
}

// lookup resolves the :id path parameter to a stored reservation.  On
// failure it writes the error response itself and returns a nil
// reservation; callers must propagate the returned error (which may be nil
// once the response has been written).
func (h *ReservationHandler) lookup(c echo.Context) (*model.Reservation, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.Store.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrReservationNotFound) {
		return nil, c.JSON(http.StatusNotFound, echo.Map{
			"error": fmt.Sprintf("reservation %d does not exist", id),
		})
	}
	if err != nil {
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return res, nil
}
