// Package router wires the HTTP surface of the reservation service.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/handler"
)

// Options carries the optional middleware applied to route groups.  Cache
// wraps the read endpoints; StaffGuard, when non-nil, protects the mutating
// endpoints with bearer-token authentication.  Either may be nil.
type Options struct {
	Cache      echo.MiddlewareFunc
	StaffGuard echo.MiddlewareFunc
}

// Register registers every route of the service on the provided Echo
// instance.
func Register(e *echo.Echo, r *handler.ReservationHandler, t *handler.TableHandler, opts Options) {
	e.GET("/healthz", handler.Health)

	read := func(mws ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
		if opts.Cache != nil {
			mws = append(mws, opts.Cache)
		}
		return mws
	}
	write := func(mws ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
		if opts.StaffGuard != nil {
			mws = append(mws, opts.StaffGuard)
		}
		return mws
	}

	// Reservation lifecycle: booking, listing/search, edits and
	// status-only transitions.
	e.POST("/reservations", r.Create, write()...)
	e.GET("/reservations", r.List, read()...)
	e.GET("/reservations/:id", r.Get, read()...)
	e.PUT("/reservations/:id", r.Edit, write()...)
	e.PUT("/reservations/:id/status", r.UpdateStatus, write()...)

	// Tables: setup, listing and the transactional seat/clear pair.
	e.POST("/tables", t.Create, write()...)
	e.GET("/tables", t.List, read()...)
	e.PUT("/tables/:id/seat", t.Seat, write()...)
	e.DELETE("/tables/:id/seat", t.Clear, write()...)
}
