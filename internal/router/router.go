// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/concert-seat-reservation/internal/handler"
)

// RegisterRoutes registers routes that have no handler dependencies.
// Currently it exposes only the health check used by load balancers
// and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterConcerts registers the concert management endpoints under
// /v1/concerts.  Creation and deletion are admin operations in the
// product sense, but no authentication is applied here; identity is
// resolved upstream.
func RegisterConcerts(e *echo.Echo, h *handler.ConcertHandler) {
	g := e.Group("/v1/concerts")
	g.POST("", h.CreateConcert)
	g.GET("", h.ListConcerts)
	g.GET("/:id", h.GetConcert)
	g.DELETE("/:id", h.DeleteConcert)
	g.GET("/:id/availability", h.GetConcertAvailability)
	g.GET("/:id/reservations", h.GetConcertReservations)
}

// RegisterReservations registers the reservation endpoints under /v1.
// Cancellation is a DELETE with a JSON body carrying the acting user
// and the reservation id, mirroring the booking client's contract.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler) {
	g := e.Group("/v1/reservations")
	g.POST("", h.CreateReservation)
	g.GET("", h.ListReservations)
	g.DELETE("/cancel", h.CancelReservation)
	g.GET("/:id", h.GetReservation)

	e.GET("/v1/users/:userId/concerts/:concertId/reservations", h.GetUserConcertReservations)
}
