package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/concert-seat-reservation/internal/model"
	"github.com/iliyamo/concert-seat-reservation/internal/repository"
)

// ConcertHandler exposes the concert management endpoints.  It holds
// the concert store and, for availability figures, the reservation
// store.  Request shape validation happens here; the stores themselves
// trust their inputs.
type ConcertHandler struct {
	ConcertRepo     *repository.ConcertRepo
	ReservationRepo *repository.ReservationRepo
}

// NewConcertHandler constructs a ConcertHandler.  Both repositories
// must be non-nil.
func NewConcertHandler(concerts *repository.ConcertRepo, reservations *repository.ReservationRepo) *ConcertHandler {
	if concerts == nil || reservations == nil {
		panic("nil repository passed to NewConcertHandler")
	}
	return &ConcertHandler{ConcertRepo: concerts, ReservationRepo: reservations}
}

// concertWithStats decorates a concert with its current availability.
type concertWithStats struct {
	*model.Concert
	ReservedCount  int `json:"reserved_count"`
	AvailableSeats int `json:"available_seats"`
}

// CreateConcert handles POST /v1/concerts.  The body must contain a
// non-empty name and a seat capacity of at least one; description may
// be empty.  Returns 201 with the created concert.
func (h *ConcertHandler) CreateConcert(c echo.Context) error {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Seat        int    `json:"seat"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if body.Seat < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat must be at least 1"})
	}
	concert := h.ConcertRepo.Create(name, body.Description, body.Seat)
	return c.JSON(http.StatusCreated, concert)
}

// ListConcerts handles GET /v1/concerts.  Each concert is returned
// together with its reserved seat count and remaining availability so
// browsing clients do not need a second round trip per concert.
func (h *ConcertHandler) ListConcerts(c echo.Context) error {
	concerts := h.ConcertRepo.List()
	items := make([]concertWithStats, 0, len(concerts))
	for _, concert := range concerts {
		reserved := h.ReservationRepo.CountActiveByConcert(concert.ID)
		items = append(items, concertWithStats{
			Concert:        concert,
			ReservedCount:  reserved,
			AvailableSeats: concert.Seat - reserved,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetConcert handles GET /v1/concerts/:id.
func (h *ConcertHandler) GetConcert(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid concert id"})
	}
	concert, err := h.ConcertRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrConcertNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "concert not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch concert"})
	}
	return c.JSON(http.StatusOK, concert)
}

// DeleteConcert handles DELETE /v1/concerts/:id.  Existing
// reservations for the concert are intentionally left in place.
func (h *ConcertHandler) DeleteConcert(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid concert id"})
	}
	if err := h.ConcertRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrConcertNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "concert not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete concert"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Concert deleted successfully"})
}

// GetConcertAvailability handles GET /v1/concerts/:id/availability.
// It returns the active reservation count and the number of seats
// still available.
func (h *ConcertHandler) GetConcertAvailability(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid concert id"})
	}
	concert, err := h.ConcertRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrConcertNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "concert not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch concert"})
	}
	reserved := h.ReservationRepo.CountActiveByConcert(id)
	return c.JSON(http.StatusOK, echo.Map{
		"reserved_count":  reserved,
		"available_seats": concert.Seat - reserved,
	})
}

// GetConcertReservations handles GET /v1/concerts/:id/reservations.
// It returns the full reservation history for a concert, cancelled
// entries included.  The concert itself may already be deleted; the
// history remains queryable.
func (h *ConcertHandler) GetConcertReservations(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid concert id"})
	}
	items := h.ReservationRepo.ListByConcert(id)
	if items == nil {
		items = []*model.Reservation{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// parseID parses a positive numeric path parameter.
func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
