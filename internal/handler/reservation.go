package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/concert-seat-reservation/internal/model"
	"github.com/iliyamo/concert-seat-reservation/internal/queue"
	"github.com/iliyamo/concert-seat-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/concert-seat-reservation/internal/service"
)

// ReservationHandler exposes the reservation endpoints.  The user
// identifier arrives in the request payload and is trusted as-is;
// identity resolution is the responsibility of whatever sits in front
// of this service.
type ReservationHandler struct {
	ConcertRepo     *repository.ConcertRepo
	ReservationRepo *repository.ReservationRepo

	// PublishEvents disables broker publishing when false, used by
	// tests and deployments without RabbitMQ.
	PublishEvents bool
}

// NewReservationHandler constructs a ReservationHandler.  Both
// repositories must be non-nil.
func NewReservationHandler(concerts *repository.ConcertRepo, reservations *repository.ReservationRepo, publishEvents bool) *ReservationHandler {
	if concerts == nil || reservations == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{
		ConcertRepo:     concerts,
		ReservationRepo: reservations,
		PublishEvents:   publishEvents,
	}
}

// CreateReservation handles POST /v1/reservations.  The body must
// contain a non-empty user_id and a positive concert_id.  On success
// it returns 201 with the new reservation; admission failures map to
// 404 (unknown concert), 409 (duplicate reservation) and 400 (no
// seats available).
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var body struct {
		UserID    string `json:"user_id"`
		ConcertID uint64 `json:"concert_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	userID := strings.TrimSpace(body.UserID)
	if userID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
	}
	if body.ConcertID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "concert_id is required"})
	}

	res, err := h.ReservationRepo.Create(userID, body.ConcertID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrConcertNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "concert not found"})
		case errors.Is(err, repository.ErrDuplicateReservation):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrNoSeatsAvailable):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}

	h.publishEvent(c, queue.EventReservationConfirmed, res)
	return c.JSON(http.StatusCreated, res)
}

// ListReservations handles GET /v1/reservations.  With a user_id query
// parameter it returns that user's reservations, any status; without
// one it returns every reservation in the store.
func (h *ReservationHandler) ListReservations(c echo.Context) error {
	var items []*model.Reservation
	if userID := strings.TrimSpace(c.QueryParam("user_id")); userID != "" {
		items = h.ReservationRepo.ListByUser(userID)
	} else {
		items = h.ReservationRepo.List()
	}
	if items == nil {
		items = []*model.Reservation{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetReservation handles GET /v1/reservations/:id.
func (h *ReservationHandler) GetReservation(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.ReservationRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservation"})
	}
	return c.JSON(http.StatusOK, res)
}

// CancelReservation handles DELETE /v1/reservations/cancel.  The body
// carries the acting user and the reservation to cancel.  Failures map
// to 404 (unknown reservation), 403 (not the owner) and 409 (already
// cancelled); the first cancellation always stands.
func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	var body struct {
		UserID        string `json:"user_id"`
		ReservationID uint64 `json:"reservation_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	userID := strings.TrimSpace(body.UserID)
	if userID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
	}
	if body.ReservationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation_id is required"})
	}

	if err := h.ReservationRepo.Cancel(userID, body.ReservationID); err != nil {
		switch {
		case errors.Is(err, repository.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrAlreadyCancelled):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel reservation"})
	}

	if res, err := h.ReservationRepo.GetByID(body.ReservationID); err == nil {
		h.publishEvent(c, queue.EventReservationCancelled, res)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Reservation cancelled successfully"})
}

// GetUserConcertReservations handles
// GET /v1/users/:userId/concerts/:concertId/reservations.  It returns
// the ids of the user's active reservations for the concert; given the
// one-per-user rule the list holds at most one entry.
func (h *ReservationHandler) GetUserConcertReservations(c echo.Context) error {
	concertID, err := parseID(c.Param("concertId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid concert id"})
	}
	userID := strings.TrimSpace(c.Param("userId"))
	if userID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user id is required"})
	}
	ids := h.ReservationRepo.ActiveIDsByUserAndConcert(userID, concertID)
	if ids == nil {
		ids = []uint64{}
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation_ids": ids})
}

// publishEvent sends a reservation event to the broker after the store
// call has completed.  Failures are logged inside the publisher and
// ignored here; eventing is best-effort and must never fail a request.
func (h *ReservationHandler) publishEvent(c echo.Context, eventType string, res *model.Reservation) {
	if !h.PublishEvents {
		return
	}
	concertName := ""
	if concert, err := h.ConcertRepo.GetByID(res.ConcertID); err == nil {
		concertName = concert.Name
	}
	_ = queue_publisher.PublishReservationEvent(c.Request().Context(), queue.ReservationEvent{
		Type:          eventType,
		ReservationID: res.ID,
		UserID:        res.UserID,
		ConcertID:     res.ConcertID,
		ConcertName:   concertName,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
}
