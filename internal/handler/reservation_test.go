package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/concert-seat-reservation/internal/repository"
)

func newReservationTestEnv(t *testing.T) (*echo.Echo, *ReservationHandler, *repository.ConcertRepo, *repository.ReservationRepo) {
	t.Helper()
	e := echo.New()
	concerts := repository.NewConcertRepo()
	reservations := repository.NewReservationRepo(concerts)
	// Event publishing is off in tests; there is no broker.
	return e, NewReservationHandler(concerts, reservations, false), concerts, reservations
}

func TestCreateReservationHandler(t *testing.T) {
	e, h, concerts, _ := newReservationTestEnv(t)
	concert := concerts.Create("Go Live", "", 10)

	body := fmt.Sprintf(`{"user_id":"alice","concert_id":%d}`, concert.ID)
	c, rec := jsonRequest(e, http.MethodPost, "/v1/reservations", body)
	require.NoError(t, h.CreateReservation(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "alice", got["user_id"])
	assert.Equal(t, "reserve", got["status"])
}

func TestCreateReservationHandlerFailures(t *testing.T) {
	e, h, concerts, reservations := newReservationTestEnv(t)
	small := concerts.Create("intimate set", "", 1)
	_, err := reservations.Create("alice", small.ID)
	require.NoError(t, err)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing user", `{"concert_id":1}`, http.StatusBadRequest},
		{"missing concert", `{"user_id":"bob"}`, http.StatusBadRequest},
		{"unknown concert", `{"user_id":"bob","concert_id":42}`, http.StatusNotFound},
		{"duplicate", `{"user_id":"alice","concert_id":1}`, http.StatusConflict},
		{"sold out", `{"user_id":"bob","concert_id":1}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := jsonRequest(e, http.MethodPost, "/v1/reservations", tt.body)
			require.NoError(t, h.CreateReservation(c))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestListReservationsHandler(t *testing.T) {
	e, h, concerts, reservations := newReservationTestEnv(t)
	concert := concerts.Create("Go Live", "", 10)
	_, err := reservations.Create("alice", concert.ID)
	require.NoError(t, err)
	_, err = reservations.Create("bob", concert.ID)
	require.NoError(t, err)

	c, rec := jsonRequest(e, http.MethodGet, "/v1/reservations", "")
	require.NoError(t, h.ListReservations(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Items []struct {
			UserID string `json:"user_id"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.Items, 2)

	c, rec = jsonRequest(e, http.MethodGet, "/v1/reservations?user_id=alice", "")
	require.NoError(t, h.ListReservations(c))
	require.Equal(t, http.StatusOK, rec.Code)
	got.Items = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "alice", got.Items[0].UserID)
}

func TestListReservationsHandlerEmpty(t *testing.T) {
	e, h, _, _ := newReservationTestEnv(t)

	c, rec := jsonRequest(e, http.MethodGet, "/v1/reservations", "")
	require.NoError(t, h.ListReservations(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
}

func TestGetReservationHandler(t *testing.T) {
	e, h, concerts, reservations := newReservationTestEnv(t)
	concert := concerts.Create("Go Live", "", 10)
	created, err := reservations.Create("alice", concert.ID)
	require.NoError(t, err)

	c, rec := jsonRequest(e, http.MethodGet, "/v1/reservations/1", "")
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(created.ID))
	require.NoError(t, h.GetReservation(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = jsonRequest(e, http.MethodGet, "/v1/reservations/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, h.GetReservation(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelReservationHandler(t *testing.T) {
	e, h, concerts, reservations := newReservationTestEnv(t)
	concert := concerts.Create("Go Live", "", 10)
	created, err := reservations.Create("alice", concert.ID)
	require.NoError(t, err)

	body := fmt.Sprintf(`{"user_id":"alice","reservation_id":%d}`, created.ID)
	c, rec := jsonRequest(e, http.MethodDelete, "/v1/reservations/cancel", body)
	require.NoError(t, h.CancelReservation(c))
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := reservations.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancel", string(got.Status))
}

func TestCancelReservationHandlerFailures(t *testing.T) {
	e, h, concerts, reservations := newReservationTestEnv(t)
	concert := concerts.Create("Go Live", "", 10)
	created, err := reservations.Create("alice", concert.ID)
	require.NoError(t, err)
	cancelled, err := reservations.Create("carol", concert.ID)
	require.NoError(t, err)
	require.NoError(t, reservations.Cancel("carol", cancelled.ID))

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing user", fmt.Sprintf(`{"reservation_id":%d}`, created.ID), http.StatusBadRequest},
		{"unknown reservation", `{"user_id":"alice","reservation_id":99}`, http.StatusNotFound},
		{"wrong owner", fmt.Sprintf(`{"user_id":"mallory","reservation_id":%d}`, created.ID), http.StatusForbidden},
		{"already cancelled", fmt.Sprintf(`{"user_id":"carol","reservation_id":%d}`, cancelled.ID), http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := jsonRequest(e, http.MethodDelete, "/v1/reservations/cancel", tt.body)
			require.NoError(t, h.CancelReservation(c))
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	// The failed attempts above must not have flipped the live reservation.
	got, err := reservations.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "reserve", string(got.Status))
}

func TestGetUserConcertReservationsHandler(t *testing.T) {
	e, h, concerts, reservations := newReservationTestEnv(t)
	concert := concerts.Create("Go Live", "", 10)
	created, err := reservations.Create("alice", concert.ID)
	require.NoError(t, err)

	c, rec := jsonRequest(e, http.MethodGet, "/v1/users/alice/concerts/1/reservations", "")
	c.SetParamNames("userId", "concertId")
	c.SetParamValues("alice", "1")
	require.NoError(t, h.GetUserConcertReservations(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"reservation_ids":[%d]}`, created.ID), rec.Body.String())

	require.NoError(t, reservations.Cancel("alice", created.ID))

	c, rec = jsonRequest(e, http.MethodGet, "/v1/users/alice/concerts/1/reservations", "")
	c.SetParamNames("userId", "concertId")
	c.SetParamValues("alice", "1")
	require.NoError(t, h.GetUserConcertReservations(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"reservation_ids":[]}`, rec.Body.String())
}
