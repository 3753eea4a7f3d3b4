package model

import "time"

// ReservationStatus enumerates the lifecycle states of a reservation.
// A reservation starts as StatusReserve and may move to StatusCancel
// exactly once; there is no transition back.  A repeat booking after a
// cancellation creates a brand new reservation row.
type ReservationStatus string

const (
	StatusReserve ReservationStatus = "reserve"
	StatusCancel  ReservationStatus = "cancel"
)

// Reservation records a single user's claim on one seat of one concert.
//
// Fields:
//  ID        – store-assigned identifier, monotonic from 1, independent
//              of concert identifiers.
//  UserID    – caller-supplied opaque identifier; trusted as-is.
//  ConcertID – concert being reserved; validated at creation time only.
//  Status    – reserve or cancel.
//  CreatedAt – creation timestamp, immutable.
//  UpdatedAt – set at creation, refreshed when the reservation is cancelled.
type Reservation struct {
	ID        uint64            `json:"id"`
	UserID    string            `json:"user_id"`
	ConcertID uint64            `json:"concert_id"`
	Status    ReservationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
