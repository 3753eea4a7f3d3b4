// Package queue defines message payloads exchanged over the message
// broker and the background consumer that processes them.
package queue

// Event types carried by ReservationEvent.
const (
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCancelled = "reservation.cancelled"
)

// ReservationEvent is published whenever a reservation is created or
// cancelled.  It carries enough information for downstream consumers to
// log, notify, or feed analytics without querying the service.
type ReservationEvent struct {
	Type          string `json:"type"`
	ReservationID uint64 `json:"reservation_id"`
	UserID        string `json:"user_id"`
	ConcertID     uint64 `json:"concert_id"`
	ConcertName   string `json:"concert_name,omitempty"`
	OccurredAt    string `json:"occurred_at"`
}
