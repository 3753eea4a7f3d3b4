// Package repository contains the in-memory stores for concerts and
// reservations together with the sentinel errors they return. These
// sentinel values allow higher layers such as handlers to distinguish
// between different failure scenarios. For example, ErrForbidden
// indicates that the current user attempted to cancel a reservation
// owned by someone else, while ErrDuplicateReservation signals that
// the user already holds an active reservation for the concert.
package repository

import "errors"

// ErrConcertNotFound is returned when no concert exists with the
// requested identifier. Handlers should translate this into an HTTP
// 404 response.
var ErrConcertNotFound = errors.New("concert not found")

// ErrReservationNotFound is returned when no reservation exists with
// the requested identifier. Handlers should translate this into an
// HTTP 404 response.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrDuplicateReservation is returned when a user who already holds an
// active reservation for a concert attempts to reserve it again.
// Handlers should translate this into an HTTP 409 response.
var ErrDuplicateReservation = errors.New("user already has a reservation for this concert")

// ErrNoSeatsAvailable is returned when the number of active
// reservations for a concert has reached its seat capacity. The
// concert itself is never mutated by a rejected attempt.
var ErrNoSeatsAvailable = errors.New("no seats available for this concert")

// ErrForbidden is returned when the caller attempts to cancel a
// reservation they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("can only cancel your own reservations")

// ErrAlreadyCancelled is returned when the caller attempts to cancel a
// reservation that is already in the cancelled state. The first
// cancellation remains in effect.
var ErrAlreadyCancelled = errors.New("reservation is already cancelled")
