package repository

import (
	"sync"
	"time"

	"github.com/iliyamo/concert-seat-reservation/internal/model"
)

// ReservationRepo owns the reservation collection and enforces the
// admission rules on every create and cancel:
//
//  1. a user holds at most one active reservation per concert,
//  2. active reservations for a concert never exceed its seat capacity,
//  3. only the owner of a reservation may cancel it,
//  4. a cancelled reservation cannot be cancelled again.
//
// Create and Cancel are check-then-act sequences, so each runs in full
// under the store mutex.  Two concurrent creates near capacity would
// otherwise both pass the seat count check before either inserts; the
// same applies to the duplicate check for a user racing against
// themselves.  The lock also guards the id counter.
//
// The repo reads concert capacity from the ConcertRepo but never
// mutates concert data.
type ReservationRepo struct {
	mu           sync.Mutex
	reservations []*model.Reservation
	nextID       uint64
	concerts     *ConcertRepo
}

// NewReservationRepo returns an empty store bound to the given concert
// repository.  Identifiers start at 1 and are independent of concert
// identifiers.
func NewReservationRepo(concerts *ConcertRepo) *ReservationRepo {
	if concerts == nil {
		panic("nil ConcertRepo passed to NewReservationRepo")
	}
	return &ReservationRepo{nextID: 1, concerts: concerts}
}

// Create reserves one seat on the given concert for the given user.
// It returns ErrConcertNotFound when the concert does not exist,
// ErrDuplicateReservation when the user already holds an active
// reservation for it, and ErrNoSeatsAvailable when the concert is at
// capacity.  The duplicate check runs before the capacity check, so a
// repeat attempt on a full concert is still reported as a duplicate.
func (r *ReservationRepo) Create(userID string, concertID uint64) (*model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	concert, err := r.concerts.GetByID(concertID)
	if err != nil {
		return nil, err
	}

	active := 0
	for _, res := range r.reservations {
		if res.ConcertID != concertID || res.Status != model.StatusReserve {
			continue
		}
		if res.UserID == userID {
			return nil, ErrDuplicateReservation
		}
		active++
	}
	if active >= concert.Seat {
		return nil, ErrNoSeatsAvailable
	}

	now := time.Now().UTC()
	res := &model.Reservation{
		ID:        r.nextID,
		UserID:    userID,
		ConcertID: concertID,
		Status:    model.StatusReserve,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.nextID++
	r.reservations = append(r.reservations, res)
	cp := *res
	return &cp, nil
}

// Cancel transitions the reservation to the cancelled state.  It
// returns ErrReservationNotFound when the id is unknown, ErrForbidden
// when the reservation belongs to a different user, and
// ErrAlreadyCancelled when it was cancelled before.  On success the
// UpdatedAt timestamp is refreshed; CreatedAt never changes.
func (r *ReservationRepo) Cancel(userID string, reservationID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := r.findLocked(reservationID)
	if res == nil {
		return ErrReservationNotFound
	}
	if res.UserID != userID {
		return ErrForbidden
	}
	if res.Status == model.StatusCancel {
		return ErrAlreadyCancelled
	}
	res.Status = model.StatusCancel
	res.UpdatedAt = time.Now().UTC()
	return nil
}

// List returns every reservation regardless of status, in creation
// order.  All query methods return snapshot copies so a later cancel
// cannot mutate a record a caller is still reading.
func (r *ReservationRepo) List() []*model.Reservation {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Reservation, 0, len(r.reservations))
	for _, res := range r.reservations {
		cp := *res
		out = append(out, &cp)
	}
	return out
}

// ListByUser returns all reservations for the user, any status, in
// creation order.  Callers use this to derive the user's current
// per-concert state.
func (r *ReservationRepo) ListByUser(userID string) []*model.Reservation {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Reservation
	for _, res := range r.reservations {
		if res.UserID == userID {
			cp := *res
			out = append(out, &cp)
		}
	}
	return out
}

// ListByConcert returns all reservations for the concert, any status,
// in creation order.  Used for audit and history views; it does not
// check that the concert still exists.
func (r *ReservationRepo) ListByConcert(concertID uint64) []*model.Reservation {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Reservation
	for _, res := range r.reservations {
		if res.ConcertID == concertID {
			cp := *res
			out = append(out, &cp)
		}
	}
	return out
}

// GetByID returns the reservation with the given id or
// ErrReservationNotFound.
func (r *ReservationRepo) GetByID(id uint64) (*model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res := r.findLocked(id); res != nil {
		cp := *res
		return &cp, nil
	}
	return nil, ErrReservationNotFound
}

// CountActiveByConcert returns the number of active reservations for
// the concert.  This is the availability figure shown to customers and
// the same count Create compares against the seat capacity.
func (r *ReservationRepo) CountActiveByConcert(concertID uint64) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, res := range r.reservations {
		if res.ConcertID == concertID && res.Status == model.StatusReserve {
			n++
		}
	}
	return n
}

// ActiveIDsByUserAndConcert returns the ids of active reservations
// matching both the user and the concert.  Given the one-per-user rule
// the result has length 0 or 1.
func (r *ReservationRepo) ActiveIDsByUserAndConcert(userID string, concertID uint64) []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []uint64
	for _, res := range r.reservations {
		if res.UserID == userID && res.ConcertID == concertID && res.Status == model.StatusReserve {
			out = append(out, res.ID)
		}
	}
	return out
}

// findLocked scans for a reservation by id.  Callers must hold the
// mutex.
func (r *ReservationRepo) findLocked(id uint64) *model.Reservation {
	for _, res := range r.reservations {
		if res.ID == id {
			return res
		}
	}
	return nil
}
