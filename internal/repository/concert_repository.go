package repository

import (
	"sync"
	"time"

	"github.com/iliyamo/concert-seat-reservation/internal/model"
)

// ConcertRepo owns the concert collection.  Records live in process
// memory for the lifetime of the service; there is no persistence and
// none is implied.  All access goes through the methods below, which
// guard the slice and the id counter with a single RWMutex so that
// concurrent creates can never hand out the same identifier twice.
//
// Concerts are stored in creation order and identifiers are never
// reused, even after a delete.
type ConcertRepo struct {
	mu       sync.RWMutex
	concerts []*model.Concert
	nextID   uint64
}

// NewConcertRepo returns an empty store.  Identifiers start at 1.
func NewConcertRepo() *ConcertRepo {
	return &ConcertRepo{nextID: 1}
}

// Create appends a new concert and returns it.  The seat value is
// stored as given; range validation is the responsibility of the
// request layer.
func (r *ConcertRepo) Create(name, description string, seat int) *model.Concert {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	c := &model.Concert{
		ID:          r.nextID,
		Name:        name,
		Description: description,
		Seat:        seat,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.nextID++
	r.concerts = append(r.concerts, c)
	return c
}

// List returns all concerts in creation order.  The returned slice is
// a copy so callers cannot perturb the store's ordering.
func (r *ConcertRepo) List() []*model.Concert {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Concert, len(r.concerts))
	copy(out, r.concerts)
	return out
}

// GetByID returns the concert with the given id or ErrConcertNotFound.
func (r *ConcertRepo) GetByID(id uint64) (*model.Concert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findLocked(id)
}

// Delete removes the concert with the given id.  It returns
// ErrConcertNotFound when no such concert exists.  Reservations that
// reference the deleted concert are left untouched; the dangling
// concert id is accepted by the current design.
func (r *ConcertRepo) Delete(id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.concerts {
		if c.ID == id {
			r.concerts = append(r.concerts[:i], r.concerts[i+1:]...)
			return nil
		}
	}
	return ErrConcertNotFound
}

// findLocked scans for a concert by id.  Callers must hold at least a
// read lock.
func (r *ConcertRepo) findLocked(id uint64) (*model.Concert, error) {
	for _, c := range r.concerts {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, ErrConcertNotFound
}
