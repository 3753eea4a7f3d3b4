package model

import "time"

// Concert is a bookable event with a fixed number of seats.  The seat
// count is the total capacity and never changes after creation; there is
// no edit operation on concerts in the current design.
//
// Fields:
//  ID          – store-assigned identifier, monotonic from 1.
//  Name        – display name, free-form text.
//  Description – free-form text shown to customers.
//  Seat        – total seat capacity.
//  CreatedAt   – creation timestamp (UTC).
//  UpdatedAt   – set at creation; concerts are never updated afterwards.
type Concert struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Seat        int       `json:"seat"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
