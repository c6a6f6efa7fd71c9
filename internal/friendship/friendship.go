// Package friendship holds the friend-request state machine shared by the
// API and the client mirror.
package friendship

import (
	"errors"
	"time"

	"github.com/mroshb/friends_api/internal/models"
)

type State int

const (
	StateNone State = iota
	StatePending
	StateConfirmed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateConfirmed:
		return "confirmed"
	default:
		return "none"
	}
}

var (
	ErrSelfRequest      = errors.New("friendship: cannot send a friend request to yourself")
	ErrRequestNotFound  = errors.New("friendship: no pending request addressed to caller")
	ErrAlreadyConfirmed = errors.New("friendship: request already confirmed")
)

// StateOf derives the state of an edge. A nil edge is StateNone.
func StateOf(edge *models.Friend) State {
	if edge == nil {
		return StateNone
	}
	if edge.IsConfirmed() {
		return StateConfirmed
	}
	return StatePending
}

// CheckRequest guards NONE -> PENDING. existing is the edge for the pair in
// either direction. It returns true when a new pending edge must be created;
// an existing edge makes the request a no-op.
func CheckRequest(requesterID, targetID uint, existing *models.Friend) (bool, error) {
	if err := CheckTarget(requesterID, targetID); err != nil {
		return false, err
	}
	return existing == nil, nil
}

// CheckTarget rejects requests a user addresses to themselves. It needs no
// stored state, so callers run it before touching the store.
func CheckTarget(requesterID, targetID uint) error {
	if requesterID == targetID {
		return ErrSelfRequest
	}
	return nil
}

// CheckResponse guards PENDING -> CONFIRMED and PENDING -> NONE. Only the
// recipient of a pending edge passes; every other case reports
// ErrRequestNotFound so callers cannot probe for edges they don't own.
func CheckResponse(edge *models.Friend, callerID uint) error {
	if edge == nil || edge.FriendID != callerID || StateOf(edge) != StatePending {
		return ErrRequestNotFound
	}
	return nil
}

// Confirm applies PENDING -> CONFIRMED in memory.
func Confirm(edge *models.Friend, now time.Time) error {
	if StateOf(edge) == StateConfirmed {
		return ErrAlreadyConfirmed
	}
	status := models.FriendStatusConfirmed
	confirmedAt := now
	edge.Status = &status
	edge.ConfirmedAt = &confirmedAt
	return nil
}
