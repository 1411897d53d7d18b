package models

import "errors"

// Per-request error taxonomy surfaced by the coordinator and mapped to
// HTTP status codes in the controllers.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrCardNotFound    = errors.New("card not found")
	ErrClaimNotFound   = errors.New("claim not found")

	// Host actions require the session's host key; player actions a
	// valid player uuid.
	ErrNotHost = errors.New("not the session host")

	// Action is invalid for the session's current status.
	ErrSessionEnded   = errors.New("session has ended")
	ErrRoundNotActive = errors.New("no active round")

	// Duplicate unique value during insert, recovered locally by retry.
	ErrConflict = errors.New("conflict")
)
