package service

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrNotStarted is returned when Observe is called before Start.
	ErrNotStarted = errors.New("engine not started")

	// ErrInvalidRequest marks a request missing its scout or player.
	ErrInvalidRequest = errors.New("invalid observe request")

	// ErrDuplicateObservation marks a sighting already recorded for the
	// same scout, player, context, week and season.
	ErrDuplicateObservation = errors.New("duplicate observation")
)
