package sim

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrEmptyWorld marks a config with no scouts, players or weeks.
	ErrEmptyWorld = errors.New("simulation world is empty")

	// ErrNondeterministic marks two same-seed runs that disagreed.
	ErrNondeterministic = errors.New("runs diverged for identical seeds")
)
