// Package repository defines the observation-history store interface and
// errors. The history feeds the perception model's observation-count and
// context-diversity terms and remembers which personality traits a scout has
// already uncovered.
package repository

import (
	"context"

	"github.com/okian/scoutsim/internal/domain/model"
)

// History is the accumulated record of one scout watching one player.
type History struct {
	ScoutID  string
	PlayerID string

	// Observations counts completed observation records.
	Observations int

	// Contexts counts observations per context type; its length is the
	// diversity the accuracy model discounts noise by.
	Contexts map[model.Context]int

	// RevealedTraits lists personality traits already disclosed to this
	// scout, in reveal order.
	RevealedTraits []model.Trait

	LastWeek   int
	LastSeason int
}

// DistinctContexts returns the number of different context types seen.
func (h History) DistinctContexts() int {
	return len(h.Contexts)
}

// Store provides read/write access to observation histories.
type Store interface {
	// Record folds one observation into the scout/player history.
	Record(ctx context.Context, obs model.Observation) error

	// History returns the current history for a scout/player pair.
	// Returns ErrNotFound when the pair has never been recorded.
	History(ctx context.Context, scoutID, playerID string) (History, error)

	// MostObserved returns up to n histories ordered by observation count
	// descending, ties broken by player then scout ID ascending.
	MostObserved(ctx context.Context, n int) ([]History, error)

	// Count returns the number of scout/player pairs tracked.
	Count(ctx context.Context) int
}
