package repository

import (
	"context"
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"github.com/okian/scoutsim/internal/domain/model"
	"github.com/okian/scoutsim/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultShardCount = 8
)

// ShardedStore implements Store with a fixed set of RWMutex-guarded shards
// so concurrent scouts recording into disjoint histories rarely contend.
type ShardedStore struct {
	shardCount int
	shards     []*shard
}

type shard struct {
	mu        sync.RWMutex
	histories map[pairKey]*History
}

type pairKey struct {
	scoutID  string
	playerID string
}

// NewShardedStore creates a history store with configuration options.
func NewShardedStore(opts ...Option) *ShardedStore {
	s := &ShardedStore{shardCount: defaultShardCount}
	for _, opt := range opts {
		opt(s)
	}
	s.shards = make([]*shard, s.shardCount)
	for i := range s.shards {
		s.shards[i] = &shard{histories: map[pairKey]*History{}}
	}
	metrics.UpdateHistoryShardCount(s.shardCount)
	return s
}

func (s *ShardedStore) shardFor(k pairKey) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(k.scoutID))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(k.playerID))
	return s.shards[int(h.Sum32())%s.shardCount]
}

// Record folds one observation into the scout/player history.
func (s *ShardedStore) Record(_ context.Context, obs model.Observation) error {
	if obs.ScoutID == "" || obs.PlayerID == "" {
		return ErrEmptyID
	}
	start := time.Now()
	k := pairKey{scoutID: obs.ScoutID, playerID: obs.PlayerID}
	sh := s.shardFor(k)

	sh.mu.Lock()
	h, ok := sh.histories[k]
	if !ok {
		h = &History{
			ScoutID:  obs.ScoutID,
			PlayerID: obs.PlayerID,
			Contexts: map[model.Context]int{},
		}
		sh.histories[k] = h
	}
	h.Observations++
	h.Contexts[obs.Context]++
	h.LastWeek = obs.Week
	h.LastSeason = obs.Season
	if obs.RevealedTrait != nil {
		h.RevealedTraits = append(h.RevealedTraits, *obs.RevealedTrait)
	}
	sh.mu.Unlock()

	metrics.RecordHistoryUpdateLatency(time.Since(start))
	metrics.UpdateHistoriesTracked(s.Count(context.Background()))
	return nil
}

// History returns a copy of the pair's history or ErrNotFound.
func (s *ShardedStore) History(_ context.Context, scoutID, playerID string) (History, error) {
	if scoutID == "" || playerID == "" {
		return History{}, ErrEmptyID
	}
	k := pairKey{scoutID: scoutID, playerID: playerID}
	sh := s.shardFor(k)

	sh.mu.RLock()
	defer sh.mu.RUnlock()
	h, ok := sh.histories[k]
	if !ok {
		return History{}, ErrNotFound
	}
	return copyHistory(h), nil
}

// MostObserved returns up to n histories by observation count descending.
func (s *ShardedStore) MostObserved(_ context.Context, n int) ([]History, error) {
	if n <= 0 {
		return nil, ErrInvalidLimit
	}
	var all []History
	for _, sh := range s.shards {
		sh.mu.RLock()
		for _, h := range sh.histories {
			all = append(all, copyHistory(h))
		}
		sh.mu.RUnlock()
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Observations != all[j].Observations {
			return all[i].Observations > all[j].Observations
		}
		if all[i].PlayerID != all[j].PlayerID {
			return all[i].PlayerID < all[j].PlayerID
		}
		return all[i].ScoutID < all[j].ScoutID
	})
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

// Count returns the number of scout/player pairs tracked.
func (s *ShardedStore) Count(_ context.Context) int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		total += len(sh.histories)
		sh.mu.RUnlock()
	}
	return total
}

// copyHistory detaches the stored record so callers cannot alias shard state.
func copyHistory(h *History) History {
	out := *h
	out.Contexts = make(map[model.Context]int, len(h.Contexts))
	for c, n := range h.Contexts {
		out.Contexts[c] = n
	}
	out.RevealedTraits = make([]model.Trait, len(h.RevealedTraits))
	copy(out.RevealedTraits, h.RevealedTraits)
	return out
}
