// Package rng defines the deterministic random capability injected into the
// observation engine. Every draw the engine makes goes through a Source that
// the caller owns, so a fixed seed and a fixed call sequence replay to
// identical output.
package rng

import "math/rand"

// Source is the set of draws the engine consumes. Implementations must be
// deterministic for a given seed and call order.
type Source interface {
	// Float64 returns a uniform draw in [0, 1).
	Float64() float64

	// NormFloat64 returns a standard Gaussian draw.
	NormFloat64() float64

	// IntN returns a uniform integer in [0, n). n must be positive.
	IntN(n int) int

	// Between returns a uniform integer in [lo, hi] inclusive.
	// If hi <= lo it returns lo.
	Between(lo, hi int) int

	// Pick returns an index weighted by the given non-negative weights.
	// Zero or empty total weight falls back to a uniform pick.
	Pick(weights []float64) int
}

// seeded implements Source over math/rand with an explicit seed.
type seeded struct {
	r *rand.Rand
}

// New returns a deterministic Source seeded with the given value.
func New(seed int64) Source {
	return &seeded{r: rand.New(rand.NewSource(seed))} //nolint:gosec // deterministic by design
}

func (s *seeded) Float64() float64     { return s.r.Float64() }
func (s *seeded) NormFloat64() float64 { return s.r.NormFloat64() }

func (s *seeded) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.Intn(n)
}

func (s *seeded) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Intn(hi-lo+1)
}

func (s *seeded) Pick(weights []float64) int {
	if len(weights) == 0 {
		return 0
	}
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return s.IntN(len(weights))
	}
	target := s.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		target -= w
		if target < 0 {
			return i
		}
	}
	return len(weights) - 1
}
