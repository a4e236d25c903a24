package session

import (
	"fmt"

	"github.com/okian/scoutsim/internal/domain/model"
)

// HypothesisState tracks a scouting theory's standing. Confirmed and
// debunked are terminal.
type HypothesisState int

const (
	HypothesisOpen HypothesisState = iota
	HypothesisSupported
	HypothesisContradicted
	HypothesisConfirmed
	HypothesisDebunked
)

// String returns the lower-case state name.
func (h HypothesisState) String() string {
	switch h {
	case HypothesisSupported:
		return "supported"
	case HypothesisContradicted:
		return "contradicted"
	case HypothesisConfirmed:
		return "confirmed"
	case HypothesisDebunked:
		return "debunked"
	default:
		return "open"
	}
}

// Terminal reports whether the state absorbs all further evidence.
func (h HypothesisState) Terminal() bool {
	return h == HypothesisConfirmed || h == HypothesisDebunked
}

// Direction marks which way a piece of evidence points.
type Direction int

const (
	EvidenceFor Direction = iota
	EvidenceAgainst
)

// Strength tags how convincing a piece of evidence is. It is descriptive
// only; resolution counts items, not weights.
type Strength int

const (
	StrengthWeak Strength = iota
	StrengthModerate
	StrengthStrong
)

// Evidence is one append-only entry in a hypothesis's trail.
type Evidence struct {
	Direction Direction
	Note      string
	Strength  Strength
}

// Hypothesis is a scout-authored belief about one player's domain.
type Hypothesis struct {
	ID       string
	PlayerID string
	Domain   model.Domain
	Claim    string
	State    HypothesisState
	Evidence []Evidence
}

// Evidence-count thresholds for resolution.
const (
	resolveCount = 3
	leanCount    = 2

	// resolutionBonus is the insight awarded exactly once when a hypothesis
	// reaches a terminal state.
	resolutionBonus = 5
)

// AddHypothesis creates an open hypothesis about a rostered player. Allowed
// only during reflection. The ID is derived from the session so replays stay
// byte-identical.
func AddHypothesis(s Session, playerID string, domain model.Domain, claim string) Session {
	if s.State != StateReflection || !s.hasPlayer(playerID) {
		return s
	}
	out := s.clone()
	out.Hypotheses = append(out.Hypotheses, Hypothesis{
		ID:       fmt.Sprintf("%s/h%d", s.ID, len(s.Hypotheses)+1),
		PlayerID: playerID,
		Domain:   domain,
		Claim:    claim,
		State:    HypothesisOpen,
	})
	return out
}

// UpdateHypothesis appends one evidence item and recomputes the state by
// simple count thresholds. Calls on a terminal hypothesis are no-ops, as are
// calls outside reflection or with an unknown ID. A transition into a
// terminal state awards the resolution bonus exactly once.
func UpdateHypothesis(s Session, hypothesisID string, ev Evidence) Session {
	if s.State != StateReflection {
		return s
	}
	idx := -1
	for i, h := range s.Hypotheses {
		if h.ID == hypothesisID {
			idx = i
			break
		}
	}
	if idx < 0 || s.Hypotheses[idx].State.Terminal() {
		return s
	}

	out := s.clone()
	h := &out.Hypotheses[idx]
	h.Evidence = append(h.Evidence, ev)

	var forCount, againstCount int
	for _, e := range h.Evidence {
		if e.Direction == EvidenceFor {
			forCount++
		} else {
			againstCount++
		}
	}

	prior := h.State
	switch {
	case forCount >= resolveCount:
		h.State = HypothesisConfirmed
	case againstCount >= resolveCount:
		h.State = HypothesisDebunked
	case forCount >= leanCount:
		h.State = HypothesisSupported
	case againstCount >= leanCount:
		h.State = HypothesisContradicted
	default:
		h.State = HypothesisOpen
	}

	if h.State.Terminal() && !prior.Terminal() {
		out.InsightPoints += resolutionBonus
	}
	return out
}
