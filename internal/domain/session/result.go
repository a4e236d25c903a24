package session

// Tier is the qualitative grade of a finished session.
type Tier string

const (
	TierPoor        Tier = "poor"
	TierAverage     Tier = "average"
	TierGood        Tier = "good"
	TierExcellent   Tier = "excellent"
	TierExceptional Tier = "exceptional"
)

// Tier thresholds on insight points per phase.
const (
	tierAverageAt     = 0.4
	tierGoodAt        = 0.8
	tierExcellentAt   = 1.3
	tierExceptionalAt = 2.0
)

// Result is the on-demand summary of a session.
type Result struct {
	SessionID       string
	Mode            Mode
	FocusedPlayers  []string
	PhasesCompleted int
	PhasesTotal     int
	InsightPoints   int
	Tier            Tier
	Hypotheses      []Hypothesis
	Moments         []FlaggedMoment
	Notes           []string
}

// BuildResult summarizes a session at any point in its lifecycle. The
// returned slices are copies; callers can hold them freely.
func BuildResult(s Session) Result {
	focused := make([]string, 0, len(s.Allocations))
	seen := map[string]bool{}
	for _, a := range s.Allocations {
		if seen[a.PlayerID] {
			continue
		}
		seen[a.PlayerID] = true
		focused = append(focused, a.PlayerID)
	}

	completed := 0
	switch s.State {
	case StateActive:
		completed = s.CurrentPhase
	case StateReflection, StateComplete:
		completed = len(s.Phases)
	}

	hyps := make([]Hypothesis, len(s.Hypotheses))
	for i, h := range s.Hypotheses {
		ev := make([]Evidence, len(h.Evidence))
		copy(ev, h.Evidence)
		h.Evidence = ev
		hyps[i] = h
	}
	moments := make([]FlaggedMoment, len(s.Moments))
	copy(moments, s.Moments)
	notes := make([]string, len(s.Notes))
	copy(notes, s.Notes)

	return Result{
		SessionID:       s.ID,
		Mode:            s.Mode,
		FocusedPlayers:  focused,
		PhasesCompleted: completed,
		PhasesTotal:     len(s.Phases),
		InsightPoints:   s.InsightPoints,
		Tier:            tierFor(s.InsightPoints, len(s.Phases)),
		Hypotheses:      hyps,
		Moments:         moments,
		Notes:           notes,
	}
}

// tierFor grades insight points per phase.
func tierFor(insight, phases int) Tier {
	if phases == 0 {
		return TierPoor
	}
	perPhase := float64(insight) / float64(phases)
	switch {
	case perPhase >= tierExceptionalAt:
		return TierExceptional
	case perPhase >= tierExcellentAt:
		return TierExcellent
	case perPhase >= tierGoodAt:
		return TierGood
	case perPhase >= tierAverageAt:
		return TierAverage
	default:
		return TierPoor
	}
}
