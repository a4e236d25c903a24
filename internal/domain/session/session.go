// Package session implements the observation session state machine: a linear
// setup -> active -> reflection -> complete lifecycle, the focus-token
// economy, flagged moments, and the hypothesis evidence tracker used during
// reflection.
//
// Conventions:
//   - Transitions are pure functions from a Session value to a new Session
//     value; nothing mutates in place.
//   - A transition whose precondition fails returns its input unchanged.
//     Invalid calls are expected during UI-driven interaction and degrade
//     gracefully instead of erroring.
package session

import (
	"github.com/okian/scoutsim/internal/domain/model"
	"github.com/okian/scoutsim/pkg/rng"
)

// State is the session lifecycle state. The order is linear with no cycles
// and no skipping.
type State int

const (
	StateSetup State = iota
	StateActive
	StateReflection
	StateComplete
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case StateSetup:
		return "setup"
	case StateActive:
		return "active"
	case StateReflection:
		return "reflection"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Mode is the session shape, derived from the activity type. It fixes the
// focus-token budget and the phase-count range.
type Mode int

const (
	ModeFullObservation Mode = iota
	ModeInvestigation
	ModeAnalysis
	ModeQuickInteraction
)

// String returns the camelCase mode name.
func (m Mode) String() string {
	switch m {
	case ModeFullObservation:
		return "fullObservation"
	case ModeInvestigation:
		return "investigation"
	case ModeAnalysis:
		return "analysis"
	case ModeQuickInteraction:
		return "quickInteraction"
	default:
		return "unknown"
	}
}

// ActivityType is the caller-facing activity that frames the session.
type ActivityType int

const (
	ActivityFullMatch ActivityType = iota
	ActivityTrainingVisit
	ActivityVideoReview
	ActivityQuickCheckIn
)

// ModeFor maps an activity to its session mode. Unknown activities fall back
// to analysis; this is a documented fallback, not a failure.
func ModeFor(a ActivityType) Mode {
	switch a {
	case ActivityFullMatch:
		return ModeFullObservation
	case ActivityTrainingVisit:
		return ModeInvestigation
	case ActivityVideoReview:
		return ModeAnalysis
	case ActivityQuickCheckIn:
		return ModeQuickInteraction
	default:
		return ModeAnalysis
	}
}

// tokensPerHalf is the focus budget per mode.
var tokensPerHalf = map[Mode]int{
	ModeFullObservation:  3,
	ModeInvestigation:    2,
	ModeAnalysis:         1,
	ModeQuickInteraction: 0,
}

// phaseRange bounds the skeleton phase count per mode. Unknown modes use the
// fallback range.
var phaseRange = map[Mode][2]int{
	ModeFullObservation:  {8, 12},
	ModeInvestigation:    {4, 6},
	ModeAnalysis:         {3, 5},
	ModeQuickInteraction: {1, 2},
}

var fallbackPhaseRange = [2]int{3, 5}

// Phase is one slot in the session timeline. Description and Events are
// filled in by an external content generator while the session is in setup.
type Phase struct {
	Index       int
	Minute      int // approximate timeline position
	Type        model.PhaseType
	Description string
	HalfTime    bool
	Events      []model.PhaseEvent
	Quality     float64
}

// FocusAllocation binds a player to a perception lens from a given phase.
// PhasesActive counts how long the allocation has been live; the accuracy
// model treats low warm-up as partial information.
type FocusAllocation struct {
	PlayerID     string
	Lens         model.Lens
	StartPhase   int
	PhasesActive int
	Active       bool
}

// FlaggedMoment is a scout-selected highlight, at most one per phase.
type FlaggedMoment struct {
	PhaseIndex int
	Note       string
}

type warmKey struct {
	playerID string
	lens     model.Lens
}

// Session is the aggregate the transition functions evolve. Treat it as a
// value: copy-on-write, single writer at a time.
type Session struct {
	ID       string
	Activity ActivityType
	Mode     Mode
	Context  model.Context
	State    State

	Phases       []Phase
	CurrentPhase int

	TokensAvailable int
	TokensTotal     int
	Allocations     []FocusAllocation

	Moments    []FlaggedMoment
	Hypotheses []Hypothesis

	InsightPoints int
	Notes         []string

	// Players is the roster visible in the session; Target is the player
	// the session was booked for.
	Players []string
	Target  string

	Week   int
	Season int

	warm map[warmKey]int
}

// Config is the inbound session configuration.
type Config struct {
	ID       string
	Activity ActivityType
	Context  model.Context
	Target   string
	Players  []string
	Week     int
	Season   int
}

// Option adjusts session creation.
type Option func(*settings)

type settings struct {
	tokens map[Mode]int
	ranges map[Mode][2]int
}

// WithTokenBudgets overrides the per-mode focus-token budget. Negative
// budgets are ignored.
func WithTokenBudgets(budgets map[Mode]int) Option {
	return func(s *settings) {
		for m, n := range budgets {
			if n >= 0 {
				s.tokens[m] = n
			}
		}
	}
}

// WithPhaseRanges overrides the per-mode phase-count range. Ranges with a
// non-positive low bound or inverted order are ignored.
func WithPhaseRanges(ranges map[Mode][2]int) Option {
	return func(s *settings) {
		for m, r := range ranges {
			if r[0] > 0 && r[1] >= r[0] {
				s.ranges[m] = r
			}
		}
	}
}

// New builds a session in setup state with skeleton phases. The phase count
// is drawn from the mode's range; full-observation sessions get a half-time
// flag on the phase closest to the structural midpoint. Content is filled in
// by PopulatePhase before Start.
func New(cfg Config, src rng.Source, opts ...Option) Session {
	st := &settings{tokens: map[Mode]int{}, ranges: map[Mode][2]int{}}
	for m, n := range tokensPerHalf {
		st.tokens[m] = n
	}
	for m, r := range phaseRange {
		st.ranges[m] = r
	}
	for _, opt := range opts {
		opt(st)
	}

	mode := ModeFor(cfg.Activity)
	r, ok := st.ranges[mode]
	if !ok {
		r = fallbackPhaseRange
	}
	count := src.Between(r[0], r[1])

	phases := make([]Phase, count)
	for i := range phases {
		phases[i] = Phase{Index: i, Minute: minuteFor(i, count)}
	}
	if mode == ModeFullObservation && count > 1 {
		phases[count/2].HalfTime = true
	}

	total := st.tokens[mode]
	players := make([]string, len(cfg.Players))
	copy(players, cfg.Players)

	return Session{
		ID:              cfg.ID,
		Activity:        cfg.Activity,
		Mode:            mode,
		Context:         cfg.Context,
		State:           StateSetup,
		Phases:          phases,
		TokensAvailable: total,
		TokensTotal:     total,
		Players:         players,
		Target:          cfg.Target,
		Week:            cfg.Week,
		Season:          cfg.Season,
		warm:            map[warmKey]int{},
	}
}

// minuteFor spreads phases evenly over a 90-minute frame.
func minuteFor(index, count int) int {
	if count <= 1 {
		return 0
	}
	return index * 90 / (count - 1)
}

// clone returns a deep copy so transitions never alias the input's slices
// or maps.
func (s Session) clone() Session {
	out := s
	out.Phases = make([]Phase, len(s.Phases))
	copy(out.Phases, s.Phases)
	for i, p := range s.Phases {
		if len(p.Events) > 0 {
			ev := make([]model.PhaseEvent, len(p.Events))
			copy(ev, p.Events)
			out.Phases[i].Events = ev
		}
	}
	out.Allocations = make([]FocusAllocation, len(s.Allocations))
	copy(out.Allocations, s.Allocations)
	out.Moments = make([]FlaggedMoment, len(s.Moments))
	copy(out.Moments, s.Moments)
	out.Hypotheses = make([]Hypothesis, len(s.Hypotheses))
	for i, h := range s.Hypotheses {
		ev := make([]Evidence, len(h.Evidence))
		copy(ev, h.Evidence)
		h.Evidence = ev
		out.Hypotheses[i] = h
	}
	out.Notes = make([]string, len(s.Notes))
	copy(out.Notes, s.Notes)
	out.Players = make([]string, len(s.Players))
	copy(out.Players, s.Players)
	out.warm = make(map[warmKey]int, len(s.warm))
	for k, v := range s.warm {
		out.warm[k] = v
	}
	return out
}

// PopulatePhase installs generated content into a skeleton phase. Allowed
// only in setup; out-of-range indexes are a no-op.
func PopulatePhase(s Session, index int, phaseType model.PhaseType, description string, events []model.PhaseEvent, quality float64) Session {
	if s.State != StateSetup || index < 0 || index >= len(s.Phases) {
		return s
	}
	out := s.clone()
	p := &out.Phases[index]
	p.Type = phaseType
	p.Description = description
	p.Events = make([]model.PhaseEvent, len(events))
	copy(p.Events, events)
	p.Quality = quality
	return out
}

// Start moves the session from setup to active. It requires at least one
// phase; otherwise the session is returned unchanged.
func Start(s Session) Session {
	if s.State != StateSetup || len(s.Phases) == 0 {
		return s
	}
	out := s.clone()
	out.State = StateActive
	out.CurrentPhase = 0
	return out
}

// AdvancePhase moves the cursor one phase forward. Every live focus
// allocation ages by one phase along with its warm-up counter. Advancing
// into a half-time phase refreshes the token pool to the session total;
// unused first-half tokens do not carry over on top. Advancing from the last
// phase transitions to reflection instead.
func AdvancePhase(s Session) Session {
	if s.State != StateActive {
		return s
	}
	out := s.clone()

	if out.CurrentPhase >= len(out.Phases)-1 {
		out.State = StateReflection
		return out
	}

	out.CurrentPhase++
	for i := range out.Allocations {
		if !out.Allocations[i].Active {
			continue
		}
		out.Allocations[i].PhasesActive++
		k := warmKey{out.Allocations[i].PlayerID, out.Allocations[i].Lens}
		out.warm[k]++
	}

	if out.Phases[out.CurrentPhase].HalfTime {
		out.TokensAvailable = out.TokensTotal
	}
	return out
}

// Complete finishes the session's write-up. Requires reflection.
func Complete(s Session) Session {
	if s.State != StateReflection {
		return s
	}
	out := s.clone()
	out.State = StateComplete
	return out
}

// FlagMoment records a highlight on the current phase. Requires active
// state; a phase holds at most one moment, keeping the action scarce. A
// successful flag earns one insight point.
func FlagMoment(s Session, note string) Session {
	if s.State != StateActive {
		return s
	}
	for _, m := range s.Moments {
		if m.PhaseIndex == s.CurrentPhase {
			return s
		}
	}
	out := s.clone()
	out.Moments = append(out.Moments, FlaggedMoment{PhaseIndex: out.CurrentPhase, Note: note})
	out.InsightPoints++
	return out
}

// AddNote appends a free-text reflection note. Requires reflection.
func AddNote(s Session, text string) Session {
	if s.State != StateReflection {
		return s
	}
	out := s.clone()
	out.Notes = append(out.Notes, text)
	return out
}

// WarmUp reports how many consecutive phases the given player+lens focus
// has been live. Zero means the lens was just (re)allocated and reads are
// still degraded.
func (s Session) WarmUp(playerID string, lens model.Lens) int {
	return s.warm[warmKey{playerID, lens}]
}

// CurrentFocus returns the live allocation for a player, if any.
func (s Session) CurrentFocus(playerID string) (FocusAllocation, bool) {
	for i := len(s.Allocations) - 1; i >= 0; i-- {
		if s.Allocations[i].Active && s.Allocations[i].PlayerID == playerID {
			return s.Allocations[i], true
		}
	}
	return FocusAllocation{}, false
}

// hasPlayer reports roster membership.
func (s Session) hasPlayer(playerID string) bool {
	for _, p := range s.Players {
		if p == playerID {
			return true
		}
	}
	return false
}
