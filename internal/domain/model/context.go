package model

// Context tags the setting an observation happens in. The perception and
// ability models key their noise tables off it; several values are exclusive
// to a scout specialization and only reachable through it.
type Context int

const (
	ContextLiveMatch Context = iota
	ContextVideoAnalysis
	ContextTrainingGround
	ContextYouthTournament
	ContextAcademyVisit
	ContextTrialMatch
	ContextFollowUpVisit
)

// String returns the camelCase context tag used in config and logs.
func (c Context) String() string {
	switch c {
	case ContextLiveMatch:
		return "liveMatch"
	case ContextVideoAnalysis:
		return "videoAnalysis"
	case ContextTrainingGround:
		return "trainingGround"
	case ContextYouthTournament:
		return "youthTournament"
	case ContextAcademyVisit:
		return "academyVisit"
	case ContextTrialMatch:
		return "trialMatch"
	case ContextFollowUpVisit:
		return "followUpVisit"
	default:
		return "unknown"
	}
}

// CloseContact reports whether the context offers close personal contact
// with the player, which raises the personality reveal chance.
func (c Context) CloseContact() bool {
	switch c {
	case ContextTrainingGround, ContextAcademyVisit, ContextTrialMatch, ContextFollowUpVisit:
		return true
	default:
		return false
	}
}

// PhaseType classifies a session phase for the visibility lookup.
type PhaseType int

const (
	PhaseOpenPlay PhaseType = iota
	PhaseAttack
	PhaseDefense
	PhaseSetPiece
	PhaseTransition
	PhaseDrill
)

// String returns the lower-case phase type name.
func (p PhaseType) String() string {
	switch p {
	case PhaseAttack:
		return "attack"
	case PhaseDefense:
		return "defense"
	case PhaseSetPiece:
		return "set_piece"
	case PhaseTransition:
		return "transition"
	case PhaseDrill:
		return "drill"
	default:
		return "open_play"
	}
}
