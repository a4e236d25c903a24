package perception

import (
	"sort"

	"github.com/okian/scoutsim/internal/domain/model"
)

// AttributeSet is a set of attributes keyed for cheap union/removal.
type AttributeSet map[model.Attribute]struct{}

// Contains reports set membership.
func (s AttributeSet) Contains(a model.Attribute) bool {
	_, ok := s[a]
	return ok
}

// Sorted returns the set's members in stable declaration order. Perception
// iterates this, never the map, so RNG consumption stays deterministic.
func (s AttributeSet) Sorted() []model.Attribute {
	out := make([]model.Attribute, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// phaseAttrs is the phase-type lookup: the attribute groups a phase of that
// shape naturally exposes.
var phaseAttrs = map[model.PhaseType][]model.Attribute{
	model.PhaseOpenPlay: {
		model.AttrPassing, model.AttrFirstTouch, model.AttrDribbling,
		model.AttrPace, model.AttrWorkRate, model.AttrDecisions,
		model.AttrTeamwork,
	},
	model.PhaseAttack: {
		model.AttrFinishing, model.AttrDribbling, model.AttrOffTheBall,
		model.AttrComposure, model.AttrPace, model.AttrCrossing,
	},
	model.PhaseDefense: {
		model.AttrMarking, model.AttrPositioning, model.AttrStrength,
		model.AttrAnticipation, model.AttrConcentration,
	},
	model.PhaseSetPiece: {
		model.AttrCrossing, model.AttrTechnique, model.AttrConcentration,
		model.AttrStrength, model.AttrPositioning,
	},
	model.PhaseTransition: {
		model.AttrPace, model.AttrStamina, model.AttrAnticipation,
		model.AttrDecisions, model.AttrOffTheBall,
	},
	model.PhaseDrill: {
		model.AttrTechnique, model.AttrFirstTouch, model.AttrPassing,
		model.AttrAgility, model.AttrStamina, model.AttrDetermination,
	},
}

// contextBaseAttrs is the base visible set each observation context grants
// regardless of phase shape.
var contextBaseAttrs = map[model.Context][]model.Attribute{
	model.ContextLiveMatch:       {model.AttrWorkRate, model.AttrPositioning},
	model.ContextVideoAnalysis:   {model.AttrPositioning, model.AttrDecisions},
	model.ContextTrainingGround:  {model.AttrTechnique, model.AttrDetermination, model.AttrAgility},
	model.ContextYouthTournament: {model.AttrPace, model.AttrFlair},
	model.ContextAcademyVisit:    {model.AttrTechnique, model.AttrDetermination},
	model.ContextTrialMatch:      {model.AttrWorkRate, model.AttrDetermination},
	model.ContextFollowUpVisit:   {model.AttrWorkRate, model.AttrConcentration},
}

// passiveAttrs is the restricted off-ball subset a peripherally watched
// player can still show.
var passiveAttrs = []model.Attribute{
	model.AttrPositioning, model.AttrOffTheBall, model.AttrWorkRate,
	model.AttrAnticipation, model.AttrPace, model.AttrStamina,
}

// Visible computes the attribute set a scout can read in one phase: the
// phase-type lookup, unioned with the context base set, the attributes the
// phase's events individually revealed, and any skill-gated bonuses. The
// hidden domain is removed unconditionally at the end; no context or skill
// ever exposes it.
func (m *Model) Visible(ctx model.Context, phase model.PhaseType, events []model.PhaseEvent, skills model.ScoutSkills) AttributeSet {
	set := AttributeSet{}
	for _, a := range phaseAttrs[phase] {
		set[a] = struct{}{}
	}
	for _, a := range contextBaseAttrs[ctx] {
		set[a] = struct{}{}
	}
	for _, ev := range events {
		for _, a := range ev.Reveals {
			set[a] = struct{}{}
		}
	}

	// Skill-gated bonus attributes.
	if skills.Technical >= technicalEyeGate {
		set[model.AttrFirstTouch] = struct{}{}
		set[model.AttrFlair] = struct{}{}
	}
	if skills.Physical >= physicalEyeGate {
		set[model.AttrNaturalFitness] = struct{}{}
	}
	if skills.Mental >= mentalEyeGate {
		set[model.AttrComposure] = struct{}{}
	}
	if skills.Tactical >= tacticalEyeGate {
		set[model.AttrVision] = struct{}{}
	}

	for a := range set {
		if a.Domain() == model.DomainHidden {
			delete(set, a)
		}
	}
	return set
}

// VisiblePassive returns the off-ball subset available for a player who is
// present in the session but not directly involved in the phase.
func (m *Model) VisiblePassive() AttributeSet {
	set := AttributeSet{}
	for _, a := range passiveAttrs {
		set[a] = struct{}{}
	}
	return set
}
