package sim

import (
	"fmt"

	"github.com/okian/scoutsim/internal/domain/model"
	"github.com/okian/scoutsim/internal/domain/session"
	"github.com/okian/scoutsim/pkg/rng"
)

// Scripting tunables.
const (
	maxEventsPerPhase  = 2
	maxRevealsPerEvent = 2
	flagOneIn          = 3 // roughly one flagged moment per three phases
	hypothesisOneIn    = 2
	evidenceMin        = 2
	evidenceMax        = 4
)

// contextWeights biases session booking toward live and training settings.
var contextWeights = []float64{
	3, // liveMatch
	1, // videoAnalysis
	2, // trainingGround
	1, // youthTournament
	1, // academyVisit
	1, // trialMatch
	1, // followUpVisit
}

var sessionContexts = []model.Context{
	model.ContextLiveMatch,
	model.ContextVideoAnalysis,
	model.ContextTrainingGround,
	model.ContextYouthTournament,
	model.ContextAcademyVisit,
	model.ContextTrialMatch,
	model.ContextFollowUpVisit,
}

// activityFor picks the activity that books the given context.
func activityFor(ctx model.Context) session.ActivityType {
	switch ctx {
	case model.ContextVideoAnalysis:
		return session.ActivityVideoReview
	case model.ContextTrainingGround, model.ContextAcademyVisit:
		return session.ActivityTrainingVisit
	case model.ContextFollowUpVisit:
		return session.ActivityQuickCheckIn
	default:
		return session.ActivityFullMatch
	}
}

// phaseTypeFor draws a plausible phase type for the context.
func phaseTypeFor(src rng.Source, ctx model.Context) model.PhaseType {
	if ctx == model.ContextTrainingGround || ctx == model.ContextAcademyVisit {
		if src.IntN(2) == 0 {
			return model.PhaseDrill
		}
	}
	matchPhases := []model.PhaseType{
		model.PhaseOpenPlay, model.PhaseAttack, model.PhaseDefense,
		model.PhaseSetPiece, model.PhaseTransition,
	}
	return matchPhases[src.IntN(len(matchPhases))]
}

// visibleAttrs is the pool events draw their reveals from; hidden-domain
// attributes never surface through events.
func visibleAttrs() []model.Attribute {
	out := make([]model.Attribute, 0, len(model.AllAttributes()))
	for _, a := range model.AllAttributes() {
		if a.Domain() != model.DomainHidden {
			out = append(out, a)
		}
	}
	return out
}

// script describes one booked session for a scout.
type script struct {
	scout  model.Scout
	target *model.GroundTruthPlayer
	week   int
	season int
	opts   []session.Option
}

// playSession runs one session end to end: book, populate, focus, advance
// through every phase with occasional flagged moments, then reflect with a
// hypothesis before completing. All randomness comes from src.
func playSession(src rng.Source, sc script, newSession func(session.Config, rng.Source, ...session.Option) session.Session) session.Session {
	ctx := sessionContexts[src.Pick(contextWeights)]
	s := newSession(session.Config{
		ID:       fmt.Sprintf("%s/w%d", sc.scout.ID, sc.week),
		Activity: activityFor(ctx),
		Context:  ctx,
		Target:   sc.target.ID,
		Players:  []string{sc.target.ID},
		Week:     sc.week,
		Season:   sc.season,
	}, src, sc.opts...)

	pool := visibleAttrs()
	for i := range s.Phases {
		events := make([]model.PhaseEvent, src.IntN(maxEventsPerPhase+1))
		for e := range events {
			reveals := make([]model.Attribute, 1+src.IntN(maxRevealsPerEvent))
			for r := range reveals {
				reveals[r] = pool[src.IntN(len(pool))]
			}
			events[e] = model.PhaseEvent{
				Minute:   s.Phases[i].Minute,
				PlayerID: sc.target.ID,
				Reveals:  reveals,
				Quality:  0.5 + src.Float64()*0.5,
			}
		}
		s = session.PopulatePhase(s, i, phaseTypeFor(src, ctx), "scripted passage", events, 0.5+src.Float64()*0.5)
	}

	s = session.Start(s)
	s = session.AllocateFocus(s, sc.target.ID, lensFor(src))

	for s.State == session.StateActive {
		if src.IntN(flagOneIn) == 0 {
			s = session.FlagMoment(s, "moment worth a second look")
		}
		s = session.AdvancePhase(s)
	}

	if s.State == session.StateReflection {
		s = session.AddNote(s, fmt.Sprintf("week %d, %s", sc.week, ctx))
		if src.IntN(hypothesisOneIn) == 0 {
			s = reflectOnTarget(src, s, sc.target.ID)
		}
	}
	// Left in reflection; the engine closes it out.
	return s
}

// lensFor draws the focus lens for the session.
func lensFor(src rng.Source) model.Lens {
	lenses := []model.Lens{
		model.LensGeneral, model.LensTechnical, model.LensPhysical,
		model.LensMental, model.LensTactical,
	}
	return lenses[src.IntN(len(lenses))]
}

// reflectOnTarget opens one hypothesis and feeds it a short evidence trail.
func reflectOnTarget(src rng.Source, s session.Session, playerID string) session.Session {
	domains := []model.Domain{
		model.DomainTechnical, model.DomainPhysical,
		model.DomainMental, model.DomainTactical,
	}
	d := domains[src.IntN(len(domains))]
	s = session.AddHypothesis(s, playerID, d, "stands out in this domain")
	if len(s.Hypotheses) == 0 {
		return s
	}
	id := s.Hypotheses[len(s.Hypotheses)-1].ID

	n := src.Between(evidenceMin, evidenceMax)
	for i := 0; i < n; i++ {
		dir := session.EvidenceFor
		if src.IntN(3) == 0 {
			dir = session.EvidenceAgainst
		}
		s = session.UpdateHypothesis(s, id, session.Evidence{
			Direction: dir,
			Note:      "observed supporting passage",
			Strength:  session.Strength(src.IntN(3)),
		})
	}
	return s
}
