// Package personality implements the probabilistic gate that can disclose at
// most one hidden personality trait per observation event. Traits never show
// up in attribute readings; this gate is the only way they surface.
package personality

import (
	"sort"

	"github.com/okian/scoutsim/internal/domain/model"
	"github.com/okian/scoutsim/pkg/rng"
)

// Gate tuning constants.
const (
	baseChance = 0.08

	// Additive bonuses.
	judgmentGate      = 14
	potentialEyeBonus = 0.04
	currentEyeBonus   = 0.03
	mentalLensBonus   = 0.05
	closeContactBonus = 0.06
)

// contextAffinity lists the traits a context is most likely to expose. The
// draw intersects the player's still-hidden traits with this list, falling
// back to any hidden trait so a successful roll is never wasted.
var contextAffinity = map[model.Context][]model.Trait{
	model.ContextTrainingGround:  {model.TraitProfessional, model.TraitPerfectionist, model.TraitVolatile},
	model.ContextTrialMatch:      {model.TraitAmbitious, model.TraitBigGamePlayer, model.TraitResilient},
	model.ContextFollowUpVisit:   {model.TraitLoyal, model.TraitAmbitious, model.TraitProfessional},
	model.ContextAcademyVisit:    {model.TraitProfessional, model.TraitLoyal, model.TraitInfluential},
	model.ContextLiveMatch:       {model.TraitBigGamePlayer, model.TraitVolatile, model.TraitInfluential},
	model.ContextYouthTournament: {model.TraitAmbitious, model.TraitResilient},
	model.ContextVideoAnalysis:   {model.TraitInfluential},
}

// Chance returns the reveal probability for one observation event.
func Chance(scout model.Scout, lens model.Lens, ctx model.Context) float64 {
	p := baseChance
	if scout.PotentialJudgment >= judgmentGate {
		p += potentialEyeBonus
	}
	if scout.CurrentAbilityJudgment >= judgmentGate {
		p += currentEyeBonus
	}
	if lens == model.LensMental {
		p += mentalLensBonus
	}
	if ctx.CloseContact() {
		p += closeContactBonus
	}
	return p
}

// Reveal rolls the gate once. It returns the disclosed trait and true on
// success, or false when the roll fails or the player has no hidden traits
// left to give. hidden is the player's not-yet-revealed traits.
func Reveal(src rng.Source, hidden []model.Trait, scout model.Scout, lens model.Lens, ctx model.Context) (model.Trait, bool) {
	if len(hidden) == 0 {
		return 0, false
	}
	if src.Float64() >= Chance(scout, lens, ctx) {
		return 0, false
	}

	pool := intersect(hidden, contextAffinity[ctx])
	if len(pool) == 0 {
		pool = sortedCopy(hidden)
	}
	return pool[src.IntN(len(pool))], true
}

// intersect keeps the hidden traits the context has affinity for, in stable
// trait order so the uniform draw is deterministic.
func intersect(hidden, affinity []model.Trait) []model.Trait {
	want := map[model.Trait]struct{}{}
	for _, t := range affinity {
		want[t] = struct{}{}
	}
	var out []model.Trait
	for _, t := range hidden {
		if _, ok := want[t]; ok {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedCopy(traits []model.Trait) []model.Trait {
	out := make([]model.Trait, len(traits))
	copy(out, traits)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
