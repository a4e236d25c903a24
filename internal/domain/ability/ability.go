// Package ability estimates a player's current and potential ability as
// star ratings. It mirrors the attribute perception pipeline's Gaussian
// shape but carries its own noise table and an age-dependent uncertainty
// rule for potential: the younger the player, the harder the projection.
package ability

import (
	"math"

	"github.com/okian/scoutsim/internal/domain/model"
	"github.com/okian/scoutsim/pkg/rng"
)

// Default estimator tuning constants.
const (
	// Internal-scale noise: max(sdFloor, (20 - judgment) * sdPerSkillPoint).
	sdFloor         = 5.0
	sdPerSkillPoint = 2.5

	// Age factor breakpoints. At or under youngAge projection is hardest;
	// at or over settledAge it flattens out.
	youngAge   = 21
	settledAge = 28

	youngFactorBase    = 1.5
	youngFactorDivisor = 40.0 // higher PA judgment shaves the young factor
	settledFactor      = 0.6

	// Potential range half-width shaping, in stars.
	rangeSkillDivisor = 10.0
	rangeAgeScale     = 0.5
	rangeObsStep      = 0.05
	rangeObsCap       = 0.5
	minHalfWidthStars = 0.25

	starMin  = 0.5
	starMax  = 5.0
	starStep = 0.5
	quarter  = 0.25
)

// defaultContextNoise multiplies the ability standard deviation per context.
// Judging composite ability needs competitive minutes, so the table is not
// identical to the attribute one: video is still the loosest, but a trial
// match beats the training ground.
func defaultContextNoise() map[model.Context]float64 {
	return map[model.Context]float64{
		model.ContextTrialMatch:      0.75,
		model.ContextTrainingGround:  0.85,
		model.ContextFollowUpVisit:   0.85,
		model.ContextLiveMatch:       1.00,
		model.ContextAcademyVisit:    1.05,
		model.ContextYouthTournament: 1.15,
		model.ContextVideoAnalysis:   1.35,
	}
}

// Stars converts an internal 1-200 ability value to a half-star rating in
// [0.5, 5.0].
func Stars(scale int) float64 {
	if scale < model.AbilityMin {
		scale = model.AbilityMin
	}
	if scale > model.AbilityMax {
		scale = model.AbilityMax
	}
	raw := float64(scale) / float64(model.AbilityMax) * starMax
	s := math.Round(raw/starStep) * starStep
	return math.Max(starMin, math.Min(starMax, s))
}

// snapQuarter rounds to the nearest quarter star.
func snapQuarter(v float64) float64 {
	return math.Round(v/quarter) * quarter
}

// Input carries one ability estimation request.
type Input struct {
	// TrueCurrent and TruePotential are the ground-truth 1-200 values.
	TrueCurrent   int
	TruePotential int

	Age int

	// CurrentJudgment and PotentialJudgment are the scout's two
	// ability-judgment skills, 1-20.
	CurrentJudgment   int
	PotentialJudgment int

	// Observations counts prior sightings including this one, never below 1.
	Observations int

	Context model.Context
}

func (in Input) normalize() Input {
	if in.Observations < 1 {
		in.Observations = 1
	}
	clampSkill := func(v int) int {
		if v < model.AttributeMin {
			return model.AttributeMin
		}
		if v > model.AttributeMax {
			return model.AttributeMax
		}
		return v
	}
	in.CurrentJudgment = clampSkill(in.CurrentJudgment)
	in.PotentialJudgment = clampSkill(in.PotentialJudgment)
	return in
}

// Estimator evaluates CA/PA perception. Tables are read-only after
// construction.
type Estimator struct {
	contextNoise map[model.Context]float64
}

// Option applies a configuration option to the Estimator.
type Option func(*Estimator)

// WithContextNoise overrides ability noise multipliers for the given
// contexts. Non-positive multipliers are ignored.
func WithContextNoise(table map[model.Context]float64) Option {
	return func(e *Estimator) {
		for ctx, mult := range table {
			if mult > 0 {
				e.contextNoise[ctx] = mult
			}
		}
	}
}

// NewEstimator creates an ability estimator with default tables.
func NewEstimator(opts ...Option) *Estimator {
	e := &Estimator{contextNoise: defaultContextNoise()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Estimator) contextNoiseFor(ctx model.Context) float64 {
	if mult, ok := e.contextNoise[ctx]; ok {
		return mult
	}
	return 1.0
}

// deviation is the internal-scale standard deviation for a judgment skill.
func (e *Estimator) deviation(judgment, observations int, ctx model.Context) float64 {
	sd := math.Max(sdFloor, float64(model.AttributeMax-judgment)*sdPerSkillPoint)
	sd /= math.Sqrt(float64(observations))
	return sd * e.contextNoiseFor(ctx)
}

// AgeFactor returns the potential-uncertainty multiplier for an age and PA
// judgment skill. Young players are intrinsically hard to project, with the
// difficulty eased by judgment; settled players flatten to a low factor.
func (e *Estimator) AgeFactor(age, potentialJudgment int) float64 {
	young := youngFactorBase - float64(potentialJudgment)/youngFactorDivisor
	switch {
	case age <= youngAge:
		return young
	case age >= settledAge:
		return settledFactor
	default:
		t := float64(age-youngAge) / float64(settledAge-youngAge)
		return young + t*(settledFactor-young)
	}
}

// Estimate runs the full CA/PA pipeline. The potential low bound, and the
// potential estimate itself, are lifted to at least the perceived current
// stars: potential is never reported below current ability.
func (e *Estimator) Estimate(src rng.Source, in Input) model.AbilityReading {
	in = in.normalize()

	caSD := e.deviation(in.CurrentJudgment, in.Observations, in.Context)
	ca := clampScale(int(math.Round(float64(in.TrueCurrent) + src.NormFloat64()*caSD)))
	caStars := Stars(ca)

	paSD := e.deviation(in.PotentialJudgment, in.Observations, in.Context) * e.AgeFactor(in.Age, in.PotentialJudgment)
	pa := clampScale(int(math.Round(float64(in.TruePotential) + src.NormFloat64()*paSD)))
	paStars := Stars(pa)

	half := float64(model.AttributeMax-in.PotentialJudgment)/rangeSkillDivisor +
		rangeAgeScale*e.AgeFactor(in.Age, in.PotentialJudgment) -
		math.Min(rangeObsCap, rangeObsStep*float64(in.Observations))
	half = snapQuarter(half)
	if half < minHalfWidthStars {
		half = minHalfWidthStars
	}

	low := snapQuarter(math.Max(starMin, paStars-half))
	high := snapQuarter(math.Min(starMax, paStars+half))

	// Perceived potential can never sit below perceived current ability.
	if low < caStars {
		low = caStars
	}
	if high < low {
		high = low
	}

	conf := e.confidence(in)

	return model.AbilityReading{
		CurrentStars:  caStars,
		PotentialLow:  low,
		PotentialHigh: high,
		Confidence:    conf,
		Observations:  in.Observations,
	}
}

// confidence mirrors the attribute blend using the mean judgment skill.
func (e *Estimator) confidence(in Input) float64 {
	skill := float64(in.CurrentJudgment+in.PotentialJudgment) / 2.0
	skillTerm := 0.45 * skill / float64(model.AttributeMax)
	obsTerm := 0.35 * (1.0 - 1.0/(1.0+float64(in.Observations)/3.0))
	return math.Max(0, math.Min(1, skillTerm+obsTerm))
}

func clampScale(v int) int {
	if v < model.AbilityMin {
		return model.AbilityMin
	}
	if v > model.AbilityMax {
		return model.AbilityMax
	}
	return v
}
