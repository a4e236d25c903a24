package perception

import (
	"math"

	"github.com/okian/scoutsim/internal/domain/model"
	"github.com/okian/scoutsim/pkg/rng"
)

// Input carries everything the accuracy and confidence layers need for one
// attribute read.
type Input struct {
	TrueValue int
	Form      int // player form in [-3, +3]
	Skill     int // scout skill for the attribute's domain, 1-20

	// Observations counts prior sightings of this player by this scout,
	// including the current one; it is never below 1.
	Observations int

	// DistinctContexts counts how many different context types those
	// sightings covered; it is never below 1.
	DistinctContexts int

	Context model.Context
}

// normalize lifts degenerate counts so the math below stays defined.
func (in Input) normalize() Input {
	if in.Observations < 1 {
		in.Observations = 1
	}
	if in.DistinctContexts < 1 {
		in.DistinctContexts = 1
	}
	if in.Skill < model.AttributeMin {
		in.Skill = model.AttributeMin
	}
	if in.Skill > model.AttributeMax {
		in.Skill = model.AttributeMax
	}
	return in
}

// Deviation returns the standard deviation of the perception noise for the
// given input: the skill term over the observation-count attenuation, tightened
// by context diversity and scaled by the context multiplier.
func (m *Model) Deviation(in Input) float64 {
	in = in.normalize()
	sd := math.Max(noiseFloor, float64(model.AttributeMax-in.Skill)/skillNoiseDivisor)
	sd /= math.Sqrt(float64(in.Observations))
	discount := 1.0 - math.Min(diversityCap, diversityStep*float64(in.DistinctContexts-1))
	return sd * discount * m.contextNoiseFor(in.Context)
}

// Perceive draws the perceived attribute value: a Gaussian centered on the
// true value plus the form bias, rounded and clamped into [1, 20].
func (m *Model) Perceive(src rng.Source, in Input) int {
	in = in.normalize()
	mean := float64(in.TrueValue) + float64(in.Form)*formBiasFactor
	v := int(math.Round(mean + src.NormFloat64()*m.Deviation(in)))
	if v < model.AttributeMin {
		v = model.AttributeMin
	}
	if v > model.AttributeMax {
		v = model.AttributeMax
	}
	return v
}

// Confidence blends normalized skill, a diminishing-returns observation term,
// a diversity bonus, and the context adjustment into [0, 1].
func (m *Model) Confidence(in Input) float64 {
	in = in.normalize()
	skillTerm := confSkillWeight * float64(in.Skill) / float64(model.AttributeMax)
	obsTerm := confObsWeight * (1.0 - 1.0/(1.0+float64(in.Observations)/confObsHalfway))
	diversity := math.Min(confDiversityCap, confDiversityStep*float64(in.DistinctContexts-1))
	c := skillTerm + obsTerm + diversity + m.contextConfidenceFor(in.Context)
	return math.Max(0, math.Min(1, c))
}

// Range derives the symmetric integer window around a perceived value. The
// raw width shrinks with skill and observation count and narrows further as
// confidence rises; a degenerate window is widened to at least one point per
// side. Bounds are clamped to the attribute scale.
func (m *Model) Range(perceived int, confidence float64, skill, observations int) (low, high int) {
	if observations < 1 {
		observations = 1
	}
	if skill < model.AttributeMin {
		skill = model.AttributeMin
	}
	raw := float64(model.AttributeMax-skill)/rangeSkillDivisor + rangeObsScale/math.Sqrt(float64(observations))
	width := raw * (1.0 - rangeConfTighten*confidence)
	half := int(math.Round(width))
	if half < minRangeHalfWidth {
		half = minRangeHalfWidth
	}
	low = perceived - half
	high = perceived + half
	if low < model.AttributeMin {
		low = model.AttributeMin
	}
	if high > model.AttributeMax {
		high = model.AttributeMax
	}
	return low, high
}

// Read runs the full pipeline for one attribute and packages the result.
func (m *Model) Read(src rng.Source, attr model.Attribute, in Input) model.AttributeReading {
	in = in.normalize()
	value := m.Perceive(src, in)
	conf := m.Confidence(in)
	low, high := m.Range(value, conf, in.Skill, in.Observations)
	return model.AttributeReading{
		Attribute:    attr,
		Value:        value,
		Low:          low,
		High:         high,
		Confidence:   conf,
		Observations: in.Observations,
	}
}

// ReadPassive is Read with the peripheral-attention penalty applied to the
// scout's skill. Callers restrict the attribute set via VisiblePassive.
func (m *Model) ReadPassive(src rng.Source, attr model.Attribute, in Input) model.AttributeReading {
	in.Skill -= passiveSkillPenalty
	if in.Skill < model.AttributeMin {
		in.Skill = model.AttributeMin
	}
	return m.Read(src, attr, in)
}
