// Package perception turns ground-truth attributes into the noisy readings a
// scout actually comes away with. It is split into three pure layers:
// visibility (which attributes can be seen at all), accuracy (the perceived
// value), and confidence (how much the reading can be trusted, plus its
// range). Every draw goes through an injected rng.Source so a fixed seed
// replays identically.
package perception

import (
	"github.com/okian/scoutsim/internal/domain/model"
)

// Default model tuning constants.
const (
	// formBiasFactor scales the player's form signal into the Gaussian mean.
	formBiasFactor = 0.15

	// noiseFloor is the minimum standard deviation, even for a perfect scout.
	noiseFloor = 0.5

	// skillNoiseDivisor converts (20 - skill) into a standard deviation.
	skillNoiseDivisor = 3.0

	// diversityStep and diversityCap bound the discount earned by seeing the
	// player across distinct contexts: 5% per extra context, at most 30%.
	diversityStep = 0.05
	diversityCap  = 0.30

	// Confidence blend weights.
	confSkillWeight   = 0.45
	confObsWeight     = 0.35
	confObsHalfway    = 3.0 // observations at which the obs term reaches 0.5
	confDiversityStep = 0.02
	confDiversityCap  = 0.10

	// Range shaping.
	rangeSkillDivisor = 4.0
	rangeObsScale     = 2.0
	rangeConfTighten  = 0.5
	minRangeHalfWidth = 1

	// passiveSkillPenalty is subtracted from the scout's skill when the
	// player is only watched peripherally.
	passiveSkillPenalty = 4

	// Skill-gate thresholds for bonus visibility.
	technicalEyeGate = 12
	physicalEyeGate  = 12
	mentalEyeGate    = 12
	tacticalEyeGate  = 14
)

// defaultContextNoise multiplies the perception standard deviation per
// context. Live match is the baseline; training ground is the most reliable
// setting and video review the least.
func defaultContextNoise() map[model.Context]float64 {
	return map[model.Context]float64{
		model.ContextTrainingGround:  0.70,
		model.ContextFollowUpVisit:   0.80,
		model.ContextAcademyVisit:    0.85,
		model.ContextTrialMatch:      0.90,
		model.ContextLiveMatch:       1.00,
		model.ContextYouthTournament: 1.10,
		model.ContextVideoAnalysis:   1.30,
	}
}

// defaultContextConfidence is the small additive confidence adjustment per
// context, mirroring the noise table's ordering.
func defaultContextConfidence() map[model.Context]float64 {
	return map[model.Context]float64{
		model.ContextTrainingGround:  0.05,
		model.ContextFollowUpVisit:   0.04,
		model.ContextAcademyVisit:    0.03,
		model.ContextTrialMatch:      0.02,
		model.ContextLiveMatch:       0.00,
		model.ContextYouthTournament: -0.02,
		model.ContextVideoAnalysis:   -0.05,
	}
}

// Model evaluates the perception pipeline. Its tables are read-only after
// construction; a zero-value Model is not usable, build one with NewModel.
type Model struct {
	contextNoise      map[model.Context]float64
	contextConfidence map[model.Context]float64
}

// Option applies a configuration option to the Model.
type Option func(*Model)

// WithContextNoise overrides noise multipliers for the given contexts.
// Non-positive multipliers are ignored.
func WithContextNoise(table map[model.Context]float64) Option {
	return func(m *Model) {
		for ctx, mult := range table {
			if mult > 0 {
				m.contextNoise[ctx] = mult
			}
		}
	}
}

// WithContextConfidence overrides the additive confidence adjustment for the
// given contexts.
func WithContextConfidence(table map[model.Context]float64) Option {
	return func(m *Model) {
		for ctx, adj := range table {
			m.contextConfidence[ctx] = adj
		}
	}
}

// NewModel creates a perception model with default tables.
func NewModel(opts ...Option) *Model {
	m := &Model{
		contextNoise:      defaultContextNoise(),
		contextConfidence: defaultContextConfidence(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// contextNoiseFor returns the noise multiplier, defaulting to the live-match
// baseline for unknown contexts.
func (m *Model) contextNoiseFor(ctx model.Context) float64 {
	if mult, ok := m.contextNoise[ctx]; ok {
		return mult
	}
	return 1.0
}

func (m *Model) contextConfidenceFor(ctx model.Context) float64 {
	return m.contextConfidence[ctx]
}
