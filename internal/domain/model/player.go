package model

// Ability scale bounds. CA/PA live on an internal 1-200 scale and are only
// ever shown to callers as half-star ratings.
const (
	AbilityMin = 1
	AbilityMax = 200

	AttributeMin = 1
	AttributeMax = 20

	FormMin = -3
	FormMax = 3
)

// Trait is a hidden personality trait. Traits are never directly observable;
// they surface only through the probabilistic reveal gate.
type Trait int

const (
	TraitAmbitious Trait = iota
	TraitProfessional
	TraitLoyal
	TraitVolatile
	TraitBigGamePlayer
	TraitResilient
	TraitPerfectionist
	TraitInfluential
)

// String returns the lower-case trait name.
func (t Trait) String() string {
	switch t {
	case TraitAmbitious:
		return "ambitious"
	case TraitProfessional:
		return "professional"
	case TraitLoyal:
		return "loyal"
	case TraitVolatile:
		return "volatile"
	case TraitBigGamePlayer:
		return "big_game_player"
	case TraitResilient:
		return "resilient"
	case TraitPerfectionist:
		return "perfectionist"
	case TraitInfluential:
		return "influential"
	default:
		return "unknown"
	}
}

// GroundTruthPlayer is the objective record the scout never sees directly.
// It is immutable for the duration of a session.
type GroundTruthPlayer struct {
	ID   string // unique player identifier
	Name string
	Age  int

	// CurrentAbility and PotentialAbility are on the internal 1-200 scale.
	// PotentialAbility >= CurrentAbility always.
	CurrentAbility   int
	PotentialAbility int

	// Form is the current form signal in [-3, +3]; it biases perception,
	// not the underlying attributes.
	Form int

	// Attributes holds the true 1-20 values, including hidden-domain ones.
	Attributes map[Attribute]int

	// HiddenTraits are the personality traits eligible for reveal.
	HiddenTraits []Trait
}

// Attribute returns the true value for an attribute, clamped into the valid
// scale so malformed ground truth cannot escape the engine's bounds.
func (p *GroundTruthPlayer) Attribute(a Attribute) int {
	v, ok := p.Attributes[a]
	if !ok {
		return AttributeMin
	}
	if v < AttributeMin {
		return AttributeMin
	}
	if v > AttributeMax {
		return AttributeMax
	}
	return v
}

// Scout holds the observer-side skills, one per perception domain plus the
// two ability-judgment skills, all on a 1-20 scale.
type Scout struct {
	ID   string
	Name string

	Skills ScoutSkills

	// CurrentAbilityJudgment governs CA reads, PotentialJudgment PA reads.
	CurrentAbilityJudgment int
	PotentialJudgment      int
}

// ScoutSkills is the structured per-domain skill record. Indexed via Lens,
// never by string key.
type ScoutSkills struct {
	Technical int
	Physical  int
	Mental    int
	Tactical  int
}

// Skill returns the skill governing the given lens. The general lens uses
// the average of the four domain skills.
func (s ScoutSkills) Skill(l Lens) int {
	switch l {
	case LensTechnical:
		return s.Technical
	case LensPhysical:
		return s.Physical
	case LensMental:
		return s.Mental
	case LensTactical:
		return s.Tactical
	default:
		return (s.Technical + s.Physical + s.Mental + s.Tactical) / 4
	}
}

// SkillFor returns the skill governing a single attribute's domain.
func (s ScoutSkills) SkillFor(a Attribute) int {
	switch a.Domain() {
	case DomainTechnical:
		return s.Technical
	case DomainPhysical:
		return s.Physical
	case DomainMental:
		return s.Mental
	case DomainTactical:
		return s.Tactical
	default:
		// Hidden attributes are never perceived; return the weakest read.
		return AttributeMin
	}
}
