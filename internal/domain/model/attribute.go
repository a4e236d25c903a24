// Package model contains domain models passed between layers.
package model

// Domain groups player attributes by the kind of scouting eye needed to
// judge them. Hidden attributes are never directly observable.
type Domain int

const (
	DomainTechnical Domain = iota
	DomainPhysical
	DomainMental
	DomainTactical
	DomainHidden
)

// String returns the lower-case domain name.
func (d Domain) String() string {
	switch d {
	case DomainTechnical:
		return "technical"
	case DomainPhysical:
		return "physical"
	case DomainMental:
		return "mental"
	case DomainTactical:
		return "tactical"
	case DomainHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// Attribute identifies a single 1-20 rated player attribute.
type Attribute int

const (
	AttrPassing Attribute = iota
	AttrFirstTouch
	AttrDribbling
	AttrFinishing
	AttrCrossing
	AttrTechnique
	AttrFlair

	AttrPace
	AttrStamina
	AttrStrength
	AttrAgility
	AttrNaturalFitness

	AttrComposure
	AttrConcentration
	AttrDecisions
	AttrDetermination
	AttrWorkRate
	AttrAnticipation

	AttrPositioning
	AttrOffTheBall
	AttrVision
	AttrTeamwork
	AttrMarking

	AttrInjuryProneness
	AttrConsistency
	AttrAdaptability
	AttrTemperament

	attributeCount // sentinel, keep last
)

// attributeDomains maps every attribute to its domain.
var attributeDomains = map[Attribute]Domain{
	AttrPassing:    DomainTechnical,
	AttrFirstTouch: DomainTechnical,
	AttrDribbling:  DomainTechnical,
	AttrFinishing:  DomainTechnical,
	AttrCrossing:   DomainTechnical,
	AttrTechnique:  DomainTechnical,
	AttrFlair:      DomainTechnical,

	AttrPace:           DomainPhysical,
	AttrStamina:        DomainPhysical,
	AttrStrength:       DomainPhysical,
	AttrAgility:        DomainPhysical,
	AttrNaturalFitness: DomainPhysical,

	AttrComposure:     DomainMental,
	AttrConcentration: DomainMental,
	AttrDecisions:     DomainMental,
	AttrDetermination: DomainMental,
	AttrWorkRate:      DomainMental,
	AttrAnticipation:  DomainMental,

	AttrPositioning: DomainTactical,
	AttrOffTheBall:  DomainTactical,
	AttrVision:      DomainTactical,
	AttrTeamwork:    DomainTactical,
	AttrMarking:     DomainTactical,

	AttrInjuryProneness: DomainHidden,
	AttrConsistency:     DomainHidden,
	AttrAdaptability:    DomainHidden,
	AttrTemperament:     DomainHidden,
}

var attributeNames = map[Attribute]string{
	AttrPassing:         "passing",
	AttrFirstTouch:      "first_touch",
	AttrDribbling:       "dribbling",
	AttrFinishing:       "finishing",
	AttrCrossing:        "crossing",
	AttrTechnique:       "technique",
	AttrFlair:           "flair",
	AttrPace:            "pace",
	AttrStamina:         "stamina",
	AttrStrength:        "strength",
	AttrAgility:         "agility",
	AttrNaturalFitness:  "natural_fitness",
	AttrComposure:       "composure",
	AttrConcentration:   "concentration",
	AttrDecisions:       "decisions",
	AttrDetermination:   "determination",
	AttrWorkRate:        "work_rate",
	AttrAnticipation:    "anticipation",
	AttrPositioning:     "positioning",
	AttrOffTheBall:      "off_the_ball",
	AttrVision:          "vision",
	AttrTeamwork:        "teamwork",
	AttrMarking:         "marking",
	AttrInjuryProneness: "injury_proneness",
	AttrConsistency:     "consistency",
	AttrAdaptability:    "adaptability",
	AttrTemperament:     "temperament",
}

// Domain returns the attribute's domain. Unknown attributes report hidden so
// they can never leak through visibility filters.
func (a Attribute) Domain() Domain {
	if d, ok := attributeDomains[a]; ok {
		return d
	}
	return DomainHidden
}

// String returns the snake_case attribute name.
func (a Attribute) String() string {
	if n, ok := attributeNames[a]; ok {
		return n
	}
	return "unknown"
}

// AllAttributes returns every defined attribute in declaration order.
func AllAttributes() []Attribute {
	out := make([]Attribute, 0, int(attributeCount))
	for a := Attribute(0); a < attributeCount; a++ {
		out = append(out, a)
	}
	return out
}

// Lens is the attribute domain a scout's focus token is directed at.
type Lens int

const (
	LensGeneral Lens = iota
	LensTechnical
	LensPhysical
	LensMental
	LensTactical
)

// String returns the lower-case lens name.
func (l Lens) String() string {
	switch l {
	case LensTechnical:
		return "technical"
	case LensPhysical:
		return "physical"
	case LensMental:
		return "mental"
	case LensTactical:
		return "tactical"
	default:
		return "general"
	}
}
