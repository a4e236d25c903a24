package model

// PhaseEvent is a discrete in-phase event supplied by upstream match
// generation. Reveals lists attributes the event makes individually visible;
// Quality grades how informative the event was.
type PhaseEvent struct {
	Minute   int
	PlayerID string
	Reveals  []Attribute
	Quality  float64
}

// AttributeReading is the perceived value of one attribute, with its
// uncertainty band. Low/High bound the scout's honest range; Confidence is
// in [0, 1].
type AttributeReading struct {
	Attribute    Attribute
	Value        int
	Low          int
	High         int
	Confidence   float64
	Observations int
}

// Width returns the total span of the reading's range.
func (r AttributeReading) Width() int {
	return r.High - r.Low
}

// AbilityReading is the perceived CA/PA pair as half-star ratings in
// [0.5, 5.0]. PotentialLow/PotentialHigh bound the PA estimate in
// quarter-star steps; PotentialLow is never below CurrentStars.
type AbilityReading struct {
	CurrentStars  float64
	PotentialLow  float64
	PotentialHigh float64
	Confidence    float64
	Observations  int
}

// Observation is the engine's product for one player in one session:
// everything the scout came away believing, none of it ground truth.
type Observation struct {
	ID       string
	ScoutID  string
	PlayerID string
	Context  Context
	Week     int
	Season   int

	Attributes []AttributeReading
	Ability    AbilityReading

	// RevealedTrait is non-nil when the personality gate fired.
	RevealedTrait *Trait

	Notes string
}
