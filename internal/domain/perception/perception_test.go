package perception_test

import (
	"testing"

	"github.com/okian/scoutsim/internal/domain/model"
	"github.com/okian/scoutsim/internal/domain/perception"
	"github.com/okian/scoutsim/pkg/rng"
	. "github.com/smartystreets/goconvey/convey"
)

func TestVisibility(t *testing.T) {
	Convey("Given a perception model", t, func() {
		m := perception.NewModel()

		Convey("When computing visibility for an open-play phase in a live match", func() {
			skills := model.ScoutSkills{Technical: 8, Physical: 8, Mental: 8, Tactical: 8}
			set := m.Visible(model.ContextLiveMatch, model.PhaseOpenPlay, nil, skills)

			Convey("Then the phase-type attributes should be present", func() {
				So(set.Contains(model.AttrPassing), ShouldBeTrue)
				So(set.Contains(model.AttrDribbling), ShouldBeTrue)
			})

			Convey("Then the context base attributes should be unioned in", func() {
				So(set.Contains(model.AttrPositioning), ShouldBeTrue)
			})

			Convey("Then gated attributes should be absent below the threshold", func() {
				So(set.Contains(model.AttrFlair), ShouldBeFalse)
				So(set.Contains(model.AttrVision), ShouldBeFalse)
			})
		})

		Convey("When the scout crosses skill gates", func() {
			skills := model.ScoutSkills{Technical: 12, Physical: 12, Mental: 12, Tactical: 14}
			set := m.Visible(model.ContextLiveMatch, model.PhaseOpenPlay, nil, skills)

			Convey("Then the bonus attributes should unlock", func() {
				So(set.Contains(model.AttrFirstTouch), ShouldBeTrue)
				So(set.Contains(model.AttrFlair), ShouldBeTrue)
				So(set.Contains(model.AttrComposure), ShouldBeTrue)
				So(set.Contains(model.AttrVision), ShouldBeTrue)
				So(set.Contains(model.AttrNaturalFitness), ShouldBeTrue)
			})
		})

		Convey("When phase events individually reveal attributes", func() {
			events := []model.PhaseEvent{
				{Minute: 12, Reveals: []model.Attribute{model.AttrFinishing}},
				{Minute: 30, Reveals: []model.Attribute{model.AttrAgility, model.AttrInjuryProneness}},
			}
			set := m.Visible(model.ContextLiveMatch, model.PhaseDefense, events, model.ScoutSkills{})

			Convey("Then the revealed attributes should join the set", func() {
				So(set.Contains(model.AttrFinishing), ShouldBeTrue)
				So(set.Contains(model.AttrAgility), ShouldBeTrue)
			})

			Convey("Then hidden attributes should never survive, even via events", func() {
				So(set.Contains(model.AttrInjuryProneness), ShouldBeFalse)
			})
		})

		Convey("When checking every context and phase against the hidden set", func() {
			skills := model.ScoutSkills{Technical: 20, Physical: 20, Mental: 20, Tactical: 20}
			contexts := []model.Context{
				model.ContextLiveMatch, model.ContextVideoAnalysis, model.ContextTrainingGround,
				model.ContextYouthTournament, model.ContextAcademyVisit, model.ContextTrialMatch,
				model.ContextFollowUpVisit,
			}
			phases := []model.PhaseType{
				model.PhaseOpenPlay, model.PhaseAttack, model.PhaseDefense,
				model.PhaseSetPiece, model.PhaseTransition, model.PhaseDrill,
			}

			Convey("Then no hidden-domain attribute should ever be visible", func() {
				for _, ctx := range contexts {
					for _, ph := range phases {
						set := m.Visible(ctx, ph, nil, skills)
						for a := range set {
							So(a.Domain(), ShouldNotEqual, model.DomainHidden)
						}
					}
				}
			})
		})

		Convey("When requesting the passive set", func() {
			set := m.VisiblePassive()

			Convey("Then it should be the restricted off-ball subset", func() {
				So(set.Contains(model.AttrPositioning), ShouldBeTrue)
				So(set.Contains(model.AttrOffTheBall), ShouldBeTrue)
				So(set.Contains(model.AttrFinishing), ShouldBeFalse)
				So(len(set), ShouldEqual, 6)
			})
		})

		Convey("When sorting an attribute set", func() {
			set := m.VisiblePassive()
			sorted := set.Sorted()

			Convey("Then the order should be stable and ascending", func() {
				So(len(sorted), ShouldEqual, len(set))
				for i := 1; i < len(sorted); i++ {
					So(sorted[i], ShouldBeGreaterThan, sorted[i-1])
				}
			})
		})
	})
}

func TestPerceive_Bounds(t *testing.T) {
	Convey("Given a perception model and a seeded source", t, func() {
		m := perception.NewModel()
		src := rng.New(1)

		Convey("When perceiving across the whole attribute scale repeatedly", func() {
			Convey("Then every perceived value should stay in [1, 20]", func() {
				for truth := 1; truth <= 20; truth++ {
					for i := 0; i < 200; i++ {
						v := m.Perceive(src, perception.Input{
							TrueValue:    truth,
							Form:         (i % 7) - 3,
							Skill:        1 + i%20,
							Observations: 1 + i%10,
							Context:      model.ContextVideoAnalysis,
						})
						So(v, ShouldBeGreaterThanOrEqualTo, model.AttributeMin)
						So(v, ShouldBeLessThanOrEqualTo, model.AttributeMax)
					}
				}
			})
		})

		Convey("When the input carries degenerate counts", func() {
			v := m.Perceive(src, perception.Input{TrueValue: 10, Skill: 0, Observations: 0})

			Convey("Then the read should still be in range", func() {
				So(v, ShouldBeGreaterThanOrEqualTo, model.AttributeMin)
				So(v, ShouldBeLessThanOrEqualTo, model.AttributeMax)
			})
		})
	})
}

func TestDeviation_Monotonicity(t *testing.T) {
	Convey("Given a perception model", t, func() {
		m := perception.NewModel()

		Convey("When skill increases with everything else fixed", func() {
			Convey("Then the deviation should never increase", func() {
				prev := m.Deviation(perception.Input{Skill: 1, Observations: 1, Context: model.ContextLiveMatch})
				for skill := 2; skill <= 20; skill++ {
					cur := m.Deviation(perception.Input{Skill: skill, Observations: 1, Context: model.ContextLiveMatch})
					So(cur, ShouldBeLessThanOrEqualTo, prev)
					prev = cur
				}
			})
		})

		Convey("When observation count increases with everything else fixed", func() {
			Convey("Then the deviation should never increase", func() {
				prev := m.Deviation(perception.Input{Skill: 10, Observations: 1, Context: model.ContextLiveMatch})
				for obs := 2; obs <= 30; obs++ {
					cur := m.Deviation(perception.Input{Skill: 10, Observations: obs, Context: model.ContextLiveMatch})
					So(cur, ShouldBeLessThanOrEqualTo, prev)
					prev = cur
				}
			})
		})

		Convey("When context diversity grows", func() {
			base := m.Deviation(perception.Input{Skill: 10, Observations: 5, DistinctContexts: 1, Context: model.ContextLiveMatch})
			diverse := m.Deviation(perception.Input{Skill: 10, Observations: 5, DistinctContexts: 5, Context: model.ContextLiveMatch})
			capped := m.Deviation(perception.Input{Skill: 10, Observations: 5, DistinctContexts: 50, Context: model.ContextLiveMatch})

			Convey("Then the discount should tighten the deviation, capped at 30%", func() {
				So(diverse, ShouldBeLessThan, base)
				So(capped, ShouldAlmostEqual, base*0.70, 1e-9)
			})
		})

		Convey("When comparing context multipliers", func() {
			training := m.Deviation(perception.Input{Skill: 10, Observations: 1, Context: model.ContextTrainingGround})
			live := m.Deviation(perception.Input{Skill: 10, Observations: 1, Context: model.ContextLiveMatch})
			video := m.Deviation(perception.Input{Skill: 10, Observations: 1, Context: model.ContextVideoAnalysis})

			Convey("Then training should be tightest and video loosest", func() {
				So(training, ShouldBeLessThan, live)
				So(live, ShouldBeLessThan, video)
			})
		})
	})
}

func TestConfidenceAndRange(t *testing.T) {
	Convey("Given a perception model", t, func() {
		m := perception.NewModel()

		Convey("When a skill-5 scout sees a player once on video", func() {
			in := perception.Input{TrueValue: 14, Skill: 5, Observations: 1, Context: model.ContextVideoAnalysis}
			conf := m.Confidence(in)
			low, high := m.Range(14, conf, 5, 1)

			Convey("Then confidence should be low and the range wide", func() {
				So(conf, ShouldBeLessThan, 0.3)
				So(high-low, ShouldBeGreaterThanOrEqualTo, 6)
			})
		})

		Convey("When a skill-18 scout has seen the player ten times in training", func() {
			in := perception.Input{TrueValue: 14, Skill: 18, Observations: 10, Context: model.ContextTrainingGround}
			conf := m.Confidence(in)
			low, high := m.Range(14, conf, 18, 10)

			Convey("Then confidence should be high and the range tight", func() {
				So(conf, ShouldBeGreaterThan, 0.7)
				So(high-low, ShouldBeLessThanOrEqualTo, 2)
			})
		})

		Convey("When sweeping skill and observations", func() {
			Convey("Then confidence should stay in [0, 1] and range width should never grow with skill", func() {
				for obs := 1; obs <= 12; obs++ {
					prevWidth := 99
					for skill := 1; skill <= 20; skill++ {
						in := perception.Input{TrueValue: 10, Skill: skill, Observations: obs, Context: model.ContextLiveMatch}
						conf := m.Confidence(in)
						So(conf, ShouldBeLessThanOrEqualTo, 1.0)
						So(conf, ShouldBeGreaterThanOrEqualTo, 0.0)
						low, high := m.Range(10, conf, skill, obs)
						So(high-low, ShouldBeLessThanOrEqualTo, prevWidth)
						prevWidth = high - low
					}
				}
			})
		})

		Convey("When the window would degenerate to zero width", func() {
			low, high := m.Range(10, 1.0, 20, 1000)

			Convey("Then it should be corrected to at least one point per side", func() {
				So(high-low, ShouldBeGreaterThanOrEqualTo, 2)
			})
		})

		Convey("When the perceived value sits at the scale edge", func() {
			low, high := m.Range(20, 0.1, 3, 1)

			Convey("Then the bounds should clamp to the scale", func() {
				So(high, ShouldEqual, model.AttributeMax)
				So(low, ShouldBeGreaterThanOrEqualTo, model.AttributeMin)
			})
		})
	})
}

func TestRead_Determinism(t *testing.T) {
	Convey("Given two identical models and seeds", t, func() {
		m := perception.NewModel()
		in := perception.Input{TrueValue: 13, Form: 2, Skill: 11, Observations: 3, DistinctContexts: 2, Context: model.ContextLiveMatch}

		Convey("When reading the same attribute twice from the same seed", func() {
			a := m.Read(rng.New(321), model.AttrPassing, in)
			b := m.Read(rng.New(321), model.AttrPassing, in)

			Convey("Then the readings should be identical", func() {
				So(a, ShouldResemble, b)
			})
		})
	})
}

func TestReadPassive(t *testing.T) {
	Convey("Given a perception model", t, func() {
		m := perception.NewModel()

		Convey("When reading passively versus directly with the same skill", func() {
			direct := perception.Input{TrueValue: 12, Skill: 10, Observations: 1, Context: model.ContextLiveMatch}
			passive := direct
			passive.Skill = 6 // what the penalty reduces 10 to

			Convey("Then the passive read should behave like a weaker scout's", func() {
				a := m.ReadPassive(rng.New(5), model.AttrPositioning, direct)
				b := m.Read(rng.New(5), model.AttrPositioning, passive)
				So(a, ShouldResemble, b)
			})
		})

		Convey("When the scout is already at minimum skill", func() {
			in := perception.Input{TrueValue: 12, Skill: 1, Observations: 1, Context: model.ContextLiveMatch}
			r := m.ReadPassive(rng.New(5), model.AttrPositioning, in)

			Convey("Then the read should still be well-formed", func() {
				So(r.Value, ShouldBeGreaterThanOrEqualTo, model.AttributeMin)
				So(r.Value, ShouldBeLessThanOrEqualTo, model.AttributeMax)
				So(r.Confidence, ShouldBeGreaterThanOrEqualTo, 0.0)
			})
		})
	})
}

func TestModelOptions(t *testing.T) {
	Convey("Given a model with overridden tables", t, func() {
		m := perception.NewModel(
			perception.WithContextNoise(map[model.Context]float64{
				model.ContextVideoAnalysis: 0.1,
				model.ContextLiveMatch:     -1, // ignored
			}),
			perception.WithContextConfidence(map[model.Context]float64{
				model.ContextVideoAnalysis: 0.2,
			}),
		)

		Convey("When evaluating the overridden context", func() {
			video := m.Deviation(perception.Input{Skill: 10, Observations: 1, Context: model.ContextVideoAnalysis})
			live := m.Deviation(perception.Input{Skill: 10, Observations: 1, Context: model.ContextLiveMatch})

			Convey("Then the override should apply and invalid entries be ignored", func() {
				So(video, ShouldBeLessThan, live)
			})

			Convey("Then the confidence adjustment should follow the override", func() {
				c := m.Confidence(perception.Input{Skill: 10, Observations: 1, Context: model.ContextVideoAnalysis})
				base := m.Confidence(perception.Input{Skill: 10, Observations: 1, Context: model.ContextLiveMatch})
				So(c, ShouldBeGreaterThan, base)
			})
		})
	})
}
