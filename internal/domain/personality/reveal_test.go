package personality_test

import (
	"testing"

	"github.com/okian/scoutsim/internal/domain/model"
	"github.com/okian/scoutsim/internal/domain/personality"
	"github.com/okian/scoutsim/pkg/rng"
	. "github.com/smartystreets/goconvey/convey"
)

func TestChance(t *testing.T) {
	Convey("Given the reveal gate", t, func() {
		plain := model.Scout{CurrentAbilityJudgment: 10, PotentialJudgment: 10}
		sharp := model.Scout{CurrentAbilityJudgment: 14, PotentialJudgment: 14}

		Convey("When no bonuses apply", func() {
			Convey("Then the chance should be the base 8%", func() {
				So(personality.Chance(plain, model.LensGeneral, model.ContextLiveMatch), ShouldAlmostEqual, 0.08, 1e-9)
			})
		})

		Convey("When every bonus applies", func() {
			Convey("Then the bonuses should stack additively", func() {
				c := personality.Chance(sharp, model.LensMental, model.ContextTrainingGround)
				So(c, ShouldAlmostEqual, 0.08+0.04+0.03+0.05+0.06, 1e-9)
			})
		})

		Convey("When only the mental lens applies", func() {
			c := personality.Chance(plain, model.LensMental, model.ContextVideoAnalysis)
			So(c, ShouldAlmostEqual, 0.13, 1e-9)
		})

		Convey("When only close contact applies", func() {
			c := personality.Chance(plain, model.LensTechnical, model.ContextTrialMatch)
			So(c, ShouldAlmostEqual, 0.14, 1e-9)
		})
	})
}

func TestReveal(t *testing.T) {
	Convey("Given a player with hidden traits", t, func() {
		scout := model.Scout{CurrentAbilityJudgment: 14, PotentialJudgment: 14}
		hidden := []model.Trait{model.TraitLoyal, model.TraitVolatile, model.TraitProfessional}

		Convey("When rolling many observation events", func() {
			src := rng.New(11)
			revealed := 0
			total := 5000
			for i := 0; i < total; i++ {
				if _, ok := personality.Reveal(src, hidden, scout, model.LensMental, model.ContextTrainingGround); ok {
					revealed++
				}
			}

			Convey("Then the hit rate should sit near the computed chance", func() {
				rate := float64(revealed) / float64(total)
				So(rate, ShouldBeGreaterThan, 0.20)
				So(rate, ShouldBeLessThan, 0.32)
			})
		})

		Convey("When a roll succeeds in a context with affinity overlap", func() {
			Convey("Then the trait should come from the intersection", func() {
				src := rng.New(3)
				for i := 0; i < 2000; i++ {
					trait, ok := personality.Reveal(src, hidden, scout, model.LensMental, model.ContextTrainingGround)
					if !ok {
						continue
					}
					// Training ground affinity: professional, perfectionist, volatile.
					So(trait, ShouldBeIn, []model.Trait{model.TraitProfessional, model.TraitVolatile})
				}
			})
		})

		Convey("When the context affinity misses every hidden trait", func() {
			onlyLoyal := []model.Trait{model.TraitLoyal}

			Convey("Then the fallback should still disclose a hidden trait", func() {
				src := rng.New(3)
				seen := false
				for i := 0; i < 2000; i++ {
					trait, ok := personality.Reveal(src, onlyLoyal, scout, model.LensMental, model.ContextYouthTournament)
					if ok {
						seen = true
						So(trait, ShouldEqual, model.TraitLoyal)
					}
				}
				So(seen, ShouldBeTrue)
			})
		})

		Convey("When the player has no hidden traits left", func() {
			Convey("Then the gate should never fire", func() {
				src := rng.New(3)
				for i := 0; i < 100; i++ {
					_, ok := personality.Reveal(src, nil, scout, model.LensMental, model.ContextTrainingGround)
					So(ok, ShouldBeFalse)
				}
			})
		})

		Convey("When replaying the same seed", func() {
			Convey("Then the outcome sequence should be identical", func() {
				a, b := rng.New(42), rng.New(42)
				for i := 0; i < 500; i++ {
					ta, oka := personality.Reveal(a, hidden, scout, model.LensGeneral, model.ContextLiveMatch)
					tb, okb := personality.Reveal(b, hidden, scout, model.LensGeneral, model.ContextLiveMatch)
					So(oka, ShouldEqual, okb)
					So(ta, ShouldEqual, tb)
				}
			})
		})
	})
}
