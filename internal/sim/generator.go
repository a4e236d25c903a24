package sim

import (
	"fmt"

	"github.com/okian/scoutsim/internal/domain/model"
	"github.com/okian/scoutsim/pkg/rng"
)

// Ground-truth generation ranges.
const (
	scoutSkillMin    = 8
	scoutSkillMax    = 18
	playerAgeMin     = 15
	playerAgeMax     = 34
	playerAttrMin    = 4
	playerAttrMax    = 18
	playerAbilityMin = 40
	playerAbilityMax = 180
	traitCountBase   = 2
	traitCountSpread = 3 // hidden traits per player: 2 + IntN(3), so 2-4
)

var scoutSurnames = []string{
	"Rowe", "Cisse", "Halvorsen", "Okafor", "Brandt", "Sarr", "Meier", "Toledo",
}

var playerSurnames = []string{
	"Almeida", "Bakker", "Castellanos", "Dziuba", "Eriksen", "Fofana",
	"Gonzalez", "Horvat", "Ilic", "Jansson", "Kone", "Lindqvist",
}

// GenerateScouts builds n scouts with skills drawn from the given source.
// The same seed always yields the same staff.
func GenerateScouts(src rng.Source, n int) []model.Scout {
	scouts := make([]model.Scout, n)
	for i := range scouts {
		scouts[i] = model.Scout{
			ID:   fmt.Sprintf("scout-%03d", i+1),
			Name: scoutSurnames[i%len(scoutSurnames)],
			Skills: model.ScoutSkills{
				Technical: src.Between(scoutSkillMin, scoutSkillMax),
				Physical:  src.Between(scoutSkillMin, scoutSkillMax),
				Mental:    src.Between(scoutSkillMin, scoutSkillMax),
				Tactical:  src.Between(scoutSkillMin, scoutSkillMax),
			},
			CurrentAbilityJudgment: src.Between(scoutSkillMin, scoutSkillMax),
			PotentialJudgment:      src.Between(scoutSkillMin, scoutSkillMax),
		}
	}
	return scouts
}

// GeneratePlayers builds n ground-truth players. Potential ability is always
// at or above current ability, and every player carries 2-4 hidden traits.
func GeneratePlayers(src rng.Source, n int) []*model.GroundTruthPlayer {
	players := make([]*model.GroundTruthPlayer, n)
	for i := range players {
		ca := src.Between(playerAbilityMin, playerAbilityMax)
		pa := ca + src.IntN(model.AbilityMax-ca+1)

		attrs := make(map[model.Attribute]int, len(model.AllAttributes()))
		for _, a := range model.AllAttributes() {
			attrs[a] = src.Between(playerAttrMin, playerAttrMax)
		}

		players[i] = &model.GroundTruthPlayer{
			ID:               fmt.Sprintf("player-%03d", i+1),
			Name:             playerSurnames[i%len(playerSurnames)],
			Age:              src.Between(playerAgeMin, playerAgeMax),
			CurrentAbility:   ca,
			PotentialAbility: pa,
			Form:             src.Between(model.FormMin, model.FormMax),
			Attributes:       attrs,
			HiddenTraits:     pickTraits(src),
		}
	}
	return players
}

// pickTraits draws 2-4 distinct hidden traits.
func pickTraits(src rng.Source) []model.Trait {
	all := []model.Trait{
		model.TraitAmbitious, model.TraitProfessional, model.TraitLoyal,
		model.TraitVolatile, model.TraitBigGamePlayer, model.TraitResilient,
		model.TraitPerfectionist, model.TraitInfluential,
	}
	count := traitCountBase + src.IntN(traitCountSpread)
	picked := make([]model.Trait, 0, count)
	for len(picked) < count && len(all) > 0 {
		i := src.IntN(len(all))
		picked = append(picked, all[i])
		all = append(all[:i], all[i+1:]...)
	}
	return picked
}
