package engine

import (
	"fmt"

	"github.com/nathoo/dungeonrun/types"
)

// DamageFunc returns the damage the monster deals in one round.
type DamageFunc func() int

// FixedDamage deals the same amount every round.
func FixedDamage(n int) DamageFunc {
	return func() int { return n }
}

// DamageBetween deals a uniform random amount in [min, max].
func (r *RNG) DamageBetween(min, max int) DamageFunc {
	return func() int { return r.Between(min, max) }
}

// ResolveCombat runs attack exchanges until either side drops to zero or
// below. The player always strikes first; the monster only strikes back if
// it survived the blow. The player's health is mutated in place.
func ResolveCombat(p *types.PlayerStats, monsterHealth int, hasTreasure bool, treasure string, damage DamageFunc) types.CombatResult {
	var res types.CombatResult

	for p.Health > 0 && monsterHealth > 0 {
		round := types.CombatRound{PlayerDamage: p.Attack}
		monsterHealth -= p.Attack
		if monsterHealth > 0 {
			round.MonsterDamage = damage()
			p.Health -= round.MonsterDamage
		}
		round.MonsterHealth = monsterHealth
		round.PlayerHealth = p.Health
		res.Rounds = append(res.Rounds, round)
	}

	res.Won = p.Health > 0
	if res.Won && hasTreasure {
		res.Treasure = treasure
	}
	return res
}

// combatLines renders a combat result as transcript text.
func combatLines(res types.CombatResult) []string {
	output := []string{"A monster appears! Combat begins!"}
	for _, r := range res.Rounds {
		output = append(output, fmt.Sprintf("You deal %d damage. Monster health: %d", r.PlayerDamage, r.MonsterHealth))
		if r.MonsterHealth > 0 {
			output = append(output, fmt.Sprintf("Monster deals %d damage. Your health: %d", r.MonsterDamage, r.PlayerHealth))
		}
	}
	if res.Won {
		output = append(output, "You defeated the monster!")
	} else {
		output = append(output, "You have been defeated!")
	}
	return output
}
