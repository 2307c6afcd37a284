// Package effects applies artifact effects to the game state.
// Every artifact is consumed on discovery: catalog membership is the only
// record of whether it can still be found.
package effects

import (
	"fmt"

	"github.com/nathoo/dungeonrun/types"
)

// Discover looks up id in the catalog. An absent id is a normal outcome
// (Found=false) and leaves the state untouched. A present artifact has its
// effect applied and is removed from the catalog.
func Discover(s *types.State, id string) types.ArtifactOutcome {
	a, ok := s.Artifacts[id]
	if !ok {
		return types.ArtifactOutcome{Stats: s.Player}
	}

	out := types.ArtifactOutcome{Found: true, Artifact: a}
	switch a.Effect {
	case types.EffectIncreasesHealth:
		s.Player.Health += a.Power
		out.HealthGain = a.Power
	case types.EffectEnhancesAttack:
		s.Player.Attack += a.Power
		out.AttackGain = a.Power
	}
	delete(s.Artifacts, id)

	out.Stats = s.Player
	return out
}

// Lines renders a discovery outcome as transcript text.
func Lines(out types.ArtifactOutcome) []string {
	if !out.Found {
		return []string{"You found nothing of interest."}
	}
	output := []string{fmt.Sprintf("You found: %s", out.Artifact.Description)}
	if out.HealthGain != 0 {
		output = append(output, fmt.Sprintf("Your health increased by %d!", out.HealthGain))
	}
	if out.AttackGain != 0 {
		output = append(output, fmt.Sprintf("Your attack power increased by %d!", out.AttackGain))
	}
	output = append(output, fmt.Sprintf("Current stats - Health: %d, Attack: %d", out.Stats.Health, out.Stats.Attack))
	return output
}
