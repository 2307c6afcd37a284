package loader

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nathoo/dungeonrun/engine"
	"github.com/nathoo/dungeonrun/engine/state"
	"github.com/nathoo/dungeonrun/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Known artifact effects.
var validEffects = map[types.ArtifactEffect]bool{
	types.EffectIncreasesHealth: true,
	types.EffectEnhancesAttack:  true,
	types.EffectSolvesPuzzles:   true,
}

// validate checks the compiled defs for consistency.
func validate(defs *state.Defs) error {
	ve := &ValidationError{}
	g := defs.Game

	if g.Title == "" {
		ve.Errors = append(ve.Errors, "Game.title is required")
	}
	if g.StartHealth <= 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("Game.health must be positive, got %d", g.StartHealth))
	}
	if g.StartAttack <= 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("Game.attack must be positive, got %d", g.StartAttack))
	}
	if g.MonsterHealth <= 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("Game.monster.health must be positive, got %d", g.MonsterHealth))
	}
	validateSpan(ve, "Game.monster.damage", g.MonsterDamageMin, g.MonsterDamageMax)
	validateSpan(ve, "Game.path_damage", g.PathDamageMin, g.PathDamageMax)
	validatePercent(ve, "Game.monster.treasure_chance", g.TreasureChance)
	validatePercent(ve, "Game.artifact_chance", g.ArtifactChance)
	if _, err := engine.PolicyByName(g.ChallengePolicy); err != nil {
		ve.Errors = append(ve.Errors, fmt.Sprintf("Game.challenge: %v", err))
	}

	// Room sequence: same rules the walker enforces before a run.
	if len(defs.Rooms) == 0 {
		ve.Warnings = append(ve.Warnings, "no rooms defined; the walk will end immediately")
	}
	var ce *state.ConfigError
	if err := state.ValidateRooms(defs.Rooms); errors.As(err, &ce) {
		ve.Errors = append(ve.Errors, ce.Problems...)
	}

	// Library rooms draw without replacement from the clue pool.
	if hasChallenge(defs.Rooms, types.ChallengeLibrary) {
		if g.LibraryDraw <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("Game.library.draw must be positive, got %d", g.LibraryDraw))
		} else if len(defs.Clues) < g.LibraryDraw {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"library rooms draw %d clue(s) but only %d are defined", g.LibraryDraw, len(defs.Clues)))
		}
	}

	for id, a := range defs.Artifacts {
		if !validEffects[a.Effect] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("artifact %q has unknown effect %q", id, a.Effect))
		}
		if a.Description == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("artifact %q needs a description", id))
		}
		if a.Power < 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("artifact %q has negative power %d", id, a.Power))
		}
	}

	// Warnings: a wisdom item nobody can obtain.
	if g.WisdomItem != "" && hasChallenge(defs.Rooms, types.ChallengeLibrary) && !obtainable(defs, g.WisdomItem) {
		ve.Warnings = append(ve.Warnings, fmt.Sprintf(
			"wisdom item %q is neither an artifact nor a room item; puzzles can never be bypassed", g.WisdomItem))
	}

	// Print warnings to stderr.
	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateSpan(ve *ValidationError, name string, lo, hi int) {
	if lo < 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("%s minimum must not be negative, got %d", name, lo))
	}
	if lo > hi {
		ve.Errors = append(ve.Errors, fmt.Sprintf("%s minimum %d exceeds maximum %d", name, lo, hi))
	}
}

func validatePercent(ve *ValidationError, name string, p int) {
	if p < 0 || p > 100 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("%s must be between 0 and 100, got %d", name, p))
	}
}

func hasChallenge(rooms []types.Room, c types.ChallengeType) bool {
	for _, r := range rooms {
		if r.Challenge == c {
			return true
		}
	}
	return false
}

// obtainable reports whether an item can end up in the inventory.
func obtainable(defs *state.Defs, item string) bool {
	if _, ok := defs.Artifacts[item]; ok {
		return true
	}
	if defs.Game.Treasure == item {
		return true
	}
	for _, r := range defs.Rooms {
		if r.Item == item {
			return true
		}
	}
	return false
}
