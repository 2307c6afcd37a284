// Package state manages the mutable game state: player stats, inventory,
// the clue set and the consumable artifact catalog.
package state

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/dungeonrun/types"
	"github.com/zyedidia/generic/mapset"
)

// Defs holds the immutable game definitions loaded from content.
type Defs struct {
	Game      types.GameDef
	Rooms     []types.Room
	Artifacts map[string]types.Artifact
	Clues     []string // library clue pool
}

// NewState creates a fresh game state from definitions. The artifact
// catalog is copied so discoveries never touch the definitions.
func NewState(defs *Defs) *types.State {
	catalog := make(map[string]types.Artifact, len(defs.Artifacts))
	for id, a := range defs.Artifacts {
		catalog[id] = a
	}
	return &types.State{
		Player: types.PlayerStats{
			Health: defs.Game.StartHealth,
			Attack: defs.Game.StartAttack,
		},
		Inventory: []string{},
		Clues:     mapset.New[string](),
		Artifacts: catalog,
	}
}

// Alive reports whether the player's health is above zero.
func Alive(s *types.State) bool {
	return s.Player.Health > 0
}

// HasItem returns true if the player has the given item in inventory.
func HasItem(s *types.State, itemID string) bool {
	for _, id := range s.Inventory {
		if id == itemID {
			return true
		}
	}
	return false
}

// AddItem appends an item to the inventory. Empty ids are ignored.
func AddItem(s *types.State, itemID string) bool {
	if itemID == "" {
		return false
	}
	s.Inventory = append(s.Inventory, itemID)
	return true
}

// RecordClue inserts a clue into the clue set. Recording a known clue is a
// no-op; New tells the two cases apart.
func RecordClue(s *types.State, clue string) types.ClueOutcome {
	if s.Clues.Has(clue) {
		return types.ClueOutcome{Clue: clue}
	}
	s.Clues.Put(clue)
	return types.ClueOutcome{Clue: clue, New: true}
}

// ClueList returns the known clues in sorted order.
func ClueList(s *types.State) []string {
	clues := make([]string, 0, s.Clues.Size())
	s.Clues.Each(func(c string) {
		clues = append(clues, c)
	})
	sort.Strings(clues)
	return clues
}

// ArtifactIDs returns the ids still in the catalog, sorted so a seeded
// pick is reproducible.
func ArtifactIDs(s *types.State) []string {
	ids := make([]string, 0, len(s.Artifacts))
	for id := range s.Artifacts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ConfigError reports every malformed room in a sequence.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid room sequence (%d problem(s)):\n  %s",
		len(e.Problems), strings.Join(e.Problems, "\n  "))
}

var validChallenges = map[types.ChallengeType]bool{
	types.ChallengeNone:    true,
	types.ChallengePuzzle:  true,
	types.ChallengeTrap:    true,
	types.ChallengeLibrary: true,
}

// ValidateRooms checks the whole sequence and returns a *ConfigError
// listing every problem, or nil.
func ValidateRooms(rooms []types.Room) error {
	ce := &ConfigError{}
	for i, r := range rooms {
		if r.Name == "" {
			ce.Problems = append(ce.Problems, fmt.Sprintf("room %d: name is required", i+1))
		}
		if !validChallenges[r.Challenge] {
			ce.Problems = append(ce.Problems, fmt.Sprintf(
				"room %d (%s): unknown challenge type %q", i+1, r.Name, r.Challenge))
			continue
		}
		switch r.Challenge {
		case types.ChallengePuzzle, types.ChallengeTrap:
			if r.Outcome == nil {
				ce.Problems = append(ce.Problems, fmt.Sprintf(
					"room %d (%s): %s requires an outcome", i+1, r.Name, r.Challenge))
			} else if r.Outcome.Success == "" || r.Outcome.Failure == "" {
				ce.Problems = append(ce.Problems, fmt.Sprintf(
					"room %d (%s): outcome needs success and failure messages", i+1, r.Name))
			}
		}
	}
	if len(ce.Problems) > 0 {
		return ce
	}
	return nil
}
