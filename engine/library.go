package engine

import (
	"github.com/nathoo/dungeonrun/engine/state"
	"github.com/nathoo/dungeonrun/types"
)

// LibraryConfig configures library rooms.
type LibraryConfig struct {
	Pool       []string // candidate clues
	Draw       int      // clues drawn per visit, without replacement
	WisdomItem string   // inventory item that grants a puzzle bypass
}

// visitLibrary draws clues from the pool into the clue set and grants a
// bypass token when the player carries the wisdom item.
func visitLibrary(s *types.State, lib LibraryConfig, rng *RNG) ([]types.ClueOutcome, bool) {
	var found []types.ClueOutcome
	for _, clue := range rng.Sample(lib.Pool, lib.Draw) {
		found = append(found, state.RecordClue(s, clue))
	}

	granted := lib.WisdomItem != "" && state.HasItem(s, lib.WisdomItem)
	if granted {
		s.BypassTokens++
	}
	return found, granted
}
