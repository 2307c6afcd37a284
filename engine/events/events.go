// Package events names the outcome events the engine emits and renders
// them for trace output.
package events

import (
	"fmt"
	"strings"

	"github.com/nathoo/dungeonrun/types"
	"gopkg.in/yaml.v3"
)

// Event types.
const (
	PathChosen      = "path_chosen"
	CombatEnded     = "combat_ended"
	ItemAcquired    = "item_acquired"
	ArtifactRolled  = "artifact_rolled"
	ArtifactFound   = "artifact_found"
	RoomEntered     = "room_entered"
	ChallengeResult = "challenge_resolved"
	ClueRecorded    = "clue_recorded"
	BypassGranted   = "bypass_granted"
	PlayerDefeated  = "player_defeated"
	GameEnded       = "game_ended"
)

// New builds an event.
func New(typ string, data map[string]any) types.Event {
	return types.Event{Type: typ, Data: data}
}

// Format renders events as YAML, one "[trace]" line per YAML line.
func Format(evts []types.Event) []string {
	if len(evts) == 0 {
		return nil
	}
	lines := []string{fmt.Sprintf("[trace] Events: %d", len(evts))}
	for _, e := range evts {
		data, err := yaml.Marshal(e)
		if err != nil {
			lines = append(lines, fmt.Sprintf("[trace]   %s (unrenderable: %v)", e.Type, err))
			continue
		}
		for i, l := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
			prefix := "[trace]     "
			if i == 0 {
				prefix = "[trace]   - "
			}
			lines = append(lines, prefix+l)
		}
	}
	return lines
}
