package effects

import (
	"testing"

	"github.com/nathoo/dungeonrun/engine/state"
	"github.com/nathoo/dungeonrun/types"
)

func newTestState() *types.State {
	return state.NewState(&state.Defs{
		Game: types.GameDef{StartHealth: 100, StartAttack: 5},
		Artifacts: map[string]types.Artifact{
			"amulet_of_vitality": {ID: "amulet_of_vitality", Description: "Amulet of Vitality", Power: 15, Effect: types.EffectIncreasesHealth},
			"ring_of_strength":   {ID: "ring_of_strength", Description: "Ring of Strength", Power: 10, Effect: types.EffectEnhancesAttack},
			"staff_of_wisdom":    {ID: "staff_of_wisdom", Description: "Staff of Wisdom", Power: 5, Effect: types.EffectSolvesPuzzles},
		},
	})
}

func TestDiscover(t *testing.T) {
	tests := []struct {
		id         string
		wantHealth int
		wantAttack int
	}{
		{"amulet_of_vitality", 115, 5},
		{"ring_of_strength", 100, 15},
		{"staff_of_wisdom", 100, 5},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s := newTestState()
			out := Discover(s, tt.id)

			if !out.Found {
				t.Fatal("expected Found")
			}
			if s.Player.Health != tt.wantHealth || s.Player.Attack != tt.wantAttack {
				t.Errorf("stats = %+v, want %d/%d", s.Player, tt.wantHealth, tt.wantAttack)
			}
			if out.Stats != s.Player {
				t.Errorf("outcome stats %+v differ from state %+v", out.Stats, s.Player)
			}
			if _, ok := s.Artifacts[tt.id]; ok {
				t.Error("artifact should be removed from the catalog")
			}
		})
	}
}

func TestDiscover_NotFound(t *testing.T) {
	s := newTestState()

	out := Discover(s, "crown_of_kings")
	if out.Found {
		t.Error("unknown artifact should not be found")
	}
	if s.Player.Health != 100 || s.Player.Attack != 5 {
		t.Errorf("stats changed: %+v", s.Player)
	}
	if len(s.Artifacts) != 3 {
		t.Errorf("catalog size = %d, want 3", len(s.Artifacts))
	}
}

func TestDiscover_ConsumedOnce(t *testing.T) {
	s := newTestState()

	Discover(s, "amulet_of_vitality")
	out := Discover(s, "amulet_of_vitality")
	if out.Found {
		t.Error("second discovery should find nothing")
	}
	if s.Player.Health != 115 {
		t.Errorf("health = %d, want 115", s.Player.Health)
	}
}

func TestLines(t *testing.T) {
	s := newTestState()
	lines := Lines(Discover(s, "ring_of_strength"))

	want := []string{
		"You found: Ring of Strength",
		"Your attack power increased by 10!",
		"Current stats - Health: 100, Attack: 15",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %v", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	if got := Lines(types.ArtifactOutcome{}); len(got) != 1 || got[0] != "You found nothing of interest." {
		t.Errorf("not-found lines = %v", got)
	}
}
