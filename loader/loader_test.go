package loader

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/nathoo/dungeonrun/types"
)

const minimalGame = `Game { title = "Minimal Test Dungeon" }
`

func TestDefault(t *testing.T) {
	defs, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	if defs.Game.Title != "Dungeon Adventure" {
		t.Errorf("Title = %q", defs.Game.Title)
	}
	if len(defs.Rooms) != 5 {
		t.Fatalf("rooms = %d, want 5", len(defs.Rooms))
	}
	if len(defs.Artifacts) != 3 {
		t.Errorf("artifacts = %d, want 3", len(defs.Artifacts))
	}
	if len(defs.Clues) != 4 {
		t.Errorf("clues = %d, want 4", len(defs.Clues))
	}

	first := defs.Rooms[0]
	if first.Name != "Dusty library" || first.Item != "key" || first.Challenge != types.ChallengePuzzle {
		t.Errorf("first room = %+v", first)
	}
	if first.Outcome == nil || first.Outcome.HealthDelta != -5 {
		t.Errorf("first room outcome = %+v", first.Outcome)
	}

	last := defs.Rooms[4]
	if last.Challenge != types.ChallengeLibrary || last.Item != "" || last.Outcome != nil {
		t.Errorf("library room = %+v, want no item and no outcome", last)
	}

	staff, ok := defs.Artifacts["staff_of_wisdom"]
	if !ok || staff.Effect != types.EffectSolvesPuzzles {
		t.Errorf("staff_of_wisdom = %+v", staff)
	}
}

func TestLoadFS_GameFileFirst(t *testing.T) {
	fsys := fstest.MapFS{
		"a_rooms.lua": {Data: []byte(`Room { "Hall", "torch", "none", None }`)},
		"game.lua":    {Data: []byte(minimalGame)},
		"notes.txt":   {Data: []byte("ignored")},
	}

	defs, err := LoadFS(fsys, "test")
	if err != nil {
		t.Fatalf("LoadFS failed: %v", err)
	}
	if defs.Game.Title != "Minimal Test Dungeon" {
		t.Errorf("Title = %q", defs.Game.Title)
	}
	if len(defs.Rooms) != 1 || defs.Rooms[0].Item != "torch" {
		t.Errorf("rooms = %+v", defs.Rooms)
	}
}

func TestLoadFS_NoLuaFiles(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{"readme.md": {Data: []byte("#")}}, "empty")
	if err == nil || !strings.Contains(err.Error(), "no .lua files") {
		t.Errorf("expected no .lua files error, got %v", err)
	}
}

func TestLoad_MissingDir(t *testing.T) {
	if _, err := Load("does/not/exist"); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestLoad_Dir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "game.lua", minimalGame)

	defs, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if defs.Game.Title != "Minimal Test Dungeon" {
		t.Errorf("Title = %q", defs.Game.Title)
	}
}

func TestLoadString_Defaults(t *testing.T) {
	defs, err := LoadString(minimalGame)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}

	g := defs.Game
	if g.StartHealth != 100 || g.StartAttack != 5 {
		t.Errorf("start stats = %d/%d", g.StartHealth, g.StartAttack)
	}
	if g.MonsterHealth != 70 || g.MonsterDamageMin != 5 || g.MonsterDamageMax != 15 {
		t.Errorf("monster = %d [%d,%d]", g.MonsterHealth, g.MonsterDamageMin, g.MonsterDamageMax)
	}
	if g.Treasure != "golden_key" || g.TreasureChance != 50 {
		t.Errorf("treasure = %q %d%%", g.Treasure, g.TreasureChance)
	}
	if g.ArtifactChance != 30 || g.ChallengePolicy != "random" {
		t.Errorf("artifact chance = %d, policy = %q", g.ArtifactChance, g.ChallengePolicy)
	}
	if g.LibraryDraw != 2 || g.WisdomItem != "staff_of_wisdom" {
		t.Errorf("library = %d %q", g.LibraryDraw, g.WisdomItem)
	}
}

func TestLoadString_Overrides(t *testing.T) {
	defs, err := LoadString(`
Game {
    title = "Fixed",
    monster = { damage = {10, 10}, treasure_chance = 100 },
    challenge = "succeed",
}
`)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	g := defs.Game
	if g.MonsterDamageMin != 10 || g.MonsterDamageMax != 10 {
		t.Errorf("damage = [%d,%d], want [10,10]", g.MonsterDamageMin, g.MonsterDamageMax)
	}
	if g.TreasureChance != 100 || g.ChallengePolicy != "succeed" {
		t.Errorf("game = %+v", g)
	}
}

func TestLoadString_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "no game",
			src:     `Room { "Hall", None, "none", None }`,
			wantErr: "no Game{} definition found",
		},
		{
			name:    "syntax error",
			src:     minimalGame + `Room {`,
			wantErr: "executing content",
		},
		{
			name:    "room with three fields",
			src:     minimalGame + `Room { "Hall", "torch", "none" }`,
			wantErr: "expected 4 fields",
		},
		{
			name:    "room with a hole",
			src:     minimalGame + `Room { "Hall", nil, "none", None }`,
			wantErr: "without gaps",
		},
		{
			name:    "unknown challenge",
			src:     minimalGame + `Room { "Pit", None, "riddle", None }`,
			wantErr: `unknown challenge type "riddle"`,
		},
		{
			name:    "puzzle without outcome",
			src:     minimalGame + `Room { "Lock", None, "puzzle", None }`,
			wantErr: "puzzle requires an outcome",
		},
		{
			name:    "short outcome",
			src:     minimalGame + `Room { "Lock", None, "puzzle", {"yes", "no"} }`,
			wantErr: "outcome expected 3 fields",
		},
		{
			name:    "mistyped game field",
			src:     `Game { title = "T", health = "lots" }`,
			wantErr: "Game.health must be an integer, got string",
		},
		{
			name:    "bad damage span",
			src:     `Game { title = "T", monster = { damage = {15, 5} } }`,
			wantErr: "Game.monster.damage minimum 15 exceeds maximum 5",
		},
		{
			name:    "unknown policy",
			src:     `Game { title = "T", challenge = "coin" }`,
			wantErr: "unknown challenge policy",
		},
		{
			name:    "clue pool too small",
			src:     minimalGame + `Room { "Books", None, "library", None }` + "\n" + `Clues { "only one" }`,
			wantErr: "draw 2 clue(s) but only 1",
		},
		{
			name:    "unknown effect",
			src:     minimalGame + `Artifact "cup" { description = "A cup.", power = 1, effect = "glows" }`,
			wantErr: `unknown effect "glows"`,
		},
		{
			name:    "duplicate artifact",
			src:     minimalGame + `Artifact "cup" { description = "A cup.", effect = "increases_health" }` + "\n" + `Artifact "cup" { description = "A cup.", effect = "increases_health" }`,
			wantErr: `duplicate artifact "cup"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadString(tt.src)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadString_ValidationErrorType(t *testing.T) {
	_, err := LoadString(minimalGame + `Room { "Hall", "torch", "none" }`)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if len(ve.Errors) != 1 {
		t.Errorf("errors = %v, want 1", ve.Errors)
	}
}

func TestLoadString_RoomOrder(t *testing.T) {
	defs, err := LoadString(minimalGame + `
Room { "First", None, "none", None }
Room { "Second", None, "none", None }
Room { "Third", None, "none", None }
`)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	var names []string
	for _, r := range defs.Rooms {
		names = append(names, r.Name)
	}
	if got := strings.Join(names, ","); got != "First,Second,Third" {
		t.Errorf("room order = %s", got)
	}
}
