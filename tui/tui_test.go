package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/dungeonrun/engine"
	"github.com/nathoo/dungeonrun/engine/state"
	"github.com/nathoo/dungeonrun/types"
)

func testEngine(t *testing.T) *engine.Engine {
	t.Helper()
	defs := &state.Defs{
		Game: types.GameDef{
			Title:            "Test Dungeon",
			StartHealth:      100,
			StartAttack:      10,
			MonsterHealth:    70,
			MonsterDamageMin: 10,
			MonsterDamageMax: 10,
			PathDamageMin:    5,
			PathDamageMax:    5,
			ChallengePolicy:  "succeed",
		},
		Rooms: []types.Room{
			{Name: "Hall", Item: "torch", Challenge: types.ChallengeNone},
			{Name: "Gallery", Challenge: types.ChallengeNone},
		},
	}
	eng, err := engine.New(defs, 1)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return eng
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"[trace] Events: 2", kindTrace},
		{"[Game saved]", kindSystem},
		{"Entering: Dusty library", kindRoom},
		{"--- Game End ---", kindRoom},
		{"Player Status - Health: 90, Attack: 5", kindStatus},
		{"Current stats - Health: 115, Attack: 5", kindStatus},
		{"You obtained: torch", kindLoot},
		{"You found a golden_key!", kindLoot},
		{"You discovered a new clue: Beware the shadows.", kindClue},
		{"- Beware the shadows.", kindClue},
		{"Monster deals 10 damage. Your health: 90", kindDanger},
		{"You stumble in the dark and take 7 damage!", kindDanger},
		{"Health change: -5", kindDanger},
		{"Game Over!", kindDanger},
		{"You proceed safely along the well-lit path.", kindNarrative},
	}

	for _, tt := range tests {
		if got := classifyLine(tt.line); got != tt.want {
			t.Errorf("classifyLine(%q) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "short line", 20, "short line"},
		{"wraps", "one two three four", 9, "one two\nthree\nfour"},
		{"zero width", "anything goes", 0, "anything goes"},
		{"long word", "supercalifragilistic", 5, "supercalifragilistic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wordWrap(tt.text, tt.width); got != tt.want {
				t.Errorf("wordWrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestNew_PlaysOpening(t *testing.T) {
	m := New(testEngine(t), false)

	if len(m.rawLines) == 0 {
		t.Fatal("opening should be in the transcript")
	}
	if m.input.Prompt != promptPath {
		t.Errorf("prompt = %q, want %q", m.input.Prompt, promptPath)
	}
	if got := m.progress(); got != "At the fork" {
		t.Errorf("progress = %q", got)
	}
}

func TestModel_EnterPlaysToEnd(t *testing.T) {
	m := New(testEngine(t), false)
	m.input.SetValue("1")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if !m.engine.Over() {
		t.Fatal("a dungeon without bypass offers should play through")
	}
	if m.input.Prompt != promptExit {
		t.Errorf("prompt = %q, want %q", m.input.Prompt, promptExit)
	}
	if got := m.progress(); got != "Game over" {
		t.Errorf("progress = %q", got)
	}

	var text []string
	for _, rl := range m.rawLines {
		text = append(text, rl.text)
	}
	joined := strings.Join(text, "\n")
	for _, want := range []string{"> 1", "Entering: Gallery", "--- Game End ---"} {
		if !strings.Contains(joined, want) {
			t.Errorf("transcript missing %q", want)
		}
	}
}

func TestModel_MetaCommands(t *testing.T) {
	m := New(testEngine(t), false)

	out, quit := m.handleMeta("/trace")
	if quit || !m.trace || out[0] != "Trace output enabled." {
		t.Errorf("/trace: out=%v quit=%v trace=%v", out, quit, m.trace)
	}

	out, _ = m.handleMeta("/state")
	if out[0] != "Health: 100, Attack: 10" {
		t.Errorf("/state = %v", out)
	}

	if _, quit := m.handleMeta("/quit"); !quit {
		t.Error("/quit should quit")
	}

	out, _ = m.handleMeta("/dance")
	if !strings.Contains(out[0], "Unknown command") {
		t.Errorf("unknown command output = %v", out)
	}
}

func TestRenderStatusBar(t *testing.T) {
	m := New(testEngine(t), false)
	m.width = 80

	bar := m.renderStatusBar()
	for _, want := range []string{"Test Dungeon", "At the fork", "HP: 100", "Clues: 0"} {
		if !strings.Contains(bar, want) {
			t.Errorf("status bar missing %q: %q", want, bar)
		}
	}
}
