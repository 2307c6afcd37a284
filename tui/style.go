package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleRoom = lipgloss.NewStyle().
			Bold(true)

	styleStatus = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleLoot = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	styleClue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228")).
			Italic(true)

	styleDanger = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindRoom
	kindStatus
	kindLoot
	kindClue
	kindDanger
	kindSystem
	kindTrace
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "Entering:"), line == "--- Game End ---":
		return kindRoom
	case strings.HasPrefix(line, "Player Status"),
		strings.HasPrefix(line, "Current stats"):
		return kindStatus
	case strings.HasPrefix(line, "You obtained:"),
		strings.HasPrefix(line, "You found"):
		return kindLoot
	case strings.HasPrefix(line, "You discovered a new clue"),
		strings.HasPrefix(line, "- "):
		return kindClue
	case strings.HasPrefix(line, "Monster deals"),
		strings.HasPrefix(line, "You stumble"),
		strings.HasPrefix(line, "Health change:"),
		line == "You have been defeated!",
		line == "Game Over!":
		return kindDanger
	default:
		return kindNarrative
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindRoom:
		return styleRoom.Render(line)
	case kindStatus:
		return styleStatus.Render(line)
	case kindLoot:
		return styleLoot.Render(line)
	case kindClue:
		return styleClue.Render(line)
	case kindDanger:
		return styleDanger.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
