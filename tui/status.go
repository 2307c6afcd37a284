package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// progress describes where the run is: before the walk, in a room, or done.
func (m Model) progress() string {
	w := m.engine.Walker()
	switch {
	case m.engine.Over():
		return "Game over"
	case m.engine.AwaitingPath():
		return "At the fork"
	default:
		return fmt.Sprintf("Room %d/%d", w.Position()+1, w.Len())
	}
}

// renderStatusBar produces a full-width inverted status line showing
// progress, player stats, inventory and clue count.
func (m Model) renderStatusBar() string {
	s := m.engine.State

	left := fmt.Sprintf(" %s | %s | HP: %d ATK: %d", m.engine.Defs.Game.Title, m.progress(), s.Player.Health, s.Player.Attack)
	right := fmt.Sprintf("Clues: %d ", s.Clues.Size())

	// Show inventory items if they fit, otherwise just count.
	if invCount := len(s.Inventory); invCount > 0 {
		invStr := strings.Join(s.Inventory, ", ")
		candidate := fmt.Sprintf("Inv: %s | Clues: %d ", invStr, s.Clues.Size())
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | Clues: %d ", invCount, s.Clues.Size())
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
