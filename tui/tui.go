// Package tui provides a Bubble Tea terminal UI for a dungeonrun game.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/dungeonrun/engine"
	"github.com/nathoo/dungeonrun/engine/events"
	"github.com/nathoo/dungeonrun/engine/parser"
	"github.com/nathoo/dungeonrun/types"
)

// Input prompts for each point where the run waits on the player.
const (
	promptPath   = "Path (1/2) > "
	promptBypass = "Bypass the puzzle? (y/n) > "
	promptExit   = "Press Enter to exit > "
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the dungeonrun TUI.
type Model struct {
	engine *engine.Engine

	viewport viewport.Model
	input    textinput.Model

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
}

// gameOutputMsg carries output from the engine into the transcript.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for the opening)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// New creates a TUI model wired to the given engine and plays the opening.
func New(eng *engine.Engine, trace bool) Model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 64
	ti.PromptStyle = styleInputPrompt

	m := Model{
		engine: eng,
		input:  ti,
		trace:  trace,
	}
	m = m.appendResult("", eng.Begin())
	m.input.Prompt = m.currentPrompt()
	return m
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, trace bool) error {
	m := New(eng, trace)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init starts the cursor blinking; the opening is already in the transcript.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	return m, inputCmd
}

// handleEnter feeds the submitted answer to whatever the engine is waiting
// on. An empty answer is the default choice.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case m.engine.Over():
		m.quitting = true
		return m, tea.Quit

	case m.engine.AwaitingPath():
		m = m.appendResult(input, m.engine.ChoosePath(parser.PathChoice(input)))

	case m.engine.PendingBypass():
		m = m.appendResult(input, m.engine.Advance(parser.YesNo(input)))
	}

	m = m.advance()
	m.input.Prompt = m.currentPrompt()
	return m, nil
}

// advance walks rooms until the run ends or the player has to decide on
// a bypass.
func (m Model) advance() Model {
	for !m.engine.Over() && !m.engine.AwaitingPath() && !m.engine.PendingBypass() {
		m = m.appendResult("", m.engine.Advance(false))
	}
	return m
}

// currentPrompt returns the input prompt for the engine's current phase.
func (m Model) currentPrompt() string {
	switch {
	case m.engine.Over():
		return promptExit
	case m.engine.AwaitingPath():
		return promptPath
	default:
		return promptBypass
	}
}

// appendResult adds an engine result, plus its trace when enabled.
func (m Model) appendResult(input string, result types.Result) Model {
	output := result.Output
	if m.trace {
		output = append(output, events.Format(result.Events)...)
	}
	return m.appendOutput(gameOutputMsg{input: input, lines: output})
}

// appendOutput adds lines to the narrative and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between steps.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/help":
		return cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func cmdHelp() []string {
	return []string{
		"System:",
		"  /quit   Exit game",
		"  /help   Show this help",
		"  /state  Show current stats, inventory and clues",
		"  /trace  Toggle trace output",
		"",
		"At the fork answer 1 (well-lit path) or 2 (dark path).",
		"When offered a bypass answer y or n.",
		"",
		"Navigation: PgUp/PgDn to scroll",
	}
}

func (m *Model) cmdState() []string {
	sum := m.engine.Summary()
	output := []string{
		fmt.Sprintf("Health: %d, Attack: %d", sum.Stats.Health, sum.Stats.Attack),
		fmt.Sprintf("Inventory: %v", sum.Inventory),
		fmt.Sprintf("Clues: %d", len(sum.Clues)),
	}
	if n := m.engine.State.BypassTokens; n > 0 {
		output = append(output, fmt.Sprintf("Bypass tokens: %d", n))
	}
	output = append(output, fmt.Sprintf("RNG: seed %d, position %d", m.engine.RNG.Seed(), m.engine.RNG.Position()))
	return output
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled so the
// arrow keys stay with the input line.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
