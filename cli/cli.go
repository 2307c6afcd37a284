// Package cli provides line-mode terminal I/O for a dungeonrun game: it
// prints the transcript and reads the two prompt answers from input.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/dungeonrun/engine"
	"github.com/nathoo/dungeonrun/engine/events"
	"github.com/nathoo/dungeonrun/engine/parser"
	"github.com/nathoo/dungeonrun/types"
)

// Prompts.
const (
	PathPrompt   = "Which path do you choose? (1/2): "
	BypassPrompt = "Would you like to bypass a puzzle? (y/n): "
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool // echo each answer after its prompt (for piped input)
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run plays one game from start to finish. Missing input (EOF) counts as
// the default answer for every prompt.
func (c *CLI) Run() {
	scanner := bufio.NewScanner(c.In)

	c.printResult(c.Engine.Begin())

	answer := c.ask(scanner, PathPrompt)
	c.printResult(c.Engine.ChoosePath(parser.PathChoice(answer)))

	for !c.Engine.Over() {
		bypass := false
		if c.Engine.PendingBypass() {
			bypass = parser.YesNo(c.ask(scanner, BypassPrompt))
		}
		c.printResult(c.Engine.Advance(bypass))
	}
}

// ask prints a prompt and returns the next input line, or "" at EOF.
func (c *CLI) ask(scanner *bufio.Scanner, prompt string) string {
	c.print(prompt)
	if !scanner.Scan() {
		c.printLine("")
		return ""
	}
	input := strings.TrimSpace(scanner.Text())
	if c.EchoInput {
		c.printLine(input)
	}
	return input
}

func (c *CLI) printResult(result types.Result) {
	if len(result.Output) == 0 {
		return
	}
	c.printLine("")
	for _, line := range result.Output {
		c.printLine(line)
	}
	if c.Trace {
		for _, line := range events.Format(result.Events) {
			c.printLine(line)
		}
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}
