// dungeonrun plays one run of a small text dungeon crawler.
// Usage: dungeonrun [--version] [--plain] [--trace] [--seed <n>] [--content <dir>]
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nathoo/dungeonrun/cli"
	"github.com/nathoo/dungeonrun/config"
	"github.com/nathoo/dungeonrun/engine"
	"github.com/nathoo/dungeonrun/engine/state"
	"github.com/nathoo/dungeonrun/loader"
	"github.com/nathoo/dungeonrun/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: dungeonrun [--version] [--plain] [--trace] [--seed <n>] [--content <dir>]\n"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("dungeonrun %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			cfg.Plain = true
		case "--trace":
			cfg.Trace = true
		case "--seed":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--seed requires a number\n")
				os.Exit(1)
			}
			i++
			seed, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "--seed: %v\n", err)
				os.Exit(1)
			}
			cfg.Seed = seed
		case "--content":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--content requires a directory\n")
				os.Exit(1)
			}
			i++
			cfg.Content = args[i]
		default:
			fmt.Fprint(os.Stderr, usage)
			os.Exit(1)
		}
	}

	defs, err := loadDefs(cfg.Content)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dungeon: %v\n", err)
		os.Exit(1)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	eng, err := engine.New(defs, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Use plain CLI if --plain or stdout is not a terminal. Piped answers
	// are echoed so the transcript reads like an interactive session.
	if cfg.Plain || !isTerminal(os.Stdout) {
		c := cli.New(eng)
		c.Trace = cfg.Trace
		c.EchoInput = !isTerminal(os.Stdin)
		c.Run()
		return
	}

	if err := tui.Run(eng, cfg.Trace); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadDefs(dir string) (*state.Defs, error) {
	if dir == "" {
		return loader.Default()
	}
	return loader.Load(dir)
}

// isTerminal returns true if f is a terminal (not piped/redirected).
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
