// Package engine provides the orchestrator that wires together the path
// choice, combat, the artifact roll and the dungeon walk into one run.
package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/dungeonrun/engine/effects"
	"github.com/nathoo/dungeonrun/engine/events"
	"github.com/nathoo/dungeonrun/engine/state"
	"github.com/nathoo/dungeonrun/types"
)

type phase int

const (
	phaseStart phase = iota
	phaseAwaitPath
	phaseWalking
	phaseOver
)

// Engine holds the game definitions, the single mutable state of the run,
// and the random source every stage draws from.
type Engine struct {
	Defs   *state.Defs
	State  *types.State
	RNG    *RNG
	walker *Walker
	phase  phase
}

// New creates an engine for one run. The room sequence and challenge
// policy are checked here, before anything is played.
func New(defs *state.Defs, seed int64) (*Engine, error) {
	policy, err := PolicyByName(defs.Game.ChallengePolicy)
	if err != nil {
		return nil, err
	}
	lib := LibraryConfig{
		Pool:       defs.Clues,
		Draw:       defs.Game.LibraryDraw,
		WisdomItem: defs.Game.WisdomItem,
	}
	w, err := NewWalker(defs.Rooms, lib, policy)
	if err != nil {
		return nil, err
	}

	s := state.NewState(defs)
	s.RNGSeed = seed
	return &Engine{
		Defs:   defs,
		State:  s,
		RNG:    NewRNG(seed),
		walker: w,
	}, nil
}

// Walker exposes the room walker for status displays.
func (e *Engine) Walker() *Walker {
	return e.walker
}

// Over reports whether the run has finished.
func (e *Engine) Over() bool {
	return e.phase == phaseOver
}

// AwaitingPath reports whether the engine is waiting for ChoosePath.
func (e *Engine) AwaitingPath() bool {
	return e.phase == phaseAwaitPath
}

// PendingBypass reports whether the next room is a puzzle the player may
// bypass. Callers ask the player and pass the answer to Advance.
func (e *Engine) PendingBypass() bool {
	return e.phase == phaseWalking && e.walker.CanBypass(e.State)
}

// Begin greets the player and presents the fork.
func (e *Engine) Begin() types.Result {
	var result types.Result
	if e.phase != phaseStart {
		return result
	}
	if e.Defs.Game.Intro != "" {
		result.Output = append(result.Output, e.Defs.Game.Intro)
	}
	result.Output = append(result.Output,
		statusLine(e.State.Player),
		"You see two paths ahead:",
		"1. A well-lit path",
		"2. A dark, mysterious path",
	)
	e.phase = phaseAwaitPath
	return result
}

// ChoosePath applies the path choice, then runs combat and the artifact
// roll. If the player survives, the engine is ready for Advance.
func (e *Engine) ChoosePath(choice types.PathChoice) types.Result {
	var result types.Result
	if e.phase != phaseAwaitPath {
		return result
	}
	g := e.Defs.Game
	s := e.State

	hasTreasure := e.RNG.Chance(g.TreasureChance)

	// 1. Path.
	if choice == types.PathDark {
		dmg := e.RNG.Between(g.PathDamageMin, g.PathDamageMax)
		s.Player.Health -= dmg
		result.Output = append(result.Output, fmt.Sprintf("You stumble in the dark and take %d damage!", dmg))
		result.Events = append(result.Events, events.New(events.PathChosen, map[string]any{"path": "dark", "damage": dmg}))
	} else {
		result.Output = append(result.Output, "You proceed safely along the well-lit path.")
		result.Events = append(result.Events, events.New(events.PathChosen, map[string]any{"path": "safe"}))
	}
	if !state.Alive(s) {
		e.defeat(&result)
		return result
	}

	// 2. Combat.
	combat := ResolveCombat(&s.Player, g.MonsterHealth, hasTreasure, g.Treasure, e.RNG.DamageBetween(g.MonsterDamageMin, g.MonsterDamageMax))
	result.Output = append(result.Output, combatLines(combat)...)
	result.Events = append(result.Events, events.New(events.CombatEnded, map[string]any{
		"won":    combat.Won,
		"rounds": len(combat.Rounds),
		"health": s.Player.Health,
	}))
	if !combat.Won {
		e.defeat(&result)
		return result
	}
	if state.AddItem(s, combat.Treasure) {
		result.Output = append(result.Output,
			fmt.Sprintf("You found a %s!", combat.Treasure),
			fmt.Sprintf("You obtained: %s", combat.Treasure))
		result.Events = append(result.Events, events.New(events.ItemAcquired, map[string]any{"item": combat.Treasure, "source": "combat"}))
	}

	// 3. Artifact roll.
	e.rollArtifact(&result)

	if !state.Alive(s) {
		e.defeat(&result)
		return result
	}

	e.phase = phaseWalking
	if e.walker.Done() {
		e.finish(&result)
	}
	return result
}

// rollArtifact gives the victor a chance at one artifact, picked uniformly
// from what is left in the catalog.
func (e *Engine) rollArtifact(result *types.Result) {
	hit := e.RNG.Chance(e.Defs.Game.ArtifactChance)
	result.Events = append(result.Events, events.New(events.ArtifactRolled, map[string]any{"hit": hit}))
	if !hit {
		return
	}
	ids := state.ArtifactIDs(e.State)
	if len(ids) == 0 {
		return
	}
	id := ids[e.RNG.Pick(len(ids))]
	out := effects.Discover(e.State, id)
	result.Output = append(result.Output, effects.Lines(out)...)
	if !out.Found {
		return
	}
	state.AddItem(e.State, id)
	result.Output = append(result.Output, statusLine(e.State.Player))
	result.Events = append(result.Events, events.New(events.ArtifactFound, map[string]any{
		"artifact":    id,
		"health_gain": out.HealthGain,
		"attack_gain": out.AttackGain,
	}))
}

// Advance processes the next room. bypass spends a bypass token on the
// next puzzle and is ignored unless PendingBypass is true.
func (e *Engine) Advance(bypass bool) types.Result {
	var result types.Result
	if e.phase != phaseWalking {
		return result
	}

	res, ok := e.walker.Step(e.State, e.RNG, bypass)
	if !ok {
		e.finish(&result)
		return result
	}
	result.Output = append(result.Output, e.walker.Lines(res)...)
	result.Events = append(result.Events, roomEvents(res)...)

	if e.walker.Done() {
		if !state.Alive(e.State) {
			result.Output = append(result.Output, "Game Over!")
			result.Events = append(result.Events, events.New(events.PlayerDefeated, map[string]any{"room": res.Room.Name}))
		}
		e.finish(&result)
	}
	return result
}

// Run plays a whole game without pausing: the path choice is given up
// front and decide answers every bypass offer (nil declines them all).
func (e *Engine) Run(choice types.PathChoice, decide func(types.Room) bool) types.Result {
	var result types.Result
	merge := func(r types.Result) {
		result.Output = append(result.Output, r.Output...)
		result.Events = append(result.Events, r.Events...)
	}

	merge(e.Begin())
	merge(e.ChoosePath(choice))
	for !e.Over() {
		bypass := false
		if decide != nil && e.PendingBypass() {
			next, _ := e.walker.Next()
			bypass = decide(next)
		}
		merge(e.Advance(bypass))
	}
	return result
}

// Summary returns the current end-of-run report.
func (e *Engine) Summary() types.Summary {
	return types.Summary{
		Stats:     e.State.Player,
		Inventory: append([]string(nil), e.State.Inventory...),
		Clues:     state.ClueList(e.State),
	}
}

func (e *Engine) defeat(result *types.Result) {
	result.Output = append(result.Output, "Game Over!")
	result.Events = append(result.Events, events.New(events.PlayerDefeated, map[string]any{"health": e.State.Player.Health}))
	e.phase = phaseOver
}

func (e *Engine) finish(result *types.Result) {
	sum := e.Summary()
	result.Output = append(result.Output, SummaryLines(sum)...)
	result.Events = append(result.Events, events.New(events.GameEnded, map[string]any{
		"health":    sum.Stats.Health,
		"attack":    sum.Stats.Attack,
		"inventory": sum.Inventory,
		"clues":     len(sum.Clues),
	}))
	e.phase = phaseOver
}

// SummaryLines renders the end-of-run report.
func SummaryLines(sum types.Summary) []string {
	output := []string{"--- Game End ---", statusLine(sum.Stats), "Final Inventory:"}
	if len(sum.Inventory) > 0 {
		output = append(output, "Inventory: "+strings.Join(sum.Inventory, ", "))
	} else {
		output = append(output, "Inventory is empty")
	}
	output = append(output, "Clues Discovered:")
	if len(sum.Clues) == 0 {
		return append(output, "No clues discovered.")
	}
	for _, c := range sum.Clues {
		output = append(output, "- "+c)
	}
	return output
}

func roomEvents(res types.RoomResult) []types.Event {
	evts := []types.Event{events.New(events.RoomEntered, map[string]any{
		"index": res.Index,
		"room":  res.Room.Name,
	})}
	if res.Challenged {
		evts = append(evts, events.New(events.ChallengeResult, map[string]any{
			"challenge":    string(res.Room.Challenge),
			"success":      res.Success,
			"bypassed":     res.Bypassed,
			"health_delta": res.HealthDelta,
		}))
	}
	for _, c := range res.Clues {
		evts = append(evts, events.New(events.ClueRecorded, map[string]any{"clue": c.Clue, "new": c.New}))
	}
	if res.BypassGranted {
		evts = append(evts, events.New(events.BypassGranted, nil))
	}
	if res.Item != "" {
		evts = append(evts, events.New(events.ItemAcquired, map[string]any{"item": res.Item, "source": res.Room.Name}))
	}
	return evts
}
