package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/dungeonrun/engine/state"
	"github.com/nathoo/dungeonrun/types"
)

// ChallengePolicy decides whether a puzzle or trap succeeds.
type ChallengePolicy func(rng *RNG) bool

// RandomChallenge succeeds half of the time.
func RandomChallenge(rng *RNG) bool { return rng.Coin() }

// AlwaysSucceed never fails a challenge.
func AlwaysSucceed(*RNG) bool { return true }

// AlwaysFail never passes a challenge.
func AlwaysFail(*RNG) bool { return false }

var challengePolicies = map[string]ChallengePolicy{
	"random":  RandomChallenge,
	"succeed": AlwaysSucceed,
	"fail":    AlwaysFail,
}

// PolicyByName returns the named challenge policy.
func PolicyByName(name string) (ChallengePolicy, error) {
	p, ok := challengePolicies[name]
	if !ok {
		return nil, fmt.Errorf("unknown challenge policy %q", name)
	}
	return p, nil
}

// Walker steps through the room sequence one room at a time. It keeps only
// its own position; the game state is handed in on every call.
type Walker struct {
	rooms  []types.Room
	lib    LibraryConfig
	policy ChallengePolicy
	pos    int
	ended  bool
}

// NewWalker validates the whole room sequence before anything is processed.
// Any malformed room makes it return a *state.ConfigError.
func NewWalker(rooms []types.Room, lib LibraryConfig, policy ChallengePolicy) (*Walker, error) {
	if err := state.ValidateRooms(rooms); err != nil {
		return nil, err
	}
	if policy == nil {
		policy = RandomChallenge
	}
	return &Walker{
		rooms:  rooms,
		lib:    lib,
		policy: policy,
		ended:  len(rooms) == 0,
	}, nil
}

// Done reports whether the walk has ended, by exhausting the rooms or by
// the player's death.
func (w *Walker) Done() bool {
	return w.ended
}

// Position returns the index of the next room to process.
func (w *Walker) Position() int {
	return w.pos
}

// Len returns the number of rooms in the sequence.
func (w *Walker) Len() int {
	return len(w.rooms)
}

// Next returns the room the next Step will process.
func (w *Walker) Next() (types.Room, bool) {
	if w.ended {
		return types.Room{}, false
	}
	return w.rooms[w.pos], true
}

// CanBypass reports whether the player holds a bypass token and the next
// room is a puzzle it could be spent on.
func (w *Walker) CanBypass(s *types.State) bool {
	next, ok := w.Next()
	return ok && s.BypassTokens > 0 && next.Challenge == types.ChallengePuzzle
}

// Step processes the next room. bypass is honored only when CanBypass is
// true. Returns false if the walk had already ended.
func (w *Walker) Step(s *types.State, rng *RNG, bypass bool) (types.RoomResult, bool) {
	if w.ended {
		return types.RoomResult{}, false
	}
	room := w.rooms[w.pos]
	res := types.RoomResult{Index: w.pos, Room: room}

	switch room.Challenge {
	case types.ChallengeLibrary:
		res.Clues, res.BypassGranted = visitLibrary(s, w.lib, rng)

	case types.ChallengePuzzle, types.ChallengeTrap:
		res.Challenged = true
		if bypass && w.CanBypass(s) {
			s.BypassTokens--
			res.Bypassed = true
			res.Success = true
		} else {
			res.Success = w.policy(rng)
		}
		if !res.Success {
			res.HealthDelta = room.Outcome.HealthDelta
			s.Player.Health += res.HealthDelta
		}
	}

	if state.AddItem(s, room.Item) {
		res.Item = room.Item
	}

	w.pos++
	res.Stats = s.Player
	if !state.Alive(s) || w.pos >= len(w.rooms) {
		w.ended = true
	}
	res.Ended = w.ended
	return res, true
}

// Walk runs the remaining rooms. decide is asked before every room where a
// bypass is possible; nil never bypasses.
func (w *Walker) Walk(s *types.State, rng *RNG, decide func(types.Room) bool) []types.RoomResult {
	var results []types.RoomResult
	for !w.Done() {
		bypass := false
		if decide != nil && w.CanBypass(s) {
			next, _ := w.Next()
			bypass = decide(next)
		}
		res, _ := w.Step(s, rng, bypass)
		results = append(results, res)
	}
	return results
}

// Lines renders a room result as transcript text.
func (w *Walker) Lines(res types.RoomResult) []string {
	room := res.Room
	output := []string{fmt.Sprintf("Entering: %s", room.Name)}

	switch room.Challenge {
	case types.ChallengeLibrary:
		output = append(output, fmt.Sprintf("%s: A vast library filled with ancient, cryptic texts.", room.Name))
		for _, c := range res.Clues {
			if c.New {
				output = append(output, fmt.Sprintf("You discovered a new clue: %s", c.Clue))
			} else {
				output = append(output, "You already know this clue.")
			}
		}
		if res.BypassGranted {
			output = append(output,
				fmt.Sprintf("Your %s helps you understand the clues!", displayName(w.lib.WisdomItem)),
				"You can now bypass one puzzle challenge.")
		}

	case types.ChallengePuzzle, types.ChallengeTrap:
		switch {
		case res.Bypassed:
			output = append(output, "You use your knowledge to bypass the challenge!")
		case res.Success:
			output = append(output, room.Outcome.Success)
		default:
			output = append(output, room.Outcome.Failure)
			if res.HealthDelta != 0 {
				output = append(output, fmt.Sprintf("Health change: %+d", res.HealthDelta))
			}
		}
	}

	if res.Item != "" {
		output = append(output, fmt.Sprintf("You obtained: %s", res.Item))
	}
	output = append(output, statusLine(res.Stats))
	return output
}

// displayName turns an id like "staff_of_wisdom" into "staff of wisdom".
func displayName(id string) string {
	return strings.ReplaceAll(id, "_", " ")
}

func statusLine(p types.PlayerStats) string {
	return fmt.Sprintf("Player Status - Health: %d, Attack: %d", p.Health, p.Attack)
}
