// Package loader loads Lua dungeon content into Go structs at startup.
// The Lua VM is closed once the definitions are built.
package loader

import (
	"fmt"
	"math"
	"sort"

	"github.com/nathoo/dungeonrun/engine/state"
	"github.com/nathoo/dungeonrun/types"
	lua "github.com/yuin/gopher-lua"
)

// Defaults for tunables the Game{} table leaves out.
const (
	defaultHealth           = 100
	defaultAttack           = 5
	defaultMonsterHealth    = 70
	defaultMonsterDamageMin = 5
	defaultMonsterDamageMax = 15
	defaultTreasure         = "golden_key"
	defaultTreasureChance   = 50
	defaultPathDamageMin    = 5
	defaultPathDamageMax    = 15
	defaultArtifactChance   = 30
	defaultChallengePolicy  = "random"
	defaultLibraryDraw      = 2
	defaultWisdomItem       = "staff_of_wisdom"
)

// roomArity is the number of positional fields in a room tuple:
// name, item, challenge type, outcome.
const roomArity = 4

// outcomeArity is the number of fields in an outcome tuple:
// success message, failure message, health delta.
const outcomeArity = 3

// rawArtifact holds an artifact table before compilation.
type rawArtifact struct {
	id    string
	table *lua.LTable
}

// rawRoom holds a room tuple before compilation.
type rawRoom struct {
	table *lua.LTable
	order int
}

// fieldReader reads typed fields from a Lua table, recording a problem for
// every field that is present with the wrong type.
type fieldReader struct {
	tbl    *lua.LTable
	prefix string
	errs   *[]string
}

func (r fieldReader) path(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + "." + key
}

func (r fieldReader) get(key string) lua.LValue {
	if r.tbl == nil {
		return lua.LNil
	}
	return r.tbl.RawGetString(key)
}

func (r fieldReader) fail(key, want string, got lua.LValue) {
	*r.errs = append(*r.errs, fmt.Sprintf("%s must be %s, got %s", r.path(key), want, got.Type()))
}

func (r fieldReader) str(key, def string) string {
	v := r.get(key)
	if v == lua.LNil {
		return def
	}
	s, ok := v.(lua.LString)
	if !ok {
		r.fail(key, "a string", v)
		return def
	}
	return string(s)
}

func (r fieldReader) num(key string, def int) int {
	v := r.get(key)
	if v == lua.LNil {
		return def
	}
	n, ok := toInt(v)
	if !ok {
		r.fail(key, "an integer", v)
		return def
	}
	return n
}

// span reads a {min, max} pair.
func (r fieldReader) span(key string, defMin, defMax int) (int, int) {
	v := r.get(key)
	if v == lua.LNil {
		return defMin, defMax
	}
	tbl, ok := v.(*lua.LTable)
	if !ok || tbl.MaxN() != 2 {
		r.fail(key, "a {min, max} pair", v)
		return defMin, defMax
	}
	lo, ok1 := toInt(tbl.RawGetInt(1))
	hi, ok2 := toInt(tbl.RawGetInt(2))
	if !ok1 || !ok2 {
		r.fail(key, "a {min, max} pair of integers", v)
		return defMin, defMax
	}
	return lo, hi
}

// sub returns a reader over a nested table. An absent table yields a
// reader that returns every default.
func (r fieldReader) sub(key string) fieldReader {
	child := fieldReader{prefix: r.path(key), errs: r.errs}
	v := r.get(key)
	if v == lua.LNil {
		return child
	}
	tbl, ok := v.(*lua.LTable)
	if !ok {
		r.fail(key, "a table", v)
		return child
	}
	child.tbl = tbl
	return child
}

// toInt converts a Lua number to an int if it has no fractional part.
func toInt(v lua.LValue) (int, bool) {
	n, ok := v.(lua.LNumber)
	if !ok {
		return 0, false
	}
	f := float64(n)
	if f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// compile converts all collected Lua data into a Defs struct. Malformed
// tuples and mistyped fields are all collected into one *ValidationError.
func compile(coll *collector) (*state.Defs, error) {
	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}

	var problems []string
	defs := &state.Defs{
		Artifacts: map[string]types.Artifact{},
		Clues:     coll.clues,
	}

	defs.Game = compileGame(coll.game, &problems)

	for _, raw := range coll.artifacts {
		if _, dup := defs.Artifacts[raw.id]; dup {
			problems = append(problems, fmt.Sprintf("duplicate artifact %q", raw.id))
			continue
		}
		defs.Artifacts[raw.id] = compileArtifact(raw, &problems)
	}

	sort.SliceStable(coll.rooms, func(i, j int) bool {
		return coll.rooms[i].order < coll.rooms[j].order
	})
	for i, raw := range coll.rooms {
		room, errs := compileRoom(i+1, raw.table)
		problems = append(problems, errs...)
		defs.Rooms = append(defs.Rooms, room)
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Errors: problems}
	}
	return defs, nil
}

func compileGame(tbl *lua.LTable, problems *[]string) types.GameDef {
	r := fieldReader{tbl: tbl, prefix: "Game", errs: problems}
	monster := r.sub("monster")
	library := r.sub("library")

	g := types.GameDef{
		Title:           r.str("title", ""),
		Intro:           r.str("intro", ""),
		StartHealth:     r.num("health", defaultHealth),
		StartAttack:     r.num("attack", defaultAttack),
		MonsterHealth:   monster.num("health", defaultMonsterHealth),
		Treasure:        monster.str("treasure", defaultTreasure),
		TreasureChance:  monster.num("treasure_chance", defaultTreasureChance),
		ArtifactChance:  r.num("artifact_chance", defaultArtifactChance),
		ChallengePolicy: r.str("challenge", defaultChallengePolicy),
		LibraryDraw:     library.num("draw", defaultLibraryDraw),
		WisdomItem:      library.str("wisdom_item", defaultWisdomItem),
	}
	g.MonsterDamageMin, g.MonsterDamageMax = monster.span("damage", defaultMonsterDamageMin, defaultMonsterDamageMax)
	g.PathDamageMin, g.PathDamageMax = r.span("path_damage", defaultPathDamageMin, defaultPathDamageMax)
	return g
}

func compileArtifact(raw rawArtifact, problems *[]string) types.Artifact {
	r := fieldReader{tbl: raw.table, prefix: fmt.Sprintf("artifact %q", raw.id), errs: problems}
	return types.Artifact{
		ID:          raw.id,
		Description: r.str("description", ""),
		Power:       r.num("power", 0),
		Effect:      types.ArtifactEffect(r.str("effect", "")),
	}
}

// compileRoom converts a positional room tuple. n is the 1-based position
// in the sequence, used in messages.
func compileRoom(n int, tbl *lua.LTable) (types.Room, []string) {
	var errs []string
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf("room %d: ", n)+fmt.Sprintf(format, args...))
	}

	got, ok := tupleLen(tbl)
	if !ok {
		fail("fields must form a plain list without gaps (use None for an absent item or outcome)")
		return types.Room{}, errs
	}
	if got != roomArity {
		fail("expected %d fields {name, item, challenge, outcome}, got %d", roomArity, got)
		return types.Room{}, errs
	}

	var room types.Room

	if s, ok := tbl.RawGetInt(1).(lua.LString); ok {
		room.Name = string(s)
	} else {
		fail("name must be a string, got %s", tbl.RawGetInt(1).Type())
	}

	switch v := tbl.RawGetInt(2).(type) {
	case lua.LString:
		room.Item = string(v)
	default:
		if !isNone(v) {
			fail("item must be a string or None, got %s", v.Type())
		}
	}

	if s, ok := tbl.RawGetInt(3).(lua.LString); ok {
		room.Challenge = types.ChallengeType(s)
	} else {
		fail("challenge must be a string, got %s", tbl.RawGetInt(3).Type())
	}

	outcome := tbl.RawGetInt(4)
	if !isNone(outcome) {
		o, err := compileOutcome(outcome)
		if err != "" {
			fail("%s", err)
		} else {
			room.Outcome = o
		}
	}

	return room, errs
}

func compileOutcome(v lua.LValue) (*types.Outcome, string) {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Sprintf("outcome must be a table or None, got %s", v.Type())
	}
	if got, ok := tupleLen(tbl); !ok || got != outcomeArity {
		return nil, fmt.Sprintf("outcome expected %d fields {success, failure, health_delta}", outcomeArity)
	}
	success, ok1 := tbl.RawGetInt(1).(lua.LString)
	failure, ok2 := tbl.RawGetInt(2).(lua.LString)
	if !ok1 || !ok2 {
		return nil, "outcome messages must be strings"
	}
	delta, ok := toInt(tbl.RawGetInt(3))
	if !ok {
		return nil, fmt.Sprintf("outcome health delta must be an integer, got %s", tbl.RawGetInt(3).Type())
	}
	return &types.Outcome{Success: string(success), Failure: string(failure), HealthDelta: delta}, ""
}

// tupleLen counts the entries of a table meant as a positional tuple.
// ok is false when holes or named keys make the count disagree with MaxN.
func tupleLen(tbl *lua.LTable) (n int, ok bool) {
	tbl.ForEach(func(_, _ lua.LValue) { n++ })
	return n, n == tbl.MaxN()
}

// sortedLuaFiles returns .lua files in a directory, with game.lua first
// and the rest sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
