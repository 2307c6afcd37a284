package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// noneKey marks the None sentinel table.
const noneKey = "__none"

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.game = tbl
		return 0
	}))

	// Artifact "id" { ... }. Artifact("id") returns a function that takes the table.
	L.SetGlobal("Artifact", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.artifacts = append(coll.artifacts, rawArtifact{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Room { name, item, challenge, outcome }, positional, in walk order.
	L.SetGlobal("Room", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.rooms = append(coll.rooms, rawRoom{table: tbl, order: coll.nextSourceOrder()})
		return 0
	}))

	// Clues { "...", "..." } adds to the library clue pool.
	L.SetGlobal("Clues", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		for i := 1; i <= tbl.MaxN(); i++ {
			s, ok := tbl.RawGetInt(i).(lua.LString)
			if !ok {
				L.ArgError(1, "clues must be strings")
				return 0
			}
			coll.clues = append(coll.clues, string(s))
		}
		return 0
	}))
}

func registerHelpers(L *lua.LState) {
	// None stands in for an absent item or outcome, keeping room tuples
	// free of holes.
	none := L.NewTable()
	none.RawSetString(noneKey, lua.LTrue)
	L.SetGlobal("None", none)

	// Outcome("success", "failure", delta)
	L.SetGlobal("Outcome", L.NewFunction(func(L *lua.LState) int {
		success := L.CheckString(1)
		failure := L.CheckString(2)
		delta := L.CheckInt(3)
		tbl := L.NewTable()
		tbl.Append(lua.LString(success))
		tbl.Append(lua.LString(failure))
		tbl.Append(lua.LNumber(delta))
		L.Push(tbl)
		return 1
	}))
}

// isNone reports whether v is the None sentinel.
func isNone(v lua.LValue) bool {
	tbl, ok := v.(*lua.LTable)
	return ok && tbl.RawGetString(noneKey) == lua.LTrue
}
