package loader

import (
	"os"
	"path/filepath"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

// newTestVM creates a sandboxed Lua VM with the API registered and a fresh collector.
func newTestVM(t *testing.T) (*lua.LState, *collector) {
	t.Helper()
	L := newVM()
	t.Cleanup(L.Close)
	coll := &collector{}
	registerAPI(L, coll)
	return L, coll
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSandbox_DangerousGlobalsRemoved(t *testing.T) {
	L, _ := newTestVM(t)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "rawset", "rawget", "rawequal", "collectgarbage", "os", "io"} {
		if v := L.GetGlobal(name); v != lua.LNil {
			t.Errorf("global %q should be nil, got %s", name, v.Type())
		}
	}
}

func TestSandbox_NoRandomness(t *testing.T) {
	L, _ := newTestVM(t)

	if err := L.DoString(`return math.random(6)`); err == nil {
		t.Error("math.random should be unavailable")
	}
	if err := L.DoString(`math.randomseed(1)`); err == nil {
		t.Error("math.randomseed should be unavailable")
	}
	if err := L.DoString(`x = math.floor(2.5)`); err != nil {
		t.Errorf("math.floor should still work: %v", err)
	}
}

func TestSandbox_SafeLibsAvailable(t *testing.T) {
	L, _ := newTestVM(t)

	if err := L.DoString(`s = string.upper("abc") .. table.concat({"x", "y"}, ",")`); err != nil {
		t.Fatalf("string/table libs: %v", err)
	}
	if got := L.GetGlobal("s").String(); got != "ABCx,y" {
		t.Errorf("s = %q", got)
	}
}

func TestNone_IsSentinel(t *testing.T) {
	L, _ := newTestVM(t)

	if !isNone(L.GetGlobal("None")) {
		t.Error("None global should be the sentinel")
	}
	if isNone(L.NewTable()) {
		t.Error("plain table is not None")
	}
	if isNone(lua.LString("None")) {
		t.Error("string is not None")
	}
}

func TestClues_RejectsNonStrings(t *testing.T) {
	L, _ := newTestVM(t)

	if err := L.DoString(`Clues { "fine", 42 }`); err == nil {
		t.Error("expected error for non-string clue")
	}
}

func TestRoom_RecordsDeclarationOrder(t *testing.T) {
	L, coll := newTestVM(t)

	err := L.DoString(`
Room { "A", None, "none", None }
Room { "B", "torch", "trap", Outcome("ok", "ouch", -10) }
`)
	if err != nil {
		t.Fatalf("DoString: %v", err)
	}
	if len(coll.rooms) != 2 || coll.rooms[0].order >= coll.rooms[1].order {
		t.Fatalf("rooms = %+v", coll.rooms)
	}

	room, errs := compileRoom(2, coll.rooms[1].table)
	if len(errs) != 0 {
		t.Fatalf("compileRoom: %v", errs)
	}
	if room.Item != "torch" || room.Outcome == nil || room.Outcome.HealthDelta != -10 {
		t.Errorf("room = %+v, outcome = %+v", room, room.Outcome)
	}
}

func TestSortedLuaFiles(t *testing.T) {
	got := sortedLuaFiles([]string{"rooms.lua", "game.lua", "artifacts.lua"})
	want := []string{"game.lua", "artifacts.lua", "rooms.lua"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sortedLuaFiles = %v, want %v", got, want)
		}
	}
}
