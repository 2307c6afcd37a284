package loader

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/nathoo/dungeonrun/engine/state"
	lua "github.com/yuin/gopher-lua"
)

//go:embed content/*.lua
var defaultContent embed.FS

// collector accumulates Lua definitions during file execution.
type collector struct {
	game      *lua.LTable
	artifacts []rawArtifact
	rooms     []rawRoom
	clues     []string
	order     int
}

func (c *collector) nextSourceOrder() int {
	c.order++
	return c.order
}

// Load reads all .lua files from dir, compiles them into game definitions,
// validates them, and returns the immutable Defs. The Lua VM is discarded
// after loading.
func Load(dir string) (*state.Defs, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("reading dungeon directory %s: %w", dir, err)
	}
	return LoadFS(os.DirFS(dir), dir)
}

// Default loads the dungeon content shipped with the binary.
func Default() (*state.Defs, error) {
	sub, err := fs.Sub(defaultContent, "content")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub, "embedded content")
}

// LoadFS loads every .lua file at the root of fsys. name is used in errors.
func LoadFS(fsys fs.FS, name string) (*state.Defs, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", name)
	}

	// Sort: game.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)

	L := newVM()
	defer L.Close()

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		src, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		if err := L.DoString(string(src)); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	return build(coll)
}

// LoadString compiles a single chunk of Lua content.
func LoadString(src string) (*state.Defs, error) {
	L := newVM()
	defer L.Close()

	coll := &collector{}
	registerAPI(L, coll)
	if err := L.DoString(src); err != nil {
		return nil, fmt.Errorf("executing content: %w", err)
	}
	return build(coll)
}

func build(coll *collector) (*state.Defs, error) {
	defs, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling dungeon: %w", err)
	}
	if err := validate(defs); err != nil {
		return nil, err
	}
	return defs, nil
}

// newVM creates a sandboxed Lua state with only the safe libraries open.
func newVM() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibs(L)
	sandbox(L)
	return L
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// Base library (print, type, tostring, tonumber, pairs, ipairs, etc.)
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Content must not reseed or draw: all randomness comes from the engine.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
			tbl.RawSetString("random", lua.LNil)
		}
	}
}
