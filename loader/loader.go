// Package loader reads battle scenarios from Lua, YAML and JSON files and
// compiles them into run states. The Lua VM is discarded after loading.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/spirecore/types"
)

// Extensions lists the file types LoadDir picks up.
var Extensions = []string{".lua", ".yaml", ".yml", ".json"}

// LoadFile reads every scenario defined in one file and compiles them.
func LoadFile(path string) ([]*Scenario, error) {
	defs, err := readFile(path)
	if err != nil {
		return nil, err
	}
	out := make([]*Scenario, 0, len(defs))
	for _, def := range defs {
		def.Source = path
		sc, err := Compile(def)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, sc)
	}
	return out, nil
}

// LoadDir loads every scenario file in dir, in file name order.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading scenario directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && isScenarioFile(e.Name()) {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no scenario files found in %s", dir)
	}
	sort.Strings(files)

	var out []*Scenario
	for _, f := range files {
		scs, err := LoadFile(filepath.Join(dir, f))
		if err != nil {
			return nil, err
		}
		out = append(out, scs...)
	}
	return out, nil
}

// Find returns the scenario with the given name.
func Find(scs []*Scenario, name string) (*Scenario, bool) {
	for _, sc := range scs {
		if strings.EqualFold(sc.Def.Name, name) {
			return sc, true
		}
	}
	return nil, false
}

func isScenarioFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func readFile(path string) ([]types.ScenarioDef, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lua":
		return readLua(path)
	case ".yaml", ".yml", ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		defs, err := decodeYAML(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		return defs, nil
	}
	return nil, fmt.Errorf("%s: unsupported scenario file type", path)
}

// readLua executes a scenario file in a fresh sandboxed VM.
func readLua(path string) ([]types.ScenarioDef, error) {
	L := newVM()
	defer L.Close()

	coll := &collector{}
	registerAPI(L, coll)

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("executing %s: %w", path, err)
	}
	return coll.compile()
}

// newVM creates a VM with only the safe libraries open.
func newVM() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibs(L)
	sandbox(L)
	return L
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
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

	// Scenarios must not change between loads.
	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("random", lua.LNil)
		tbl.RawSetString("randomseed", lua.LNil)
	}
}
