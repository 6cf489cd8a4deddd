package loader

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// collector accumulates scenario tables during file execution.
type collector struct {
	scenarios []*lua.LTable
}

// registerAPI registers the scenario constructor and deck helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Scenario { name = "...", seed = ..., initial_state = { ... } }
	L.SetGlobal("Scenario", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.scenarios = append(coll.scenarios, tbl)
		return 0
	}))

	// Upgraded("BASH") returns "BASH+".
	L.SetGlobal("Upgraded", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !strings.HasSuffix(name, "+") {
			name += "+"
		}
		L.Push(lua.LString(name))
		return 1
	}))

	// Repeat(5, "STRIKE") returns a list of five "STRIKE" entries.
	L.SetGlobal("Repeat", L.NewFunction(func(L *lua.LState) int {
		n := L.CheckInt(1)
		name := L.CheckString(2)
		tbl := L.NewTable()
		for i := 0; i < n; i++ {
			tbl.Append(lua.LString(name))
		}
		L.Push(tbl)
		return 1
	}))

	// Deck(list1, list2, "BASH", ...) flattens strings and lists into one list.
	L.SetGlobal("Deck", L.NewFunction(func(L *lua.LState) int {
		out := L.NewTable()
		for i := 1; i <= L.GetTop(); i++ {
			switch v := L.Get(i).(type) {
			case lua.LString:
				out.Append(v)
			case *lua.LTable:
				v.ForEach(func(_, item lua.LValue) {
					if s, ok := item.(lua.LString); ok {
						out.Append(s)
					}
				})
			default:
				L.ArgError(i, "card name or list of card names expected")
			}
		}
		L.Push(out)
		return 1
	}))
}
