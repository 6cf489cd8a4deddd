package loader

import (
	"fmt"
	"sort"
	"strconv"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/spirecore/engine/cards"
	"github.com/nathoo/spirecore/engine/game"
	"github.com/nathoo/spirecore/engine/monsters"
	"github.com/nathoo/spirecore/engine/potions"
	"github.com/nathoo/spirecore/engine/relics"
	"github.com/nathoo/spirecore/types"
)

// Scenario is a compiled scenario: the raw definition plus resolved ids.
// Unknown ids have already been dropped and reported in Warnings.
type Scenario struct {
	Def       types.ScenarioDef
	Encounter monsters.Encounter
	Deck      []cards.Card
	Relics    []relics.Instance
	Potions   []potions.ID
	Warnings  []string
}

// Compile validates def and resolves its names. Problems that make the
// scenario unusable are returned as a *ValidationError.
func Compile(def types.ScenarioDef) (*Scenario, error) {
	ve := &ValidationError{Scenario: def.Name}
	sc := &Scenario{Def: def}

	validateHeader(def, ve)
	sc.Encounter = compileEncounter(def.Encounter, ve)
	sc.Deck = compileDeck(def.Deck, ve)
	sc.Relics = compileRelics(def.Relics, def.RelicCounters, ve)
	sc.Potions = compilePotions(def.Potions, def.Ascension, ve)
	validateActions(def.Actions, ve)

	sc.Warnings = ve.Warnings
	if len(ve.Errors) > 0 {
		return nil, ve
	}
	return sc, nil
}

// Game builds a fresh run from the scenario's own seed.
func (s *Scenario) Game() *game.GameContext {
	return s.GameWithSeed(s.Def.Seed)
}

// GameWithSeed builds a fresh run from the scenario with seed replacing the
// scenario's own. Every call returns an independent context.
func (s *Scenario) GameWithSeed(seed uint64) *game.GameContext {
	gc := game.New(types.Ironclad, seed, s.Def.Ascension)
	if s.Def.Floor > 0 {
		gc.SetFloor(s.Def.Floor)
	}
	if s.Def.PlayerMaxHp > 0 {
		gc.MaxHp = s.Def.PlayerMaxHp
		gc.CurHp = gc.MaxHp
	}
	if s.Def.PlayerHp > 0 {
		gc.CurHp = s.Def.PlayerHp
	}
	if s.Def.Gold > 0 {
		gc.Gold = s.Def.Gold
	}
	gc.Deck = append([]cards.Card(nil), s.Deck...)
	for _, r := range s.Relics {
		gc.Relics.Add(r)
	}
	for _, p := range s.Potions {
		gc.ObtainPotion(p)
	}
	return gc
}

func compileEncounter(name string, ve *ValidationError) monsters.Encounter {
	if name == "" {
		ve.errorf("initial_state.encounter", "is required")
		return monsters.EncounterInvalid
	}
	e := monsters.EncounterFromName(name)
	switch {
	case e == monsters.EncounterInvalid:
		ve.errorf("initial_state.encounter", "unknown encounter %q", name)
	case !e.Supported():
		ve.errorf("initial_state.encounter", "%s has no battle implementation", e)
	}
	return e
}

func compileDeck(names []string, ve *ValidationError) []cards.Card {
	if len(names) == 0 {
		ve.errorf("initial_state.deck", "is required")
		return nil
	}
	deck := make([]cards.Card, 0, len(names))
	for i, name := range names {
		c := cards.Parse(name)
		if !c.IsValid() {
			ve.warnf(fmt.Sprintf("initial_state.deck[%d]", i), "unknown card %q dropped", name)
			continue
		}
		deck = append(deck, c)
	}
	if len(deck) > cards.MaxDeckSize {
		ve.errorf("initial_state.deck", "%d cards, limit %d", len(deck), cards.MaxDeckSize)
	}
	return deck
}

// compileRelics resolves relic names and applies counter overrides. A counter
// for a relic that is not held is dropped.
func compileRelics(names []string, counters map[string]int, ve *ValidationError) []relics.Instance {
	var out []relics.Instance
	held := map[relics.ID]int{}
	for i, name := range names {
		id := relics.FromName(name)
		if id == relics.Invalid {
			ve.warnf(fmt.Sprintf("initial_state.relics[%d]", i), "unknown relic %q dropped", name)
			continue
		}
		if _, dup := held[id]; dup {
			ve.warnf(fmt.Sprintf("initial_state.relics[%d]", i), "duplicate relic %s dropped", id)
			continue
		}
		held[id] = len(out)
		out = append(out, relics.Instance{ID: id, Value: relics.InitialValue(id)})
	}

	// Map iteration order must not leak into warnings.
	keys := make([]string, 0, len(counters))
	for k := range counters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		field := "initial_state.relic_counters." + k
		id := relics.FromName(k)
		if id == relics.Invalid {
			ve.warnf(field, "unknown relic dropped")
			continue
		}
		i, ok := held[id]
		if !ok {
			ve.warnf(field, "relic %s is not in the relic list", id)
			continue
		}
		out[i].Value = counters[k]
	}
	return out
}

func compilePotions(names []string, ascension int, ve *ValidationError) []potions.ID {
	var out []potions.ID
	for i, name := range names {
		p := potions.FromName(name)
		if !p.IsPotion() {
			ve.warnf(fmt.Sprintf("initial_state.potions[%d]", i), "unknown potion %q dropped", name)
			continue
		}
		out = append(out, p)
	}
	capacity := game.New(types.Ironclad, 0, ascension).PotionCapacity
	if len(out) > capacity {
		ve.warnf("initial_state.potions", "%d potions, capacity %d; extra potions dropped", len(out), capacity)
		out = out[:capacity]
	}
	return out
}

// compile turns every collected Lua table into a scenario definition.
func (c *collector) compile() ([]types.ScenarioDef, error) {
	if len(c.scenarios) == 0 {
		return nil, fmt.Errorf("no Scenario { ... } defined")
	}
	defs := make([]types.ScenarioDef, 0, len(c.scenarios))
	for i, tbl := range c.scenarios {
		def, err := compileScenarioTable(tbl)
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i+1, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

var (
	scenarioKeys = map[string]bool{
		"name": true, "description": true, "seed": true, "ascension": true,
		"floor": true, "initial_state": true, "action_sequence": true,
	}
	initialStateKeys = map[string]bool{
		"encounter": true, "player_hp": true, "player_max_hp": true, "gold": true,
		"deck": true, "relics": true, "relic_counters": true, "potions": true,
	}
)

func compileScenarioTable(tbl *lua.LTable) (types.ScenarioDef, error) {
	def := types.ScenarioDef{
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "description"),
		Ascension:   getInt(tbl, "ascension"),
		Floor:       getInt(tbl, "floor"),
		Actions:     getStringList(getTable(tbl, "action_sequence")),
	}
	ve := &ValidationError{Scenario: def.Name}
	unknownKeys(tbl, "", scenarioKeys, ve)

	seed, err := getSeed(tbl.RawGetString("seed"))
	if err != nil {
		ve.errorf("seed", "%v", err)
	}
	def.Seed = seed

	if st := getTable(tbl, "initial_state"); st != nil {
		unknownKeys(st, "initial_state.", initialStateKeys, ve)
		def.Encounter = getString(st, "encounter")
		def.PlayerHp = getInt(st, "player_hp")
		def.PlayerMaxHp = getInt(st, "player_max_hp")
		def.Gold = getInt(st, "gold")
		def.Deck = getStringList(getTable(st, "deck"))
		def.Relics = getStringList(getTable(st, "relics"))
		def.Potions = getStringList(getTable(st, "potions"))
		if counters := getTable(st, "relic_counters"); counters != nil {
			def.RelicCounters = map[string]int{}
			counters.ForEach(func(k, v lua.LValue) {
				if n, ok := v.(lua.LNumber); ok {
					def.RelicCounters[k.String()] = int(n)
				}
			})
		}
	}
	if len(ve.Errors) > 0 {
		return def, ve
	}
	return def, nil
}

// unknownKeys reports table keys the scenario format does not define.
func unknownKeys(tbl *lua.LTable, prefix string, known map[string]bool, ve *ValidationError) {
	var bad []string
	tbl.ForEach(func(k, _ lua.LValue) {
		if !known[k.String()] {
			bad = append(bad, k.String())
		}
	})
	sort.Strings(bad)
	for _, k := range bad {
		ve.errorf(prefix+k, "unknown field")
	}
}

// getSeed accepts a number or, for seeds past 2^53, a decimal string.
func getSeed(v lua.LValue) (uint64, error) {
	switch s := v.(type) {
	case lua.LNumber:
		if s < 0 {
			return 0, fmt.Errorf("must not be negative")
		}
		return uint64(s), nil
	case lua.LString:
		return strconv.ParseUint(string(s), 10, 64)
	case *lua.LNilType:
		return 0, nil
	}
	return 0, fmt.Errorf("expected a number, got %s", v.Type())
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// getStringList converts an array table of strings to a slice.
func getStringList(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var result []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			result = append(result, string(s))
		}
	}
	return result
}
