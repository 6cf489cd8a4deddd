package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/spirecore/engine/battle"
	"github.com/nathoo/spirecore/engine/cards"
	"github.com/nathoo/spirecore/engine/game"
	"github.com/nathoo/spirecore/engine/monsters"
	"github.com/nathoo/spirecore/engine/potions"
	"github.com/nathoo/spirecore/engine/relics"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDir_SortedAndSkipsOtherFiles(t *testing.T) {
	scs, err := LoadDir("testdata/scenarios")
	require.NoError(t, err)

	var names []string
	for _, sc := range scs {
		names = append(names, sc.Def.Name)
	}
	assert.Equal(t, []string{
		"Cultist Starter", "Louse Upgraded", // act1.lua
		"Nob With Anchor", "Lagavulin Sleeps", // elites.yaml
		"Jaw Worm Starter", // jaw_worm.json
	}, names)
	assert.Equal(t, filepath.Join("testdata/scenarios", "elites.yaml"), scs[2].Def.Source)
}

func TestLoadFile_JSON(t *testing.T) {
	scs, err := LoadFile("testdata/scenarios/jaw_worm.json")
	require.NoError(t, err)
	require.Len(t, scs, 1)
	sc := scs[0]

	assert.Equal(t, monsters.EncounterJawWorm, sc.Encounter)
	assert.Equal(t, uint64(1984), sc.Def.Seed)
	assert.Equal(t, 1, sc.Def.Floor)
	assert.Len(t, sc.Deck, 10)
	assert.Equal(t, cards.StrikeRed, sc.Deck[0].ID)
	assert.Equal(t, cards.Bash, sc.Deck[9].ID)
	assert.Equal(t, []string{"end_turn", "end_turn"}, sc.Def.Actions)
	assert.Empty(t, sc.Warnings)
}

func TestLoadFile_LuaHelpersAndWarnings(t *testing.T) {
	scs, err := LoadFile("testdata/scenarios/act1.lua")
	require.NoError(t, err)
	require.Len(t, scs, 2)

	starter := scs[0]
	assert.Equal(t, uint64(7), starter.Def.Seed)
	assert.Len(t, starter.Deck, 10)
	assert.Equal(t, []string{"play 0", "end"}, starter.Def.Actions)

	louse := scs[1]
	assert.Equal(t, uint64(18446744073709551615), louse.Def.Seed)
	require.Len(t, louse.Deck, 11)
	assert.Equal(t, cards.Bash, louse.Deck[10].ID)
	assert.True(t, louse.Deck[10].Upgraded)
	assert.Equal(t, []string{
		`initial_state.deck[11]: unknown card "NOT_A_CARD" dropped`,
		"initial_state.potions: 3 potions, capacity 2; extra potions dropped",
	}, louse.Warnings)
	assert.Equal(t, []potions.ID{potions.FirePotion, potions.BlockPotion}, louse.Potions)
}

func TestScenario_Game(t *testing.T) {
	scs, err := LoadFile("testdata/scenarios/act1.lua")
	require.NoError(t, err)
	gc := scs[1].Game()

	assert.Equal(t, 11, gc.Ascension)
	assert.Equal(t, 75, gc.MaxHp)
	assert.Equal(t, 60, gc.CurHp)
	assert.Equal(t, 150, gc.Gold)
	assert.Equal(t, 2, gc.PotionCount)
	assert.Equal(t, 9, gc.Relics.Value(relics.PenNib))
	assert.True(t, gc.Relics.Has(relics.Vajra))
	assert.Len(t, gc.Deck, 11)

	// Each call builds an independent run.
	gc.Deck[0].Upgrade()
	assert.False(t, scs[1].Game().Deck[0].Upgraded)
}

func TestScenario_GameFloorReseeds(t *testing.T) {
	scs, err := LoadFile("testdata/scenarios/elites.yaml")
	require.NoError(t, err)
	require.Len(t, scs, 2)

	gc := scs[0].Game()
	want := game.New(gc.Class, 31, 0)
	want.SetFloor(6)
	assert.Equal(t, 6, gc.FloorNum)
	assert.Equal(t, want.Stream(game.StreamShuffle), gc.Stream(game.StreamShuffle))

	other := scs[0].GameWithSeed(99)
	assert.Equal(t, uint64(99), other.Seed)
}

func TestScenario_BuildsBattles(t *testing.T) {
	scs, err := LoadDir("testdata/scenarios")
	require.NoError(t, err)
	for _, sc := range scs {
		_, err := battle.New(sc.Game(), sc.Encounter)
		assert.NoError(t, err, sc.Def.Name)
	}
}

func TestLoadDir_Errors(t *testing.T) {
	_, err := LoadDir("testdata/missing")
	assert.Error(t, err)

	_, err = LoadDir(t.TempDir())
	assert.ErrorContains(t, err, "no scenario files")

	_, err = LoadDir("testdata/bad")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Bad Boss", ve.Scenario)
	assert.Equal(t, []string{"initial_state.encounter: SLIME_BOSS has no battle implementation"}, ve.Errors)
}

func TestLoadFile_UnknownFields(t *testing.T) {
	dir := t.TempDir()

	yml := writeFile(t, dir, "typo.yaml", "name: Typo\nseed: 1\ninitial_state:\n  encounter: CULTIST\n  dek: [STRIKE]\n")
	_, err := LoadFile(yml)
	assert.ErrorContains(t, err, "dek")

	lf := writeFile(t, dir, "typo.lua", `Scenario { name = "Typo", seeed = 1, initial_state = { encounter = "CULTIST", deck = { "STRIKE" } } }`)
	_, err = LoadFile(lf)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"seeed: unknown field"}, ve.Errors)
}

func TestLoadFile_LuaSandbox(t *testing.T) {
	dir := t.TempDir()
	for name, src := range map[string]string{
		"io.lua":     `io.open("/etc/passwd")`,
		"os.lua":     `os.exit(1)`,
		"dofile.lua": `dofile("x.lua")`,
		"random.lua": `local n = math.random(10)`,
	} {
		_, err := LoadFile(writeFile(t, dir, name, src))
		assert.Error(t, err, name)
	}

	_, err := LoadFile(writeFile(t, dir, "none.lua", `local x = 1`))
	assert.ErrorContains(t, err, "no Scenario")
}

func TestLoadFile_BadSeed(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadFile(writeFile(t, dir, "seed.lua",
		`Scenario { name = "Neg", seed = -4, initial_state = { encounter = "CULTIST", deck = { "STRIKE" } } }`))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"seed: must not be negative"}, ve.Errors)
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	_, err := LoadFile("testdata/scenarios/README.txt")
	assert.ErrorContains(t, err, "unsupported")
}

func TestFind(t *testing.T) {
	scs, err := LoadDir("testdata/scenarios")
	require.NoError(t, err)

	sc, ok := Find(scs, "jaw worm starter")
	require.True(t, ok)
	assert.Equal(t, monsters.EncounterJawWorm, sc.Encounter)

	_, ok = Find(scs, "nope")
	assert.False(t, ok)
}

func TestLoadDir_ShippedScenarios(t *testing.T) {
	scs, err := LoadDir("../scenarios")
	require.NoError(t, err)
	assert.Len(t, scs, 5)
	for _, sc := range scs {
		assert.Empty(t, sc.Warnings, sc.Def.Name)
		_, err := battle.New(sc.Game(), sc.Encounter)
		assert.NoError(t, err, sc.Def.Name)
	}
}
