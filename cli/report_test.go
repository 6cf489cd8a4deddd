package cli

import (
	"strings"
	"testing"

	"github.com/nathoo/spirecore/engine"
	"github.com/nathoo/spirecore/engine/agent"
	"github.com/nathoo/spirecore/engine/monsters"
	"github.com/nathoo/spirecore/loader"
	"github.com/nathoo/spirecore/types"
)

func starterScenario(t *testing.T, actions ...string) *loader.Scenario {
	t.Helper()
	sc, err := loader.Compile(types.ScenarioDef{
		Name:      "Jaw Worm Starter",
		Seed:      1984,
		Floor:     1,
		Encounter: "JAW_WORM",
		Deck: []string{
			"STRIKE", "STRIKE", "STRIKE", "STRIKE", "STRIKE",
			"DEFEND", "DEFEND", "DEFEND", "DEFEND", "BASH",
		},
		Relics:  []string{"BURNING_BLOOD"},
		Actions: actions,
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return sc
}

func TestSnapshot_Script(t *testing.T) {
	out, err := Snapshot(starterScenario(t, "end_turn", "end_turn"), nil)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"=== COMBAT: \"Jaw Worm Starter\" ===\nAgent: script\nSeed: 1984 | Ascension: 0 | Floor: 1\n\nInitial State:\n",
		"  Player: 80/80 HP, 3 Energy\n",
		"  Enemy: Jaw Worm (",
		" - Intent: Chomp\n",
		"  Deck: 5 cards remaining\n",
		"  Relics: Burning Blood\n",
		"Combat Progression:\n  Turn 1: end_turn\n",
		"  Turn 2: end_turn\n",
		"Final Result:\n  Outcome: UNDECIDED\n",
		"  Turns: 3\n",
		"  RNG Counters: shuffle=",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestSnapshot_Deterministic(t *testing.T) {
	a, err := Snapshot(starterScenario(t, "play_card_0@0", "end_turn", "end_turn"), nil)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Snapshot(starterScenario(t, "play_card_0@0", "end_turn", "end_turn"), nil)
	if a != b {
		t.Errorf("snapshots differ:\n%s\n---\n%s", a, b)
	}
}

func TestSnapshot_Agent(t *testing.T) {
	out, err := Snapshot(starterScenario(t), agent.NewSimple())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Agent: simple\n") {
		t.Errorf("missing agent line:\n%s", out)
	}
	if strings.Contains(out, "Outcome: UNDECIDED") {
		t.Error("the agent should finish the fight")
	}
	if !strings.Contains(out, "Combat ended!") {
		t.Error("missing end marker")
	}
}

func TestRunScript_SkipsBadActions(t *testing.T) {
	eng, err := engine.New(strikeRun(), monsters.EncounterJawWorm)
	if err != nil {
		t.Fatal(err)
	}
	lines := RunScript(eng, []string{"play_card_9", "hello", "play 0", "end_turn"})

	if !strings.HasPrefix(lines[0], "  Invalid action: play_card_9 (") {
		t.Errorf("line 0: %q", lines[0])
	}
	if lines[1] != "  Unknown action: hello (skipped)" {
		t.Errorf("line 1: %q", lines[1])
	}
	if lines[2] != "  Turn 1: play_card_0@0" || lines[3] != "    You play Strike on Jaw Worm." {
		t.Errorf("play lines: %q", lines[2:4])
	}
	if len(eng.History) != 2 || eng.Battle.Turn != 2 {
		t.Errorf("history %v, turn %d", eng.History, eng.Battle.Turn)
	}
}

func TestRunScript_StopsAtEnd(t *testing.T) {
	eng, err := engine.New(strikeRun(), monsters.EncounterJawWorm)
	if err != nil {
		t.Fatal(err)
	}
	eng.Concede()
	if lines := RunScript(eng, []string{"end_turn"}); len(lines) != 0 {
		t.Errorf("lines: %q", lines)
	}
}

func TestAutoplay_Limit(t *testing.T) {
	eng, err := engine.New(strikeRun(), monsters.EncounterJawWorm)
	if err != nil {
		t.Fatal(err)
	}
	if lines := Autoplay(eng, 3); len(lines) != 0 {
		t.Errorf("no policy should play nothing, got %q", lines)
	}

	eng.Policy = agent.NewSimple()
	Autoplay(eng, 2)
	if len(eng.History) != 2 {
		t.Errorf("expected 2 actions, got %d", len(eng.History))
	}
}
