package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nathoo/spirecore/engine"
	"github.com/nathoo/spirecore/engine/agent"
	"github.com/nathoo/spirecore/engine/cards"
	"github.com/nathoo/spirecore/engine/game"
	"github.com/nathoo/spirecore/engine/monsters"
	"github.com/nathoo/spirecore/types"
)

// strikeRun is a run with a deck of five Strikes, so the opening hand is
// known.
func strikeRun() *game.GameContext {
	gc := game.New(types.Ironclad, 42, 0)
	for i := 0; i < 5; i++ {
		gc.Deck = append(gc.Deck, cards.New(cards.StrikeRed))
	}
	return gc
}

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	eng, err := engine.New(strikeRun(), monsters.EncounterJawWorm)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	var out bytes.Buffer
	c := &CLI{
		Engine:  eng,
		NewGame: strikeRun,
		In:      strings.NewReader(input),
		Out:     &out,
		SaveDir: t.TempDir(),
	}
	return c, &out
}

func TestCLI_ShowsBattle(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Battle: Jaw Worm (seed 42, ascension 0, floor 0).") {
		t.Errorf("expected battle header, got:\n%s", output)
	}
	if !strings.Contains(output, "Hand: 0 Strike (1)") {
		t.Error("expected the hand in the opening status")
	}
	if !strings.Contains(output, "Jaw Worm intends Chomp") {
		t.Error("expected the opening intent")
	}
	if !strings.Contains(output, "[Goodbye.]") {
		t.Error("expected goodbye")
	}
}

func TestCLI_PlayCard(t *testing.T) {
	c, out := newTestCLI(t, "play strike\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "You play Strike on Jaw Worm.") {
		t.Errorf("expected play narration, got:\n%s", out.String())
	}
	if len(c.Engine.History) != 1 {
		t.Errorf("expected 1 action, got %d", len(c.Engine.History))
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "/help\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"/save", "/load", "/auto", "/quit", "play <card>"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in help output", want)
		}
	}
}

func TestCLI_SaveAndLoad(t *testing.T) {
	c, out := newTestCLI(t, "play 0\nplay 0\n/save test\n/restart\n/load test\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "[Replay saved to test (2 actions).]") {
		t.Errorf("expected save confirmation, got:\n%s", output)
	}
	if !strings.Contains(output, "[Replay loaded from test (2 actions, turn 1).]") {
		t.Errorf("expected load confirmation, got:\n%s", output)
	}
	if len(c.Engine.History) != 2 {
		t.Errorf("loaded engine has %d actions, want 2", len(c.Engine.History))
	}
	if c.Engine.Battle.Player.Energy != 1 {
		t.Errorf("energy after two strikes: %d", c.Engine.Battle.Player.Energy)
	}
}

func TestCLI_LoadIntoOtherBattle(t *testing.T) {
	c, out := newTestCLI(t, "/save test\n/quit\n")
	c.Run()

	other, err := engine.New(strikeRun(), monsters.EncounterCultist)
	if err != nil {
		t.Fatal(err)
	}
	c.Engine = other
	c.In = strings.NewReader("/load test\n/quit\n")
	c.Run()
	if !strings.Contains(out.String(), "replay is JAW_WORM with seed 42, this battle is CULTIST") {
		t.Errorf("expected mismatch message, got:\n%s", out.String())
	}
	if c.Engine != other {
		t.Error("a failed load must keep the current battle")
	}
}

func TestCLI_LoadNonexistent(t *testing.T) {
	c, out := newTestCLI(t, "/load nope\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Load failed") {
		t.Error("expected load failure message")
	}
}

func TestCLI_RestartUnavailable(t *testing.T) {
	c, out := newTestCLI(t, "/restart\n/load\n/quit\n")
	c.NewGame = nil
	c.Run()

	output := out.String()
	if !strings.Contains(output, "[Restart unavailable.]") || !strings.Contains(output, "[Load unavailable.]") {
		t.Errorf("output:\n%s", output)
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI(t, "/foo\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Unknown command: /foo") {
		t.Error("expected unknown command message")
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out := newTestCLI(t, "/trace\nplay 0\n/trace\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Trace output enabled.") {
		t.Error("expected trace enabled message")
	}
	if !strings.Contains(output, "[[trace] Action: play_card_0@0]") {
		t.Errorf("expected traced action, got:\n%s", output)
	}
	if !strings.Contains(output, "Trace output disabled.") {
		t.Error("expected trace disabled message")
	}
}

func TestCLI_StateCommand(t *testing.T) {
	c, out := newTestCLI(t, "/state\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "[Turn: 1]") {
		t.Error("expected turn in state output")
	}
	if !strings.Contains(output, "shuffle=") {
		t.Error("expected RNG counters in state output")
	}
}

func TestCLI_EmptyInput(t *testing.T) {
	c, out := newTestCLI(t, "\n\n# a comment\n/quit\n")
	c.Run()

	if strings.Contains(out.String(), "What do you want to do?") {
		t.Error("empty lines should be silently skipped by CLI")
	}
	if len(c.Engine.CommandLog) != 1 {
		t.Errorf("only the opening status should be logged, got %v", c.Engine.CommandLog)
	}
}

func TestCLI_Again_RepeatsLastCommand(t *testing.T) {
	c, out := newTestCLI(t, "play 0\nagain\n/quit\n")
	c.Run()

	if n := strings.Count(out.String(), "You play Strike"); n != 2 {
		t.Errorf("expected 2 plays, got %d", n)
	}
}

func TestCLI_G_RepeatsLastCommand(t *testing.T) {
	c, out := newTestCLI(t, "play 0\ng\ng\n/quit\n")
	c.Run()

	if n := strings.Count(out.String(), "You play Strike"); n != 3 {
		t.Errorf("expected 3 plays, got %d", n)
	}
}

func TestCLI_Again_NothingToRepeat(t *testing.T) {
	c, out := newTestCLI(t, "again\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Nothing to repeat.") {
		t.Error("expected 'Nothing to repeat' when no prior command")
	}
}

func TestCLI_SuggestAndAuto(t *testing.T) {
	c, out := newTestCLI(t, "/suggest\n/auto\n/quit\n")
	c.Run()
	if !strings.Contains(out.String(), "[No suggestion.]") || !strings.Contains(out.String(), "[No policy configured.]") {
		t.Errorf("output:\n%s", out.String())
	}

	c, out = newTestCLI(t, "/suggest\n/auto 1\n/auto x\n/auto\n/quit\n")
	c.Engine.Policy = agent.NewSimple()
	c.Run()

	output := out.String()
	if !strings.Contains(output, "simple suggests ") {
		t.Errorf("expected a suggestion, got:\n%s", output)
	}
	if !strings.Contains(output, `[Bad action count "x".]`) {
		t.Error("expected bad count message")
	}
	if !c.Engine.Battle.IsOver() {
		t.Error("/auto should play the battle out")
	}
	if !strings.Contains(output, "Combat ended!") {
		t.Error("expected the end of the fight")
	}
}

func TestCLI_Concede(t *testing.T) {
	c, out := newTestCLI(t, "/concede\nplay 0\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "You concede on turn 1.") {
		t.Errorf("output:\n%s", output)
	}
	if !strings.Contains(output, "The battle is over.") {
		t.Error("commands after the end should be refused")
	}
	if c.Engine.Game.Outcome != types.PlayerLoss {
		t.Error("conceding loses the run")
	}
}
