package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/nathoo/spirecore/engine/agent"
	"github.com/nathoo/spirecore/engine/battle"
	"github.com/nathoo/spirecore/engine/cards"
	"github.com/nathoo/spirecore/engine/game"
	"github.com/nathoo/spirecore/engine/monsters"
	"github.com/nathoo/spirecore/engine/resolve"
	"github.com/nathoo/spirecore/types"
)

// strikeEngine fights e with a deck of five Strikes, so the opening hand is
// known.
func strikeEngine(t *testing.T, e monsters.Encounter) *Engine {
	t.Helper()
	gc := game.New(types.Ironclad, 42, 0)
	for i := 0; i < 5; i++ {
		gc.Deck = append(gc.Deck, cards.New(cards.StrikeRed))
	}
	eng, err := New(gc, e)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return eng
}

func hasLine(lines []string, substr string) bool {
	for _, l := range lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func TestNew_Unsupported(t *testing.T) {
	_, err := New(game.NewRun(types.Ironclad, 1, 0), monsters.EncounterSlimeBoss)
	if !errors.Is(err, battle.ErrUnsupportedEncounter) {
		t.Errorf("expected ErrUnsupportedEncounter, got %v", err)
	}
}

func TestNew_EntersBattle(t *testing.T) {
	eng := strikeEngine(t, monsters.EncounterGremlinNob)
	if eng.Game.ScreenState != types.ScreenBattle || eng.Game.CurRoom != types.RoomElite {
		t.Errorf("screen %v, room %v", eng.Game.ScreenState, eng.Game.CurRoom)
	}
}

func TestStep_EmptyInput(t *testing.T) {
	eng := strikeEngine(t, monsters.EncounterJawWorm)
	r := eng.Step("   ")
	if len(r.Output) != 1 || r.Output[0] != "What do you want to do?" {
		t.Errorf("output: %v", r.Output)
	}
	if len(eng.CommandLog) != 1 {
		t.Errorf("command log: %v", eng.CommandLog)
	}
}

func TestStep_Unknown(t *testing.T) {
	eng := strikeEngine(t, monsters.EncounterJawWorm)
	before := *eng.Battle
	r := eng.Step("xyzzy")
	if !hasLine(r.Output, "don't understand") {
		t.Errorf("output: %v", r.Output)
	}
	if *eng.Battle != before {
		t.Error("unknown command changed the battle")
	}
}

func TestStep_PlayByNameTargetsOnlyMonster(t *testing.T) {
	eng := strikeEngine(t, monsters.EncounterJawWorm)
	hp := eng.Battle.Monsters[0].CurHp

	r := eng.Step("play strike")
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	if r.Action != "play_card_0@0" {
		t.Errorf("action: %q", r.Action)
	}
	if r.Output[0] != "You play Strike on Jaw Worm." {
		t.Errorf("first line: %q", r.Output[0])
	}
	if !hasLine(r.Output, "Jaw Worm loses 6 hp") {
		t.Errorf("output: %v", r.Output)
	}
	if eng.Battle.Monsters[0].CurHp != hp-6 {
		t.Errorf("monster hp: %d, want %d", eng.Battle.Monsters[0].CurHp, hp-6)
	}
	if len(eng.History) != 1 {
		t.Errorf("history: %v", eng.History)
	}
}

func TestStep_RejectedActionLeavesBattle(t *testing.T) {
	eng := strikeEngine(t, monsters.EncounterJawWorm)
	before := *eng.Battle

	r := eng.Step("play 9")
	if !errors.Is(r.Err, battle.ErrHandIndex) {
		t.Errorf("expected ErrHandIndex, got %v", r.Err)
	}
	if *eng.Battle != before || len(eng.History) != 0 {
		t.Error("rejected action changed the battle")
	}
}

func TestStep_ResolveError(t *testing.T) {
	eng := strikeEngine(t, monsters.EncounterJawWorm)
	r := eng.Step("play bash")
	var nf *resolve.NotFoundError
	if !errors.As(r.Err, &nf) {
		t.Errorf("expected NotFoundError, got %v", r.Err)
	}
}

func TestStep_MultipleMonstersNeedTarget(t *testing.T) {
	eng := strikeEngine(t, monsters.EncounterTwoFungiBeasts)
	r := eng.Step("play 0")
	if !errors.Is(r.Err, battle.ErrInvalidTarget) {
		t.Errorf("expected ErrInvalidTarget, got %v", r.Err)
	}
	r = eng.Step("play 0 on 1")
	if r.Err != nil || r.Action != "play_card_0@1" {
		t.Errorf("action %q, err %v", r.Action, r.Err)
	}
}

func TestStep_MetaCommands(t *testing.T) {
	eng := strikeEngine(t, monsters.EncounterJawWorm)
	before := *eng.Battle

	status := eng.Step("status")
	if !strings.HasPrefix(status.Output[0], "Turn 1. HP 80/80") {
		t.Errorf("status: %v", status.Output)
	}
	if !hasLine(status.Output, "0 Strike (1)") || !hasLine(status.Output, "Jaw Worm intends Chomp") {
		t.Errorf("status: %v", status.Output)
	}

	acts := eng.Step("actions")
	if len(acts.Output) != len(eng.Battle.LegalActions()) {
		t.Errorf("actions: %v", acts.Output)
	}
	if !hasLine(acts.Output, "end_turn") {
		t.Errorf("actions should list end_turn: %v", acts.Output)
	}

	help := eng.Step("help")
	if len(help.Output) != len(HelpLines()) {
		t.Errorf("help: %v", help.Output)
	}

	if *eng.Battle != before || len(eng.History) != 0 {
		t.Error("meta commands changed the battle")
	}
}

func TestStep_EndTurn(t *testing.T) {
	eng := strikeEngine(t, monsters.EncounterJawWorm)
	r := eng.Step("end")
	if r.Err != nil {
		t.Fatal(r.Err)
	}
	if r.Output[0] != "You end your turn." || !hasLine(r.Output, "Turn 2.") {
		t.Errorf("output: %v", r.Output)
	}
	if eng.Battle.Turn != 2 {
		t.Errorf("turn: %d", eng.Battle.Turn)
	}
}

func TestStep_FightToTheEnd(t *testing.T) {
	eng := strikeEngine(t, monsters.EncounterCultist)

	var last types.Result
	for i := 0; i < 200 && !eng.Battle.IsOver(); i++ {
		last = eng.Step("play 0")
		if last.Err != nil {
			last = eng.Step("end")
		}
	}
	if !eng.Battle.IsOver() || !last.Done {
		t.Fatal("battle did not finish")
	}
	if eng.Game.CurHp != eng.Battle.Player.CurHp {
		t.Errorf("run hp %d, battle hp %d", eng.Game.CurHp, eng.Battle.Player.CurHp)
	}

	after := eng.Step("play 0")
	if !after.Done || !hasLine(after.Output, "The battle is over.") {
		t.Errorf("after the end: %v", after.Output)
	}
	if st := eng.Step("status"); len(st.Output) == 0 {
		t.Error("status should still answer")
	}
}

func TestConcede(t *testing.T) {
	eng := strikeEngine(t, monsters.EncounterJawWorm)
	r := eng.Concede()
	if !r.Done || eng.Battle.Outcome != types.PlayerLoss {
		t.Fatalf("outcome: %v", eng.Battle.Outcome)
	}
	if eng.Game.Outcome != types.PlayerLoss {
		t.Error("a conceded battle loses the run")
	}
	if !hasLine(r.Output, "concede") {
		t.Errorf("output: %v", r.Output)
	}
}

func TestSuggest(t *testing.T) {
	eng := strikeEngine(t, monsters.EncounterJawWorm)
	if _, ok := eng.Suggest(); ok {
		t.Error("no policy means no suggestion")
	}

	eng.Policy = agent.NewAutoClad()
	before := *eng.Battle
	a, ok := eng.Suggest()
	if !ok {
		t.Fatal("expected a suggestion")
	}
	if *eng.Battle != before {
		t.Error("Suggest changed the battle")
	}
	if err := eng.Battle.Validate(a); err != nil {
		t.Errorf("suggested %s: %v", a, err)
	}
	if r := eng.Apply(a); r.Err != nil {
		t.Errorf("apply: %v", r.Err)
	}
}
