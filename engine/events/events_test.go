package events

import (
	"strings"
	"testing"

	"github.com/nathoo/spirecore/engine/battle"
	"github.com/nathoo/spirecore/engine/game"
	"github.com/nathoo/spirecore/engine/monsters"
	"github.com/nathoo/spirecore/types"
)

func newBattle(t *testing.T, e monsters.Encounter) *battle.BattleContext {
	t.Helper()
	bc, err := battle.New(game.NewRun(types.Ironclad, 1984, 0), e)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	return bc
}

func kinds(evs []Event) []Type {
	out := make([]Type, len(evs))
	for i, e := range evs {
		out[i] = e.Type
	}
	return out
}

func TestDiff_NoChange(t *testing.T) {
	bc := newBattle(t, monsters.EncounterJawWorm)
	before := *bc
	if evs := Diff(&before, bc); len(evs) != 0 {
		t.Errorf("expected no events, got %v", kinds(evs))
	}
}

func TestDiff_MonsterDamagedAndDied(t *testing.T) {
	bc := newBattle(t, monsters.EncounterJawWorm)
	before := *bc
	bc.Monsters[0].CurHp -= 6

	evs := Diff(&before, bc)
	if len(evs) != 1 || evs[0].Type != MonsterDamaged || evs[0].Amount != 6 || evs[0].Target != 0 {
		t.Fatalf("got %+v", evs)
	}
	if !strings.HasPrefix(evs[0].Text, "Jaw Worm loses 6 hp") {
		t.Errorf("text: %q", evs[0].Text)
	}

	before = *bc
	bc.Monsters[0].CurHp = 0
	evs = Diff(&before, bc)
	if got := kinds(evs); len(got) != 2 || got[0] != MonsterDamaged || got[1] != MonsterDied {
		t.Errorf("got %v", got)
	}
}

func TestDiff_PlayerChanges(t *testing.T) {
	bc := newBattle(t, monsters.EncounterCultist)
	before := *bc
	bc.Player.CurHp -= 5
	bc.Player.Block += 8
	bc.Player.Gold -= 15

	evs := Diff(&before, bc)
	want := []Type{PlayerDamaged, PlayerBlock, GoldChanged}
	got := kinds(evs)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: got %s, want %s", i, got[i], want[i])
		}
	}
	if evs[2].Amount != -15 || evs[2].Text != "You lose 15 gold." {
		t.Errorf("gold event: %+v", evs[2])
	}
}

func TestDiff_EndTurn(t *testing.T) {
	bc := newBattle(t, monsters.EncounterJawWorm)
	before := *bc
	if err := bc.Step(battle.EndTurn()); err != nil {
		t.Fatal(err)
	}

	evs := Diff(&before, bc)
	got := kinds(evs)
	if len(got) != 3 || got[0] != PlayerDamaged || got[1] != TurnStarted || got[2] != Intent {
		t.Fatalf("got %v", got)
	}
	if evs[0].Amount != 11 {
		t.Errorf("chomp: %d", evs[0].Amount)
	}
	if evs[1].Amount != 2 {
		t.Errorf("turn: %d", evs[1].Amount)
	}
}

func TestDiff_BattleEnded(t *testing.T) {
	bc := newBattle(t, monsters.EncounterCultist)
	before := *bc
	bc.Concede()

	evs := Diff(&before, bc)
	if len(evs) != 1 || evs[0].Type != BattleEnded {
		t.Fatalf("got %+v", evs)
	}
	if !strings.Contains(evs[0].Text, "concede") {
		t.Errorf("text: %q", evs[0].Text)
	}
}

func TestIntents(t *testing.T) {
	bc := newBattle(t, monsters.EncounterJawWorm)
	evs := Intents(bc)
	if len(evs) != 1 {
		t.Fatalf("got %d intents", len(evs))
	}
	if evs[0].Amount != 11 || evs[0].Text != "Jaw Worm intends Chomp for 11." {
		t.Errorf("intent: %+v", evs[0])
	}
}

func TestDiff_DoesNotMutate(t *testing.T) {
	bc := newBattle(t, monsters.EncounterJawWorm)
	before := *bc
	bc.Monsters[0].CurHp -= 3
	snapshot := *bc
	Diff(&before, bc)
	if *bc != snapshot {
		t.Error("Diff changed its input")
	}
}
