package replay

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/nathoo/spirecore/engine/agent"
	"github.com/nathoo/spirecore/engine/battle"
	"github.com/nathoo/spirecore/engine/game"
	"github.com/nathoo/spirecore/engine/monsters"
	"github.com/nathoo/spirecore/types"
)

func record(t *testing.T, seed uint64, e monsters.Encounter) *Record {
	t.Helper()
	bc, err := battle.New(game.NewRun(types.Ironclad, seed, 0), e)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	a := agent.New(agent.NewSimple())
	a.PlayoutBattle(bc)
	return NewRecord(bc, a.Policy.Name(), a.History)
}

func TestRoundTrip(t *testing.T) {
	rec := record(t, 1984, monsters.EncounterJawWorm)

	data, err := Save(rec)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(data)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got.Seed != 1984 || got.Encounter != "JAW_WORM" || got.Agent != "simple" {
		t.Errorf("header: %+v", got)
	}
	if len(got.Actions) != len(rec.Actions) || len(got.Actions) == 0 {
		t.Fatalf("actions: %d vs %d", len(got.Actions), len(rec.Actions))
	}
	if got.Counters["shuffle"] != rec.Counters["shuffle"] || len(got.Counters) != 6 {
		t.Errorf("counters: %v", got.Counters)
	}
}

func TestVerify_FreshRecord(t *testing.T) {
	for _, e := range []monsters.Encounter{monsters.EncounterJawWorm, monsters.EncounterThreeLouse, monsters.EncounterLooter} {
		rec := record(t, 77, e)
		if err := Verify(rec, game.NewRun(types.Ironclad, 77, 0)); err != nil {
			t.Errorf("%s: %v", e, err)
		}
	}
}

func TestVerify_DetectsTampering(t *testing.T) {
	rec := record(t, 1984, monsters.EncounterJawWorm)
	rec.FinalHp++
	err := Verify(rec, game.NewRun(types.Ironclad, 1984, 0))
	if !errors.Is(err, ErrMismatch) {
		t.Errorf("expected ErrMismatch, got %v", err)
	}

	rec = record(t, 1984, monsters.EncounterJawWorm)
	rec.Counters["shuffle"] += 5
	err = Verify(rec, game.NewRun(types.Ironclad, 1984, 0))
	if !errors.Is(err, ErrMismatch) {
		t.Errorf("expected ErrMismatch on counters, got %v", err)
	}
}

func TestVerify_WrongSeed(t *testing.T) {
	rec := record(t, 1984, monsters.EncounterJawWorm)
	err := Verify(rec, game.NewRun(types.Ironclad, 1985, 0))
	if err == nil {
		t.Error("a different seed should not reproduce the record")
	}
}

func TestVerify_ConcededRecord(t *testing.T) {
	bc, err := battle.New(game.NewRun(types.Ironclad, 5, 0), monsters.EncounterCultist)
	if err != nil {
		t.Fatal(err)
	}
	bc.Step(battle.EndTurn())
	bc.Concede()
	rec := NewRecord(bc, "manual", []battle.Action{battle.EndTurn()})
	if !rec.Conceded() {
		t.Fatal("record should be conceded")
	}
	if err := Verify(rec, game.NewRun(types.Ironclad, 5, 0)); err != nil {
		t.Errorf("conceded record: %v", err)
	}
}

func TestRun_BadAction(t *testing.T) {
	rec := &Record{Version: Version, Encounter: "JAW_WORM", Actions: []string{"fly away"}}
	_, err := Run(rec, game.NewRun(types.Ironclad, 1, 0))
	if !errors.Is(err, ErrAction) {
		t.Errorf("expected ErrAction, got %v", err)
	}

	rec.Actions = []string{"play_card_9"}
	_, err = Run(rec, game.NewRun(types.Ironclad, 1, 0))
	if !errors.Is(err, ErrAction) {
		t.Errorf("expected ErrAction for a missing card, got %v", err)
	}
}

func TestRun_UnknownEncounter(t *testing.T) {
	rec := &Record{Version: Version, Encounter: "BOSS_RUSH"}
	if _, err := Run(rec, game.NewRun(types.Ironclad, 1, 0)); !errors.Is(err, ErrEncounter) {
		t.Errorf("expected ErrEncounter, got %v", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load([]byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
	data, _ := json.Marshal(map[string]any{"version": 99})
	if _, err := Load(data); !errors.Is(err, ErrVersion) {
		t.Errorf("expected ErrVersion, got %v", err)
	}
}

func TestLoad_NilCollections(t *testing.T) {
	rec, err := Load([]byte(`{"version": 1, "encounter": "CULTIST"}`))
	if err != nil {
		t.Fatal(err)
	}
	if rec.Actions == nil || rec.Counters == nil {
		t.Error("collections should be non-nil after load")
	}
}
