package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nathoo/spirecore/engine"
	"github.com/nathoo/spirecore/engine/game"
	"github.com/nathoo/spirecore/engine/replay"
)

// ErrWrongBattle is returned by LoadReplay for a record of another fight.
var ErrWrongBattle = errors.New("replay is for another battle")

// SaveReplay writes the battle fought by eng as dir/name.json.
func SaveReplay(eng *engine.Engine, dir, name string) (*replay.Record, error) {
	agentName := ManualAgent
	if eng.Policy != nil {
		agentName = eng.Policy.Name()
	}
	rec := replay.NewRecord(eng.Battle, agentName, eng.History)
	data, err := replay.Save(rec)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(dir, name+".json"), data, 0o644); err != nil {
		return nil, err
	}
	return rec, nil
}

// LoadReplay reads dir/name.json and plays it on a fresh run from newGame.
// The record must be of the battle cur is fighting. The returned engine
// keeps cur's policy.
func LoadReplay(cur *engine.Engine, newGame func() *game.GameContext, dir, name string) (*engine.Engine, *replay.Record, error) {
	data, err := os.ReadFile(filepath.Join(dir, name+".json"))
	if err != nil {
		return nil, nil, err
	}
	rec, err := replay.Load(data)
	if err != nil {
		return nil, nil, err
	}

	gc := newGame()
	e := cur.Battle.Encounter
	if rec.Seed != gc.Seed || rec.Encounter != e.String() {
		return nil, nil, fmt.Errorf("%w: replay is %s with seed %d, this battle is %s with seed %d",
			ErrWrongBattle, rec.Encounter, rec.Seed, e, gc.Seed)
	}

	eng, err := engine.New(gc, e)
	if err != nil {
		return nil, nil, err
	}
	eng.Policy = cur.Policy
	for i, action := range rec.Actions {
		if r := eng.Step(action); r.Err != nil {
			return nil, nil, fmt.Errorf("%w: step %d %s: %v", replay.ErrAction, i, action, r.Err)
		}
	}
	if rec.Conceded() && !eng.Battle.IsOver() {
		eng.Concede()
	}
	return eng, rec, nil
}
