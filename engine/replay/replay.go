// Package replay implements JSON replay records of a single battle and
// their verification against a fresh battle.
package replay

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nathoo/spirecore/engine/battle"
	"github.com/nathoo/spirecore/engine/game"
	"github.com/nathoo/spirecore/engine/monsters"
	"github.com/nathoo/spirecore/engine/parser"
	"github.com/nathoo/spirecore/types"
)

// Version is the record format version written by Save.
const Version = 1

// Record is the JSON-serializable replay format.
type Record struct {
	Version   int              `json:"version"`
	Seed      uint64           `json:"seed"`
	Ascension int              `json:"ascension"`
	Floor     int              `json:"floor"`
	Encounter string           `json:"encounter"`
	Agent     string           `json:"agent,omitempty"`
	Actions   []string         `json:"actions"`
	Outcome   string           `json:"outcome"`
	FinalHp   int              `json:"final_hp"`
	Turn      int              `json:"turn"`
	Counters  map[string]int32 `json:"counters"`
}

var (
	ErrVersion   = errors.New("unsupported replay version")
	ErrEncounter = errors.New("replay names an unknown encounter")
	ErrAction    = errors.New("replay action rejected")
	ErrMismatch  = errors.New("replay does not reproduce")
)

// NewRecord captures a finished battle and the actions that produced it.
func NewRecord(bc *battle.BattleContext, agentName string, history []battle.Action) *Record {
	rec := &Record{
		Version:   Version,
		Seed:      bc.Seed,
		Ascension: bc.Ascension,
		Floor:     bc.Floor,
		Encounter: bc.Encounter.String(),
		Agent:     agentName,
		Actions:   make([]string, 0, len(history)),
		Outcome:   bc.Outcome.String(),
		FinalHp:   bc.Player.CurHp,
		Turn:      bc.Turn,
		Counters:  counters(bc),
	}
	for _, a := range history {
		rec.Actions = append(rec.Actions, a.String())
	}
	return rec
}

func counters(bc *battle.BattleContext) map[string]int32 {
	out := map[string]int32{}
	for _, s := range game.BattleStreams() {
		out[s.String()] = bc.Counter(s)
	}
	return out
}

// Save serializes a record to indented JSON.
func Save(rec *Record) ([]byte, error) {
	return json.MarshalIndent(rec, "", "  ")
}

// Load deserializes JSON bytes into a Record.
func Load(data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	if rec.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, rec.Version)
	}
	// Ensure collections are never nil after load.
	if rec.Actions == nil {
		rec.Actions = []string{}
	}
	if rec.Counters == nil {
		rec.Counters = map[string]int32{}
	}
	return &rec, nil
}

// Run replays the record's actions against a fresh battle built from gc.
func Run(rec *Record, gc *game.GameContext) (*battle.BattleContext, error) {
	e := monsters.EncounterFromName(rec.Encounter)
	if e == monsters.EncounterInvalid {
		return nil, fmt.Errorf("%w: %q", ErrEncounter, rec.Encounter)
	}
	bc, err := battle.New(gc, e)
	if err != nil {
		return nil, err
	}
	for i, s := range rec.Actions {
		a, ok := battle.FromCommand(parser.Parse(s))
		if !ok {
			return bc, fmt.Errorf("%w: step %d %q does not parse", ErrAction, i, s)
		}
		if err := bc.Step(a); err != nil {
			return bc, fmt.Errorf("%w: step %d %s: %v", ErrAction, i, s, err)
		}
	}
	return bc, nil
}

// Verify replays rec from gc and checks that outcome, hp, turn and every
// recorded counter come out the same.
func Verify(rec *Record, gc *game.GameContext) error {
	bc, err := Run(rec, gc)
	if err != nil {
		return err
	}
	if rec.Conceded() {
		bc.Concede()
	}
	if got := bc.Outcome.String(); got != rec.Outcome {
		return fmt.Errorf("%w: outcome %s, recorded %s", ErrMismatch, got, rec.Outcome)
	}
	if bc.Player.CurHp != rec.FinalHp {
		return fmt.Errorf("%w: hp %d, recorded %d", ErrMismatch, bc.Player.CurHp, rec.FinalHp)
	}
	if bc.Turn != rec.Turn {
		return fmt.Errorf("%w: turn %d, recorded %d", ErrMismatch, bc.Turn, rec.Turn)
	}
	got := counters(bc)
	for name, want := range rec.Counters {
		if got[name] != want {
			return fmt.Errorf("%w: %s counter %d, recorded %d", ErrMismatch, name, got[name], want)
		}
	}
	return nil
}

// Conceded reports whether the recorded battle was lost without the player
// dying, which happens when a playout hits a ceiling.
func (r *Record) Conceded() bool {
	return r.Outcome == types.PlayerLoss.String() && r.FinalHp > 0
}
