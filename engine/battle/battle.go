// Package battle implements the per-fight state machine and the action
// engine. A BattleContext is a plain value: fixed arrays and no pointers, so
// copying one by assignment forks the whole fight, random streams included.
package battle

import (
	"errors"
	"fmt"

	"github.com/nathoo/spirecore/engine/cards"
	"github.com/nathoo/spirecore/engine/game"
	"github.com/nathoo/spirecore/engine/monsters"
	"github.com/nathoo/spirecore/engine/potions"
	"github.com/nathoo/spirecore/engine/relics"
	"github.com/nathoo/spirecore/engine/rng"
	"github.com/nathoo/spirecore/types"
)

const (
	MaxMonsters = 5
	MaxHandSize = 10
	// HandDrawCount is the number of cards drawn each turn before relics.
	HandDrawCount = 5
	baseEnergy    = 3
)

// ErrUnsupportedEncounter is returned by Init for encounters without a
// roster implementation.
var ErrUnsupportedEncounter = errors.New("unsupported encounter")

// Player is the combat-only view of the player.
type Player struct {
	CurHp int
	MaxHp int
	Gold  int
	Block int

	Energy        int
	EnergyPerTurn int

	Strength  int
	Dexterity int

	Vulnerable int
	Weak       int
	Frail      int
	// Debuffs applied during the monster turn skip the decay at the end of
	// that same round.
	vulnFresh  bool
	weakFresh  bool
	frailFresh bool

	Artifact    int
	Intangible  int
	Metallicize int
	DemonForm   int
	Regen       int
	Thorns      int
	Vigor       int

	// FlexLoss and SpeedLoss are temporary stats removed at end of turn.
	FlexLoss  int
	SpeedLoss int

	Barricade bool
	Entangled bool
	NoDraw    bool

	redSkullActive bool
	puzzleUsed     bool
}

// BattleContext is the full state of one fight.
type BattleContext struct {
	Seed      uint64
	Ascension int
	Floor     int
	Encounter monsters.Encounter

	Outcome types.Outcome
	Turn    int

	Player Player
	Relics relics.Set

	Potions        [game.MaxPotionSlots]potions.ID
	PotionCount    int
	PotionCapacity int

	Monsters     [MaxMonsters]Monster
	MonsterCount int

	Draw    Pile
	Hand    Pile
	Discard Pile
	Exhaust Pile
	// DeckSize is the number of card instances the fight started with.
	DeckSize int

	CardsPlayedThisTurn   int
	AttacksPlayedThisTurn int
	SkillsPlayedThisTurn  int

	inMonsterTurn bool
	streams       [game.StreamCount]rng.Random
}

// New builds a battle for encounter e from the run state in gc.
func New(gc *game.GameContext, e monsters.Encounter) (*BattleContext, error) {
	bc := &BattleContext{}
	if err := bc.Init(gc, e); err != nil {
		return nil, err
	}
	return bc, nil
}

// Init resets bc to the opening state of a fight against e. The run state
// is only read; results flow back through Result.
func (bc *BattleContext) Init(gc *game.GameContext, e monsters.Encounter) error {
	if !e.Supported() {
		return fmt.Errorf("battle init %s: %w", e, ErrUnsupportedEncounter)
	}
	if len(gc.Deck) > cards.MaxDeckSize {
		return fmt.Errorf("battle init: deck has %d cards, limit %d", len(gc.Deck), cards.MaxDeckSize)
	}

	*bc = BattleContext{
		Seed:           gc.Seed,
		Ascension:      gc.Ascension,
		Floor:          gc.FloorNum,
		Encounter:      e,
		Relics:         relics.SetFrom(&gc.Relics),
		Potions:        gc.Potions,
		PotionCount:    gc.PotionCount,
		PotionCapacity: gc.PotionCapacity,
	}
	for _, s := range game.BattleStreams() {
		bc.streams[s] = gc.Stream(s)
	}

	p := &bc.Player
	p.CurHp = gc.CurHp
	p.MaxHp = gc.MaxHp
	p.Gold = gc.Gold
	p.EnergyPerTurn = baseEnergy
	for _, r := range []relics.ID{relics.Ectoplasm, relics.Sozu, relics.PhilosophersStone} {
		if bc.Relics.Has(r) {
			p.EnergyPerTurn++
		}
	}

	bc.initMonsters(e)

	for _, c := range gc.Deck {
		bc.Draw.Push(c)
	}
	bc.DeckSize = bc.Draw.Len()
	rng.ShuffleWith(bc.Draw.slice(), &bc.streams[game.StreamShuffle])

	bc.applyBattleStartRelics()
	bc.startPlayerTurn()
	return nil
}

func (bc *BattleContext) initMonsters(e monsters.Encounter) {
	ids := monsters.Members(e, &bc.streams[game.StreamMisc])
	for i, id := range ids {
		m := &bc.Monsters[i]
		m.init(id, bc.Ascension, &bc.streams[game.StreamMonsterHp])
		m.rng = rng.New(bc.streams[game.StreamAI].RandomLong())
	}
	bc.MonsterCount = len(ids)
	for i := 0; i < bc.MonsterCount; i++ {
		bc.rollMove(i)
	}
}

func (bc *BattleContext) applyBattleStartRelics() {
	p := &bc.Player
	r := &bc.Relics
	if r.Has(relics.Anchor) {
		p.Block += 10
	}
	if r.Has(relics.Vajra) {
		p.Strength++
	}
	if r.Has(relics.Girya) {
		p.Strength += r.Value(relics.Girya)
	}
	if r.Has(relics.OddlySmoothStone) {
		p.Dexterity++
	}
	if r.Has(relics.BronzeScales) {
		p.Thorns += 3
	}
	if r.Has(relics.Akabeko) {
		p.Vigor += 8
	}
	if r.Has(relics.BloodVial) {
		bc.healPlayer(2)
	}
	if r.Has(relics.BagOfMarbles) {
		for i := 0; i < bc.MonsterCount; i++ {
			bc.Monsters[i].Vulnerable++
		}
	}
	if r.Has(relics.PhilosophersStone) {
		for i := 0; i < bc.MonsterCount; i++ {
			bc.Monsters[i].Strength++
		}
	}
	bc.updateRedSkull()
}

// Stream returns a copy of one of the battle's random streams.
func (bc *BattleContext) Stream(s game.Stream) rng.Random {
	return bc.streams[s]
}

// Counter returns the draw counter of a battle stream.
func (bc *BattleContext) Counter(s game.Stream) int32 {
	return bc.streams[s].Counter
}

// IsOver reports whether the fight has a decided outcome.
func (bc *BattleContext) IsOver() bool {
	return bc.Outcome != types.Undecided
}

// CardCount is the number of card instances across the four piles.
func (bc *BattleContext) CardCount() int {
	return bc.Draw.Len() + bc.Hand.Len() + bc.Discard.Len() + bc.Exhaust.Len()
}

// AliveMonsters returns the indexes of monsters that can be targeted.
func (bc *BattleContext) AliveMonsters() []int {
	var out []int
	for i := 0; i < bc.MonsterCount; i++ {
		if bc.Monsters[i].IsAlive() {
			out = append(out, i)
		}
	}
	return out
}

// Concede ends an undecided fight as a loss.
func (bc *BattleContext) Concede() {
	bc.setOutcome(types.PlayerLoss)
}

func (bc *BattleContext) setOutcome(o types.Outcome) {
	if bc.Outcome == types.Undecided {
		bc.Outcome = o
	}
}

// Result packages the fight's effect on the run.
func (bc *BattleContext) Result() game.BattleResult {
	res := game.BattleResult{
		Outcome:     bc.Outcome,
		CurHp:       bc.Player.CurHp,
		MaxHp:       bc.Player.MaxHp,
		Gold:        bc.Player.Gold,
		Potions:     bc.Potions,
		PotionCount: bc.PotionCount,
		RelicValues: map[relics.ID]int{},
		Streams:     map[game.Stream]rng.Random{},
	}
	for i := 0; i < bc.MonsterCount; i++ {
		if bc.Monsters[i].Escaped {
			res.StolenGold += bc.Monsters[i].StolenGold
		}
	}
	bc.Relics.Each(func(id relics.ID, v int) {
		res.RelicValues[id] = v
	})
	for _, s := range game.BattleStreams() {
		res.Streams[s] = bc.streams[s]
	}
	return res
}

// ExitBattle folds the fight back into gc.
func (bc *BattleContext) ExitBattle(gc *game.GameContext) {
	gc.ApplyBattleResult(bc.Result())
}
