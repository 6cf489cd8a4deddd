// Package game holds the run-level state that survives between battles.
package game

import (
	"math"

	"github.com/nathoo/spirecore/engine/assert"
	"github.com/nathoo/spirecore/engine/cards"
	"github.com/nathoo/spirecore/engine/monsters"
	"github.com/nathoo/spirecore/engine/potions"
	"github.com/nathoo/spirecore/engine/relics"
	"github.com/nathoo/spirecore/engine/rng"
	"github.com/nathoo/spirecore/types"
)

// MaxPotionSlots is the size of the potion array. Only PotionCapacity slots
// are usable.
const MaxPotionSlots = 5

// Stream names one of the per-concern random streams.
type Stream uint8

const (
	StreamAI Stream = iota
	StreamCardRandom
	StreamCard
	StreamEvent
	StreamMathUtil
	StreamMerchant
	StreamMisc
	StreamMonsterHp
	StreamMonster
	StreamNeow
	StreamPotion
	StreamRelic
	StreamShuffle
	StreamTreasure

	StreamCount
)

var streamNames = [StreamCount]string{
	"ai", "cardRandom", "card", "event", "mathUtil", "merchant", "misc",
	"monsterHp", "monster", "neow", "potion", "relic", "shuffle", "treasure",
}

func (s Stream) String() string {
	if s >= StreamCount {
		return "unknown"
	}
	return streamNames[s]
}

// mathUtilOffset is subtracted from the run seed for the math utility stream.
const mathUtilOffset = 897897

// HpType selects how fractional hp amounts are rounded.
type HpType uint8

const (
	Floor HpType = iota
	Round
	Ceil
)

// ScreenInfo carries data for the current screen.
type ScreenInfo struct {
	Encounter  monsters.Encounter
	StolenGold int
}

// GameContext is the persistent state of one run.
type GameContext struct {
	Seed uint64

	streams [StreamCount]rng.Random

	Outcome     types.Outcome
	ScreenState types.ScreenState
	Info        ScreenInfo

	LastRoom types.Room
	CurRoom  types.Room

	CardRarityFactor int

	Act       int
	Ascension int
	FloorNum  int

	Class types.CharacterClass
	CurHp int
	MaxHp int
	Gold  int

	PotionCount    int
	PotionCapacity int
	Potions        [MaxPotionSlots]potions.ID

	Relics relics.Container
	Deck   []cards.Card
}

// New creates a run with an empty deck and no relics. Every stream starts
// from seed except the math utility stream, which starts from
// seed-897897.
func New(class types.CharacterClass, seed uint64, ascension int) *GameContext {
	gc := &GameContext{
		Seed:             seed,
		Class:            class,
		Ascension:        ascension,
		Act:              1,
		CardRarityFactor: 5,
		CurHp:            80,
		MaxHp:            80,
		Gold:             99,
		PotionCapacity:   3,
	}
	if ascension >= 11 {
		gc.PotionCapacity = 2
	}
	for i := range gc.Potions {
		gc.Potions[i] = potions.Empty
	}
	for s := Stream(0); s < StreamCount; s++ {
		gc.streams[s] = rng.New(seed)
	}
	gc.streams[StreamMathUtil] = rng.New(seed - mathUtilOffset)
	return gc
}

// NewRun creates a run with the class starter deck and relic.
func NewRun(class types.CharacterClass, seed uint64, ascension int) *GameContext {
	gc := New(class, seed, ascension)
	if ascension >= 14 {
		gc.MaxHp = 75
	}
	gc.CurHp = gc.MaxHp
	if ascension >= 6 {
		gc.CurHp = gc.FractionMaxHp(0.9, Round)
	}
	for i := 0; i < 5; i++ {
		gc.Deck = append(gc.Deck, cards.New(cards.StrikeRed))
	}
	for i := 0; i < 4; i++ {
		gc.Deck = append(gc.Deck, cards.New(cards.DefendRed))
	}
	gc.Deck = append(gc.Deck, cards.New(cards.Bash))
	gc.Relics.Add(relics.Instance{ID: relics.BurningBlood})
	return gc
}

// Stream returns a copy of a stream. The copy can be drawn from without
// affecting the run.
func (gc *GameContext) Stream(s Stream) rng.Random {
	return gc.streams[s]
}

// Counter returns the draw counter of a stream.
func (gc *GameContext) Counter(s Stream) int32 {
	return gc.streams[s].Counter
}

// SetFloor moves the run to floor n and reseeds the floor-scoped streams
// with seed+n.
func (gc *GameContext) SetFloor(n int) {
	gc.FloorNum = n
	floorSeed := gc.Seed + uint64(n)
	for _, s := range []Stream{StreamAI, StreamShuffle, StreamCardRandom, StreamMonsterHp} {
		gc.streams[s] = rng.New(floorSeed)
	}
}

func (gc *GameContext) HasRelic(r relics.ID) bool {
	return gc.Relics.Has(r)
}

// FractionMaxHp returns percent of max hp rounded per t.
func (gc *GameContext) FractionMaxHp(percent float32, t HpType) int {
	v := float64(float32(gc.MaxHp) * percent)
	switch t {
	case Round:
		return int(math.Round(v))
	case Ceil:
		return int(math.Ceil(v))
	default:
		return int(v)
	}
}

// ObtainGold adds gold. Ectoplasm blocks it and Bloody Idol heals 5.
func (gc *GameContext) ObtainGold(amount int) {
	if gc.HasRelic(relics.Ectoplasm) {
		return
	}
	gc.Gold += amount
	if gc.HasRelic(relics.BloodyIdol) {
		gc.PlayerHeal(5)
	}
}

// ObtainPotion fills the first empty slot. Full inventories and Sozu drop
// the potion silently.
func (gc *GameContext) ObtainPotion(p potions.ID) {
	if gc.HasRelic(relics.Sozu) || gc.PotionCount >= gc.PotionCapacity {
		return
	}
	for i := 0; i < gc.PotionCapacity; i++ {
		if gc.Potions[i] == potions.Empty {
			gc.Potions[i] = p
			gc.PotionCount++
			return
		}
	}
}

// ObtainCard adds count copies of c. Cards beyond the deck cap are dropped.
func (gc *GameContext) ObtainCard(c cards.Card, count int) {
	for i := 0; i < count && len(gc.Deck) < cards.MaxDeckSize; i++ {
		gc.Deck = append(gc.Deck, c)
	}
}

// RelicsOnEnterRoom fires the relics that trigger on entering a room.
func (gc *GameContext) RelicsOnEnterRoom(room types.Room) {
	if gc.HasRelic(relics.MawBank) && gc.Relics.Value(relics.MawBank) != 0 {
		gc.ObtainGold(12)
	}
	switch room {
	case types.RoomRest:
		if gc.HasRelic(relics.EternalFeather) {
			gc.PlayerHeal(len(gc.Deck) / 5 * 3)
		}
	case types.RoomEvent:
		if gc.HasRelic(relics.SsserpentHead) {
			gc.ObtainGold(50)
		}
	}
}

// RollCardRarity draws a reward rarity from the card stream. The draw is
// made even for boss rooms, which always return rare.
func (gc *GameContext) RollCardRarity(room types.Room) cards.Rarity {
	roll := gc.streams[StreamCard].Random(99) + gc.CardRarityFactor
	if room == types.RoomBoss {
		return cards.Rare
	}

	rareChance, uncommonChance := 3, 37
	if room == types.RoomElite {
		rareChance, uncommonChance = 10, 40
	}
	if room != types.RoomRest && gc.HasRelic(relics.NlothsGift) {
		rareChance *= 3
	}

	switch {
	case roll < rareChance:
		return cards.Rare
	case roll < rareChance+uncommonChance:
		return cards.Uncommon
	default:
		return cards.Common
	}
}

// RandomPotionIdx picks a filled slot at random, or -1 with no potions.
// The pick shuffles the filled slots with a raw misc draw, so the misc
// counter does not move.
func (gc *GameContext) RandomPotionIdx() int {
	if gc.PotionCount <= 0 {
		return -1
	}
	idxs := make([]int, 0, MaxPotionSlots)
	for i := 0; i < gc.PotionCapacity; i++ {
		if gc.Potions[i] != potions.Empty {
			idxs = append(idxs, i)
		}
	}
	jr := rng.NewJava(gc.streams[StreamMisc].NextLong())
	rng.Shuffle(idxs, &jr)
	return idxs[0]
}

// DamagePlayer applies out-of-combat damage.
func (gc *GameContext) DamagePlayer(amount int) {
	gc.PlayerLoseHp(amount)
}

// PlayerLoseHp removes hp, reduced by one with Tungsten Rod, and runs the
// death check when hp reaches zero.
func (gc *GameContext) PlayerLoseHp(amount int) {
	if gc.HasRelic(relics.TungstenRod) {
		amount--
	}
	if amount <= 0 {
		return
	}
	gc.CurHp -= amount
	if gc.CurHp <= 0 {
		gc.CurHp = 0
		gc.PlayerOnDie()
	}
}

// PlayerOnDie runs the death-prevention checks in priority order: Mark of
// the Bloom forbids revival, then a Fairy in a Bottle, then an unused Lizard
// Tail. Only when none apply is the run lost.
func (gc *GameContext) PlayerOnDie() {
	if gc.HasRelic(relics.MarkOfTheBloom) {
		gc.Outcome = types.PlayerLoss
		return
	}

	for i := 0; i < gc.PotionCapacity; i++ {
		if gc.Potions[i] == potions.FairyPotion {
			gc.Potions[i] = potions.Empty
			gc.PotionCount--
			pct := float32(0.3)
			if gc.HasRelic(relics.SacredBark) {
				pct = 0.6
			}
			gc.CurHp = max(1, gc.FractionMaxHp(pct, Floor))
			return
		}
	}

	if gc.HasRelic(relics.LizardTail) && gc.Relics.Value(relics.LizardTail) != 0 {
		gc.Relics.SetValue(relics.LizardTail, 0)
		gc.CurHp = max(1, gc.MaxHp/2)
		return
	}

	gc.Outcome = types.PlayerLoss
}

// PlayerHeal restores hp up to max. Mark of the Bloom blocks healing.
func (gc *GameContext) PlayerHeal(amount int) {
	if gc.HasRelic(relics.MarkOfTheBloom) {
		return
	}
	gc.CurHp = min(gc.CurHp+amount, gc.MaxHp)
}

func (gc *GameContext) PlayerIncreaseMaxHp(amount int) {
	gc.MaxHp += amount
	gc.PlayerHeal(amount)
}

// LoseGold removes gold down to zero. Spending in a shop empties Maw Bank.
func (gc *GameContext) LoseGold(amount int, inShop bool) {
	if inShop && gc.HasRelic(relics.MawBank) {
		gc.Relics.SetValue(relics.MawBank, 0)
	}
	gc.Gold = max(0, gc.Gold-amount)
}

func (gc *GameContext) LoseMaxHp(amount int) {
	gc.MaxHp -= amount
	gc.CurHp = min(gc.CurHp, gc.MaxHp)
}

// DrinkPotionAt vacates slot idx and then applies the out-of-combat effect
// of the potion that was there.
func (gc *GameContext) DrinkPotionAt(idx int) {
	p := gc.Potions[idx]
	gc.DiscardPotionAt(idx)
	gc.drinkPotion(p)
}

// DiscardPotionAt empties slot idx.
func (gc *GameContext) DiscardPotionAt(idx int) {
	assert.That(idx >= 0 && idx < gc.PotionCapacity, "potion slot out of range")
	assert.That(gc.Potions[idx].IsPotion(), "discarding an empty potion slot")
	gc.Potions[idx] = potions.Empty
	gc.PotionCount--
}

func (gc *GameContext) drinkPotion(p potions.ID) {
	bark := gc.HasRelic(relics.SacredBark)
	switch p {
	case potions.BloodPotion:
		pct := float32(0.2)
		if bark {
			pct = 0.4
		}
		gc.PlayerHeal(gc.FractionMaxHp(pct, Floor))
	case potions.EntropicBrew:
		for i := 0; i < gc.PotionCapacity; i++ {
			rolled := potions.Random(&gc.streams[StreamPotion])
			if gc.Potions[i] == potions.Empty {
				gc.Potions[i] = rolled
			}
		}
		gc.PotionCount = gc.PotionCapacity
	case potions.FruitJuice:
		amount := 5
		if bark {
			amount = 10
		}
		gc.PlayerIncreaseMaxHp(amount)
	default:
		assert.That(false, "potion has no out-of-combat effect")
	}
}

// EnterBattle switches the run to the battle screen for an encounter.
func (gc *GameContext) EnterBattle(e monsters.Encounter) {
	gc.ScreenState = types.ScreenBattle
	gc.Info.Encounter = e
	gc.Info.StolenGold = 0
	gc.LastRoom = gc.CurRoom
	switch {
	case e.IsBoss():
		gc.CurRoom = types.RoomBoss
	case e.IsElite():
		gc.CurRoom = types.RoomElite
	default:
		gc.CurRoom = types.RoomMonster
	}
}

// BattleResult is what a finished battle hands back to the run.
type BattleResult struct {
	Outcome     types.Outcome
	CurHp       int
	MaxHp       int
	Gold        int
	StolenGold  int
	Potions     [MaxPotionSlots]potions.ID
	PotionCount int
	RelicValues map[relics.ID]int
	Streams     map[Stream]rng.Random
}

// battleStreams are the streams a battle consumes and returns.
var battleStreams = []Stream{
	StreamAI, StreamCardRandom, StreamMisc, StreamMonsterHp, StreamPotion, StreamShuffle,
}

// BattleStreams lists the streams a battle works on.
func BattleStreams() []Stream {
	return append([]Stream(nil), battleStreams...)
}

// ApplyBattleResult folds a finished battle back into the run. A lost
// battle loses the run.
func (gc *GameContext) ApplyBattleResult(res BattleResult) {
	gc.CurHp = res.CurHp
	gc.MaxHp = res.MaxHp
	gc.Gold = res.Gold
	gc.Info.StolenGold = res.StolenGold
	gc.Potions = res.Potions
	gc.PotionCount = res.PotionCount
	for id, v := range res.RelicValues {
		gc.Relics.SetValue(id, v)
	}
	for _, s := range battleStreams {
		if r, ok := res.Streams[s]; ok {
			gc.streams[s] = r
		}
	}
	if res.Outcome == types.PlayerLoss {
		gc.Outcome = types.PlayerLoss
	}
	gc.ScreenState = types.ScreenInvalid
}
