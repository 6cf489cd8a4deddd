// Package potions defines potion identifiers and the potion roll.
package potions

import (
	"strings"

	"github.com/nathoo/spirecore/engine/rng"
)

// ID identifies a potion. Empty marks a vacant inventory slot.
type ID uint8

const (
	Invalid ID = iota
	Empty
	AncientPotion
	BlockPotion
	BloodPotion
	DexterityPotion
	EnergyPotion
	EntropicBrew
	ExplosivePotion
	FairyPotion
	FearPotion
	FirePotion
	FruitJuice
	RegenPotion
	SpeedPotion
	SteroidPotion
	StrengthPotion
	SwiftPotion
	WeakPotion

	idCount
)

// Rarity is the potion's drop rarity.
type Rarity uint8

const (
	Common Rarity = iota
	Uncommon
	Rare
)

type info struct {
	enum    string
	name    string
	rarity  Rarity
	target  bool
	passive bool
}

var table = [idCount]info{
	Invalid:         {enum: "INVALID", name: "Invalid"},
	Empty:           {enum: "EMPTY_POTION_SLOT", name: "Potion Slot"},
	AncientPotion:   {enum: "ANCIENT_POTION", name: "Ancient Potion", rarity: Uncommon},
	BlockPotion:     {enum: "BLOCK_POTION", name: "Block Potion", rarity: Common},
	BloodPotion:     {enum: "BLOOD_POTION", name: "Blood Potion", rarity: Common},
	DexterityPotion: {enum: "DEXTERITY_POTION", name: "Dexterity Potion", rarity: Common},
	EnergyPotion:    {enum: "ENERGY_POTION", name: "Energy Potion", rarity: Common},
	EntropicBrew:    {enum: "ENTROPIC_BREW", name: "Entropic Brew", rarity: Rare},
	ExplosivePotion: {enum: "EXPLOSIVE_POTION", name: "Explosive Potion", rarity: Common},
	FairyPotion:     {enum: "FAIRY_POTION", name: "Fairy in a Bottle", rarity: Rare, passive: true},
	FearPotion:      {enum: "FEAR_POTION", name: "Fear Potion", rarity: Common, target: true},
	FirePotion:      {enum: "FIRE_POTION", name: "Fire Potion", rarity: Common, target: true},
	FruitJuice:      {enum: "FRUIT_JUICE", name: "Fruit Juice", rarity: Rare},
	RegenPotion:     {enum: "REGEN_POTION", name: "Regen Potion", rarity: Uncommon},
	SpeedPotion:     {enum: "SPEED_POTION", name: "Speed Potion", rarity: Common},
	SteroidPotion:   {enum: "STEROID_POTION", name: "Flex Potion", rarity: Common},
	StrengthPotion:  {enum: "STRENGTH_POTION", name: "Strength Potion", rarity: Common},
	SwiftPotion:     {enum: "SWIFT_POTION", name: "Swift Potion", rarity: Common},
	WeakPotion:      {enum: "WEAK_POTION", name: "Weak Potion", rarity: Common, target: true},
}

// FromName resolves an enum-style potion name. Unknown names return Invalid.
func FromName(name string) ID {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i := Empty; i < idCount; i++ {
		if table[i].enum == name {
			return i
		}
	}
	return Invalid
}

func (id ID) String() string {
	if id >= idCount {
		return table[Invalid].enum
	}
	return table[id].enum
}

// Name returns the display name.
func (id ID) Name() string {
	if id >= idCount {
		return table[Invalid].name
	}
	return table[id].name
}

// IsPotion reports whether id names a real potion (not Empty or Invalid).
func (id ID) IsPotion() bool { return id > Empty && id < idCount }

func (id ID) Rarity() Rarity { return table[id].rarity }

func (id ID) RequiresTarget() bool { return table[id].target }

// CanDrink reports whether the potion can be used by choice. Passive potions
// only fire from their trigger.
func (id ID) CanDrink() bool { return id.IsPotion() && !table[id].passive }

// ofRarity lists potions of a rarity in table order.
func ofRarity(r Rarity) []ID {
	var ids []ID
	for i := AncientPotion; i < idCount; i++ {
		if table[i].rarity == r {
			ids = append(ids, i)
		}
	}
	return ids
}

var byRarity = [3][]ID{ofRarity(Common), ofRarity(Uncommon), ofRarity(Rare)}

// Random rolls a potion: rarity first (common below 65, uncommon below 90),
// then a uniform pick within that rarity. It makes two counted draws.
func Random(stream *rng.Random) ID {
	roll := stream.Random(99)
	r := Rare
	switch {
	case roll < 65:
		r = Common
	case roll < 90:
		r = Uncommon
	}
	pool := byRarity[r]
	return pool[stream.Random(len(pool)-1)]
}
