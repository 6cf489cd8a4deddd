// Package cards holds the static card tables and the Card value type.
package cards

import "strings"

// MaxDeckSize bounds every pile in a battle.
const MaxDeckSize = 64

// ID identifies a card definition.
type ID uint8

const (
	Invalid ID = iota
	StrikeRed
	DefendRed
	Bash
	BodySlam
	Cleave
	Clothesline
	Flex
	HeavyBlade
	IronWave
	PerfectedStrike
	PommelStrike
	ShrugItOff
	SwordBoomerang
	Thunderclap
	TwinStrike
	BattleTrance
	Bloodletting
	Carnage
	Disarm
	Entrench
	GhostlyArmor
	Hemokinesis
	Inflame
	Intimidate
	Metallicize
	Pummel
	SeeingRed
	Shockwave
	Uppercut
	Barricade
	Bludgeon
	DemonForm
	Impervious
	LimitBreak
	Offering

	idCount
)

// Type is the card's play category.
type Type uint8

const (
	Attack Type = iota
	Skill
	Power
	Status
	Curse
)

// Rarity is the card's reward rarity.
type Rarity uint8

const (
	Basic Rarity = iota
	Common
	Uncommon
	Rare
	Special
	CurseRarity
)

var rarityNames = [...]string{"BASIC", "COMMON", "UNCOMMON", "RARE", "SPECIAL", "CURSE"}

func (r Rarity) String() string {
	if int(r) < len(rarityNames) {
		return rarityNames[r]
	}
	return "UNKNOWN"
}

// Color is the card's pool color.
type Color uint8

const (
	Red Color = iota
	Green
	Blue
	Purple
	Colorless
	CurseColor
)

// info is one row of the static card table. Paired fields hold the base
// and upgraded values.
type info struct {
	enum     string
	name     string
	typ      Type
	rarity   Rarity
	color    Color
	cost     [2]int8
	target   bool
	exhaust  [2]bool
	ethereal [2]bool
	damage   [2]int16
	block    [2]int16
	magic    [2]int16
}

var table = [idCount]info{
	Invalid:         {enum: "INVALID", name: "Invalid", cost: [2]int8{-2, -2}},
	StrikeRed:       {enum: "STRIKE_RED", name: "Strike", typ: Attack, rarity: Basic, cost: [2]int8{1, 1}, target: true, damage: [2]int16{6, 9}},
	DefendRed:       {enum: "DEFEND_RED", name: "Defend", typ: Skill, rarity: Basic, cost: [2]int8{1, 1}, block: [2]int16{5, 8}},
	Bash:            {enum: "BASH", name: "Bash", typ: Attack, rarity: Basic, cost: [2]int8{2, 2}, target: true, damage: [2]int16{8, 10}, magic: [2]int16{2, 3}},
	BodySlam:        {enum: "BODY_SLAM", name: "Body Slam", typ: Attack, rarity: Common, cost: [2]int8{1, 0}, target: true},
	Cleave:          {enum: "CLEAVE", name: "Cleave", typ: Attack, rarity: Common, cost: [2]int8{1, 1}, damage: [2]int16{8, 11}},
	Clothesline:     {enum: "CLOTHESLINE", name: "Clothesline", typ: Attack, rarity: Common, cost: [2]int8{2, 2}, target: true, damage: [2]int16{12, 14}, magic: [2]int16{2, 3}},
	Flex:            {enum: "FLEX", name: "Flex", typ: Skill, rarity: Common, cost: [2]int8{0, 0}, magic: [2]int16{2, 4}},
	HeavyBlade:      {enum: "HEAVY_BLADE", name: "Heavy Blade", typ: Attack, rarity: Common, cost: [2]int8{2, 2}, target: true, damage: [2]int16{14, 14}, magic: [2]int16{3, 5}},
	IronWave:        {enum: "IRON_WAVE", name: "Iron Wave", typ: Attack, rarity: Common, cost: [2]int8{1, 1}, target: true, damage: [2]int16{5, 7}, block: [2]int16{5, 7}},
	PerfectedStrike: {enum: "PERFECTED_STRIKE", name: "Perfected Strike", typ: Attack, rarity: Common, cost: [2]int8{2, 2}, target: true, damage: [2]int16{6, 6}, magic: [2]int16{2, 3}},
	PommelStrike:    {enum: "POMMEL_STRIKE", name: "Pommel Strike", typ: Attack, rarity: Common, cost: [2]int8{1, 1}, target: true, damage: [2]int16{9, 10}, magic: [2]int16{1, 2}},
	ShrugItOff:      {enum: "SHRUG_IT_OFF", name: "Shrug It Off", typ: Skill, rarity: Common, cost: [2]int8{1, 1}, block: [2]int16{8, 11}, magic: [2]int16{1, 1}},
	SwordBoomerang:  {enum: "SWORD_BOOMERANG", name: "Sword Boomerang", typ: Attack, rarity: Common, cost: [2]int8{1, 1}, damage: [2]int16{3, 3}, magic: [2]int16{3, 4}},
	Thunderclap:     {enum: "THUNDERCLAP", name: "Thunderclap", typ: Attack, rarity: Common, cost: [2]int8{1, 1}, damage: [2]int16{4, 7}, magic: [2]int16{1, 1}},
	TwinStrike:      {enum: "TWIN_STRIKE", name: "Twin Strike", typ: Attack, rarity: Common, cost: [2]int8{1, 1}, target: true, damage: [2]int16{5, 7}, magic: [2]int16{2, 2}},
	BattleTrance:    {enum: "BATTLE_TRANCE", name: "Battle Trance", typ: Skill, rarity: Uncommon, cost: [2]int8{0, 0}, magic: [2]int16{3, 4}},
	Bloodletting:    {enum: "BLOODLETTING", name: "Bloodletting", typ: Skill, rarity: Uncommon, cost: [2]int8{0, 0}, magic: [2]int16{2, 3}},
	Carnage:         {enum: "CARNAGE", name: "Carnage", typ: Attack, rarity: Uncommon, cost: [2]int8{2, 2}, target: true, ethereal: [2]bool{true, true}, damage: [2]int16{20, 28}},
	Disarm:          {enum: "DISARM", name: "Disarm", typ: Skill, rarity: Uncommon, cost: [2]int8{1, 1}, target: true, exhaust: [2]bool{true, true}, magic: [2]int16{2, 3}},
	Entrench:        {enum: "ENTRENCH", name: "Entrench", typ: Skill, rarity: Uncommon, cost: [2]int8{2, 1}},
	GhostlyArmor:    {enum: "GHOSTLY_ARMOR", name: "Ghostly Armor", typ: Skill, rarity: Uncommon, cost: [2]int8{1, 1}, ethereal: [2]bool{true, true}, block: [2]int16{10, 13}},
	Hemokinesis:     {enum: "HEMOKINESIS", name: "Hemokinesis", typ: Attack, rarity: Uncommon, cost: [2]int8{1, 1}, target: true, damage: [2]int16{15, 20}, magic: [2]int16{2, 2}},
	Inflame:         {enum: "INFLAME", name: "Inflame", typ: Power, rarity: Uncommon, cost: [2]int8{1, 1}, magic: [2]int16{2, 3}},
	Intimidate:      {enum: "INTIMIDATE", name: "Intimidate", typ: Skill, rarity: Uncommon, cost: [2]int8{0, 0}, exhaust: [2]bool{true, true}, magic: [2]int16{1, 2}},
	Metallicize:     {enum: "METALLICIZE", name: "Metallicize", typ: Power, rarity: Uncommon, cost: [2]int8{1, 1}, magic: [2]int16{3, 4}},
	Pummel:          {enum: "PUMMEL", name: "Pummel", typ: Attack, rarity: Uncommon, cost: [2]int8{1, 1}, target: true, exhaust: [2]bool{true, true}, damage: [2]int16{2, 2}, magic: [2]int16{4, 5}},
	SeeingRed:       {enum: "SEEING_RED", name: "Seeing Red", typ: Skill, rarity: Uncommon, cost: [2]int8{1, 0}, exhaust: [2]bool{true, true}, magic: [2]int16{2, 2}},
	Shockwave:       {enum: "SHOCKWAVE", name: "Shockwave", typ: Skill, rarity: Uncommon, cost: [2]int8{2, 2}, exhaust: [2]bool{true, true}, magic: [2]int16{3, 5}},
	Uppercut:        {enum: "UPPERCUT", name: "Uppercut", typ: Attack, rarity: Uncommon, cost: [2]int8{2, 2}, target: true, damage: [2]int16{13, 13}, magic: [2]int16{1, 2}},
	Barricade:       {enum: "BARRICADE", name: "Barricade", typ: Power, rarity: Rare, cost: [2]int8{3, 2}},
	Bludgeon:        {enum: "BLUDGEON", name: "Bludgeon", typ: Attack, rarity: Rare, cost: [2]int8{3, 3}, target: true, damage: [2]int16{32, 42}},
	DemonForm:       {enum: "DEMON_FORM", name: "Demon Form", typ: Power, rarity: Rare, cost: [2]int8{3, 3}, magic: [2]int16{2, 3}},
	Impervious:      {enum: "IMPERVIOUS", name: "Impervious", typ: Skill, rarity: Rare, cost: [2]int8{2, 2}, exhaust: [2]bool{true, true}, block: [2]int16{30, 40}},
	LimitBreak:      {enum: "LIMIT_BREAK", name: "Limit Break", typ: Skill, rarity: Rare, cost: [2]int8{1, 1}, exhaust: [2]bool{true, false}},
	Offering:        {enum: "OFFERING", name: "Offering", typ: Skill, rarity: Rare, cost: [2]int8{0, 0}, exhaust: [2]bool{true, true}, magic: [2]int16{3, 5}},
}

// legacyNames maps scenario shorthands onto table names.
var legacyNames = map[string]ID{
	"STRIKE": StrikeRed,
	"DEFEND": DefendRed,
}

// Count is the number of defined ids, including Invalid.
const Count = int(idCount)

// FromName resolves an enum-style card name. Unknown names return Invalid.
func FromName(name string) ID {
	name = strings.ToUpper(strings.TrimSpace(name))
	if id, ok := legacyNames[name]; ok {
		return id
	}
	for i := ID(1); i < idCount; i++ {
		if table[i].enum == name {
			return i
		}
	}
	return Invalid
}

// Enum returns the table name, e.g. "STRIKE_RED".
func (id ID) Enum() string {
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

func (id ID) Type() Type { return table[id].typ }
func (id ID) Rarity() Rarity { return table[id].rarity }
func (id ID) Color() Color { return table[id].color }
func (id ID) IsStrike() bool { return strings.Contains(table[id].enum, "STRIKE") }
func (id ID) RequiresTarget() bool { return table[id].target }

// Pool returns the class card ids of the given rarity in table order.
func Pool(r Rarity) []ID {
	var ids []ID
	for i := ID(1); i < idCount; i++ {
		if table[i].rarity == r && table[i].color == Red {
			ids = append(ids, i)
		}
	}
	return ids
}

// Card is a card instance: an id plus its upgrade state.
type Card struct {
	ID       ID
	Upgraded bool
}

// New returns an unupgraded card.
func New(id ID) Card {
	return Card{ID: id}
}

// Parse reads "NAME" or "NAME+" and returns the card. Unknown names yield
// a card with the Invalid id.
func Parse(s string) Card {
	s = strings.TrimSpace(s)
	upgraded := strings.HasSuffix(s, "+")
	if upgraded {
		s = strings.TrimSuffix(s, "+")
	}
	c := Card{ID: FromName(s)}
	if upgraded && c.ID != Invalid {
		c.Upgrade()
	}
	return c
}

func (c Card) tier() int {
	if c.Upgraded {
		return 1
	}
	return 0
}

// Upgrade marks the card upgraded. Upgrading twice has no further effect.
func (c *Card) Upgrade() {
	c.Upgraded = true
}

// IsValid reports whether the card refers to a known definition.
func (c Card) IsValid() bool {
	return c.ID != Invalid && c.ID < idCount
}

// Name returns the display name, with a trailing "+" when upgraded.
func (c Card) Name() string {
	if c.Upgraded {
		return c.ID.Name() + "+"
	}
	return c.ID.Name()
}

// String returns the scenario spelling of the card ("BASH+").
func (c Card) String() string {
	if c.Upgraded {
		return c.ID.Enum() + "+"
	}
	return c.ID.Enum()
}

func (c Card) Cost() int { return int(table[c.ID].cost[c.tier()]) }
func (c Card) Type() Type { return table[c.ID].typ }
func (c Card) Rarity() Rarity { return table[c.ID].rarity }
func (c Card) Color() Color { return table[c.ID].color }
func (c Card) RequiresTarget() bool { return table[c.ID].target }
func (c Card) Exhausts() bool { return table[c.ID].exhaust[c.tier()] }
func (c Card) Ethereal() bool { return table[c.ID].ethereal[c.tier()] }
func (c Card) BaseDamage() int { return int(table[c.ID].damage[c.tier()]) }
func (c Card) BaseBlock() int { return int(table[c.ID].block[c.tier()]) }
func (c Card) Magic() int { return int(table[c.ID].magic[c.tier()]) }
