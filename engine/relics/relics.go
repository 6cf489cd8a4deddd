// Package relics defines relic identifiers and the run-level relic container.
package relics

import "strings"

// ID identifies a relic.
type ID uint8

const (
	Akabeko ID = iota
	Anchor
	BagOfMarbles
	BagOfPreparation
	BloodVial
	BloodyIdol
	Boot
	BronzeScales
	BurningBlood
	Calipers
	CentennialPuzzle
	Ectoplasm
	EternalFeather
	Girya
	HappyFlower
	HornCleat
	IceCream
	IncenseBurner
	InkBottle
	Lantern
	LizardTail
	MarkOfTheBloom
	MawBank
	MeatOnTheBone
	MercuryHourglass
	NlothsGift
	Nunchaku
	OddMushroom
	OddlySmoothStone
	Orichalcum
	PaperPhrog
	PeacePipe
	PenNib
	PhilosophersStone
	RedSkull
	RunicPyramid
	SacredBark
	Shovel
	Sozu
	SsserpentHead
	Sundial
	Torii
	TungstenRod
	Vajra

	// Invalid doubles as the number of defined relics.
	Invalid
)

// Count is the number of defined relics.
const Count = int(Invalid)

var enumNames = [Count + 1]string{
	Akabeko:           "AKABEKO",
	Anchor:            "ANCHOR",
	BagOfMarbles:      "BAG_OF_MARBLES",
	BagOfPreparation:  "BAG_OF_PREPARATION",
	BloodVial:         "BLOOD_VIAL",
	BloodyIdol:        "BLOODY_IDOL",
	Boot:              "BOOT",
	BronzeScales:      "BRONZE_SCALES",
	BurningBlood:      "BURNING_BLOOD",
	Calipers:          "CALIPERS",
	CentennialPuzzle:  "CENTENNIAL_PUZZLE",
	Ectoplasm:         "ECTOPLASM",
	EternalFeather:    "ETERNAL_FEATHER",
	Girya:             "GIRYA",
	HappyFlower:       "HAPPY_FLOWER",
	HornCleat:         "HORN_CLEAT",
	IceCream:          "ICE_CREAM",
	IncenseBurner:     "INCENSE_BURNER",
	InkBottle:         "INK_BOTTLE",
	Lantern:           "LANTERN",
	LizardTail:        "LIZARD_TAIL",
	MarkOfTheBloom:    "MARK_OF_THE_BLOOM",
	MawBank:           "MAW_BANK",
	MeatOnTheBone:     "MEAT_ON_THE_BONE",
	MercuryHourglass:  "MERCURY_HOURGLASS",
	NlothsGift:        "NLOTHS_GIFT",
	Nunchaku:          "NUNCHAKU",
	OddMushroom:       "ODD_MUSHROOM",
	OddlySmoothStone:  "ODDLY_SMOOTH_STONE",
	Orichalcum:        "ORICHALCUM",
	PaperPhrog:        "PAPER_PHROG",
	PeacePipe:         "PEACE_PIPE",
	PenNib:            "PEN_NIB",
	PhilosophersStone: "PHILOSOPHERS_STONE",
	RedSkull:          "RED_SKULL",
	RunicPyramid:      "RUNIC_PYRAMID",
	SacredBark:        "SACRED_BARK",
	Shovel:            "SHOVEL",
	Sozu:              "SOZU",
	SsserpentHead:     "SSSERPENT_HEAD",
	Sundial:           "SUNDIAL",
	Torii:             "TORII",
	TungstenRod:       "TUNGSTEN_ROD",
	Vajra:             "VAJRA",
	Invalid:           "INVALID",
}

// FromName resolves an enum-style relic name. Unknown names return Invalid.
func FromName(name string) ID {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i := 0; i < Count; i++ {
		if enumNames[i] == name {
			return ID(i)
		}
	}
	return Invalid
}

// String returns the enum-style name.
func (id ID) String() string {
	if id > Invalid {
		return enumNames[Invalid]
	}
	return enumNames[id]
}

// Name returns a display name ("Pen Nib").
func (id ID) Name() string {
	words := strings.Split(strings.ToLower(id.String()), "_")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// InitialValue is the counter a relic starts with when obtained.
func InitialValue(id ID) int {
	switch id {
	case LizardTail, MawBank:
		return 1
	default:
		return 0
	}
}

// IsCampfire reports whether the relic adds an action at rest sites.
func IsCampfire(id ID) bool {
	return id == PeacePipe || id == Shovel || id == Girya
}

// Instance is a held relic with its counter.
type Instance struct {
	ID    ID
	Value int
}

// Container is the ordered relic collection of a run.
type Container struct {
	Relics []Instance
}

// Has reports whether the relic is held.
func (c *Container) Has(id ID) bool {
	return c.index(id) >= 0
}

func (c *Container) index(id ID) int {
	for i, r := range c.Relics {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Add appends a relic. Adding a held relic or Invalid is ignored.
func (c *Container) Add(r Instance) {
	if r.ID >= Invalid || c.Has(r.ID) {
		return
	}
	c.Relics = append(c.Relics, r)
}

// Value returns the relic's counter, or 0 if it is not held.
func (c *Container) Value(id ID) int {
	if i := c.index(id); i >= 0 {
		return c.Relics[i].Value
	}
	return 0
}

// SetValue sets the counter of a held relic. It reports whether the relic
// was found.
func (c *Container) SetValue(id ID, v int) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.Relics[i].Value = v
	return true
}

// Remove drops a relic, keeping the order of the rest.
func (c *Container) Remove(id ID) {
	if i := c.index(id); i >= 0 {
		c.Relics = append(c.Relics[:i], c.Relics[i+1:]...)
	}
}

// Len returns the number of held relics.
func (c *Container) Len() int { return len(c.Relics) }

// Set is a fixed-size relic lookup for hot paths. It is a plain value so it
// can live inside copyable battle state.
type Set struct {
	has   [Count]bool
	value [Count]int32
}

// SetFrom builds a Set from a container.
func SetFrom(c *Container) Set {
	var s Set
	for _, r := range c.Relics {
		if r.ID < Invalid {
			s.has[r.ID] = true
			s.value[r.ID] = int32(r.Value)
		}
	}
	return s
}

func (s *Set) Has(id ID) bool {
	return id < Invalid && s.has[id]
}

func (s *Set) Value(id ID) int {
	if id >= Invalid {
		return 0
	}
	return int(s.value[id])
}

func (s *Set) SetValue(id ID, v int) {
	if id < Invalid {
		s.value[id] = int32(v)
	}
}

// Add marks a relic held with the given counter.
func (s *Set) Add(id ID, v int) {
	if id < Invalid {
		s.has[id] = true
		s.value[id] = int32(v)
	}
}

// Each calls fn for every held relic in enum order.
func (s *Set) Each(fn func(id ID, value int)) {
	for i := 0; i < Count; i++ {
		if s.has[i] {
			fn(ID(i), int(s.value[i]))
		}
	}
}
