// Package monsters holds monster, move and encounter tables. Monster behavior
// lives in the battle package; this package only knows static numbers.
package monsters

import (
	"strings"

	"github.com/nathoo/spirecore/engine/rng"
)

// ID identifies a monster kind.
type ID uint8

const (
	Invalid ID = iota
	Cultist
	JawWorm
	RedLouse
	GreenLouse
	BlueSlaver
	RedSlaver
	Looter
	FungiBeast
	GremlinNob
	Lagavulin

	idCount
)

type monsterInfo struct {
	name  string
	elite bool
	hp    [2][2]int // [normal, ascension] x [min, max]
}

var monsterTable = [idCount]monsterInfo{
	Invalid:    {name: "Invalid"},
	Cultist:    {name: "Cultist", hp: [2][2]int{{48, 54}, {50, 56}}},
	JawWorm:    {name: "Jaw Worm", hp: [2][2]int{{40, 44}, {42, 46}}},
	RedLouse:   {name: "Red Louse", hp: [2][2]int{{10, 15}, {11, 16}}},
	GreenLouse: {name: "Green Louse", hp: [2][2]int{{11, 17}, {12, 18}}},
	BlueSlaver: {name: "Blue Slaver", hp: [2][2]int{{46, 50}, {48, 52}}},
	RedSlaver:  {name: "Red Slaver", hp: [2][2]int{{46, 50}, {48, 52}}},
	Looter:     {name: "Looter", hp: [2][2]int{{44, 48}, {46, 50}}},
	FungiBeast: {name: "Fungi Beast", hp: [2][2]int{{22, 28}, {24, 28}}},
	GremlinNob: {name: "Gremlin Nob", elite: true, hp: [2][2]int{{82, 86}, {85, 90}}},
	Lagavulin:  {name: "Lagavulin", elite: true, hp: [2][2]int{{109, 111}, {112, 115}}},
}

func (id ID) Name() string {
	if id >= idCount {
		return monsterTable[Invalid].name
	}
	return monsterTable[id].name
}

// IsElite reports whether the monster uses elite ascension thresholds.
func (id ID) IsElite() bool { return monsterTable[id].elite }

// HPRange returns the inclusive hp roll bounds at the given ascension.
// Normal monsters gain hp at ascension 7, elites at 8.
func (id ID) HPRange(ascension int) (lo, hi int) {
	info := monsterTable[id]
	tier := 0
	if (info.elite && ascension >= 8) || (!info.elite && ascension >= 7) {
		tier = 1
	}
	return info.hp[tier][0], info.hp[tier][1]
}

// Intent is the telegraphed category of a move.
type Intent uint8

const (
	IntentUnknown Intent = iota
	IntentAttack
	IntentAttackBuff
	IntentAttackDebuff
	IntentAttackDefend
	IntentBuff
	IntentDebuff
	IntentStrongDebuff
	IntentDefend
	IntentDefendBuff
	IntentEscape
	IntentSleep
	IntentStun
)

var intentNames = [...]string{
	"UNKNOWN", "ATTACK", "ATTACK_BUFF", "ATTACK_DEBUFF", "ATTACK_DEFEND",
	"BUFF", "DEBUFF", "STRONG_DEBUFF", "DEFEND", "DEFEND_BUFF", "ESCAPE",
	"SLEEP", "STUN",
}

func (i Intent) String() string {
	if int(i) < len(intentNames) {
		return intentNames[i]
	}
	return "UNKNOWN"
}

// IsAttack reports whether the intent deals damage.
func (i Intent) IsAttack() bool {
	switch i {
	case IntentAttack, IntentAttackBuff, IntentAttackDebuff, IntentAttackDefend:
		return true
	}
	return false
}

// MoveID identifies a monster move.
type MoveID uint8

const (
	MoveInvalid MoveID = iota
	CultistIncantation
	CultistDarkStrike
	JawWormChomp
	JawWormThrash
	JawWormBellow
	LouseBite
	LouseGrow
	LouseSpitWeb
	BlueSlaverStab
	BlueSlaverRake
	RedSlaverStab
	RedSlaverScrape
	RedSlaverEntangle
	LooterMug
	LooterLunge
	LooterSmokeBomb
	LooterEscape
	FungiBeastBite
	FungiBeastGrow
	GremlinNobBellow
	GremlinNobRush
	GremlinNobSkullBash
	LagavulinSleep
	LagavulinStunned
	LagavulinAttack
	LagavulinSiphonSoul

	moveCount
)

type moveInfo struct {
	name   string
	intent Intent
}

var moveTable = [moveCount]moveInfo{
	MoveInvalid:         {"Invalid", IntentUnknown},
	CultistIncantation:  {"Incantation", IntentBuff},
	CultistDarkStrike:   {"Dark Strike", IntentAttack},
	JawWormChomp:        {"Chomp", IntentAttack},
	JawWormThrash:       {"Thrash", IntentAttackDefend},
	JawWormBellow:       {"Bellow", IntentDefendBuff},
	LouseBite:           {"Bite", IntentAttack},
	LouseGrow:           {"Grow", IntentBuff},
	LouseSpitWeb:        {"Spit Web", IntentDebuff},
	BlueSlaverStab:      {"Stab", IntentAttack},
	BlueSlaverRake:      {"Rake", IntentAttackDebuff},
	RedSlaverStab:       {"Stab", IntentAttack},
	RedSlaverScrape:     {"Scrape", IntentAttackDebuff},
	RedSlaverEntangle:   {"Entangle", IntentStrongDebuff},
	LooterMug:           {"Mug", IntentAttack},
	LooterLunge:         {"Lunge", IntentAttack},
	LooterSmokeBomb:     {"Smoke Bomb", IntentDefend},
	LooterEscape:        {"Escape", IntentEscape},
	FungiBeastBite:      {"Bite", IntentAttack},
	FungiBeastGrow:      {"Grow", IntentBuff},
	GremlinNobBellow:    {"Bellow", IntentBuff},
	GremlinNobRush:      {"Rush", IntentAttack},
	GremlinNobSkullBash: {"Skull Bash", IntentAttackDebuff},
	LagavulinSleep:      {"Sleep", IntentSleep},
	LagavulinStunned:    {"Stunned", IntentStun},
	LagavulinAttack:     {"Attack", IntentAttack},
	LagavulinSiphonSoul: {"Siphon Soul", IntentStrongDebuff},
}

func (m MoveID) Name() string {
	if m >= moveCount {
		return moveTable[MoveInvalid].name
	}
	return moveTable[m].name
}

func (m MoveID) Intent() Intent {
	if m >= moveCount {
		return IntentUnknown
	}
	return moveTable[m].intent
}

func asc(level, threshold int, base, raised int) int {
	if level >= threshold {
		return raised
	}
	return base
}

// Damage is the base damage of a move at the given ascension. Louse bites
// are rolled per monster and return 0 here.
func Damage(m MoveID, ascension int) int {
	switch m {
	case CultistDarkStrike:
		return 6
	case JawWormChomp:
		return asc(ascension, 2, 11, 12)
	case JawWormThrash:
		return 7
	case BlueSlaverStab:
		return asc(ascension, 2, 12, 13)
	case BlueSlaverRake:
		return asc(ascension, 2, 7, 8)
	case RedSlaverStab:
		return asc(ascension, 2, 13, 14)
	case RedSlaverScrape:
		return asc(ascension, 2, 8, 9)
	case LooterMug:
		return asc(ascension, 2, 10, 11)
	case LooterLunge:
		return asc(ascension, 2, 12, 14)
	case FungiBeastBite:
		return 6
	case GremlinNobRush:
		return asc(ascension, 3, 14, 16)
	case GremlinNobSkullBash:
		return asc(ascension, 3, 6, 8)
	case LagavulinAttack:
		return asc(ascension, 3, 18, 20)
	}
	return 0
}

// Block is the block a move grants its user.
func Block(m MoveID, ascension int) int {
	switch m {
	case JawWormThrash:
		return 5
	case JawWormBellow:
		return asc(ascension, 17, 6, 9)
	case LooterSmokeBomb:
		return 6
	}
	return 0
}

// Magic is the buff or debuff amount of a move.
func Magic(m MoveID, ascension int) int {
	switch m {
	case CultistIncantation:
		if ascension >= 17 {
			return 5
		}
		return asc(ascension, 2, 3, 4)
	case JawWormBellow:
		if ascension >= 17 {
			return 5
		}
		return asc(ascension, 2, 3, 4)
	case LouseGrow:
		return asc(ascension, 17, 3, 4)
	case LouseSpitWeb:
		return 2
	case BlueSlaverRake:
		return asc(ascension, 17, 1, 2)
	case RedSlaverScrape:
		return asc(ascension, 17, 1, 2)
	case FungiBeastGrow:
		if ascension >= 17 {
			return 5
		}
		return asc(ascension, 2, 3, 4)
	case GremlinNobBellow:
		return asc(ascension, 18, 2, 3)
	case GremlinNobSkullBash:
		return 2
	case LagavulinSiphonSoul:
		return asc(ascension, 18, 1, 2)
	}
	return 0
}

// LouseBiteRange is the inclusive roll for a louse's fixed bite damage.
func LouseBiteRange(ascension int) (lo, hi int) {
	if ascension >= 2 {
		return 6, 8
	}
	return 5, 7
}

// CurlUpRange is the inclusive roll for a louse's curl up block.
func CurlUpRange(ascension int) (lo, hi int) {
	switch {
	case ascension >= 17:
		return 9, 12
	case ascension >= 7:
		return 4, 8
	}
	return 3, 7
}

// Thievery is the gold a Looter steals per hit.
func Thievery(ascension int) int { return asc(ascension, 17, 15, 20) }

// Encounter selects a monster roster.
type Encounter uint8

const (
	EncounterInvalid Encounter = iota
	EncounterCultist
	EncounterJawWorm
	EncounterTwoLouse
	EncounterSmallSlimes
	EncounterBlueSlaver
	EncounterGremlinGang
	EncounterLooter
	EncounterLargeSlime
	EncounterLotsOfSlimes
	EncounterExordiumThugs
	EncounterExordiumWildlife
	EncounterRedSlaver
	EncounterThreeLouse
	EncounterTwoFungiBeasts
	EncounterGremlinNob
	EncounterLagavulin
	EncounterThreeSentries
	EncounterSlimeBoss
	EncounterTheGuardian
	EncounterHexaghost

	encounterCount
)

var encounterNames = [encounterCount]string{
	"INVALID", "CULTIST", "JAW_WORM", "TWO_LOUSE", "SMALL_SLIMES", "BLUE_SLAVER",
	"GREMLIN_GANG", "LOOTER", "LARGE_SLIME", "LOTS_OF_SLIMES", "EXORDIUM_THUGS",
	"EXORDIUM_WILDLIFE", "RED_SLAVER", "THREE_LOUSE", "TWO_FUNGI_BEASTS",
	"GREMLIN_NOB", "LAGAVULIN", "THREE_SENTRIES", "SLIME_BOSS", "THE_GUARDIAN",
	"HEXAGHOST",
}

// EncounterFromName resolves an encounter name. Unknown names return
// EncounterInvalid.
func EncounterFromName(name string) Encounter {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range encounterNames {
		if n == name {
			return Encounter(i)
		}
	}
	return EncounterInvalid
}

func (e Encounter) String() string {
	if e >= encounterCount {
		return "UNKNOWN"
	}
	return encounterNames[e]
}

// Supported reports whether battles can be built for this encounter.
func (e Encounter) Supported() bool {
	switch e {
	case EncounterCultist, EncounterJawWorm, EncounterTwoLouse, EncounterThreeLouse,
		EncounterBlueSlaver, EncounterRedSlaver, EncounterLooter,
		EncounterTwoFungiBeasts, EncounterGremlinNob, EncounterLagavulin:
		return true
	}
	return false
}

// IsElite reports whether the encounter is an elite fight.
func (e Encounter) IsElite() bool {
	return e == EncounterGremlinNob || e == EncounterLagavulin || e == EncounterThreeSentries
}

// IsBoss reports whether the encounter is a boss fight.
func (e Encounter) IsBoss() bool {
	return e == EncounterSlimeBoss || e == EncounterTheGuardian || e == EncounterHexaghost
}

// SupportedEncounters lists every encounter that battles can be built for.
func SupportedEncounters() []Encounter {
	var out []Encounter
	for e := EncounterCultist; e < encounterCount; e++ {
		if e.Supported() {
			out = append(out, e)
		}
	}
	return out
}

// Members returns the roster for an encounter in slot order. Louse colors are
// drawn from misc, one draw per louse. Unsupported encounters return nil.
func Members(e Encounter, misc *rng.Random) []ID {
	switch e {
	case EncounterCultist:
		return []ID{Cultist}
	case EncounterJawWorm:
		return []ID{JawWorm}
	case EncounterTwoLouse:
		return []ID{louse(misc), louse(misc)}
	case EncounterThreeLouse:
		return []ID{louse(misc), louse(misc), louse(misc)}
	case EncounterBlueSlaver:
		return []ID{BlueSlaver}
	case EncounterRedSlaver:
		return []ID{RedSlaver}
	case EncounterLooter:
		return []ID{Looter}
	case EncounterTwoFungiBeasts:
		return []ID{FungiBeast, FungiBeast}
	case EncounterGremlinNob:
		return []ID{GremlinNob}
	case EncounterLagavulin:
		return []ID{Lagavulin}
	}
	return nil
}

func louse(misc *rng.Random) ID {
	if misc.RandomBoolean() {
		return RedLouse
	}
	return GreenLouse
}
