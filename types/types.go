// Package types defines the shared data structures for the spirecore engine.
// It holds type definitions and their names, and no game logic.
package types

// Outcome is the result of a battle or a run. Once it leaves Undecided it
// never changes again.
type Outcome uint8

const (
	Undecided Outcome = iota
	PlayerVictory
	PlayerLoss
)

var outcomeNames = [...]string{"UNDECIDED", "PLAYER_VICTORY", "PLAYER_LOSS"}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "UNKNOWN"
}

// CharacterClass selects the starter deck, relic and card pool.
type CharacterClass uint8

const (
	Ironclad CharacterClass = iota
	Silent
	Defect
	Watcher
)

var classNames = [...]string{"IRONCLAD", "SILENT", "DEFECT", "WATCHER"}

func (c CharacterClass) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "UNKNOWN"
}

// Room is the kind of map node the player is standing on.
type Room uint8

const (
	RoomInvalid Room = iota
	RoomMonster
	RoomElite
	RoomBoss
	RoomEvent
	RoomRest
	RoomShop
	RoomTreasure
)

// ScreenState is the screen a run is currently showing.
type ScreenState uint8

const (
	ScreenInvalid ScreenState = iota
	ScreenCardSelect
	ScreenBattle
)

// CommandKind classifies a parsed textual command.
type CommandKind uint8

const (
	CmdUnknown CommandKind = iota
	CmdPlayCard
	CmdUsePotion
	CmdEndTurn
	CmdStatus
	CmdActions
	CmdHelp
)

// Command is the parsed representation of a textual battle action.
// Index and Target are -1 when the input gave a name instead of a number,
// or nothing at all.
type Command struct {
	Kind       CommandKind
	Index      int
	Target     int
	Object     string // card or potion name, when given by name
	TargetName string
	Raw        string
}

// Result is the output of a single engine step.
type Result struct {
	Action string
	Output []string
	Err    error
	Done   bool
}

// ScenarioDef is the raw data of a scenario file before it is compiled into
// contexts. Names are kept as written so that validation can report them.
type ScenarioDef struct {
	Name          string
	Description   string
	Source        string
	Seed          uint64
	Ascension     int
	Floor         int
	Encounter     string
	PlayerHp      int
	PlayerMaxHp   int
	Gold          int
	Deck          []string
	Relics        []string
	RelicCounters map[string]int
	Potions       []string
	Actions       []string
}
