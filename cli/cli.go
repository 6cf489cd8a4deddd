// Package cli provides terminal I/O, report formatting, and meta-command
// dispatch for the spirecore battle engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nathoo/spirecore/engine"
	"github.com/nathoo/spirecore/engine/battle"
	"github.com/nathoo/spirecore/engine/game"
	"github.com/nathoo/spirecore/types"
)

// ManualAgent is the agent name written into replays of hand-played fights.
const ManualAgent = "manual"

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine *engine.Engine
	// NewGame builds the run a battle starts from. It backs /restart and
	// /load; when nil both are unavailable.
	NewGame   func() *game.GameContext
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine, newGame func() *game.GameContext) *CLI {
	home, _ := os.UserHomeDir()
	saveDir := filepath.Join(home, ".spirecore", "replays")
	return &CLI{
		Engine:  eng,
		NewGame: newGame,
		In:      os.Stdin,
		Out:     os.Stdout,
		SaveDir: saveDir,
	}
}

// Run starts the battle loop. It shows the encounter and the battle status,
// then loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	c.showBattle()

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last battle command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		wasOver := c.Engine.Battle.IsOver()
		result := c.Engine.Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
		if result.Done && !wasOver {
			c.printSystem("Battle over. /save keeps a replay, /restart fights again, /quit exits.")
		}
	}
}

func (c *CLI) showBattle() {
	bc := c.Engine.Battle
	c.printLine(fmt.Sprintf("Battle: %s (seed %d, ascension %d, floor %d).",
		monsterNames(bc), bc.Seed, bc.Ascension, bc.Floor))
	c.printResult(c.Engine.Step("status"))
}

// handleMeta dispatches meta-commands. Returns true if the program should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/restart":
		c.cmdRestart()

	case "/suggest":
		c.cmdSuggest()

	case "/auto":
		c.cmdAuto(arg)

	case "/concede":
		c.printResult(c.Engine.Concede())

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}
	rec, err := SaveReplay(c.Engine, c.SaveDir, name)
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Replay saved to %s (%d actions).", name, len(rec.Actions)))
}

// cmdLoad replays a saved record from the start of the battle.
func (c *CLI) cmdLoad(name string) {
	if c.NewGame == nil {
		c.printSystem("Load unavailable.")
		return
	}
	if name == "" {
		name = "quicksave"
	}
	eng, rec, err := LoadReplay(c.Engine, c.NewGame, c.SaveDir, name)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	c.Engine = eng
	c.lastCmd = ""
	c.printSystem(fmt.Sprintf("Replay loaded from %s (%d actions, turn %d).", name, len(rec.Actions), eng.Battle.Turn))
	c.printResult(c.Engine.Step("status"))
}

func (c *CLI) cmdRestart() {
	if c.NewGame == nil {
		c.printSystem("Restart unavailable.")
		return
	}
	eng, err := engine.New(c.NewGame(), c.Engine.Battle.Encounter)
	if err != nil {
		c.printSystem(fmt.Sprintf("Restart failed: %v", err))
		return
	}
	eng.Policy = c.Engine.Policy
	c.Engine = eng
	c.lastCmd = ""
	c.showBattle()
}

func (c *CLI) cmdSuggest() {
	a, ok := c.Engine.Suggest()
	if !ok {
		c.printSystem("No suggestion.")
		return
	}
	c.printSystem(fmt.Sprintf("%s suggests %s.", c.Engine.Policy.Name(), a))
}

// cmdAuto lets the policy play n actions, or the rest of the battle.
func (c *CLI) cmdAuto(arg string) {
	if c.Engine.Policy == nil {
		c.printSystem("No policy configured.")
		return
	}
	n := 0
	if arg != "" {
		v, err := strconv.Atoi(arg)
		if err != nil || v < 1 {
			c.printSystem(fmt.Sprintf("Bad action count %q.", arg))
			return
		}
		n = v
	}
	for _, line := range Autoplay(c.Engine, n) {
		c.printLine(strings.TrimSpace(line))
	}
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [name]  - Save a replay (default: quicksave)",
		"  /load [name]  - Replay a saved battle (default: quicksave)",
		"  /restart      - Start the battle over",
		"  /suggest      - Ask the policy for a move",
		"  /auto [n]     - Let the policy play n actions, or the rest",
		"  /concede      - Give up the battle",
		"  /quit         - Exit",
		"  /help         - Show this help",
		"  /state        - Debug: dump battle counters",
		"  /trace        - Toggle debug trace output",
		"",
		"Battle commands:",
	}
	for _, line := range help {
		c.printLine(line)
	}
	for _, line := range engine.HelpLines() {
		c.printLine("  " + line)
	}
	c.printLine("  again (g)                      repeat your last command")
}

func (c *CLI) cmdState() {
	bc := c.Engine.Battle
	c.printSystem(fmt.Sprintf("Turn: %d", bc.Turn))
	c.printSystem(fmt.Sprintf("Outcome: %s", bc.Outcome))
	c.printSystem(fmt.Sprintf("Actions: %d, commands: %d", len(c.Engine.History), len(c.Engine.CommandLog)))
	c.printSystem("RNG: " + CounterLine(c.Engine.Battle))
}

func (c *CLI) printTrace(result types.Result) {
	if result.Action != "" {
		c.printSystem(fmt.Sprintf("[trace] Action: %s", result.Action))
	}
	if result.Err != nil {
		c.printSystem(fmt.Sprintf("[trace] Error: %v", result.Err))
	}
	c.printSystem("[trace] RNG: " + CounterLine(c.Engine.Battle))
}

// CounterLine lists the draw counter of every stream a battle consumes.
func CounterLine(bc *battle.BattleContext) string {
	var parts []string
	for _, s := range game.BattleStreams() {
		parts = append(parts, fmt.Sprintf("%s=%d", s, bc.Counter(s)))
	}
	return strings.Join(parts, " ")
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
