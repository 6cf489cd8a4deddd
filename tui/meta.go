package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/spirecore/cli"
	"github.com/nathoo/spirecore/engine"
)

type metaCommand struct {
	names []string
	usage string
	desc  string
	quit  bool
	run   func(m *Model, arg string) []string
}

// metaCommands is the slash command table, in /help order.
func metaCommands() []metaCommand {
	return []metaCommand{
		{names: []string{"/save"}, usage: "[name]", desc: "save a replay (default: quicksave)", run: (*Model).cmdSave},
		{names: []string{"/load"}, usage: "[name]", desc: "replay a saved battle (default: quicksave)", run: (*Model).cmdLoad},
		{names: []string{"/restart"}, desc: "start the battle over", run: (*Model).cmdRestart},
		{names: []string{"/suggest"}, desc: "ask the policy for a move", run: (*Model).cmdSuggest},
		{names: []string{"/auto"}, usage: "[n]", desc: "let the policy play n actions, or the rest", run: (*Model).cmdAuto},
		{names: []string{"/concede"}, desc: "give up the battle", run: (*Model).cmdConcede},
		{names: []string{"/state"}, desc: "dump battle counters", run: (*Model).cmdState},
		{names: []string{"/trace"}, desc: "toggle trace output", run: (*Model).cmdTrace},
		{names: []string{"/help"}, desc: "show this help", run: (*Model).cmdHelp},
		{names: []string{"/quit", "/exit"}, desc: "exit", quit: true, run: func(*Model, string) []string {
			return []string{"Goodbye."}
		}},
	}
}

// runMeta dispatches a slash command. It returns the system lines to show
// and whether the program should exit.
func (m *Model) runMeta(input string) ([]string, bool) {
	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)
	for _, c := range metaCommands() {
		for _, n := range c.names {
			if n == name {
				return c.run(m, arg), c.quit
			}
		}
	}
	return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", name)}, false
}

func (m *Model) cmdSave(name string) []string {
	if name == "" {
		name = "quicksave"
	}
	rec, err := cli.SaveReplay(m.engine, m.saveDir, name)
	if err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}
	return []string{fmt.Sprintf("Replay saved to %s (%d actions).", name, len(rec.Actions))}
}

func (m *Model) cmdLoad(name string) []string {
	if m.newGame == nil {
		return []string{"Load unavailable."}
	}
	if name == "" {
		name = "quicksave"
	}
	eng, rec, err := cli.LoadReplay(m.engine, m.newGame, m.saveDir, name)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}
	m.swap(eng)
	m.log.output(eng.Step("status").Output...)
	return []string{fmt.Sprintf("Replay loaded from %s (%d actions, turn %d).", name, len(rec.Actions), eng.Battle.Turn)}
}

func (m *Model) cmdRestart(string) []string {
	if m.newGame == nil {
		return []string{"Restart unavailable."}
	}
	eng, err := engine.New(m.newGame(), m.engine.Battle.Encounter)
	if err != nil {
		return []string{fmt.Sprintf("Restart failed: %v", err)}
	}
	eng.Policy = m.engine.Policy
	m.swap(eng)
	m.log.output(battleIntro(eng)...)
	return []string{"Battle restarted."}
}

func (m *Model) cmdSuggest(string) []string {
	a, ok := m.engine.Suggest()
	if !ok {
		return []string{"No suggestion."}
	}
	return []string{fmt.Sprintf("%s suggests %s.", m.engine.Policy.Name(), a)}
}

func (m *Model) cmdAuto(arg string) []string {
	if m.engine.Policy == nil {
		return []string{"No policy configured."}
	}
	n := 0
	if arg != "" {
		v, err := strconv.Atoi(arg)
		if err != nil || v < 1 {
			return []string{fmt.Sprintf("Bad action count %q.", arg)}
		}
		n = v
	}
	steps := cli.Autoplay(m.engine, n)
	for _, line := range steps {
		m.log.output(strings.TrimSpace(line))
	}
	m.lastTurn = m.engine.Battle.Turn
	return []string{fmt.Sprintf("%s played %d lines of the fight.", m.engine.Policy.Name(), len(steps))}
}

func (m *Model) cmdConcede(string) []string {
	m.log.output(m.engine.Concede().Output...)
	return []string{"Conceded."}
}

func (m *Model) cmdState(string) []string {
	bc := m.engine.Battle
	return []string{
		fmt.Sprintf("Turn: %d", bc.Turn),
		fmt.Sprintf("Outcome: %s", bc.Outcome),
		fmt.Sprintf("Actions: %d, commands: %d", len(m.engine.History), len(m.engine.CommandLog)),
		"RNG: " + cli.CounterLine(bc),
	}
}

func (m *Model) cmdTrace(string) []string {
	m.trace = !m.trace
	if m.trace {
		return []string{"Trace output enabled."}
	}
	return []string{"Trace output disabled."}
}

func (m *Model) cmdHelp(string) []string {
	out := []string{"System:"}
	for _, c := range metaCommands() {
		out = append(out, fmt.Sprintf("  %-16s %s", strings.TrimSpace(strings.Join(c.names, ", ")+" "+c.usage), c.desc))
	}
	out = append(out, "Battle commands:")
	for _, line := range engine.HelpLines() {
		out = append(out, "  "+line)
	}
	return append(out,
		"  again (g)                      repeat your last command",
		"Keys: on an empty line a lets the policy move and e ends the turn; Up/Down recall resolved actions",
	)
}
