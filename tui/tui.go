// Package tui is a Bubble Tea front-end for playing one battle by hand, with
// the configured policy one key away.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/spirecore/cli"
	"github.com/nathoo/spirecore/engine"
	"github.com/nathoo/spirecore/engine/battle"
	"github.com/nathoo/spirecore/engine/game"
	"github.com/nathoo/spirecore/types"
)

// chromeHeight is the rows below the log: hand, status, prompt and key help.
const chromeHeight = 4

// Model is the Bubble Tea model of one battle.
type Model struct {
	engine  *engine.Engine
	newGame func() *game.GameContext
	saveDir string

	keys     keyMap
	help     help.Model
	viewport viewport.Model
	input    textinput.Model
	recall   recall
	log      battleLog

	width, height int
	ready         bool
	trace         bool
	quitting      bool

	lastCmd  string
	lastTurn int
}

// New creates a model for eng. newGame rebuilds the run for /restart and
// /load and may be nil.
func New(eng *engine.Engine, newGame func() *game.GameContext) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.CharLimit = 256
	ti.Focus()

	home, _ := os.UserHomeDir()
	m := Model{
		engine:   eng,
		newGame:  newGame,
		saveDir:  filepath.Join(home, ".spirecore", "replays"),
		keys:     defaultKeyMap(),
		help:     help.New(),
		input:    ti,
		lastTurn: eng.Battle.Turn,
	}
	m.log.output(battleIntro(eng)...)
	return m
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, newGame func() *game.GameContext) error {
	_, err := tea.NewProgram(New(eng, newGame), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

func battleIntro(eng *engine.Engine) []string {
	bc := eng.Battle
	names := make([]string, 0, bc.MonsterCount)
	for i := 0; i < bc.MonsterCount; i++ {
		names = append(names, bc.Monsters[i].ID.Name())
	}
	lines := []string{
		fmt.Sprintf("Battle: %s (seed %d, ascension %d, floor %d).",
			strings.Join(names, ", "), bc.Seed, bc.Ascension, bc.Floor),
		"",
	}
	return append(lines, eng.Step("status").Output...)
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if next, cmd, ok := m.handleKey(msg); ok {
			return next, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.help.Width = w
	vh := max(h-chromeHeight, 1)
	if !m.ready {
		m.viewport = viewport.New(w, vh)
		m.viewport.KeyMap = viewportKeys()
		m.ready = true
	} else {
		m.viewport.Width, m.viewport.Height = w, vh
	}
	m.refresh()
}

// handleKey reports ok for keys the model consumes; the rest go to the
// prompt.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	empty := m.input.Value() == ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit, true
	case key.Matches(msg, m.keys.Submit):
		next, cmd := m.submit()
		return next, cmd, true
	case key.Matches(msg, m.keys.Older):
		if s, ok := m.recall.older(); ok {
			m.input.SetValue(s)
			m.input.CursorEnd()
		}
		return m, nil, true
	case key.Matches(msg, m.keys.Newer):
		s, _ := m.recall.newer()
		m.input.SetValue(s)
		m.input.CursorEnd()
		return m, nil, true
	case key.Matches(msg, m.keys.Scroll):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd, true
	case empty && key.Matches(msg, m.keys.Policy):
		return m.policyStep(), nil, true
	case empty && key.Matches(msg, m.keys.EndTurn):
		res := m.engine.Apply(battle.EndTurn())
		m.recall.add(res.Action)
		return m.record(res.Action, res), nil, true
	}
	return m, nil, false
}

// submit runs the prompt line as a meta command or a battle command.
func (m Model) submit() (Model, tea.Cmd) {
	typed := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if typed == "" {
		return m, nil
	}

	input := typed
	if l := strings.ToLower(typed); l == "again" || l == "g" {
		if m.lastCmd == "" {
			m.log.echo(typed)
			m.log.system("Nothing to repeat.")
			m.refresh()
			return m, nil
		}
		input = m.lastCmd
	}

	if strings.HasPrefix(input, "/") {
		m.recall.add(input)
		m.log.echo(input)
		lines, quit := m.runMeta(input)
		m.log.system(lines...)
		m.refresh()
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	m.lastCmd = input
	res := m.engine.Step(input)
	m.recall.add(recallText(input, res.Action, res.Err))
	return m.record(typed, res), nil
}

// policyStep plays the policy's choice. A rejected choice ends the turn.
func (m Model) policyStep() Model {
	a, ok := m.engine.Suggest()
	if !ok {
		m.log.system("No suggestion.")
		m.refresh()
		return m
	}
	res := m.engine.Apply(a)
	if res.Err != nil {
		res = m.engine.Apply(battle.EndTurn())
	}
	return m.record(m.engine.Policy.Name()+": "+res.Action, res)
}

// record logs one step and marks the start of a new player turn.
func (m Model) record(echo string, res types.Result) Model {
	m.log.echo(echo)
	m.log.output(res.Output...)
	if m.trace {
		m.log.output(traceLines(m.engine.Battle, res)...)
	}
	if bc := m.engine.Battle; bc.Turn != m.lastTurn && !bc.IsOver() {
		m.log.turnBreak(bc.Turn)
	}
	m.lastTurn = m.engine.Battle.Turn
	m.refresh()
	return m
}

// swap replaces the engine after /restart or /load.
func (m *Model) swap(eng *engine.Engine) {
	m.engine = eng
	m.lastCmd = ""
	m.lastTurn = eng.Battle.Turn
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.log.render(m.width))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	return strings.Join([]string{
		m.viewport.View(),
		m.renderHandBar(),
		m.renderStatusBar(),
		m.input.View(),
		m.help.View(m.keys),
	}, "\n")
}

func traceLines(bc *battle.BattleContext, res types.Result) []string {
	var lines []string
	if res.Action != "" {
		lines = append(lines, "[trace] Action: "+res.Action)
	}
	if res.Err != nil {
		lines = append(lines, fmt.Sprintf("[trace] Error: %v", res.Err))
	}
	return append(lines, "[trace] RNG: "+cli.CounterLine(bc))
}
