// Package engine provides the Step() orchestrator that wires together
// parsing, name resolution, validation, execution and events into a single
// battle action.
package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/spirecore/engine/agent"
	"github.com/nathoo/spirecore/engine/battle"
	"github.com/nathoo/spirecore/engine/events"
	"github.com/nathoo/spirecore/engine/game"
	"github.com/nathoo/spirecore/engine/monsters"
	"github.com/nathoo/spirecore/engine/parser"
	"github.com/nathoo/spirecore/engine/resolve"
	"github.com/nathoo/spirecore/types"
)

// Engine holds the run, the battle being fought and what was done in it.
type Engine struct {
	Game   *game.GameContext
	Battle *battle.BattleContext
	// Policy answers Suggest. It may be nil.
	Policy agent.Policy

	History    []battle.Action
	CommandLog []string

	exited bool
}

// New starts encounter e from the run state in gc.
func New(gc *game.GameContext, e monsters.Encounter) (*Engine, error) {
	bc, err := battle.New(gc, e)
	if err != nil {
		return nil, err
	}
	gc.EnterBattle(e)
	return &Engine{Game: gc, Battle: bc}, nil
}

// Step processes one player command and returns the result.
func (e *Engine) Step(input string) types.Result {
	var result types.Result

	// 0. Battle over: only meta commands are answered.
	cmd := parser.Parse(input)
	if e.Battle.IsOver() && !isMeta(cmd.Kind) {
		result.Output = append(result.Output, "The battle is over. "+events.OutcomeText(e.Battle))
		result.Done = true
		return result
	}

	// 1. Log the command.
	e.CommandLog = append(e.CommandLog, input)

	// 2. Empty input.
	if cmd.Raw == "" {
		result.Output = append(result.Output, "What do you want to do?")
		return result
	}

	// 3. Meta commands do not touch the battle.
	switch cmd.Kind {
	case types.CmdStatus:
		result.Output = e.Status()
		return result
	case types.CmdActions:
		result.Output = e.LegalLines()
		return result
	case types.CmdHelp:
		result.Output = HelpLines()
		return result
	case types.CmdUnknown:
		result.Output = append(result.Output, fmt.Sprintf("I don't understand %q. Type help for commands.", cmd.Raw))
		return result
	}

	// 4. Resolve card, potion and monster names.
	cmd, err := resolve.Resolve(e.Battle, cmd)
	if err != nil {
		result.Err = err
		result.Output = append(result.Output, err.Error())
		return result
	}

	// 5. Convert to an action, filling in the only possible target.
	a, _ := battle.FromCommand(cmd)
	a = e.defaultTarget(a)

	return e.Apply(a)
}

// Apply validates and executes one action. Rejected actions leave the
// battle untouched and set Err.
func (e *Engine) Apply(a battle.Action) types.Result {
	result := types.Result{Action: a.String()}

	// 1. Validate.
	if err := e.Battle.Validate(a); err != nil {
		result.Err = err
		result.Output = append(result.Output, "You can't do that: "+err.Error()+".")
		result.Done = e.Battle.IsOver()
		return result
	}

	// 2. Describe before the card leaves the hand.
	result.Output = append(result.Output, e.describe(a))

	// 3. Execute and record.
	before := *e.Battle
	e.Battle.Execute(a)
	e.History = append(e.History, a)

	// 4. Narrate the changes.
	for _, ev := range events.Diff(&before, e.Battle) {
		result.Output = append(result.Output, ev.Text)
	}

	// 5. Fold a finished battle back into the run, once.
	if e.Battle.IsOver() {
		if !e.exited {
			e.Battle.ExitBattle(e.Game)
			e.exited = true
		}
		result.Done = true
	}
	return result
}

// Suggest asks the policy for the next action.
func (e *Engine) Suggest() (battle.Action, bool) {
	if e.Policy == nil || e.Battle.IsOver() {
		return battle.Action{}, false
	}
	// The policy gets a copy so that a search cannot disturb the battle.
	view := *e.Battle
	return e.Policy.ChooseAction(&view), true
}

// Concede ends the battle as a loss.
func (e *Engine) Concede() types.Result {
	before := *e.Battle
	e.Battle.Concede()
	var result types.Result
	for _, ev := range events.Diff(&before, e.Battle) {
		result.Output = append(result.Output, ev.Text)
	}
	if !e.exited {
		e.Battle.ExitBattle(e.Game)
		e.exited = true
	}
	result.Done = true
	return result
}

// defaultTarget aims a targeted card or potion at the only living monster
// when the command named none.
func (e *Engine) defaultTarget(a battle.Action) battle.Action {
	if a.Target >= 0 || a.Kind == battle.ActionEndTurn {
		return a
	}
	alive := e.Battle.AliveMonsters()
	if len(alive) != 1 {
		return a
	}
	switch a.Kind {
	case battle.ActionPlayCard:
		if a.Idx >= 0 && a.Idx < e.Battle.Hand.Len() && e.Battle.Hand.At(a.Idx).RequiresTarget() {
			a.Target = alive[0]
		}
	case battle.ActionUsePotion:
		if a.Idx >= 0 && a.Idx < e.Battle.PotionCapacity && e.Battle.Potions[a.Idx].RequiresTarget() {
			a.Target = alive[0]
		}
	}
	return a
}

func (e *Engine) describe(a battle.Action) string {
	bc := e.Battle
	onTarget := func(requires bool) string {
		if !requires || a.Target < 0 || a.Target >= bc.MonsterCount {
			return ""
		}
		return " on " + bc.Monsters[a.Target].ID.Name()
	}
	switch a.Kind {
	case battle.ActionPlayCard:
		c := bc.Hand.At(a.Idx)
		return fmt.Sprintf("You play %s%s.", c.Name(), onTarget(c.RequiresTarget()))
	case battle.ActionUsePotion:
		p := bc.Potions[a.Idx]
		return fmt.Sprintf("You use %s%s.", p.Name(), onTarget(p.RequiresTarget()))
	}
	return "You end your turn."
}

// Status describes the battle: player, hand, potions and monsters.
func (e *Engine) Status() []string {
	bc := e.Battle
	p := &bc.Player
	out := []string{
		fmt.Sprintf("Turn %d. HP %d/%d, block %d, energy %d/%d, gold %d.",
			bc.Turn, p.CurHp, p.MaxHp, p.Block, p.Energy, p.EnergyPerTurn, p.Gold),
	}
	if buffs := playerBuffs(p); buffs != "" {
		out = append(out, "You have "+buffs+".")
	}

	hand := make([]string, 0, bc.Hand.Len())
	for i := 0; i < bc.Hand.Len(); i++ {
		c := bc.Hand.At(i)
		hand = append(hand, fmt.Sprintf("%d %s (%d)", i, c.Name(), c.Cost()))
	}
	out = append(out, "Hand: "+strings.Join(hand, ", ")+".")
	out = append(out, fmt.Sprintf("Draw %d, discard %d, exhaust %d.", bc.Draw.Len(), bc.Discard.Len(), bc.Exhaust.Len()))

	var pots []string
	for i := 0; i < bc.PotionCapacity; i++ {
		if bc.Potions[i].IsPotion() {
			pots = append(pots, fmt.Sprintf("%d %s", i, bc.Potions[i].Name()))
		}
	}
	if len(pots) > 0 {
		out = append(out, "Potions: "+strings.Join(pots, ", ")+".")
	}

	for _, i := range bc.AliveMonsters() {
		m := &bc.Monsters[i]
		line := fmt.Sprintf("%d %s: HP %d/%d, block %d", i, m.ID.Name(), m.CurHp, m.MaxHp, m.Block)
		if m.Vulnerable > 0 {
			line += fmt.Sprintf(", vulnerable %d", m.Vulnerable)
		}
		if m.Weak > 0 {
			line += fmt.Sprintf(", weak %d", m.Weak)
		}
		if m.Strength != 0 {
			line += fmt.Sprintf(", strength %d", m.Strength)
		}
		out = append(out, line+".")
	}
	for _, ev := range events.Intents(bc) {
		out = append(out, ev.Text)
	}
	return out
}

func playerBuffs(p *battle.Player) string {
	var parts []string
	add := func(name string, n int) {
		if n != 0 {
			parts = append(parts, fmt.Sprintf("%s %d", name, n))
		}
	}
	add("strength", p.Strength)
	add("dexterity", p.Dexterity)
	add("vulnerable", p.Vulnerable)
	add("weak", p.Weak)
	add("frail", p.Frail)
	add("metallicize", p.Metallicize)
	add("demon form", p.DemonForm)
	if p.Entangled {
		parts = append(parts, "entangled")
	}
	return strings.Join(parts, ", ")
}

// LegalLines lists every legal action in canonical form.
func (e *Engine) LegalLines() []string {
	if e.Battle.IsOver() {
		return []string{"No actions: " + events.OutcomeText(e.Battle)}
	}
	acts := e.Battle.LegalActions()
	out := make([]string, 0, len(acts))
	for _, a := range acts {
		out = append(out, a.String()+"  "+e.describe(a))
	}
	return out
}

// HelpLines explains the command forms.
func HelpLines() []string {
	return []string{
		"play <card> [on <monster>]   play a card by hand index or name",
		"potion <slot> [on <monster>] use a potion by slot or name",
		"end                          end your turn",
		"status                       show the battle",
		"actions                      list legal actions",
		"help                         show this text",
	}
}

func isMeta(k types.CommandKind) bool {
	return k == types.CmdStatus || k == types.CmdActions || k == types.CmdHelp
}
