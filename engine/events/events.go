// Package events derives narration events by comparing a battle before and
// after one action. It never changes either state.
package events

import (
	"fmt"

	"github.com/nathoo/spirecore/engine/battle"
	"github.com/nathoo/spirecore/types"
)

// Type names what an event reports.
type Type string

const (
	MonsterDamaged Type = "monster_damaged"
	MonsterBlock   Type = "monster_block"
	MonsterDied    Type = "monster_died"
	MonsterEscaped Type = "monster_escaped"
	PlayerDamaged  Type = "player_damaged"
	PlayerHealed   Type = "player_healed"
	PlayerBlock    Type = "player_block"
	GoldChanged    Type = "gold_changed"
	TurnStarted    Type = "turn_started"
	Intent         Type = "intent"
	BattleEnded    Type = "battle_ended"
)

// Event is one observable change. Target is a monster slot, or -1 for the
// player and the battle itself.
type Event struct {
	Type   Type
	Target int
	Amount int
	Text   string
}

// Diff lists the changes from before to after: monster changes in slot
// order, then the player, then the turn and intents, then the outcome.
func Diff(before, after *battle.BattleContext) []Event {
	var out []Event

	for i := 0; i < after.MonsterCount; i++ {
		b, a := &before.Monsters[i], &after.Monsters[i]
		name := a.ID.Name()
		if lost := b.CurHp - a.CurHp; lost > 0 {
			out = append(out, Event{Type: MonsterDamaged, Target: i, Amount: lost,
				Text: fmt.Sprintf("%s loses %d hp (%d/%d).", name, lost, max(a.CurHp, 0), a.MaxHp)})
		}
		if gained := a.Block - b.Block; gained > 0 && a.IsAlive() {
			out = append(out, Event{Type: MonsterBlock, Target: i, Amount: gained,
				Text: fmt.Sprintf("%s gains %d block.", name, gained)})
		}
		switch {
		case b.IsAlive() && a.Escaped:
			out = append(out, Event{Type: MonsterEscaped, Target: i, Amount: a.StolenGold,
				Text: fmt.Sprintf("%s escapes with %d gold.", name, a.StolenGold)})
		case b.IsAlive() && !a.IsAlive():
			out = append(out, Event{Type: MonsterDied, Target: i, Text: fmt.Sprintf("%s dies.", name)})
		}
	}

	bp, ap := &before.Player, &after.Player
	switch d := ap.CurHp - bp.CurHp; {
	case d < 0:
		out = append(out, Event{Type: PlayerDamaged, Target: -1, Amount: -d,
			Text: fmt.Sprintf("You lose %d hp (%d/%d).", -d, max(ap.CurHp, 0), ap.MaxHp)})
	case d > 0:
		out = append(out, Event{Type: PlayerHealed, Target: -1, Amount: d,
			Text: fmt.Sprintf("You heal %d hp (%d/%d).", d, ap.CurHp, ap.MaxHp)})
	}
	if after.Turn == before.Turn && ap.Block > bp.Block {
		out = append(out, Event{Type: PlayerBlock, Target: -1, Amount: ap.Block - bp.Block,
			Text: fmt.Sprintf("You gain %d block (%d).", ap.Block-bp.Block, ap.Block)})
	}
	if d := ap.Gold - bp.Gold; d != 0 {
		verb := "gain"
		if d < 0 {
			verb = "lose"
		}
		out = append(out, Event{Type: GoldChanged, Target: -1, Amount: d,
			Text: fmt.Sprintf("You %s %d gold.", verb, abs(d))})
	}

	if after.Turn != before.Turn && !after.IsOver() {
		out = append(out, Event{Type: TurnStarted, Target: -1, Amount: after.Turn,
			Text: fmt.Sprintf("Turn %d. You have %d energy and %d block.", after.Turn, ap.Energy, ap.Block)})
		out = append(out, Intents(after)...)
	}

	if !before.IsOver() && after.IsOver() {
		out = append(out, Event{Type: BattleEnded, Target: -1, Text: OutcomeText(after)})
	}
	return out
}

// Intents describes the telegraphed move of every living monster.
func Intents(bc *battle.BattleContext) []Event {
	var out []Event
	for _, i := range bc.AliveMonsters() {
		m := &bc.Monsters[i]
		mv := m.Move()
		text := fmt.Sprintf("%s intends %s (%s).", m.ID.Name(), mv.Name(), mv.Intent())
		dmg := bc.IntentDamage(i)
		if dmg > 0 {
			text = fmt.Sprintf("%s intends %s for %d.", m.ID.Name(), mv.Name(), dmg)
		}
		out = append(out, Event{Type: Intent, Target: i, Amount: dmg, Text: text})
	}
	return out
}

// OutcomeText is the closing line of a finished battle.
func OutcomeText(bc *battle.BattleContext) string {
	switch {
	case bc.Outcome == types.PlayerVictory:
		return fmt.Sprintf("Victory on turn %d with %d hp left.", bc.Turn, bc.Player.CurHp)
	case bc.Player.CurHp > 0:
		return fmt.Sprintf("You concede on turn %d.", bc.Turn)
	default:
		return fmt.Sprintf("You are defeated on turn %d.", bc.Turn)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
