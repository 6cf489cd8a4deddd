package cli

import (
	"fmt"
	"strings"

	"github.com/nathoo/spirecore/engine"
	"github.com/nathoo/spirecore/engine/agent"
	"github.com/nathoo/spirecore/engine/battle"
	"github.com/nathoo/spirecore/engine/game"
	"github.com/nathoo/spirecore/engine/relics"
	"github.com/nathoo/spirecore/loader"
)

// ScriptAgent is the agent name reported for scripted runs.
const ScriptAgent = "script"

// Snapshot plays a scenario and renders the determinism report: the opening
// state, the progression of every step and the final result with RNG
// counters. A scenario without an action sequence is played by p.
func Snapshot(sc *loader.Scenario, p agent.Policy) (string, error) {
	eng, err := engine.New(sc.Game(), sc.Encounter)
	if err != nil {
		return "", err
	}
	initial := *eng.Battle

	agentName := ScriptAgent
	var progression []string
	if len(sc.Def.Actions) == 0 && p != nil {
		agentName = p.Name()
		eng.Policy = p
		progression = Autoplay(eng, 0)
	} else {
		progression = RunScript(eng, sc.Def.Actions)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "=== COMBAT: %q ===\n", sc.Def.Name)
	fmt.Fprintf(&b, "Agent: %s\n", agentName)
	fmt.Fprintf(&b, "Seed: %d | Ascension: %d | Floor: %d\n\n", initial.Seed, initial.Ascension, initial.Floor)

	b.WriteString("Initial State:\n")
	writeState(&b, &initial)
	b.WriteString("\n")

	b.WriteString("Combat Progression:\n")
	for _, line := range progression {
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	final := eng.Battle
	b.WriteString("Final Result:\n")
	fmt.Fprintf(&b, "  Outcome: %s\n", final.Outcome)
	fmt.Fprintf(&b, "  Player HP: %d/%d\n", final.Player.CurHp, final.Player.MaxHp)
	fmt.Fprintf(&b, "  Relics: %s\n", relicList(&final.Relics))
	fmt.Fprintf(&b, "  Turns: %d\n", final.Turn)
	fmt.Fprintf(&b, "  RNG Counters: shuffle=%d, cardRandom=%d, misc=%d\n",
		final.Counter(game.StreamShuffle), final.Counter(game.StreamCardRandom), final.Counter(game.StreamMisc))
	return b.String(), nil
}

func writeState(b *strings.Builder, bc *battle.BattleContext) {
	fmt.Fprintf(b, "  Player: %d/%d HP, %d Energy\n", bc.Player.CurHp, bc.Player.MaxHp, bc.Player.Energy)

	enemies := make([]string, 0, bc.MonsterCount)
	for i := 0; i < bc.MonsterCount; i++ {
		m := &bc.Monsters[i]
		enemies = append(enemies, fmt.Sprintf("%s (%d HP) - Intent: %s", m.ID.Name(), m.CurHp, m.Move().Name()))
	}
	fmt.Fprintf(b, "  Enemy: %s\n", strings.Join(enemies, ", "))

	hand := make([]string, 0, bc.Hand.Len())
	for _, c := range bc.Hand.Cards() {
		hand = append(hand, fmt.Sprintf("%s(%d)", c.Name(), c.Cost()))
	}
	fmt.Fprintf(b, "  Hand: %s\n", strings.Join(hand, ", "))
	fmt.Fprintf(b, "  Deck: %d cards remaining\n", bc.Draw.Len())
	fmt.Fprintf(b, "  Relics: %s\n", relicList(&bc.Relics))
}

// relicList names every held relic, with its counter when it has one.
func relicList(s *relics.Set) string {
	var out []string
	s.Each(func(id relics.ID, value int) {
		if value > 0 {
			out = append(out, fmt.Sprintf("%s(%d)", id.Name(), value))
		} else {
			out = append(out, id.Name())
		}
	})
	if len(out) == 0 {
		return "none"
	}
	return strings.Join(out, ", ")
}

// RunScript feeds actions to eng in order and returns one progression line
// per step plus the narration beneath it. Rejected actions are reported and
// skipped. The script stops when the battle ends.
func RunScript(eng *engine.Engine, actions []string) []string {
	var out []string
	for _, input := range actions {
		if eng.Battle.IsOver() {
			break
		}
		turn := eng.Battle.Turn
		res := eng.Step(input)
		switch {
		case res.Err != nil:
			out = append(out, fmt.Sprintf("  Invalid action: %s (%v, skipped)", input, res.Err))
			continue
		case res.Action == "":
			out = append(out, fmt.Sprintf("  Unknown action: %s (skipped)", input))
			continue
		}
		out = append(out, fmt.Sprintf("  Turn %d: %s", turn, res.Action))
		for _, line := range res.Output {
			out = append(out, "    "+line)
		}
		if res.Done {
			out = append(out, "  Combat ended!")
			break
		}
	}
	return out
}

// Autoplay lets the engine's policy act until the battle ends, or for at
// most limit actions when limit is positive. A rejected choice ends the
// turn instead, and a fight past the turn ceiling is conceded.
func Autoplay(eng *engine.Engine, limit int) []string {
	var out []string
	for n := 0; limit <= 0 || n < limit; n++ {
		if eng.Battle.IsOver() {
			break
		}
		if eng.Battle.Turn > agent.DefaultTurnLimit || len(eng.History) >= agent.DefaultActionLimit {
			for _, line := range eng.Concede().Output {
				out = append(out, "    "+line)
			}
			out = append(out, "  Combat ended!")
			break
		}
		a, ok := eng.Suggest()
		if !ok {
			break
		}
		turn := eng.Battle.Turn
		res := eng.Apply(a)
		if res.Err != nil {
			out = append(out, fmt.Sprintf("  Rejected: %s (%v)", res.Action, res.Err))
			res = eng.Apply(battle.EndTurn())
		}
		out = append(out, fmt.Sprintf("  Turn %d: %s", turn, res.Action))
		for _, line := range res.Output {
			out = append(out, "    "+line)
		}
		if res.Done {
			out = append(out, "  Combat ended!")
			break
		}
	}
	return out
}

func monsterNames(bc *battle.BattleContext) string {
	names := make([]string, 0, bc.MonsterCount)
	for i := 0; i < bc.MonsterCount; i++ {
		names = append(names, bc.Monsters[i].ID.Name())
	}
	return strings.Join(names, ", ")
}
