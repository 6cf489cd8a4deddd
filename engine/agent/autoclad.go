package agent

import (
	"github.com/nathoo/spirecore/engine/battle"
	"github.com/nathoo/spirecore/engine/cards"
	"github.com/nathoo/spirecore/types"
)

const (
	DefaultSearchDepth  = 8
	DefaultSearchBudget = 5000
)

// AutoClad searches this turn's card sequences depth first on copies of the
// battle and plays the first card of the best sequence found. When the node
// budget runs out the baseline selector decides instead.
type AutoClad struct {
	Depth    int
	Budget   int
	Fallback CardSelector
}

// NewAutoClad returns the baseline policy with its card step replaced by the
// search.
func NewAutoClad() *SimpleAgent {
	return &SimpleAgent{
		name: PolicyAutoClad,
		Cards: &AutoClad{
			Depth:    DefaultSearchDepth,
			Budget:   DefaultSearchBudget,
			Fallback: Heuristic{Margin: DefaultMargin},
		},
	}
}

type search struct {
	depth     int
	budget    int
	nodes     int
	exhausted bool
	first     battle.Action
	found     bool
}

func (a *AutoClad) SelectCard(bc *battle.BattleContext) (battle.Action, bool) {
	s := search{depth: a.Depth, budget: a.Budget}
	s.dfs(bc, 0)
	if s.exhausted && a.Fallback != nil {
		return a.Fallback.SelectCard(bc)
	}
	return s.first, s.found
}

// playKey identifies a play for duplicate pruning: two copies of the same
// card against the same target lead to the same subtree.
type playKey struct {
	card   cards.Card
	target int
}

func (s *search) dfs(bc *battle.BattleContext, depth int) float64 {
	s.nodes++
	best := Score(bc)
	if bc.IsOver() || depth >= s.depth {
		return best
	}

	var tried []playKey
	for _, act := range bc.LegalActions() {
		if act.Kind != battle.ActionPlayCard {
			continue
		}
		if s.nodes >= s.budget {
			s.exhausted = true
			break
		}
		key := playKey{card: bc.Hand.At(act.Idx), target: act.Target}
		if containsKey(tried, key) {
			continue
		}
		tried = append(tried, key)

		next := *bc
		next.Execute(act)
		if v := s.dfs(&next, depth+1); v > best {
			best = v
			if depth == 0 {
				s.first = act
				s.found = true
			}
		}
	}
	return best
}

func containsKey(keys []playKey, k playKey) bool {
	for _, x := range keys {
		if x == k {
			return true
		}
	}
	return false
}

// Score rates a mid-turn position, assuming the turn ends here.
func Score(bc *battle.BattleContext) float64 {
	p := &bc.Player
	switch bc.Outcome {
	case types.PlayerVictory:
		return 10000 + float64(p.CurHp)*10
	case types.PlayerLoss:
		return -10000
	}

	monsterHp := 0
	for _, t := range bc.AliveMonsters() {
		m := &bc.Monsters[t]
		monsterHp += m.CurHp + m.Block
	}
	taken := max(0, bc.IncomingDamage()-p.Block)

	score := float64(p.CurHp-taken) * 10
	score -= float64(monsterHp) * 4
	score += float64(p.Strength)*6 + float64(p.Dexterity)*4
	score += float64(p.Metallicize)*5 + float64(p.DemonForm)*12
	for _, t := range bc.AliveMonsters() {
		m := &bc.Monsters[t]
		score += float64(m.Vulnerable)*3 + float64(m.Weak)*3
	}
	return score
}
