package agent

import (
	"github.com/nathoo/spirecore/engine/battle"
	"github.com/nathoo/spirecore/engine/cards"
	"github.com/nathoo/spirecore/engine/potions"
)

// DefaultMargin is the unblocked damage the baseline accepts before it
// switches to defensive cards.
const DefaultMargin = 3

// SimpleAgent is the baseline policy: a potion step, then a card step, then
// end turn. The card step is pluggable.
type SimpleAgent struct {
	name  string
	Cards CardSelector
}

// NewSimple returns the baseline policy with the heuristic card selector.
func NewSimple() *SimpleAgent {
	return &SimpleAgent{name: PolicySimple, Cards: Heuristic{Margin: DefaultMargin}}
}

func (s *SimpleAgent) Name() string { return s.name }

// ChooseAction returns the next action for bc.
func (s *SimpleAgent) ChooseAction(bc *battle.BattleContext) battle.Action {
	if a, ok := choosePotion(bc); ok {
		return a
	}
	if a, ok := s.Cards.SelectCard(bc); ok {
		return a
	}
	return battle.EndTurn()
}

// choosePotion drinks only when it is strictly useful: a damage potion that
// kills, or a defensive potion when the incoming hit would be lethal.
func choosePotion(bc *battle.BattleContext) (battle.Action, bool) {
	p := &bc.Player
	alive := bc.AliveMonsters()
	lethal := bc.IncomingDamage()-p.Block >= p.CurHp

	var cands []candidate
	add := func(a battle.Action, v int) {
		cands = append(cands, candidate{Action: a, Value: v, Order: len(cands)})
	}
	for i := 0; i < bc.PotionCapacity; i++ {
		switch bc.Potions[i] {
		case potions.FirePotion:
			for _, t := range alive {
				if effectiveHp(bc, t) <= 20 {
					add(battle.UsePotion(i, t), 100)
				}
			}
		case potions.ExplosivePotion:
			all := len(alive) > 0
			for _, t := range alive {
				all = all && effectiveHp(bc, t) <= 10
			}
			if all {
				add(battle.UsePotion(i, -1), 100)
			}
		case potions.BlockPotion:
			if lethal {
				add(battle.UsePotion(i, -1), 90)
			}
		case potions.WeakPotion:
			if lethal {
				add(battle.UsePotion(i, biggestThreat(bc)), 80)
			}
		case potions.BloodPotion, potions.FruitJuice:
			if lethal {
				add(battle.UsePotion(i, -1), 70)
			}
		}
	}
	return selectBest(bc, cands)
}

// Heuristic is the baseline card selector.
type Heuristic struct {
	// Margin is the unblocked damage tolerated before defending.
	Margin int
}

// SelectCard scores every card in hand and returns the best affordable one.
func (h Heuristic) SelectCard(bc *battle.BattleContext) (battle.Action, bool) {
	p := &bc.Player
	incoming := bc.IncomingDamage()
	defensive := incoming > p.Block+h.Margin

	cands := make([]candidate, 0, bc.Hand.Len())
	for i := 0; i < bc.Hand.Len(); i++ {
		c := bc.Hand.At(i)
		t := -1
		if c.RequiresTarget() {
			t = pickTarget(bc, c)
		}
		cands = append(cands, candidate{
			Action: battle.PlayCard(i, t),
			Value:  h.value(bc, c, t, incoming, defensive),
			Order:  i,
		})
	}
	return selectBest(bc, cands)
}

func (h Heuristic) value(bc *battle.BattleContext, c cards.Card, t, incoming int, defensive bool) int {
	p := &bc.Player
	need := max(0, incoming-p.Block)

	block := 0
	if c.BaseBlock() > 0 {
		block = max(0, c.BaseBlock()+p.Dexterity)
	}
	if c.ID == cards.Entrench {
		block = p.Block
	}
	if defensive && block > 0 {
		return 100 + min(block, need)
	}

	switch c.Type() {
	case cards.Power:
		return 80

	case cards.Attack:
		if c.ID == cards.Hemokinesis && p.CurHp <= 10 {
			return 0
		}
		dmg := expectedDamage(bc, c, t)
		v := 40 + dmg
		if t >= 0 && dmg >= effectiveHp(bc, t) {
			v += 30
		}
		if t >= 0 && c.ID == cards.Bash && bc.Monsters[t].Vulnerable == 0 {
			v += 10
		}
		return v

	case cards.Skill:
		healthy := p.CurHp > p.MaxHp/2
		switch c.ID {
		case cards.SeeingRed, cards.BattleTrance:
			return 70
		case cards.Offering:
			if healthy {
				return 75
			}
			return 0
		case cards.Bloodletting:
			if healthy {
				return 65
			}
			return 0
		case cards.Flex:
			if attacksInHand(bc) > 1 {
				return 60
			}
			return 0
		case cards.Intimidate, cards.Shockwave, cards.Disarm:
			if defensive {
				return 95
			}
			return 30
		case cards.ShrugItOff:
			return 25 + min(block, need)
		}
		if block > 0 && need > 0 {
			return 20 + min(block, need)
		}
	}
	return 0
}

func effectiveHp(bc *battle.BattleContext, t int) int {
	return bc.Monsters[t].CurHp + bc.Monsters[t].Block
}

// pickTarget prefers the weakest monster the card can kill, then the weakest
// monster. Cards that deal no damage go to the biggest threat.
func pickTarget(bc *battle.BattleContext, c cards.Card) int {
	if c.Type() != cards.Attack {
		return biggestThreat(bc)
	}
	best, bestKill := -1, -1
	for _, t := range bc.AliveMonsters() {
		hp := effectiveHp(bc, t)
		if expectedDamage(bc, c, t) >= hp && (bestKill < 0 || hp < effectiveHp(bc, bestKill)) {
			bestKill = t
		}
		if best < 0 || hp < effectiveHp(bc, best) {
			best = t
		}
	}
	if bestKill >= 0 {
		return bestKill
	}
	return best
}

func biggestThreat(bc *battle.BattleContext) int {
	best := -1
	for _, t := range bc.AliveMonsters() {
		if best < 0 || bc.IntentDamage(t) > bc.IntentDamage(best) {
			best = t
		}
	}
	return best
}

func attacksInHand(bc *battle.BattleContext) int {
	return bc.Hand.Count(func(c cards.Card) bool { return c.Type() == cards.Attack })
}

// expectedDamage estimates the total damage card c deals to monster t. Area
// attacks count one hit per living monster.
func expectedDamage(bc *battle.BattleContext, c cards.Card, t int) int {
	p := &bc.Player
	per := c.BaseDamage() + p.Strength
	hits := 1
	switch c.ID {
	case cards.BodySlam:
		per = p.Block + p.Strength
	case cards.HeavyBlade:
		per = c.BaseDamage() + p.Strength*c.Magic()
	case cards.PerfectedStrike:
		isStrike := func(c cards.Card) bool { return c.ID.IsStrike() }
		per += c.Magic() * (bc.Draw.Count(isStrike) + bc.Hand.Count(isStrike) + bc.Discard.Count(isStrike))
	case cards.TwinStrike, cards.Pummel, cards.SwordBoomerang:
		hits = c.Magic()
	case cards.Cleave, cards.Thunderclap:
		hits = len(bc.AliveMonsters())
	}
	if p.Weak > 0 {
		per = per * 3 / 4
	}
	if t >= 0 && bc.Monsters[t].Vulnerable > 0 {
		per = per * 3 / 2
	}
	return max(0, per) * hits
}
