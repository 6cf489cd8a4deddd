package battle

import (
	"github.com/nathoo/spirecore/engine/game"
	"github.com/nathoo/spirecore/engine/relics"
	"github.com/nathoo/spirecore/engine/rng"
	"github.com/nathoo/spirecore/types"
)

// drawCards moves up to n cards from the draw pile into the hand. An empty
// draw pile is refilled by shuffling the discard pile into it.
func (bc *BattleContext) drawCards(n int) {
	if bc.Player.NoDraw {
		return
	}
	for i := 0; i < n; i++ {
		if bc.Hand.Len() >= MaxHandSize {
			return
		}
		if bc.Draw.Empty() {
			if bc.Discard.Empty() {
				return
			}
			bc.reshuffle()
		}
		bc.Hand.Push(bc.Draw.Pop())
	}
}

func (bc *BattleContext) reshuffle() {
	bc.Draw.moveAll(&bc.Discard)
	rng.ShuffleWith(bc.Draw.slice(), &bc.streams[game.StreamShuffle])

	if bc.Relics.Has(relics.Sundial) {
		v := bc.Relics.Value(relics.Sundial) + 1
		if v >= 3 {
			v = 0
			bc.Player.Energy += 2
		}
		bc.Relics.SetValue(relics.Sundial, v)
	}
}

// startPlayerTurn begins the next player turn: block reset, energy refill,
// start-of-turn relics and powers, then the draw.
func (bc *BattleContext) startPlayerTurn() {
	p := &bc.Player
	r := &bc.Relics
	bc.Turn++
	first := bc.Turn == 1

	if !first {
		switch {
		case p.Barricade:
		case r.Has(relics.Calipers):
			p.Block = max(0, p.Block-15)
		default:
			p.Block = 0
		}
	}

	if r.Has(relics.IceCream) && !first {
		p.Energy += p.EnergyPerTurn
	} else {
		p.Energy = p.EnergyPerTurn
	}
	if first && r.Has(relics.Lantern) {
		p.Energy++
	}

	bc.CardsPlayedThisTurn = 0
	bc.AttacksPlayedThisTurn = 0
	bc.SkillsPlayedThisTurn = 0

	if p.DemonForm > 0 {
		p.Strength += p.DemonForm
	}
	if r.Has(relics.HappyFlower) {
		v := r.Value(relics.HappyFlower) + 1
		if v >= 3 {
			v = 0
			p.Energy++
		}
		r.SetValue(relics.HappyFlower, v)
	}
	if r.Has(relics.IncenseBurner) {
		v := r.Value(relics.IncenseBurner) + 1
		if v >= 6 {
			v = 0
			p.Intangible++
		}
		r.SetValue(relics.IncenseBurner, v)
	}
	if bc.Turn == 2 && r.Has(relics.HornCleat) {
		p.Block += 14
	}
	if r.Has(relics.MercuryHourglass) {
		bc.damageAll(3)
		if bc.IsOver() {
			return
		}
	}

	draw := HandDrawCount
	if first && r.Has(relics.BagOfPreparation) {
		draw += 2
	}
	bc.drawCards(draw)
}

// endTurn runs the end of the player turn, the monster turn and the end of
// the round, then starts the next player turn.
func (bc *BattleContext) endTurn() {
	bc.endPlayerTurn()
	if bc.IsOver() {
		return
	}
	bc.monsterTurn()
	if bc.IsOver() {
		return
	}
	bc.endRound()
	if bc.IsOver() {
		return
	}
	bc.startPlayerTurn()
}

func (bc *BattleContext) endPlayerTurn() {
	p := &bc.Player
	if bc.Relics.Has(relics.Orichalcum) && p.Block == 0 {
		p.Block += 6
	}
	if p.Metallicize > 0 {
		p.Block += p.Metallicize
	}
	if p.FlexLoss > 0 {
		p.Strength -= p.FlexLoss
		p.FlexLoss = 0
	}
	if p.SpeedLoss > 0 {
		p.Dexterity -= p.SpeedLoss
		p.SpeedLoss = 0
	}
	if p.Regen > 0 {
		bc.healPlayer(p.Regen)
		p.Regen--
	}

	keep := bc.Relics.Has(relics.RunicPyramid)
	var kept Pile
	for !bc.Hand.Empty() {
		c := bc.Hand.RemoveAt(0)
		switch {
		case c.Ethereal():
			bc.Exhaust.Push(c)
		case keep:
			kept.Push(c)
		default:
			bc.Discard.Push(c)
		}
	}
	bc.Hand = kept

	p.Entangled = false
	p.NoDraw = false
}

func (bc *BattleContext) monsterTurn() {
	bc.inMonsterTurn = true
	defer func() { bc.inMonsterTurn = false }()

	for i := 0; i < bc.MonsterCount; i++ {
		if bc.Monsters[i].IsAlive() {
			bc.Monsters[i].Block = 0
		}
	}
	for i := 0; i < bc.MonsterCount; i++ {
		if !bc.Monsters[i].IsAlive() {
			continue
		}
		bc.takeTurn(i)
		if bc.IsOver() {
			return
		}
		if bc.Monsters[i].IsAlive() {
			bc.rollMove(i)
		}
	}
}

// endRound fires end-of-round powers and decays debuffs. Player debuffs
// applied this monster turn keep their full duration.
func (bc *BattleContext) endRound() {
	for i := 0; i < bc.MonsterCount; i++ {
		m := &bc.Monsters[i]
		if !m.IsAlive() {
			continue
		}
		if m.Ritual > 0 {
			if m.ritualFresh {
				m.ritualFresh = false
			} else {
				m.Strength += m.Ritual
			}
		}
		if m.Metallicize > 0 {
			m.Block += m.Metallicize
		}
		if m.Vulnerable > 0 {
			m.Vulnerable--
		}
		if m.Weak > 0 {
			m.Weak--
		}
	}

	p := &bc.Player
	p.Vulnerable, p.vulnFresh = decay(p.Vulnerable, p.vulnFresh)
	p.Weak, p.weakFresh = decay(p.Weak, p.weakFresh)
	p.Frail, p.frailFresh = decay(p.Frail, p.frailFresh)
	if p.Intangible > 0 {
		p.Intangible--
	}
}

func decay(v int, fresh bool) (int, bool) {
	if fresh {
		return v, false
	}
	if v > 0 {
		v--
	}
	return v, false
}

// checkVictory ends the fight once no monster remains.
func (bc *BattleContext) checkVictory() {
	if bc.IsOver() {
		return
	}
	for i := 0; i < bc.MonsterCount; i++ {
		if bc.Monsters[i].IsAlive() {
			return
		}
	}
	bc.setOutcome(types.PlayerVictory)

	p := &bc.Player
	if bc.Relics.Has(relics.BurningBlood) {
		bc.healPlayer(6)
	}
	if bc.Relics.Has(relics.MeatOnTheBone) && p.CurHp <= p.MaxHp/2 {
		bc.healPlayer(12)
	}
}
