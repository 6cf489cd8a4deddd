package battle

import (
	"github.com/nathoo/spirecore/engine/cards"
	"github.com/nathoo/spirecore/engine/game"
	"github.com/nathoo/spirecore/engine/relics"
)

// playCard pays for the card at hand index idx, resolves it, and files it
// into the discard or exhaust pile. Powers are filed into exhaust so that
// every instance stays in one of the four piles.
func (bc *BattleContext) playCard(idx, target int) {
	p := &bc.Player
	c := bc.Hand.RemoveAt(idx)
	p.Energy -= bc.cardCost(c)

	bc.CardsPlayedThisTurn++
	doubled := false
	switch c.Type() {
	case cards.Attack:
		bc.AttacksPlayedThisTurn++
		doubled = bc.tickAttackRelics()
	case cards.Skill:
		bc.SkillsPlayedThisTurn++
		bc.onSkillPlayed()
	}

	bc.resolveCard(c, target, doubled)

	if c.Type() == cards.Attack && p.Vigor > 0 {
		p.Vigor = 0
	}

	switch {
	case c.Type() == cards.Power || c.Exhausts():
		bc.Exhaust.Push(c)
	default:
		bc.Discard.Push(c)
	}

	if !bc.IsOver() {
		bc.tickCardRelics()
	}
}

// tickAttackRelics advances attack-counting relics and reports whether Pen
// Nib doubles this attack.
func (bc *BattleContext) tickAttackRelics() bool {
	r := &bc.Relics
	doubled := false
	if r.Has(relics.PenNib) {
		v := r.Value(relics.PenNib) + 1
		if v >= 10 {
			v = 0
			doubled = true
		}
		r.SetValue(relics.PenNib, v)
	}
	if r.Has(relics.Nunchaku) {
		v := r.Value(relics.Nunchaku) + 1
		if v >= 10 {
			v = 0
			bc.Player.Energy++
		}
		r.SetValue(relics.Nunchaku, v)
	}
	return doubled
}

func (bc *BattleContext) tickCardRelics() {
	r := &bc.Relics
	if r.Has(relics.InkBottle) {
		v := r.Value(relics.InkBottle) + 1
		if v >= 10 {
			v = 0
			bc.drawCards(1)
		}
		r.SetValue(relics.InkBottle, v)
	}
}

func (bc *BattleContext) onSkillPlayed() {
	for i := 0; i < bc.MonsterCount; i++ {
		m := &bc.Monsters[i]
		if m.IsAlive() && m.Enrage > 0 {
			m.Strength += m.Enrage
		}
	}
}

func (bc *BattleContext) gainBlock(base int) {
	bc.Player.Block += bc.blockAmount(base)
}

func (bc *BattleContext) attack(t int, base int, doubled bool) {
	if bc.validTarget(t) {
		bc.hitMonster(t, bc.attackDamage(base, t, doubled))
	}
}

func (bc *BattleContext) debuffMonster(t int, kind debuff, amount int) {
	if !bc.validTarget(t) {
		return
	}
	m := &bc.Monsters[t]
	switch kind {
	case debuffVulnerable:
		m.Vulnerable += amount
	case debuffWeak:
		m.Weak += amount
	case debuffStrength:
		m.Strength -= amount
	}
}

func (bc *BattleContext) debuffAllMonsters(kind debuff, amount int) {
	for t := 0; t < bc.MonsterCount; t++ {
		bc.debuffMonster(t, kind, amount)
	}
}

// strikeCount counts strikes across the piles plus the card being played.
func (bc *BattleContext) strikeCount() int {
	isStrike := func(c cards.Card) bool { return c.ID.IsStrike() }
	return 1 + bc.Draw.Count(isStrike) + bc.Hand.Count(isStrike) + bc.Discard.Count(isStrike)
}

func (bc *BattleContext) resolveCard(c cards.Card, t int, doubled bool) {
	p := &bc.Player
	dmg, blk, magic := c.BaseDamage(), c.BaseBlock(), c.Magic()

	switch c.ID {
	case cards.StrikeRed, cards.Carnage, cards.Bludgeon:
		bc.attack(t, dmg, doubled)

	case cards.DefendRed, cards.GhostlyArmor, cards.Impervious:
		bc.gainBlock(blk)

	case cards.Bash:
		bc.attack(t, dmg, doubled)
		bc.debuffMonster(t, debuffVulnerable, magic)

	case cards.BodySlam:
		bc.attack(t, p.Block, doubled)

	case cards.Cleave:
		bc.attackAll(dmg, doubled)

	case cards.Clothesline:
		bc.attack(t, dmg, doubled)
		bc.debuffMonster(t, debuffWeak, magic)

	case cards.Flex:
		p.Strength += magic
		p.FlexLoss += magic

	case cards.HeavyBlade:
		// Strength counts magic times; attackDamage adds it once more.
		bc.attack(t, dmg+p.Strength*(magic-1), doubled)

	case cards.IronWave:
		bc.gainBlock(blk)
		bc.attack(t, dmg, doubled)

	case cards.PerfectedStrike:
		bc.attack(t, dmg+magic*bc.strikeCount(), doubled)

	case cards.PommelStrike:
		bc.attack(t, dmg, doubled)
		bc.drawCards(magic)

	case cards.ShrugItOff:
		bc.gainBlock(blk)
		bc.drawCards(magic)

	case cards.SwordBoomerang:
		for i := 0; i < magic && !bc.IsOver(); i++ {
			alive := bc.AliveMonsters()
			if len(alive) == 0 {
				break
			}
			pick := alive[bc.streams[game.StreamCardRandom].Random(len(alive)-1)]
			bc.attack(pick, dmg, doubled)
		}

	case cards.Thunderclap:
		bc.attackAll(dmg, doubled)
		bc.debuffAllMonsters(debuffVulnerable, magic)

	case cards.TwinStrike, cards.Pummel:
		for i := 0; i < magic && !bc.IsOver(); i++ {
			bc.attack(t, dmg, doubled)
		}

	case cards.BattleTrance:
		bc.drawCards(magic)
		p.NoDraw = true

	case cards.Bloodletting:
		bc.playerLoseHp(3)
		p.Energy += magic

	case cards.Disarm:
		bc.debuffMonster(t, debuffStrength, magic)

	case cards.Entrench:
		p.Block *= 2

	case cards.Hemokinesis:
		bc.playerLoseHp(magic)
		if !bc.IsOver() {
			bc.attack(t, dmg, doubled)
		}

	case cards.Inflame:
		p.Strength += magic

	case cards.Intimidate:
		bc.debuffAllMonsters(debuffWeak, magic)

	case cards.Metallicize:
		p.Metallicize += magic

	case cards.SeeingRed:
		p.Energy += magic

	case cards.Shockwave:
		bc.debuffAllMonsters(debuffWeak, magic)
		bc.debuffAllMonsters(debuffVulnerable, magic)

	case cards.Uppercut:
		bc.attack(t, dmg, doubled)
		bc.debuffMonster(t, debuffWeak, magic)
		bc.debuffMonster(t, debuffVulnerable, magic)

	case cards.Barricade:
		p.Barricade = true

	case cards.DemonForm:
		p.DemonForm += magic

	case cards.LimitBreak:
		p.Strength *= 2

	case cards.Offering:
		bc.playerLoseHp(6)
		if !bc.IsOver() {
			p.Energy += 2
			bc.drawCards(magic)
		}
	}
}
