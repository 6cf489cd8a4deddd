package battle

import (
	"github.com/nathoo/spirecore/engine/monsters"
	"github.com/nathoo/spirecore/engine/potions"
	"github.com/nathoo/spirecore/engine/relics"
	"github.com/nathoo/spirecore/types"
)

type debuff uint8

const (
	debuffVulnerable debuff = iota
	debuffWeak
	debuffFrail
	debuffStrength
	debuffDexterity
	debuffEntangle
)

// attackDamage resolves player attack damage against monster t: base, then
// flat bonuses, then multipliers, then floor.
func (bc *BattleContext) attackDamage(base int, t int, doubled bool) int {
	p := &bc.Player
	d := float32(base + p.Strength + p.Vigor)
	if doubled {
		d *= 2
	}
	if p.Weak > 0 {
		d *= 0.75
	}
	if t >= 0 && bc.Monsters[t].Vulnerable > 0 {
		if bc.Relics.Has(relics.PaperPhrog) {
			d *= 1.75
		} else {
			d *= 1.5
		}
	}
	return max(0, int(d))
}

// monsterDamage resolves the damage monster i deals with a base value.
func (bc *BattleContext) monsterDamage(i int, base int) int {
	m := &bc.Monsters[i]
	d := float32(base + m.Strength)
	if m.Weak > 0 {
		d *= 0.75
	}
	if bc.Player.Vulnerable > 0 {
		if bc.Relics.Has(relics.OddMushroom) {
			d *= 1.25
		} else {
			d *= 1.5
		}
	}
	dmg := max(0, int(d))
	if bc.Player.Intangible > 0 {
		dmg = min(dmg, 1)
	}
	return dmg
}

// blockAmount resolves card block: base, then dexterity, then frail, then
// floor.
func (bc *BattleContext) blockAmount(base int) int {
	b := float32(base + bc.Player.Dexterity)
	if bc.Player.Frail > 0 {
		b *= 0.75
	}
	return max(0, int(b))
}

// hitMonster applies already-resolved attack damage to monster t.
func (bc *BattleContext) hitMonster(t int, dmg int) {
	m := &bc.Monsters[t]
	if !m.IsAlive() || bc.IsOver() {
		return
	}
	unblocked := dmg - m.Block
	if unblocked <= 0 {
		m.Block -= dmg
		return
	}
	m.Block = 0
	if unblocked < 5 && bc.Relics.Has(relics.Boot) {
		unblocked = 5
	}
	bc.monsterLoseHp(t, unblocked, true)
}

// damageMonster applies non-attack damage, which block still absorbs.
func (bc *BattleContext) damageMonster(t int, dmg int) {
	m := &bc.Monsters[t]
	if !m.IsAlive() || bc.IsOver() {
		return
	}
	unblocked := dmg - m.Block
	if unblocked <= 0 {
		m.Block -= dmg
		return
	}
	m.Block = 0
	bc.monsterLoseHp(t, unblocked, false)
}

func (bc *BattleContext) monsterLoseHp(t int, amount int, fromAttack bool) {
	m := &bc.Monsters[t]
	m.CurHp -= amount
	if m.CurHp <= 0 {
		bc.onMonsterDeath(t)
		return
	}
	bc.onMonsterHpLoss(t, fromAttack)
}

// attackAll hits every living monster, each with its own vulnerability.
func (bc *BattleContext) attackAll(base int, doubled bool) {
	for t := 0; t < bc.MonsterCount; t++ {
		if bc.Monsters[t].IsAlive() {
			bc.hitMonster(t, bc.attackDamage(base, t, doubled))
		}
	}
}

func (bc *BattleContext) damageAll(dmg int) {
	for t := 0; t < bc.MonsterCount; t++ {
		bc.damageMonster(t, dmg)
	}
}

// monsterAttack resolves one hit from monster i against the player.
func (bc *BattleContext) monsterAttack(i int, base int) {
	if bc.IsOver() {
		return
	}
	p := &bc.Player
	dmg := bc.monsterDamage(i, base)

	unblocked := dmg - p.Block
	if unblocked <= 0 {
		p.Block -= dmg
		unblocked = 0
	} else {
		p.Block = 0
	}
	if unblocked > 1 && unblocked <= 5 && bc.Relics.Has(relics.Torii) {
		unblocked = 1
	}

	if p.Thorns > 0 {
		bc.damageMonster(i, p.Thorns)
	}
	if unblocked > 0 {
		bc.playerLoseHp(unblocked)
	}
}

// playerLoseHp removes hp after block, then runs hp-loss hooks and the death
// check.
func (bc *BattleContext) playerLoseHp(amount int) {
	p := &bc.Player
	if p.Intangible > 0 {
		amount = min(amount, 1)
	}
	if bc.Relics.Has(relics.TungstenRod) {
		amount--
	}
	if amount <= 0 || bc.IsOver() {
		return
	}

	p.CurHp -= amount
	if p.CurHp <= 0 {
		p.CurHp = 0
		bc.playerOnDie()
		if bc.IsOver() {
			return
		}
	}

	if !p.puzzleUsed && bc.Relics.Has(relics.CentennialPuzzle) {
		p.puzzleUsed = true
		bc.drawCards(3)
	}
	bc.updateRedSkull()
}

// playerOnDie runs the same revival order as the run: Mark of the Bloom,
// then a fairy, then Lizard Tail.
func (bc *BattleContext) playerOnDie() {
	p := &bc.Player
	if bc.Relics.Has(relics.MarkOfTheBloom) {
		bc.setOutcome(types.PlayerLoss)
		return
	}
	for i := 0; i < bc.PotionCapacity; i++ {
		if bc.Potions[i] == potions.FairyPotion {
			bc.Potions[i] = potions.Empty
			bc.PotionCount--
			pct := float32(0.3)
			if bc.Relics.Has(relics.SacredBark) {
				pct = 0.6
			}
			p.CurHp = max(1, int(float32(p.MaxHp)*pct))
			return
		}
	}
	if bc.Relics.Has(relics.LizardTail) && bc.Relics.Value(relics.LizardTail) != 0 {
		bc.Relics.SetValue(relics.LizardTail, 0)
		p.CurHp = max(1, p.MaxHp/2)
		return
	}
	bc.setOutcome(types.PlayerLoss)
}

func (bc *BattleContext) healPlayer(amount int) {
	if bc.Relics.Has(relics.MarkOfTheBloom) || amount <= 0 {
		return
	}
	p := &bc.Player
	p.CurHp = min(p.CurHp+amount, p.MaxHp)
	bc.updateRedSkull()
}

// updateRedSkull keeps Red Skull's strength in line with the hp threshold.
func (bc *BattleContext) updateRedSkull() {
	if !bc.Relics.Has(relics.RedSkull) {
		return
	}
	p := &bc.Player
	low := p.CurHp <= p.MaxHp/2
	switch {
	case low && !p.redSkullActive:
		p.redSkullActive = true
		p.Strength += 3
	case !low && p.redSkullActive:
		p.redSkullActive = false
		p.Strength -= 3
	}
}

// debuffPlayer applies a monster debuff. Artifact negates one application.
func (bc *BattleContext) debuffPlayer(kind debuff, amount int) {
	p := &bc.Player
	if p.Artifact > 0 {
		p.Artifact--
		return
	}
	switch kind {
	case debuffVulnerable:
		p.Vulnerable += amount
		p.vulnFresh = bc.inMonsterTurn
	case debuffWeak:
		p.Weak += amount
		p.weakFresh = bc.inMonsterTurn
	case debuffFrail:
		p.Frail += amount
		p.frailFresh = bc.inMonsterTurn
	case debuffStrength:
		p.Strength -= amount
	case debuffDexterity:
		p.Dexterity -= amount
	case debuffEntangle:
		p.Entangled = true
	}
}

// IncomingDamage estimates the damage the telegraphed attacks will deal to
// the player next monster turn, before block.
func (bc *BattleContext) IncomingDamage() int {
	total := 0
	for i := 0; i < bc.MonsterCount; i++ {
		total += bc.IntentDamage(i)
	}
	return total
}

// IntentDamage is the per-hit damage monster i telegraphs, after modifiers.
// Non-attacking intents return 0.
func (bc *BattleContext) IntentDamage(i int) int {
	m := &bc.Monsters[i]
	mv := m.Move()
	if !m.IsAlive() || !mv.Intent().IsAttack() {
		return 0
	}
	base := monsters.Damage(mv, bc.Ascension)
	if mv == monsters.LouseBite {
		base = m.BiteDamage
	}
	return bc.monsterDamage(i, base)
}
