package battle

import (
	"github.com/nathoo/spirecore/engine/monsters"
	"github.com/nathoo/spirecore/engine/rng"
)

// Monster is one roster slot.
type Monster struct {
	ID    monsters.ID
	CurHp int
	MaxHp int
	Block int

	Strength   int
	Vulnerable int
	Weak       int

	Ritual      int
	ritualFresh bool
	Metallicize int
	CurlUp      int
	Enrage      int
	SporeCloud  int

	Asleep     bool
	idleCount  int
	Escaped    bool
	StolenGold int

	// BiteDamage is a louse's fixed bite, rolled at spawn.
	BiteDamage int

	// History holds the telegraphed move first, then the one before it.
	History      [2]monsters.MoveID
	MoveCount    int
	usedEntangle bool

	rng rng.Random
}

// init rolls hp and spawn-time values from the monster hp stream.
func (m *Monster) init(id monsters.ID, ascension int, hpRng *rng.Random) {
	*m = Monster{ID: id}
	lo, hi := id.HPRange(ascension)
	m.MaxHp = hpRng.RandomRange(lo, hi)
	m.CurHp = m.MaxHp

	switch id {
	case monsters.RedLouse, monsters.GreenLouse:
		lo, hi := monsters.LouseBiteRange(ascension)
		m.BiteDamage = hpRng.RandomRange(lo, hi)
		lo, hi = monsters.CurlUpRange(ascension)
		m.CurlUp = hpRng.RandomRange(lo, hi)
	case monsters.FungiBeast:
		m.SporeCloud = 2
	case monsters.Lagavulin:
		m.Asleep = true
		m.Block = 8
		m.Metallicize = 8
	}
}

// IsAlive reports whether the monster is still in the fight.
func (m *Monster) IsAlive() bool {
	return m.CurHp > 0 && !m.Escaped
}

// Move returns the telegraphed move.
func (m *Monster) Move() monsters.MoveID { return m.History[0] }

func (m *Monster) lastMove(mv monsters.MoveID) bool { return m.History[0] == mv }

func (m *Monster) lastMoveBefore(mv monsters.MoveID) bool { return m.History[1] == mv }

func (m *Monster) lastTwoMoves(mv monsters.MoveID) bool {
	return m.History[0] == mv && m.History[1] == mv
}

// repeated reports whether mv may not be picked again. High ascensions
// forbid any repeat, lower ones only a third use in a row.
func (m *Monster) repeated(mv monsters.MoveID, strict bool) bool {
	if strict {
		return m.lastMove(mv)
	}
	return m.lastTwoMoves(mv)
}

func (m *Monster) setMove(mv monsters.MoveID) {
	m.History[1] = m.History[0]
	m.History[0] = mv
	m.MoveCount++
}

// rollMove picks the next intent for monster i from its own stream. One
// Random(99) draw is made per roll, plus any tie-break draws.
func (bc *BattleContext) rollMove(i int) {
	m := &bc.Monsters[i]
	r := &m.rng
	asc := bc.Ascension
	num := r.Random(99)
	first := m.MoveCount == 0

	switch m.ID {
	case monsters.Cultist:
		if first {
			m.setMove(monsters.CultistIncantation)
		} else {
			m.setMove(monsters.CultistDarkStrike)
		}

	case monsters.JawWorm:
		switch {
		case first:
			m.setMove(monsters.JawWormChomp)
		case num < 25:
			if m.lastMove(monsters.JawWormChomp) {
				if r.RandomBooleanChance(0.5625) {
					m.setMove(monsters.JawWormBellow)
				} else {
					m.setMove(monsters.JawWormThrash)
				}
			} else {
				m.setMove(monsters.JawWormChomp)
			}
		case num < 55:
			if m.lastTwoMoves(monsters.JawWormThrash) {
				if r.RandomBooleanChance(0.357) {
					m.setMove(monsters.JawWormChomp)
				} else {
					m.setMove(monsters.JawWormBellow)
				}
			} else {
				m.setMove(monsters.JawWormThrash)
			}
		default:
			if m.lastMove(monsters.JawWormBellow) {
				if r.RandomBooleanChance(0.416) {
					m.setMove(monsters.JawWormChomp)
				} else {
					m.setMove(monsters.JawWormThrash)
				}
			} else {
				m.setMove(monsters.JawWormBellow)
			}
		}

	case monsters.RedLouse, monsters.GreenLouse:
		special := monsters.LouseGrow
		if m.ID == monsters.GreenLouse {
			special = monsters.LouseSpitWeb
		}
		if num < 25 {
			if m.repeated(special, asc >= 17) {
				m.setMove(monsters.LouseBite)
			} else {
				m.setMove(special)
			}
		} else if m.lastTwoMoves(monsters.LouseBite) {
			m.setMove(special)
		} else {
			m.setMove(monsters.LouseBite)
		}

	case monsters.BlueSlaver:
		switch {
		case num >= 40 && !m.lastTwoMoves(monsters.BlueSlaverStab):
			m.setMove(monsters.BlueSlaverStab)
		case !m.repeated(monsters.BlueSlaverRake, asc >= 17):
			m.setMove(monsters.BlueSlaverRake)
		default:
			m.setMove(monsters.BlueSlaverStab)
		}

	case monsters.RedSlaver:
		switch {
		case first:
			m.setMove(monsters.RedSlaverStab)
		case num >= 75 && !m.usedEntangle:
			m.setMove(monsters.RedSlaverEntangle)
		case num >= 55 && m.usedEntangle && !m.lastTwoMoves(monsters.RedSlaverStab):
			m.setMove(monsters.RedSlaverStab)
		case !m.repeated(monsters.RedSlaverScrape, asc >= 17):
			m.setMove(monsters.RedSlaverScrape)
		default:
			m.setMove(monsters.RedSlaverStab)
		}

	case monsters.Looter:
		switch {
		case first:
			m.setMove(monsters.LooterMug)
		case m.MoveCount == 1:
			m.setMove(monsters.LooterMug)
		case m.lastMove(monsters.LooterMug):
			if r.RandomBoolean() {
				m.setMove(monsters.LooterSmokeBomb)
			} else {
				m.setMove(monsters.LooterLunge)
			}
		case m.lastMove(monsters.LooterLunge):
			m.setMove(monsters.LooterSmokeBomb)
		default:
			m.setMove(monsters.LooterEscape)
		}

	case monsters.FungiBeast:
		if num < 60 {
			if m.lastTwoMoves(monsters.FungiBeastBite) {
				m.setMove(monsters.FungiBeastGrow)
			} else {
				m.setMove(monsters.FungiBeastBite)
			}
		} else if m.lastMove(monsters.FungiBeastGrow) {
			m.setMove(monsters.FungiBeastBite)
		} else {
			m.setMove(monsters.FungiBeastGrow)
		}

	case monsters.GremlinNob:
		switch {
		case first:
			m.setMove(monsters.GremlinNobBellow)
		case asc >= 18 && !m.lastMove(monsters.GremlinNobSkullBash) && !m.lastMoveBefore(monsters.GremlinNobSkullBash):
			m.setMove(monsters.GremlinNobSkullBash)
		case asc < 18 && num < 33:
			m.setMove(monsters.GremlinNobSkullBash)
		case m.lastTwoMoves(monsters.GremlinNobRush):
			m.setMove(monsters.GremlinNobSkullBash)
		default:
			m.setMove(monsters.GremlinNobRush)
		}

	case monsters.Lagavulin:
		switch {
		case m.Asleep:
			m.setMove(monsters.LagavulinSleep)
		case m.lastTwoMoves(monsters.LagavulinAttack):
			m.setMove(monsters.LagavulinSiphonSoul)
		default:
			m.setMove(monsters.LagavulinAttack)
		}
	}
}

// takeTurn executes the telegraphed move of monster i.
func (bc *BattleContext) takeTurn(i int) {
	m := &bc.Monsters[i]
	asc := bc.Ascension
	mv := m.Move()

	switch mv {
	case monsters.CultistIncantation:
		m.Ritual += monsters.Magic(mv, asc)
		m.ritualFresh = true

	case monsters.CultistDarkStrike, monsters.JawWormChomp, monsters.BlueSlaverStab,
		monsters.RedSlaverStab, monsters.FungiBeastBite, monsters.GremlinNobRush,
		monsters.LagavulinAttack:
		bc.monsterAttack(i, monsters.Damage(mv, asc))

	case monsters.JawWormThrash:
		bc.monsterAttack(i, monsters.Damage(mv, asc))
		m.Block += monsters.Block(mv, asc)

	case monsters.JawWormBellow:
		m.Strength += monsters.Magic(mv, asc)
		m.Block += monsters.Block(mv, asc)

	case monsters.LouseBite:
		bc.monsterAttack(i, m.BiteDamage)

	case monsters.LouseGrow, monsters.FungiBeastGrow:
		m.Strength += monsters.Magic(mv, asc)

	case monsters.LouseSpitWeb:
		bc.debuffPlayer(debuffWeak, monsters.Magic(mv, asc))

	case monsters.BlueSlaverRake:
		bc.monsterAttack(i, monsters.Damage(mv, asc))
		bc.debuffPlayer(debuffWeak, monsters.Magic(mv, asc))

	case monsters.RedSlaverScrape:
		bc.monsterAttack(i, monsters.Damage(mv, asc))
		bc.debuffPlayer(debuffVulnerable, monsters.Magic(mv, asc))

	case monsters.RedSlaverEntangle:
		m.usedEntangle = true
		bc.debuffPlayer(debuffEntangle, 1)

	case monsters.LooterMug, monsters.LooterLunge:
		bc.monsterAttack(i, monsters.Damage(mv, asc))
		stolen := min(monsters.Thievery(asc), bc.Player.Gold)
		bc.Player.Gold -= stolen
		m.StolenGold += stolen

	case monsters.LooterSmokeBomb:
		m.Block += monsters.Block(mv, asc)

	case monsters.LooterEscape:
		m.Escaped = true
		bc.checkVictory()

	case monsters.GremlinNobBellow:
		m.Enrage = monsters.Magic(mv, asc)

	case monsters.GremlinNobSkullBash:
		bc.monsterAttack(i, monsters.Damage(mv, asc))
		bc.debuffPlayer(debuffVulnerable, monsters.Magic(mv, asc))

	case monsters.LagavulinSleep:
		m.idleCount++
		if m.idleCount >= 3 {
			m.wake()
		}

	case monsters.LagavulinStunned:

	case monsters.LagavulinSiphonSoul:
		n := monsters.Magic(mv, asc)
		bc.debuffPlayer(debuffStrength, n)
		bc.debuffPlayer(debuffDexterity, n)
	}
}

// wake ends a Lagavulin's sleep and drops its sleeping metallicize.
func (m *Monster) wake() {
	m.Asleep = false
	m.Metallicize = 0
}

// onHpLoss fires monster hooks for unblocked damage.
func (bc *BattleContext) onMonsterHpLoss(i int, fromAttack bool) {
	m := &bc.Monsters[i]
	if fromAttack && m.CurlUp > 0 && m.CurHp > 0 {
		m.Block += m.CurlUp
		m.CurlUp = 0
	}
	if m.ID == monsters.Lagavulin && m.Asleep {
		m.wake()
		m.History[0] = monsters.LagavulinStunned
	}
}

func (bc *BattleContext) onMonsterDeath(i int) {
	m := &bc.Monsters[i]
	m.CurHp = 0
	if m.SporeCloud > 0 {
		bc.debuffPlayer(debuffVulnerable, m.SporeCloud)
	}
	if m.StolenGold > 0 {
		bc.Player.Gold += m.StolenGold
		m.StolenGold = 0
	}
	bc.checkVictory()
}
