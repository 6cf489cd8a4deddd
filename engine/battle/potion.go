package battle

import (
	"github.com/nathoo/spirecore/engine/game"
	"github.com/nathoo/spirecore/engine/potions"
	"github.com/nathoo/spirecore/engine/relics"
)

// drinkPotion applies the potion in slot idx and then vacates the slot.
// Sacred Bark doubles every amount.
func (bc *BattleContext) drinkPotion(idx, target int) {
	pot := bc.Potions[idx]
	p := &bc.Player
	mult := 1
	if bc.Relics.Has(relics.SacredBark) {
		mult = 2
	}

	switch pot {
	case potions.AncientPotion:
		p.Artifact += 1 * mult
	case potions.BlockPotion:
		p.Block += 12 * mult
	case potions.BloodPotion:
		bc.healPlayer(int(float32(p.MaxHp) * 0.2 * float32(mult)))
	case potions.DexterityPotion:
		p.Dexterity += 2 * mult
	case potions.EnergyPotion:
		p.Energy += 2 * mult
	case potions.ExplosivePotion:
		bc.damageAll(10 * mult)
	case potions.FearPotion:
		bc.debuffMonster(target, debuffVulnerable, 3*mult)
	case potions.FirePotion:
		if bc.validTarget(target) {
			bc.damageMonster(target, 20*mult)
		}
	case potions.FruitJuice:
		p.MaxHp += 5 * mult
		bc.healPlayer(5 * mult)
	case potions.RegenPotion:
		p.Regen += 5 * mult
	case potions.SpeedPotion:
		p.Dexterity += 5 * mult
		p.SpeedLoss += 5 * mult
	case potions.SteroidPotion:
		p.Strength += 5 * mult
		p.FlexLoss += 5 * mult
	case potions.StrengthPotion:
		p.Strength += 2 * mult
	case potions.SwiftPotion:
		bc.drawCards(3 * mult)
	case potions.WeakPotion:
		bc.debuffMonster(target, debuffWeak, 3*mult)
	case potions.EntropicBrew:
		// The brew's own slot is refilled too.
		bc.Potions[idx] = potions.Empty
		bc.PotionCount--
		for i := 0; i < bc.PotionCapacity && !bc.Relics.Has(relics.Sozu); i++ {
			rolled := potions.Random(&bc.streams[game.StreamPotion])
			if bc.Potions[i] == potions.Empty {
				bc.Potions[i] = rolled
				bc.PotionCount++
			}
		}
		return
	}

	bc.Potions[idx] = potions.Empty
	bc.PotionCount--
}
