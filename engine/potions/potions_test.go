package potions

import (
	"testing"

	"github.com/nathoo/spirecore/engine/rng"
)

func TestFromName(t *testing.T) {
	if FromName("FIRE_POTION") != FirePotion {
		t.Error("FIRE_POTION")
	}
	if FromName("EMPTY_POTION_SLOT") != Empty {
		t.Error("EMPTY_POTION_SLOT")
	}
	if FromName("ELIXIR") != Invalid {
		t.Error("unknown potion should be Invalid")
	}
}

func TestCanDrink(t *testing.T) {
	if FairyPotion.CanDrink() {
		t.Error("fairy potion is passive")
	}
	if Empty.CanDrink() || Invalid.CanDrink() {
		t.Error("sentinels cannot be drunk")
	}
	if !BlockPotion.CanDrink() {
		t.Error("block potion should be drinkable")
	}
}

func TestRequiresTarget(t *testing.T) {
	for _, p := range []ID{FirePotion, WeakPotion, FearPotion} {
		if !p.RequiresTarget() {
			t.Errorf("%s should require a target", p)
		}
	}
	if ExplosivePotion.RequiresTarget() || BlockPotion.RequiresTarget() {
		t.Error("untargeted potions report a target")
	}
}

func TestRandom(t *testing.T) {
	r := rng.New(7)
	for i := 0; i < 200; i++ {
		before := r.Counter
		p := Random(&r)
		if !p.IsPotion() {
			t.Fatalf("roll %d returned non-potion %v", i, p)
		}
		if r.Counter-before != 2 {
			t.Fatalf("roll %d used %d draws, expected 2", i, r.Counter-before)
		}
	}

	a, b := rng.New(31), rng.New(31)
	for i := 0; i < 20; i++ {
		if Random(&a) != Random(&b) {
			t.Fatalf("roll %d differs for equal seeds", i)
		}
	}
}

func TestRarityPools(t *testing.T) {
	total := 0
	for r, pool := range byRarity {
		for _, p := range pool {
			if p.Rarity() != Rarity(r) {
				t.Errorf("%s in wrong pool", p)
			}
		}
		total += len(pool)
	}
	if total != int(idCount)-2 {
		t.Errorf("pools cover %d potions, expected %d", total, int(idCount)-2)
	}
}
