package cards

import "testing"

func TestFromName(t *testing.T) {
	tests := []struct {
		in   string
		want ID
	}{
		{"STRIKE_RED", StrikeRed},
		{"STRIKE", StrikeRed},
		{"DEFEND", DefendRed},
		{"bash", Bash},
		{" SHRUG_IT_OFF ", ShrugItOff},
		{"NOT_A_CARD", Invalid},
		{"", Invalid},
	}
	for _, tt := range tests {
		if got := FromName(tt.in); got != tt.want {
			t.Errorf("FromName(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParse_Upgrade(t *testing.T) {
	c := Parse("BASH+")
	if c.ID != Bash || !c.Upgraded {
		t.Fatalf("expected upgraded Bash, got %+v", c)
	}
	if c.BaseDamage() != 10 || c.Magic() != 3 {
		t.Errorf("upgraded Bash: damage %d magic %d", c.BaseDamage(), c.Magic())
	}
	if c.Name() != "Bash+" || c.String() != "BASH+" {
		t.Errorf("names: %q %q", c.Name(), c.String())
	}

	bad := Parse("NOPE+")
	if bad.IsValid() || bad.Upgraded {
		t.Errorf("unknown card should stay invalid and unupgraded: %+v", bad)
	}
}

func TestUpgrade_OneWay(t *testing.T) {
	c := New(Entrench)
	if c.Cost() != 2 {
		t.Fatalf("Entrench cost: got %d", c.Cost())
	}
	c.Upgrade()
	c.Upgrade()
	if !c.Upgraded || c.Cost() != 1 {
		t.Fatalf("upgraded Entrench: %+v cost %d", c, c.Cost())
	}
}

func TestStarterValues(t *testing.T) {
	strike := New(StrikeRed)
	if strike.Cost() != 1 || strike.BaseDamage() != 6 || !strike.RequiresTarget() {
		t.Errorf("Strike: cost %d damage %d target %v", strike.Cost(), strike.BaseDamage(), strike.RequiresTarget())
	}
	defend := New(DefendRed)
	if defend.Cost() != 1 || defend.BaseBlock() != 5 || defend.RequiresTarget() {
		t.Errorf("Defend: cost %d block %d target %v", defend.Cost(), defend.BaseBlock(), defend.RequiresTarget())
	}
	if defend.Type() != Skill || strike.Type() != Attack {
		t.Error("wrong starter card types")
	}
}

func TestIsStrike(t *testing.T) {
	for _, id := range []ID{StrikeRed, PerfectedStrike, PommelStrike, TwinStrike} {
		if !id.IsStrike() {
			t.Errorf("%s should count as a strike", id.Enum())
		}
	}
	if Bash.IsStrike() || DefendRed.IsStrike() {
		t.Error("Bash and Defend are not strikes")
	}
}

func TestPool(t *testing.T) {
	for _, r := range []Rarity{Common, Uncommon, Rare} {
		pool := Pool(r)
		if len(pool) == 0 {
			t.Fatalf("empty %s pool", r)
		}
		for _, id := range pool {
			if id.Rarity() != r {
				t.Errorf("%s in %s pool has rarity %s", id.Enum(), r, id.Rarity())
			}
		}
	}
	for _, id := range Pool(Basic) {
		if id != StrikeRed && id != DefendRed && id != Bash {
			t.Errorf("unexpected basic card %s", id.Enum())
		}
	}
}

func TestTableComplete(t *testing.T) {
	for i := ID(1); i < idCount; i++ {
		if table[i].enum == "" || table[i].name == "" {
			t.Errorf("card %d has no table row", i)
		}
		if FromName(table[i].enum) != i {
			t.Errorf("%s does not round trip", table[i].enum)
		}
	}
}
