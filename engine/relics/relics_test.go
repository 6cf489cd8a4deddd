package relics

import "testing"

func TestFromName(t *testing.T) {
	if got := FromName("PEN_NIB"); got != PenNib {
		t.Errorf("PEN_NIB: got %v", got)
	}
	if got := FromName("burning_blood"); got != BurningBlood {
		t.Errorf("burning_blood: got %v", got)
	}
	if got := FromName("WHALE_BONE"); got != Invalid {
		t.Errorf("unknown relic should be Invalid, got %v", got)
	}
	for i := 0; i < Count; i++ {
		if FromName(ID(i).String()) != ID(i) {
			t.Errorf("%s does not round trip", ID(i))
		}
	}
}

func TestName(t *testing.T) {
	if PenNib.Name() != "Pen Nib" {
		t.Errorf("got %q", PenNib.Name())
	}
	if MarkOfTheBloom.Name() != "Mark Of The Bloom" {
		t.Errorf("got %q", MarkOfTheBloom.Name())
	}
}

func TestContainer(t *testing.T) {
	var c Container
	c.Add(Instance{ID: BurningBlood})
	c.Add(Instance{ID: PenNib, Value: 3})
	c.Add(Instance{ID: PenNib, Value: 7})
	c.Add(Instance{ID: Invalid})

	if c.Len() != 2 {
		t.Fatalf("expected 2 relics, got %d", c.Len())
	}
	if !c.Has(PenNib) || c.Value(PenNib) != 3 {
		t.Errorf("duplicate add should keep first: value %d", c.Value(PenNib))
	}
	if !c.SetValue(PenNib, 9) || c.Value(PenNib) != 9 {
		t.Errorf("SetValue failed: %d", c.Value(PenNib))
	}
	if c.SetValue(Sundial, 1) {
		t.Error("SetValue on missing relic should report false")
	}
	if c.Value(Sundial) != 0 {
		t.Error("missing relic value should be 0")
	}

	c.Add(Instance{ID: Anchor})
	c.Remove(PenNib)
	if c.Has(PenNib) || c.Len() != 2 {
		t.Fatalf("remove failed: %+v", c.Relics)
	}
	if c.Relics[0].ID != BurningBlood || c.Relics[1].ID != Anchor {
		t.Errorf("order not preserved: %+v", c.Relics)
	}
}

func TestSet(t *testing.T) {
	var c Container
	c.Add(Instance{ID: Vajra})
	c.Add(Instance{ID: Anchor})
	c.Add(Instance{ID: Nunchaku, Value: 4})

	s := SetFrom(&c)
	if !s.Has(Vajra) || !s.Has(Anchor) || s.Has(PenNib) {
		t.Fatal("set membership wrong")
	}
	if s.Value(Nunchaku) != 4 {
		t.Errorf("nunchaku: %d", s.Value(Nunchaku))
	}

	var order []ID
	s.Each(func(id ID, _ int) { order = append(order, id) })
	if len(order) != 3 || order[0] != Anchor || order[1] != Nunchaku || order[2] != Vajra {
		t.Errorf("Each should walk enum order, got %v", order)
	}

	cp := s
	cp.SetValue(Nunchaku, 8)
	if s.Value(Nunchaku) != 4 {
		t.Error("copy shares storage with original")
	}
}
