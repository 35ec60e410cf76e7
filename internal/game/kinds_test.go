package game

import "testing"

func TestAdvantageCycleClosure(t *testing.T) {
	for _, a := range Kinds {
		if Beats(a, a) {
			t.Fatalf("kind %s must not beat itself", a)
		}
		for _, b := range Kinds {
			if a == b {
				continue
			}
			ab := Beats(a, b)
			ba := Beats(b, a)
			if ab == ba {
				t.Fatalf("exactly one of %s-beats-%s / %s-beats-%s must hold (got %v/%v)", a, b, b, a, ab, ba)
			}
		}
	}

	// Walking the cycle from any kind must visit all three kinds and return
	// to the start: a single 3-cycle, not three disjoint relations.
	seen := map[Kind]bool{}
	k := KindMarine
	for i := 0; i < len(Kinds); i++ {
		seen[k] = true
		k = beatsTable[k]
	}
	if k != KindMarine || len(seen) != len(Kinds) {
		t.Fatalf("advantage relation is not a single 3-cycle (visited %d kinds)", len(seen))
	}
}

func TestPrimaryValue(t *testing.T) {
	c := Card{Kind: KindRanger, Strength: 1, Dexterity: 30, Intelligence: 2}
	if got := c.PrimaryValue(); got != 30 {
		t.Fatalf("ranger primary value = %d, want 30", got)
	}
	c.Kind = KindMarine
	if got := c.PrimaryValue(); got != 1 {
		t.Fatalf("marine primary value = %d, want 1", got)
	}
	c.Kind = KindSorcerer
	if got := c.PrimaryValue(); got != 2 {
		t.Fatalf("sorcerer primary value = %d, want 2", got)
	}
	if got := c.AttributeTotal(); got != 33 {
		t.Fatalf("attribute total = %d, want 33", got)
	}
}
