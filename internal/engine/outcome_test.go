package engine

import (
	"testing"

	"github.com/triadlabs/triad-cards/internal/game"
)

func card(kind game.Kind, str, dex, intel int) game.Card {
	return game.Card{Kind: kind, Strength: str, Dexterity: dex, Intelligence: intel}
}

func swapped(r Result) Result {
	switch r {
	case WinA:
		return WinB
	case WinB:
		return WinA
	}
	return Draw
}

func TestComputeOutcome_TypeAdvantage(t *testing.T) {
	// Marine beats Ranger regardless of attribute values.
	ranger := card(game.KindRanger, 0, 30, 0)
	marine := card(game.KindMarine, 25, 0, 0)

	out := ComputeOutcome(ranger, marine)
	if out.Result != WinB {
		t.Fatalf("expected marine (B) to win by type advantage, got %v", out.Result)
	}
	if out.Margin != 0 {
		t.Fatalf("type-advantage margin must be 0, got %d", out.Margin)
	}
	if out.Explanation == "" {
		t.Fatal("expected an explanation naming the advantage")
	}
}

func TestComputeOutcome_SameKindPrimaryAttribute(t *testing.T) {
	// Same kind: only the primary attribute decides. The stronger totals on
	// the other attributes must not matter.
	a := card(game.KindSorcerer, 99, 99, 10)
	b := card(game.KindSorcerer, 0, 0, 25)

	out := ComputeOutcome(a, b)
	if out.Result != WinB {
		t.Fatalf("expected B to win on intelligence, got %v", out.Result)
	}
	if out.Margin != 15 {
		t.Fatalf("margin = %d, want 15", out.Margin)
	}
}

func TestComputeOutcome_Draw(t *testing.T) {
	a := card(game.KindSorcerer, 1, 2, 20)
	b := card(game.KindSorcerer, 9, 7, 20)
	out := ComputeOutcome(a, b)
	if out.Result != Draw {
		t.Fatalf("equal primary attributes must draw, got %v", out.Result)
	}
	if out.Margin != 0 {
		t.Fatalf("draw margin = %d, want 0", out.Margin)
	}
}

func TestComputeOutcome_Deterministic(t *testing.T) {
	pairs := [][2]game.Card{
		{card(game.KindMarine, 25, 3, 1), card(game.KindRanger, 2, 30, 4)},
		{card(game.KindRanger, 5, 12, 0), card(game.KindRanger, 0, 17, 9)},
		{card(game.KindSorcerer, 0, 0, 8), card(game.KindSorcerer, 1, 1, 8)},
	}
	for _, p := range pairs {
		first := ComputeOutcome(p[0], p[1])
		second := ComputeOutcome(p[0], p[1])
		if first != second {
			t.Fatalf("ComputeOutcome not deterministic: %+v vs %+v", first, second)
		}
	}
}

func TestComputeOutcome_AntiSymmetric(t *testing.T) {
	cards := []game.Card{
		card(game.KindMarine, 25, 3, 1),
		card(game.KindRanger, 2, 30, 4),
		card(game.KindSorcerer, 0, 0, 20),
		card(game.KindRanger, 9, 30, 0),
		card(game.KindSorcerer, 5, 5, 20),
	}
	for i := range cards {
		for j := range cards {
			ab := ComputeOutcome(cards[i], cards[j])
			ba := ComputeOutcome(cards[j], cards[i])
			if ab.Result != swapped(ba.Result) {
				t.Fatalf("cards %d/%d: results not role-swapped: %v vs %v", i, j, ab.Result, ba.Result)
			}
			if ab.Margin != ba.Margin {
				t.Fatalf("cards %d/%d: margins differ: %d vs %d", i, j, ab.Margin, ba.Margin)
			}
		}
	}
}
