package engine

import (
	"fmt"

	"github.com/triadlabs/triad-cards/internal/game"
)

// Result identifies which of the two compared cards wins.
type Result int

const (
	Draw Result = iota
	WinA
	WinB
)

// Outcome is the verdict for a pair of cards. Margin is the absolute
// primary-attribute difference for same-kind matchups and 0 when the type
// cycle decides. Explanation is a short human-readable reason.
type Outcome struct {
	Result      Result
	Margin      int
	Explanation string
}

// ComputeOutcome compares two cards and returns the verdict. It is pure and
// deterministic: identical inputs always produce identical outcomes, which
// is what makes redundant re-resolution of the same battle safe.
//
// Rules, in order:
//  1. Different kinds: the advantage cycle decides outright (margin 0).
//  2. Same kind: the kind's primary attribute decides; margin is the
//     absolute difference. Equal values are a draw.
//
// The calculator is participant-order-agnostic; callers map WinA/WinB back
// onto their own participants.
func ComputeOutcome(a, b game.Card) Outcome {
	if a.Kind != b.Kind {
		if game.Beats(a.Kind, b.Kind) {
			return Outcome{
				Result:      WinA,
				Explanation: fmt.Sprintf("%s beats %s by type advantage", a.Kind, b.Kind),
			}
		}
		return Outcome{
			Result:      WinB,
			Explanation: fmt.Sprintf("%s beats %s by type advantage", b.Kind, a.Kind),
		}
	}

	attr := game.PrimaryAttribute(a.Kind)
	va, vb := a.PrimaryValue(), b.PrimaryValue()
	switch {
	case va > vb:
		return Outcome{
			Result:      WinA,
			Margin:      va - vb,
			Explanation: fmt.Sprintf("higher %s (%d vs %d)", attr, va, vb),
		}
	case vb > va:
		return Outcome{
			Result:      WinB,
			Margin:      vb - va,
			Explanation: fmt.Sprintf("higher %s (%d vs %d)", attr, vb, va),
		}
	}
	return Outcome{
		Result:      Draw,
		Explanation: fmt.Sprintf("equal %s (%d)", attr, va),
	}
}
