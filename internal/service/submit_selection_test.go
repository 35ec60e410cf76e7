package service

import (
	"errors"
	"testing"

	"github.com/triadlabs/triad-cards/internal/game"
)

func TestSubmitSelectionFlow(t *testing.T) {
	m := newMockRepo()
	seedBattle(m, 201, game.StatusSelecting)
	alice := seedCard(m, 1, "alice@example.com", game.KindRanger, 0, 30, 0)
	bob := seedCard(m, 2, "bob@example.com", game.KindMarine, 25, 0, 0)

	b, resolved, err := SubmitSelection(m, nil, 201, "alice@example.com", alice.PublicID)
	if err != nil {
		t.Fatalf("first selection: %v", err)
	}
	if resolved {
		t.Fatal("battle resolved after a single selection")
	}
	if got := len(m.selections[201]); got != 1 {
		t.Fatalf("selections = %d, want 1", got)
	}
	if b.Status != game.StatusSelecting {
		t.Fatalf("status = %q, want selecting", b.Status)
	}

	b, resolved, err = SubmitSelection(m, nil, 201, "bob@example.com", bob.PublicID)
	if err != nil {
		t.Fatalf("second selection: %v", err)
	}
	if !resolved {
		t.Fatal("second selection must trigger resolution")
	}
	if b.Status != game.StatusCompleted {
		t.Fatalf("status = %q, want completed", b.Status)
	}
	// Marine beats ranger, so bob's card captures alice's.
	if b.WinnerEmail != "bob@example.com" {
		t.Fatalf("winner = %q, want bob", b.WinnerEmail)
	}
	if len(m.transfers) != 1 || m.transfers[0].CardID != alice.ID {
		t.Fatalf("unexpected transfers %+v", m.transfers)
	}
}

func TestSubmitSelectionSetOnce(t *testing.T) {
	m := newMockRepo()
	seedBattle(m, 202, game.StatusSelecting)
	first := seedCard(m, 1, "alice@example.com", game.KindMarine, 10, 0, 0)
	second := seedCard(m, 2, "alice@example.com", game.KindRanger, 0, 10, 0)

	if _, _, err := SubmitSelection(m, nil, 202, "alice@example.com", first.PublicID); err != nil {
		t.Fatalf("initial selection: %v", err)
	}

	// Repeating the same card is an accepted no-op.
	if _, resolved, err := SubmitSelection(m, nil, 202, "alice@example.com", first.PublicID); err != nil || resolved {
		t.Fatalf("resubmit same card: resolved=%v err=%v", resolved, err)
	}
	if got := len(m.selections[202]); got != 1 {
		t.Fatalf("selections = %d, want 1", got)
	}

	// A different card is rejected.
	if _, _, err := SubmitSelection(m, nil, 202, "alice@example.com", second.PublicID); !errors.Is(err, ErrAlreadySelected) {
		t.Fatalf("err = %v, want ErrAlreadySelected", err)
	}
	if m.selections[202][0].CardID != first.ID {
		t.Fatal("stored selection changed after rejected resubmission")
	}
}

func TestSubmitSelectionGuards(t *testing.T) {
	m := newMockRepo()
	seedBattle(m, 203, game.StatusSelecting)
	aliceCard := seedCard(m, 1, "alice@example.com", game.KindMarine, 10, 0, 0)
	carolCard := seedCard(m, 2, "carol@example.com", game.KindRanger, 0, 10, 0)

	if _, _, err := SubmitSelection(m, nil, 999, "alice@example.com", aliceCard.PublicID); !errors.Is(err, ErrBattleNotFound) {
		t.Fatalf("unknown battle: err = %v", err)
	}
	if _, _, err := SubmitSelection(m, nil, 203, "carol@example.com", carolCard.PublicID); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("outsider: err = %v", err)
	}
	if _, _, err := SubmitSelection(m, nil, 203, "alice@example.com", "no-such-card"); !errors.Is(err, ErrInvalidCard) {
		t.Fatalf("unknown card: err = %v", err)
	}
	// Selecting someone else's card is invalid too.
	if _, _, err := SubmitSelection(m, nil, 203, "alice@example.com", carolCard.PublicID); !errors.Is(err, ErrInvalidCard) {
		t.Fatalf("foreign card: err = %v", err)
	}

	seedBattle(m, 204, game.StatusPending)
	if _, _, err := SubmitSelection(m, nil, 204, "alice@example.com", aliceCard.PublicID); !errors.Is(err, ErrNotSelectable) {
		t.Fatalf("pending battle: err = %v", err)
	}
}
