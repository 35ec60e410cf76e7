package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/triadlabs/triad-cards/internal/game"
)

func TestCreateBattleValidation(t *testing.T) {
	m := newMockRepo()
	if _, err := CreateBattle(m, CreateBattleRequest{
		ChallengerEmail: "alice@example.com",
		Name:            strings.Repeat("x", 33),
	}); !errors.Is(err, ErrNameTooLong) {
		t.Fatalf("long name: err = %v, want ErrNameTooLong", err)
	}
	if _, err := CreateBattle(m, CreateBattleRequest{
		ChallengerEmail: "alice@example.com",
		Description:     strings.Repeat("x", 257),
	}); !errors.Is(err, ErrDescTooLong) {
		t.Fatalf("long description: err = %v, want ErrDescTooLong", err)
	}

	b, err := CreateBattle(m, CreateBattleRequest{
		ChallengerEmail: "alice@example.com",
		Name:            "open duel",
		JoinCode:        "AAAA1111",
	})
	if err != nil {
		t.Fatalf("CreateBattle: %v", err)
	}
	if b.Status != game.StatusPending || b.OpponentEmail != "" {
		t.Fatalf("new battle status/opponent = %q/%q", b.Status, b.OpponentEmail)
	}
}

func TestJoinBattleGuards(t *testing.T) {
	m := newMockRepo()
	b := seedBattle(m, 301, game.StatusPending)
	b.OpponentEmail = ""
	b.JoinCode = "JOINCODE"
	m.battles[301] = b

	if _, err := JoinBattle(m, "NOSUCHCD", "carol@example.com"); !errors.Is(err, ErrBattleNotFound) {
		t.Fatalf("unknown code: err = %v", err)
	}
	if _, err := JoinBattle(m, "JOINCODE", "alice@example.com"); !errors.Is(err, ErrSelfJoin) {
		t.Fatalf("challenger joining own battle: err = %v", err)
	}

	joined, err := JoinBattle(m, "JOINCODE", "carol@example.com")
	if err != nil {
		t.Fatalf("JoinBattle: %v", err)
	}
	if joined.Status != game.StatusSelecting || joined.OpponentEmail != "carol@example.com" {
		t.Fatalf("joined battle status/opponent = %q/%q", joined.Status, joined.OpponentEmail)
	}

	if _, err := JoinBattle(m, "JOINCODE", "dave@example.com"); !errors.Is(err, ErrBattleFull) {
		t.Fatalf("third participant: err = %v, want ErrBattleFull", err)
	}
}

func TestJoinBattleConcurrentAcceptsBindOneOpponent(t *testing.T) {
	m := newMockRepo()
	b := seedBattle(m, 302, game.StatusPending)
	b.OpponentEmail = ""
	b.JoinCode = "RACECODE"
	m.battles[302] = b

	const callers = 8
	errs := make([]error, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = JoinBattle(m, "RACECODE", fmt.Sprintf("player%d@example.com", i))
		}(i)
	}
	wg.Wait()

	wins := 0
	for i := 0; i < callers; i++ {
		switch {
		case errs[i] == nil:
			wins++
		case errors.Is(errs[i], ErrBattleFull):
		default:
			t.Fatalf("caller %d: unexpected error %v", i, errs[i])
		}
	}
	if wins != 1 {
		t.Fatalf("%d callers joined, want exactly 1", wins)
	}
	final := m.battles[302]
	if final.Status != game.StatusSelecting || final.OpponentEmail == "" {
		t.Fatalf("final status/opponent = %q/%q", final.Status, final.OpponentEmail)
	}
}
