package service

import (
	"testing"

	"github.com/triadlabs/triad-cards/internal/config"
	"github.com/triadlabs/triad-cards/internal/game"
)

type mockUserRepo struct {
	users   map[string]*game.User
	created []game.Card
}

func (m *mockUserRepo) UpsertUser(email, name string) (*game.User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	u := &game.User{Email: email, PlayerName: name}
	m.users[email] = u
	return u, nil
}

func (m *mockUserRepo) SaveUser(u *game.User) error {
	m.users[u.Email] = u
	return nil
}

func (m *mockUserRepo) CreateCards(cards []game.Card) error {
	m.created = append(m.created, cards...)
	return nil
}

func TestEnsureStarterCardsGrantsOnce(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*game.User{}}
	templates := []config.StarterCard{
		{Name: "Tidewarden", Kind: game.KindMarine, Strength: 12, Dexterity: 6, Intelligence: 4},
		{Name: "Pathfinder", Kind: game.KindRanger, Strength: 6, Dexterity: 12, Intelligence: 4},
		{Name: "Hexweaver", Kind: game.KindSorcerer, Strength: 4, Dexterity: 6, Intelligence: 12},
	}

	u, err := EnsureStarterCards(repo, templates, "dave@example.com", "Dave")
	if err != nil {
		t.Fatalf("EnsureStarterCards: %v", err)
	}
	if !u.StarterGranted {
		t.Fatal("StarterGranted not set after first sign-in")
	}
	if len(repo.created) != len(templates) {
		t.Fatalf("created %d cards, want %d", len(repo.created), len(templates))
	}
	seen := map[string]bool{}
	for _, c := range repo.created {
		if c.OwnerEmail != "dave@example.com" {
			t.Fatalf("card owner = %q", c.OwnerEmail)
		}
		if c.PublicID == "" || seen[c.PublicID] {
			t.Fatalf("public id %q missing or duplicated", c.PublicID)
		}
		seen[c.PublicID] = true
	}

	if _, err := EnsureStarterCards(repo, templates, "dave@example.com", "Dave"); err != nil {
		t.Fatalf("second sign-in: %v", err)
	}
	if len(repo.created) != len(templates) {
		t.Fatalf("second sign-in minted more cards: %d", len(repo.created))
	}
}
