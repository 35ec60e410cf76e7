package service

import (
	"github.com/google/uuid"
	"github.com/triadlabs/triad-cards/internal/config"
	"github.com/triadlabs/triad-cards/internal/game"
	"github.com/triadlabs/triad-cards/internal/logging"
)

// UserRepo is the minimal repository interface required by EnsureStarterCards.
type UserRepo interface {
	UpsertUser(email, name string) (*game.User, error)
	SaveUser(u *game.User) error
	CreateCards(cards []game.Card) error
}

// EnsureStarterCards upserts the user's profile and, on first sign-in,
// mints one card per configured starter template so the player has
// something to battle with. The StarterGranted flag makes repeated
// sign-ins a no-op.
func EnsureStarterCards(repo UserRepo, templates []config.StarterCard, email, name string) (*game.User, error) {
	u, err := repo.UpsertUser(email, name)
	if err != nil {
		return nil, err
	}
	if u.StarterGranted {
		return u, nil
	}

	cards := make([]game.Card, 0, len(templates))
	for _, t := range templates {
		cards = append(cards, game.Card{
			PublicID:     uuid.NewString(),
			OwnerEmail:   email,
			Name:         t.Name,
			Kind:         t.Kind,
			Strength:     t.Strength,
			Dexterity:    t.Dexterity,
			Intelligence: t.Intelligence,
		})
	}
	if err := repo.CreateCards(cards); err != nil {
		return nil, err
	}
	u.StarterGranted = true
	if err := repo.SaveUser(u); err != nil {
		return nil, err
	}
	logging.Info("starter collection granted", logging.Fields{"player": email, "cards": len(cards)})
	return u, nil
}
