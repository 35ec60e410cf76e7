package storage

import (
	"errors"

	"github.com/triadlabs/triad-cards/internal/game"
)

// ErrDuplicateSelection is returned by CreateSelection when the player
// already committed a selection for the battle (the set-once cell is
// occupied).
var ErrDuplicateSelection = errors.New("selection already exists for this battle and player")

type Repository interface {
	// Cards
	CreateCards(cards []game.Card) error
	GetCardByID(id uint) (*game.Card, error)
	GetCardByPublicID(publicID string) (*game.Card, error)
	GetCardsByOwner(email string) ([]game.Card, error)

	// Battles
	CreateBattle(b *game.Battle) error
	GetBattleByID(id uint) (*game.Battle, error)
	FindBattleByJoinCode(code string) (*game.Battle, error)
	GetPublicBattles() ([]game.Battle, error)
	// BindOpponent atomically fills the opponent slot of a pending battle and
	// advances it to selecting. The guard (status pending, opponent empty)
	// makes concurrent accepts safe: exactly one caller wins, the rest see
	// false with no error.
	BindOpponent(battleID uint, email string) (bool, error)
	// TransitionBattle performs a compare-and-swap on the battle status:
	// the update only happens when the current status equals `from`.
	// Returns whether this caller won the transition. Losing is benign for
	// the intermediate transitions (another trigger got there first).
	TransitionBattle(battleID uint, from, to string) (bool, error)
	// CompleteBattle applies the terminal transition as one transaction:
	// battle result update guarded by "status = cards_revealed", loser card
	// ownership reassignment, transfer record insert and notification
	// inserts succeed or fail together. Returns false (and no error) when
	// the guard fails because another caller already completed the battle.
	CompleteBattle(b *game.Battle, transfer *game.CardTransfer, notes []game.Notification) (bool, error)
	// ListResolvableBattleIDs returns battles that have both selections in
	// place but have not reached the terminal state, for the sweeper.
	ListResolvableBattleIDs(limit int) ([]uint, error)

	// Selections
	CreateSelection(s *game.Selection) error
	GetSelectionsByBattle(battleID uint) ([]game.Selection, error)
	CountSelections(battleID uint) (int64, error)

	// Audit / notifications
	GetTransfersByBattle(battleID uint) ([]game.CardTransfer, error)
	GetNotificationsByRecipient(email string, limit int) ([]game.Notification, error)

	// Users and aggregate stats
	UpsertUser(email, name string) (*game.User, error)
	GetStatsByEmail(email string) (*game.User, error)
	SaveUser(u *game.User) error
	GetTopPlayers(limit int) ([]game.User, error)
	UpdateStatsOnBattleEnd(b *game.Battle) error
}
