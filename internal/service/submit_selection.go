package service

import (
	"errors"

	"github.com/triadlabs/triad-cards/internal/constants"
	"github.com/triadlabs/triad-cards/internal/game"
	"github.com/triadlabs/triad-cards/internal/keys"
	"github.com/triadlabs/triad-cards/internal/logging"
	"github.com/triadlabs/triad-cards/internal/realtime"
	"github.com/triadlabs/triad-cards/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrAlreadySelected = errors.New("a different card was already selected for this battle")
	ErrInvalidCard     = errors.New("card does not exist or is not owned by this player")
	ErrNotSelectable   = errors.New("battle is not accepting selections")
)

// SelectionRepo extends BattleRepo with the methods SubmitSelection needs.
type SelectionRepo interface {
	BattleRepo
	GetCardByPublicID(publicID string) (*game.Card, error)
	CreateSelection(s *game.Selection) error
}

// SubmitSelection commits a player's card choice for a battle. Each
// participant gets exactly one selection: repeating the same card is an
// accepted no-op, a different card is rejected. When the second selection
// lands the battle advances to active and resolution is triggered inline.
// Returns the battle and whether this call resolved it.
func SubmitSelection(repo SelectionRepo, pub realtime.Publisher, battleID uint, playerEmail, cardPublicID string) (*game.Battle, bool, error) {
	b, err := repo.GetBattleByID(battleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrBattleNotFound
		}
		return nil, false, err
	}
	if b == nil {
		return nil, false, ErrBattleNotFound
	}
	if !b.HasParticipant(playerEmail) {
		return nil, false, ErrNotParticipant
	}
	if b.Status != game.StatusSelecting {
		return nil, false, ErrNotSelectable
	}

	card, err := repo.GetCardByPublicID(cardPublicID)
	if err != nil || card == nil || card.OwnerEmail != playerEmail {
		return nil, false, ErrInvalidCard
	}

	// Set-once cell per (battle, player). Check first for a friendly error;
	// the unique index backs this up against concurrent submissions.
	sels, err := repo.GetSelectionsByBattle(b.ID)
	if err != nil {
		return nil, false, err
	}
	for i := range sels {
		if sels[i].PlayerEmail == playerEmail {
			if sels[i].CardID == card.ID {
				return b, false, nil
			}
			return nil, false, ErrAlreadySelected
		}
	}

	sel := &game.Selection{BattleID: b.ID, PlayerEmail: playerEmail, CardID: card.ID}
	if err := repo.CreateSelection(sel); err != nil {
		if errors.Is(err, storage.ErrDuplicateSelection) {
			// Lost a race against our own duplicate submission.
			return nil, false, ErrAlreadySelected
		}
		return nil, false, err
	}
	logging.Info("selection stored", logging.Fields{
		constants.LogFieldBattleID: b.ID,
		constants.LogFieldPlayer:   playerEmail,
		constants.LogFieldCardID:   card.ID,
	})
	if pub != nil {
		pub.Publish(keys.BattleTopic(b.JoinCode), realtime.Event{
			Type:    "selection_submitted",
			Payload: map[string]interface{}{"battle_id": b.ID, "player": playerEmail},
		})
	}

	sels, err = repo.GetSelectionsByBattle(b.ID)
	if err != nil {
		return nil, false, err
	}
	if len(sels) < 2 {
		return b, false, nil
	}

	// Both selections are in: advance and resolve. Losing the transition
	// means a concurrent submission got there first; resolution is
	// idempotent either way.
	if _, err := repo.TransitionBattle(b.ID, game.StatusSelecting, game.StatusActive); err != nil {
		return nil, false, err
	}
	if _, err := Resolve(repo, pub, b.ID); err != nil {
		// The battle stays resolvable; the sweeper or a polling client
		// will retry.
		logging.Error("inline resolution failed", err, logging.Fields{constants.LogFieldBattleID: b.ID})
		return b, false, nil
	}
	resolved, err := repo.GetBattleByID(b.ID)
	if err != nil || resolved == nil {
		return b, true, nil
	}
	return resolved, true, nil
}

// The full repository satisfies the narrow service interfaces.
var (
	_ SelectionRepo = (storage.Repository)(nil)
	_ LobbyRepo     = (storage.Repository)(nil)
)
