package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/triadlabs/triad-cards/internal/constants"
	"github.com/triadlabs/triad-cards/internal/dedupe"
	"github.com/triadlabs/triad-cards/internal/engine"
	"github.com/triadlabs/triad-cards/internal/game"
	"github.com/triadlabs/triad-cards/internal/keys"
	"github.com/triadlabs/triad-cards/internal/logging"
	"github.com/triadlabs/triad-cards/internal/realtime"
	"gorm.io/gorm"
)

var (
	ErrInvalidState    = errors.New("battle is not in a resolvable state")
	ErrMissingCardData = errors.New("selected card could not be loaded")
)

// BattleRepo is the minimal repository interface required by Resolve.
// Using a small interface simplifies testing.
type BattleRepo interface {
	GetBattleByID(id uint) (*game.Battle, error)
	GetSelectionsByBattle(battleID uint) ([]game.Selection, error)
	GetCardByID(id uint) (*game.Card, error)
	TransitionBattle(battleID uint, from, to string) (bool, error)
	CompleteBattle(b *game.Battle, transfer *game.CardTransfer, notes []game.Notification) (bool, error)
	UpdateStatsOnBattleEnd(b *game.Battle) error
}

// ResolutionResult summarizes a completed battle for the caller.
type ResolutionResult struct {
	BattleID    uint   `json:"battle_id"`
	OutcomeKind string `json:"outcome_kind"`
	WinnerEmail string `json:"winner_email,omitempty"`
	LoserEmail  string `json:"loser_email,omitempty"`
	Margin      int    `json:"margin"`
	Explanation string `json:"explanation"`
}

func resultFromBattle(b *game.Battle) *ResolutionResult {
	return &ResolutionResult{
		BattleID:    b.ID,
		OutcomeKind: b.OutcomeKind,
		WinnerEmail: b.WinnerEmail,
		LoserEmail:  b.LoserEmail,
		Margin:      b.Margin,
		Explanation: b.Explanation,
	}
}

// Resolve computes a battle's outcome and applies its side effects exactly
// once. It is safe to call redundantly and concurrently: client polling, the
// background sweeper and manual retries may all race on the same battle.
//
// Within one process concurrent calls collapse into a single execution via
// the shared singleflight group; across processes (or callers that slipped
// past the group) the storage-level compare-and-swap in CompleteBattle
// guarantees the mutating step runs at most once. A caller that loses the
// race receives the already-computed result, not an error.
func Resolve(repo BattleRepo, pub realtime.Publisher, battleID uint) (*ResolutionResult, error) {
	v, err, _ := dedupe.ResolveGroup.Do(keys.ResolveKey(battleID), func() (interface{}, error) {
		return resolveOnce(repo, pub, battleID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*ResolutionResult), nil
}

func resolveOnce(repo BattleRepo, pub realtime.Publisher, battleID uint) (*ResolutionResult, error) {
	b, err := repo.GetBattleByID(battleID)
	if err != nil {
		// Only a missing row is NotFound; transient store failures stay
		// retryable for the caller.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBattleNotFound
		}
		return nil, err
	}
	if b == nil {
		return nil, ErrBattleNotFound
	}

	// A second resolution attempt on a completed battle is a no-op success.
	if b.Completed() {
		return resultFromBattle(b), nil
	}

	sels, err := repo.GetSelectionsByBattle(b.ID)
	if err != nil {
		return nil, err
	}

	switch b.Status {
	case game.StatusCardsRevealed:
		// ready
	case game.StatusActive:
		if len(sels) < 2 {
			return nil, ErrInvalidState
		}
		// Promote to the reveal state. Losing this transition is benign:
		// it means another caller promoted first.
		if _, err := repo.TransitionBattle(b.ID, game.StatusActive, game.StatusCardsRevealed); err != nil {
			return nil, err
		}
	default:
		return nil, ErrInvalidState
	}

	var chalSel, oppSel *game.Selection
	for i := range sels {
		switch sels[i].PlayerEmail {
		case b.ChallengerEmail:
			chalSel = &sels[i]
		case b.OpponentEmail:
			oppSel = &sels[i]
		}
	}
	if chalSel == nil || oppSel == nil {
		return nil, ErrInvalidState
	}

	chalCard, err := repo.GetCardByID(chalSel.CardID)
	if err != nil || chalCard == nil {
		return nil, ErrMissingCardData
	}
	oppCard, err := repo.GetCardByID(oppSel.CardID)
	if err != nil || oppCard == nil {
		return nil, ErrMissingCardData
	}

	// The calculator is participant-order-agnostic: A is the challenger's
	// card, B the opponent's, and the mapping back is done here.
	out := engine.ComputeOutcome(*chalCard, *oppCard)

	now := time.Now()
	b.OutcomeKind = game.OutcomeVictory
	b.Margin = out.Margin
	b.ChallengerTotal = chalCard.AttributeTotal()
	b.OpponentTotal = oppCard.AttributeTotal()
	b.Explanation = out.Explanation
	b.CompletedAt = &now

	var transfer *game.CardTransfer
	var notes []game.Notification
	switch out.Result {
	case engine.WinA:
		transfer = buildVictory(b, chalCard, oppCard, b.ChallengerEmail, b.OpponentEmail)
		notes = victoryNotes(b, oppCard)
	case engine.WinB:
		transfer = buildVictory(b, oppCard, chalCard, b.OpponentEmail, b.ChallengerEmail)
		notes = victoryNotes(b, chalCard)
	case engine.Draw:
		b.OutcomeKind = game.OutcomeDraw
		b.Message = "The battle ended in a draw. No cards changed hands."
		notes = drawNotes(b)
	}

	won, err := repo.CompleteBattle(b, transfer, notes)
	if err != nil {
		return nil, err
	}
	if !won {
		// Another caller completed the battle between our read and the
		// compare-and-swap. Return its result as a success.
		logging.Warn("lost resolution race; returning stored result", logging.Fields{constants.LogFieldBattleID: b.ID})
		fresh, err := repo.GetBattleByID(battleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBattleNotFound
			}
			return nil, err
		}
		if fresh == nil {
			return nil, ErrBattleNotFound
		}
		if !fresh.Completed() {
			return nil, ErrInvalidState
		}
		return resultFromBattle(fresh), nil
	}

	if err := repo.UpdateStatsOnBattleEnd(b); err != nil {
		logging.Error("failed to update stats after battle", err, logging.Fields{constants.LogFieldBattleID: b.ID})
	}
	if pub != nil {
		pub.Publish(keys.BattleTopic(b.JoinCode), realtime.Event{
			Type:    "battle_completed",
			Payload: resultFromBattle(b),
		})
	}
	logging.Info("battle resolved", logging.Fields{
		constants.LogFieldBattleID: b.ID,
		constants.LogFieldOutcome:  b.OutcomeKind,
	})
	return resultFromBattle(b), nil
}

// buildVictory fills the battle's winner/loser fields and returns the
// ownership transfer for the loser's card.
func buildVictory(b *game.Battle, winCard, loseCard *game.Card, winner, loser string) *game.CardTransfer {
	b.WinnerEmail = winner
	b.LoserEmail = loser
	winID, loseID := winCard.ID, loseCard.ID
	b.WinnerCardID = &winID
	b.LoserCardID = &loseID
	// No participant emails in the message: it is served unredacted to both
	// players through the battle payload.
	b.Message = fmt.Sprintf("%s defeats %s: %s. %s changes hands.",
		winCard.Name, loseCard.Name, b.Explanation, loseCard.Name)
	return &game.CardTransfer{
		CardID:    loseCard.ID,
		FromEmail: loser,
		ToEmail:   winner,
		BattleID:  b.ID,
	}
}

func victoryNotes(b *game.Battle, loserCard *game.Card) []game.Notification {
	return []game.Notification{
		{
			RecipientEmail: b.WinnerEmail,
			BattleID:       b.ID,
			Kind:           "win",
			Message:        fmt.Sprintf("You won the battle and captured %s.", loserCard.Name),
		},
		{
			RecipientEmail: b.LoserEmail,
			BattleID:       b.ID,
			Kind:           "loss",
			Message:        fmt.Sprintf("You lost the battle. %s now belongs to your opponent.", loserCard.Name),
		},
	}
}

func drawNotes(b *game.Battle) []game.Notification {
	msg := "Your battle ended in a draw. No cards changed hands."
	return []game.Notification{
		{RecipientEmail: b.ChallengerEmail, BattleID: b.ID, Kind: "draw", Message: msg},
		{RecipientEmail: b.OpponentEmail, BattleID: b.ID, Kind: "draw", Message: msg},
	}
}
