package service

import (
	"errors"
	"unicode/utf8"

	"github.com/triadlabs/triad-cards/internal/game"
	"gorm.io/gorm"
)

var (
	ErrBattleNotFound = errors.New("battle not found")
	ErrBattleFull     = errors.New("battle already has two participants")
	ErrSelfJoin       = errors.New("cannot accept your own challenge")
	ErrNameTooLong    = errors.New("battle name exceeds 32 characters")
	ErrDescTooLong    = errors.New("description exceeds 256 characters")
	ErrNotParticipant = errors.New("player not in this battle")
)

// LobbyRepo is the minimal repository interface for creating and joining
// battles.
type LobbyRepo interface {
	CreateBattle(b *game.Battle) error
	FindBattleByJoinCode(code string) (*game.Battle, error)
	GetBattleByID(id uint) (*game.Battle, error)
	BindOpponent(battleID uint, email string) (bool, error)
}

// CreateBattleRequest carries the challenger's lobby settings.
type CreateBattleRequest struct {
	ChallengerEmail string
	Name            string
	Description     string
	Private         bool
	JoinCode        string
}

// CreateBattle opens a challenge: a battle with only the challenger bound,
// waiting in pending until an opponent accepts.
func CreateBattle(repo LobbyRepo, req CreateBattleRequest) (*game.Battle, error) {
	if utf8.RuneCountInString(req.Name) > 32 {
		return nil, ErrNameTooLong
	}
	if utf8.RuneCountInString(req.Description) > 256 {
		return nil, ErrDescTooLong
	}
	b := &game.Battle{
		Name:            req.Name,
		Description:     req.Description,
		Private:         req.Private,
		JoinCode:        req.JoinCode,
		ChallengerEmail: req.ChallengerEmail,
		Status:          game.StatusPending,
		Message:         "Challenge created. Waiting for an opponent.",
	}
	if err := repo.CreateBattle(b); err != nil {
		return nil, err
	}
	return b, nil
}

// JoinBattle accepts a challenge. The opponent slot is bound with a guarded
// conditional update so two players accepting concurrently cannot both win:
// the loser observes zero rows affected and gets ErrBattleFull. Binding the
// second participant moves the battle out of pending into selecting.
func JoinBattle(repo LobbyRepo, joinCode, playerEmail string) (*game.Battle, error) {
	b, err := repo.FindBattleByJoinCode(joinCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBattleNotFound
		}
		return nil, err
	}
	if b == nil {
		return nil, ErrBattleNotFound
	}
	if b.ChallengerEmail == playerEmail {
		return nil, ErrSelfJoin
	}
	if b.OpponentEmail != "" || b.Status != game.StatusPending {
		return nil, ErrBattleFull
	}

	won, err := repo.BindOpponent(b.ID, playerEmail)
	if err != nil {
		return nil, err
	}
	if !won {
		// Another player accepted between our read and the guarded write.
		return nil, ErrBattleFull
	}
	return repo.GetBattleByID(b.ID)
}
