package storage

import (
	"errors"
	"strings"
	"time"

	"github.com/triadlabs/triad-cards/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateCards(cards []game.Card) error {
	if len(cards) == 0 {
		return nil
	}
	return r.db.Create(&cards).Error
}

func (r *sqliteRepository) GetCardByID(id uint) (*game.Card, error) {
	var c game.Card
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *sqliteRepository) GetCardByPublicID(publicID string) (*game.Card, error) {
	var c game.Card
	if err := r.db.Where("public_id = ?", strings.TrimSpace(publicID)).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *sqliteRepository) GetCardsByOwner(email string) ([]game.Card, error) {
	var cards []game.Card
	if err := r.db.Where("owner_email = ?", email).Order("created_at asc").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *sqliteRepository) CreateBattle(b *game.Battle) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) GetBattleByID(id uint) (*game.Battle, error) {
	var b game.Battle
	if err := r.db.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) FindBattleByJoinCode(code string) (*game.Battle, error) {
	var b game.Battle
	err := r.db.Where("join_code = ?", code).First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) GetPublicBattles() ([]game.Battle, error) {
	var battles []game.Battle
	fiveMinutesAgo := time.Now().Add(-5 * time.Minute)
	err := r.db.
		Where("private = ? AND status = ? AND created_at > ?", false, game.StatusPending, fiveMinutesAgo).
		Order("created_at desc").
		Find(&battles).Error
	if err != nil {
		return nil, err
	}
	return battles, nil
}

func (r *sqliteRepository) BindOpponent(battleID uint, email string) (bool, error) {
	res := r.db.Model(&game.Battle{}).
		Where("id = ? AND status = ? AND opponent_email = ''", battleID, game.StatusPending).
		Updates(map[string]interface{}{
			"opponent_email": email,
			"status":         game.StatusSelecting,
			"message":        "Opponent joined. Both players select a card.",
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *sqliteRepository) TransitionBattle(battleID uint, from, to string) (bool, error) {
	res := r.db.Model(&game.Battle{}).
		Where("id = ? AND status = ?", battleID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CompleteBattle applies the terminal transition. The status guard is the
// compare-and-swap that makes resolution idempotent under racing callers:
// only the caller that observes cards_revealed flips the row, and all side
// effects ride in the same transaction so a completed battle can never be
// missing its transfer record.
func (r *sqliteRepository) CompleteBattle(b *game.Battle, transfer *game.CardTransfer, notes []game.Notification) (bool, error) {
	won := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&game.Battle{}).
			Where("id = ? AND status = ?", b.ID, game.StatusCardsRevealed).
			Updates(map[string]interface{}{
				"status":           game.StatusCompleted,
				"winner_email":     b.WinnerEmail,
				"loser_email":      b.LoserEmail,
				"winner_card_id":   b.WinnerCardID,
				"loser_card_id":    b.LoserCardID,
				"outcome_kind":     b.OutcomeKind,
				"margin":           b.Margin,
				"challenger_total": b.ChallengerTotal,
				"opponent_total":   b.OpponentTotal,
				"explanation":      b.Explanation,
				"completed_at":     b.CompletedAt,
				"message":          b.Message,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Another caller already completed the battle; nothing to do.
			return nil
		}
		won = true

		if transfer != nil {
			if err := tx.Model(&game.Card{}).
				Where("id = ?", transfer.CardID).
				Update("owner_email", transfer.ToEmail).Error; err != nil {
				return err
			}
			if err := tx.Create(transfer).Error; err != nil {
				return err
			}
		}
		for i := range notes {
			if err := tx.Create(&notes[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return won, nil
}

func (r *sqliteRepository) ListResolvableBattleIDs(limit int) ([]uint, error) {
	if limit <= 0 {
		limit = 20
	}
	selCount := r.db.Model(&game.Selection{}).
		Select("count(*)").
		Where("selections.battle_id = battles.id")
	var ids []uint
	err := r.db.Model(&game.Battle{}).
		Where("status IN ?", []string{game.StatusActive, game.StatusCardsRevealed}).
		Where("(?) >= 2", selCount).
		Order("updated_at asc").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *sqliteRepository) CreateSelection(s *game.Selection) error {
	if err := r.db.Create(s).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateSelection
		}
		return err
	}
	return nil
}

func (r *sqliteRepository) GetSelectionsByBattle(battleID uint) ([]game.Selection, error) {
	var sels []game.Selection
	if err := r.db.Where("battle_id = ?", battleID).Find(&sels).Error; err != nil {
		return nil, err
	}
	return sels, nil
}

func (r *sqliteRepository) CountSelections(battleID uint) (int64, error) {
	var n int64
	err := r.db.Model(&game.Selection{}).Where("battle_id = ?", battleID).Count(&n).Error
	return n, err
}

func (r *sqliteRepository) GetTransfersByBattle(battleID uint) ([]game.CardTransfer, error) {
	var ts []game.CardTransfer
	if err := r.db.Where("battle_id = ?", battleID).Find(&ts).Error; err != nil {
		return nil, err
	}
	return ts, nil
}

func (r *sqliteRepository) GetNotificationsByRecipient(email string, limit int) ([]game.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var notes []game.Notification
	err := r.db.Where("recipient_email = ?", email).
		Order("created_at desc").
		Limit(limit).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *sqliteRepository) UpsertUser(email, name string) (*game.User, error) {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		u = game.User{Email: email}
	}
	if name != "" {
		u.PlayerName = name
	}
	if err := r.db.Save(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) GetStatsByEmail(email string) (*game.User, error) {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &game.User{Email: email}, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) SaveUser(u *game.User) error {
	return r.db.Save(u).Error
}

// GetTopPlayers returns top N players ordered by Wins desc, then
// BattlesPlayed desc.
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []game.User
	if err := r.db.Model(&game.User{}).
		Order("wins DESC").
		Order("battles_played DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *sqliteRepository) UpdateStatsOnBattleEnd(b *game.Battle) error {
	// Helper to upsert and add deltas
	bump := func(email string, played, wins, losses, draws int) error {
		if email == "" {
			return nil
		}
		var u game.User
		if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			u = game.User{Email: email}
		}
		u.BattlesPlayed += played
		u.Wins += wins
		u.Losses += losses
		u.Draws += draws
		return r.db.Save(&u).Error
	}

	if b.OutcomeKind == game.OutcomeDraw {
		if err := bump(b.ChallengerEmail, 1, 0, 0, 1); err != nil {
			return err
		}
		return bump(b.OpponentEmail, 1, 0, 0, 1)
	}
	if err := bump(b.WinnerEmail, 1, 1, 0, 0); err != nil {
		return err
	}
	return bump(b.LoserEmail, 1, 0, 1, 0)
}
