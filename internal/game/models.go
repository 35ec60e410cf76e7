package game

import (
	"time"

	"gorm.io/gorm"
)

// Card is a unique collectible owned by a single player. Ownership is the
// only mutable part: the loser's card moves to the winner when a battle
// resolves with a victory. Cards are never deleted by battle resolution.
type Card struct {
	gorm.Model
	// PublicID is the stable identifier exposed to clients (the numeric DB
	// id can change across environments; the UUID cannot).
	PublicID     string `json:"public_id" gorm:"uniqueIndex;size:36"`
	OwnerEmail   string `json:"owner_email" gorm:"index"`
	Name         string `json:"name"`
	Kind         Kind   `json:"kind" gorm:"size:16"`
	Strength     int    `json:"strength"`
	Dexterity    int    `json:"dexterity"`
	Intelligence int    `json:"intelligence"`
}

// Battle statuses. The lifecycle is strictly
// pending -> selecting -> active -> cards_revealed -> completed;
// the only transition into completed is the resolution engine's
// compare-and-swap.
const (
	StatusPending       = "pending"
	StatusSelecting     = "selecting"
	StatusActive        = "active"
	StatusCardsRevealed = "cards_revealed"
	StatusCompleted     = "completed"
)

// Outcome kinds stored on a completed battle.
const (
	OutcomeVictory = "victory"
	OutcomeDraw    = "draw"
)

// Battle is one duel instance between two participants. Winner/loser and
// result fields stay empty until the battle reaches StatusCompleted.
// Participant order (challenger/opponent) matters only for display.
type Battle struct {
	gorm.Model
	Name        string `json:"name" gorm:"size:32"`
	Description string `json:"description" gorm:"size:256"`
	Private     bool   `json:"private"`
	JoinCode    string `json:"join_code" gorm:"unique"`

	ChallengerEmail string `json:"challenger_email"`
	OpponentEmail   string `json:"opponent_email"`

	Status string `json:"status" gorm:"index;size:16"`

	// Result payload, set atomically with the transition to completed.
	WinnerEmail     string     `json:"winner_email"`
	LoserEmail      string     `json:"loser_email"`
	WinnerCardID    *uint      `json:"winner_card_id"`
	LoserCardID     *uint      `json:"loser_card_id"`
	OutcomeKind     string     `json:"outcome_kind" gorm:"size:16"`
	Margin          int        `json:"margin"`
	ChallengerTotal int        `json:"challenger_total"`
	OpponentTotal   int        `json:"opponent_total"`
	Explanation     string     `json:"explanation"`
	CompletedAt     *time.Time `json:"completed_at"`

	// Message is a human-readable status line for clients polling the battle.
	Message string `json:"message"`
}

// HasParticipant reports whether the given player takes part in the battle.
func (b *Battle) HasParticipant(email string) bool {
	return email != "" && (b.ChallengerEmail == email || b.OpponentEmail == email)
}

// OpponentOf returns the other participant's email, or "" when the player
// is not part of the battle.
func (b *Battle) OpponentOf(email string) string {
	switch email {
	case b.ChallengerEmail:
		return b.OpponentEmail
	case b.OpponentEmail:
		return b.ChallengerEmail
	}
	return ""
}

// Completed reports whether the battle reached its terminal state.
func (b *Battle) Completed() bool { return b.Status == StatusCompleted }

// Selection is a participant's committed card choice for one battle.
// The composite unique index makes it a set-once cell per (battle, player):
// the database rejects a second row for the same pair.
type Selection struct {
	gorm.Model
	BattleID    uint   `json:"battle_id" gorm:"uniqueIndex:idx_battle_selections_player"`
	PlayerEmail string `json:"player_email" gorm:"uniqueIndex:idx_battle_selections_player"`
	CardID      uint   `json:"card_id"`
}

// CardTransfer is the append-only audit record of an ownership change.
// Exactly one exists per completed battle with a winner; none for a draw.
// CreatedAt (from gorm.Model) is the transfer timestamp.
type CardTransfer struct {
	gorm.Model
	CardID    uint   `json:"card_id" gorm:"index"`
	FromEmail string `json:"from_email"`
	ToEmail   string `json:"to_email"`
	BattleID  uint   `json:"battle_id" gorm:"index"`
}

// Notification is a user-facing message record, inserted once per
// participant when a battle completes.
type Notification struct {
	gorm.Model
	RecipientEmail string `json:"recipient_email" gorm:"index"`
	BattleID       uint   `json:"battle_id"`
	Kind           string `json:"kind" gorm:"size:8"` // win | loss | draw
	Message        string `json:"message"`
}

// User stores unique player identity and aggregate stats.
type User struct {
	gorm.Model
	Email         string `gorm:"uniqueIndex"`
	PlayerName    string
	BattlesPlayed int
	Wins          int
	Losses        int
	Draws         int
	// StarterGranted marks that the starter collection was already minted
	// for this user, so repeated sign-ins don't grant extra cards.
	StarterGranted bool
}

// Unify global users table name as "player_profiles"
func (User) TableName() string { return "player_profiles" }
