package storage

import (
	"github.com/triadlabs/triad-cards/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the SQLite database and keeps the schema updated via
// AutoMigrate. TranslateError is enabled so unique-constraint violations
// surface as gorm.ErrDuplicatedKey (the selection set-once cell relies on
// this).
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&game.Card{},
		&game.Battle{},
		&game.Selection{},
		&game.CardTransfer{},
		&game.Notification{},
		&game.User{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
