package api

import (
	"github.com/triadlabs/triad-cards/internal/realtime"
	"github.com/triadlabs/triad-cards/internal/storage"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	repo storage.Repository
	hub  *realtime.Hub
}

// NewBattleHandler creates a new BattleHandler with the given repository and
// realtime hub.
func NewBattleHandler(repo storage.Repository, hub *realtime.Hub) *BattleHandler {
	return &BattleHandler{repo: repo, hub: hub}
}
