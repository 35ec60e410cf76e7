package service

import (
	"sync"

	"github.com/triadlabs/triad-cards/internal/game"
	"github.com/triadlabs/triad-cards/internal/storage"
	"gorm.io/gorm"
)

// mockRepo is an in-memory SelectionRepo with the same conditional-update
// semantics as the SQLite repository, guarded by a mutex so concurrency
// tests exercise the compare-and-swap path.
type mockRepo struct {
	mu         sync.Mutex
	battles    map[uint]*game.Battle
	cards      map[uint]*game.Card
	selections map[uint][]game.Selection
	transfers  []game.CardTransfer
	notes      []game.Notification
	statsCalls int
	// battleErr, when set, is returned by every battle lookup to simulate a
	// transient store failure.
	battleErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		battles:    map[uint]*game.Battle{},
		cards:      map[uint]*game.Card{},
		selections: map[uint][]game.Selection{},
	}
}

func (m *mockRepo) addBattle(b game.Battle) *game.Battle {
	m.battles[b.ID] = &b
	return &b
}

func (m *mockRepo) addCard(c game.Card) *game.Card {
	m.cards[c.ID] = &c
	return &c
}

func (m *mockRepo) GetBattleByID(id uint) (*game.Battle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.battleErr != nil {
		return nil, m.battleErr
	}
	b, ok := m.battles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *mockRepo) CreateBattle(b *game.Battle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == 0 {
		b.ID = uint(len(m.battles) + 1)
	}
	cp := *b
	m.battles[b.ID] = &cp
	return nil
}

func (m *mockRepo) FindBattleByJoinCode(code string) (*game.Battle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.battleErr != nil {
		return nil, m.battleErr
	}
	for _, b := range m.battles {
		if b.JoinCode == code {
			cp := *b
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepo) BindOpponent(battleID uint, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.battles[battleID]
	if !ok || b.Status != game.StatusPending || b.OpponentEmail != "" {
		return false, nil
	}
	b.OpponentEmail = email
	b.Status = game.StatusSelecting
	b.Message = "Opponent joined. Both players select a card."
	return true, nil
}

func (m *mockRepo) GetSelectionsByBattle(battleID uint) ([]game.Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]game.Selection(nil), m.selections[battleID]...), nil
}

func (m *mockRepo) GetCardByID(id uint) (*game.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cards[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockRepo) GetCardByPublicID(publicID string) (*game.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.cards {
		if c.PublicID == publicID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepo) TransitionBattle(battleID uint, from, to string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.battles[battleID]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	return true, nil
}

func (m *mockRepo) CompleteBattle(b *game.Battle, transfer *game.CardTransfer, notes []game.Notification) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.battles[b.ID]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if stored.Status != game.StatusCardsRevealed {
		return false, nil
	}
	*stored = *b
	stored.Status = game.StatusCompleted
	if transfer != nil {
		if c, ok := m.cards[transfer.CardID]; ok {
			c.OwnerEmail = transfer.ToEmail
		}
		m.transfers = append(m.transfers, *transfer)
	}
	m.notes = append(m.notes, notes...)
	return true, nil
}

func (m *mockRepo) CreateSelection(s *game.Selection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.selections[s.BattleID] {
		if existing.PlayerEmail == s.PlayerEmail {
			return storage.ErrDuplicateSelection
		}
	}
	m.selections[s.BattleID] = append(m.selections[s.BattleID], *s)
	return nil
}

func (m *mockRepo) UpdateStatsOnBattleEnd(b *game.Battle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statsCalls++
	return nil
}

var (
	_ SelectionRepo = (*mockRepo)(nil)
	_ LobbyRepo     = (*mockRepo)(nil)
)
