package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/picbingo/bingo-backend/models"
)

// Memory is an in-process Store. All mutation goes through one mutex,
// which also gives AppendCalledImage its atomic order assignment.
type Memory struct {
	mu sync.Mutex

	sessions map[uint]*models.GameSession
	players  map[uint]*models.Player
	cards    map[uint]*models.BingoCard
	called   []*models.CalledImage
	claims   map[uint]*models.BingoClaim

	nextID uint
}

func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[uint]*models.GameSession),
		players:  make(map[uint]*models.Player),
		cards:    make(map[uint]*models.BingoCard),
		claims:   make(map[uint]*models.BingoClaim),
	}
}

func (m *Memory) id() uint {
	m.nextID++
	return m.nextID
}

func (m *Memory) CreateSession(_ context.Context, s *models.GameSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.sessions {
		if existing.SessionCode == s.SessionCode {
			return models.ErrConflict
		}
	}
	s.ID = m.id()
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *Memory) SessionByCode(_ context.Context, code string) (*models.GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.SessionCode == code {
			cp := *s
			return &cp, nil
		}
	}
	return nil, models.ErrSessionNotFound
}

func (m *Memory) SessionByID(_ context.Context, id uint) (*models.GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *Memory) UpdateSession(_ context.Context, s *models.GameSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID]; !ok {
		return models.ErrSessionNotFound
	}
	s.UpdatedAt = time.Now()
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *Memory) CreatePlayer(_ context.Context, p *models.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.id()
	p.JoinedAt = time.Now()
	cp := *p
	m.players[p.ID] = &cp
	return nil
}

func (m *Memory) PlayerByUUID(_ context.Context, uuid string) (*models.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.players {
		if p.PlayerUUID == uuid {
			cp := *p
			return &cp, nil
		}
	}
	return nil, models.ErrPlayerNotFound
}

func (m *Memory) UpdatePlayer(_ context.Context, p *models.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.players[p.ID]; !ok {
		return models.ErrPlayerNotFound
	}
	cp := *p
	m.players[p.ID] = &cp
	return nil
}

func (m *Memory) SessionPlayers(_ context.Context, sessionID uint) ([]models.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Player
	for _, p := range m.players {
		if p.SessionID == sessionID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) CreateCard(_ context.Context, c *models.BingoCard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.cards {
		if existing.CardID == c.CardID {
			return models.ErrConflict
		}
	}
	c.ID = m.id()
	c.CreatedAt = time.Now()
	cp := *c
	m.cards[c.ID] = &cp
	return nil
}

func (m *Memory) CardForRound(_ context.Context, playerID uint, round int) (*models.BingoCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *models.BingoCard
	for _, c := range m.cards {
		if c.PlayerID == playerID && c.RoundNumber == round {
			if latest == nil || c.ID > latest.ID {
				latest = c
			}
		}
	}
	if latest == nil {
		return nil, models.ErrCardNotFound
	}
	cp := *latest
	return &cp, nil
}

func (m *Memory) CardByCardID(_ context.Context, cardID string) (*models.BingoCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.cards {
		if c.CardID == cardID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, models.ErrCardNotFound
}

func (m *Memory) UpdateCardMarks(_ context.Context, id uint, marked []bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cards[id]
	if !ok {
		return models.ErrCardNotFound
	}
	c.Marked = append([]bool(nil), marked...)
	return nil
}

func (m *Memory) AppendCalledImage(_ context.Context, sessionID uint, round, imageID int) (*models.CalledImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order := 1
	for _, ci := range m.called {
		if ci.SessionID == sessionID && ci.RoundNumber == round {
			order++
		}
	}
	entry := &models.CalledImage{
		ID:          m.id(),
		SessionID:   sessionID,
		RoundNumber: round,
		ImageID:     imageID,
		CalledOrder: order,
		CalledAt:    time.Now(),
	}
	m.called = append(m.called, entry)
	cp := *entry
	return &cp, nil
}

func (m *Memory) CalledImages(_ context.Context, sessionID uint, round int) ([]models.CalledImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.CalledImage
	for _, ci := range m.called {
		if ci.SessionID == sessionID && ci.RoundNumber == round {
			out = append(out, *ci)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CalledOrder < out[j].CalledOrder })
	return out, nil
}

func (m *Memory) CreateClaim(_ context.Context, c *models.BingoClaim) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.id()
	c.ClaimedAt = time.Now()
	cp := *c
	m.claims[c.ID] = &cp
	return nil
}

func (m *Memory) ClaimByID(_ context.Context, id uint) (*models.BingoClaim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.claims[id]
	if !ok {
		return nil, models.ErrClaimNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *Memory) VerifyClaim(_ context.Context, id uint) (*models.BingoClaim, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.claims[id]
	if !ok {
		return nil, false, models.ErrClaimNotFound
	}
	flipped := false
	if !c.Verified {
		now := time.Now()
		c.Verified = true
		c.VerifiedAt = &now
		flipped = true
	}
	cp := *c
	return &cp, flipped, nil
}
