package services

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/picbingo/bingo-backend/catalog"
	"github.com/picbingo/bingo-backend/game"
	"github.com/picbingo/bingo-backend/models"
	"github.com/picbingo/bingo-backend/store"
	"github.com/picbingo/bingo-backend/utils/logger"
	"gorm.io/datatypes"
)

const (
	sessionCodeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	sessionCodeLength = 8

	createRetries = 5

	scorePerBingo = 100
)

// Coordinator owns the session/round state machine. Host actions
// serialize per session; player actions only touch the player's own
// card plus the read-only called-image log and run in parallel.
type Coordinator struct {
	store   store.Store
	hub     *Hub
	catalog catalog.Provider

	mu        sync.Mutex
	locks     map[uint]*sync.Mutex
	cardLocks map[uint]*sync.Mutex
}

func NewCoordinator(st store.Store, hub *Hub, cat catalog.Provider) *Coordinator {
	return &Coordinator{
		store:     st,
		hub:       hub,
		catalog:   cat,
		locks:     make(map[uint]*sync.Mutex),
		cardLocks: make(map[uint]*sync.Mutex),
	}
}

// sessionLock returns the mutex serializing host actions for one
// session. Locks are created lazily and live as long as the process;
// a multi-instance deployment would move this into the store.
func (c *Coordinator) sessionLock(sessionID uint) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		c.locks[sessionID] = l
	}
	return l
}

// cardLock serializes mark writes on one card. Marks stay independent
// across players; only same-card writes contend.
func (c *Coordinator) cardLock(cardID uint) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.cardLocks[cardID]
	if !ok {
		l = &sync.Mutex{}
		c.cardLocks[cardID] = l
	}
	return l
}

func generateSessionCode() string {
	b := make([]byte, sessionCodeLength)
	for i := range b {
		b[i] = sessionCodeChars[rand.Intn(len(sessionCodeChars))]
	}
	return string(b)
}

// hostSession loads a session by code and checks the host credential.
func (c *Coordinator) hostSession(ctx context.Context, code, hostKey string) (*models.GameSession, error) {
	session, err := c.store.SessionByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if session.HostKey == "" || session.HostKey != hostKey {
		return nil, models.ErrNotHost
	}
	return session, nil
}

// ---------- Host operations ----------

// CreateSession allocates a session with a fresh shareable code and
// returns it together with its host key.
func (c *Coordinator) CreateSession(ctx context.Context, pattern *game.Pattern) (*models.GameSession, error) {
	p := game.Pattern{Type: game.PatternLine, Name: "Any Line"}
	if pattern != nil {
		if err := pattern.Validate(); err != nil {
			return nil, err
		}
		p = *pattern
	}

	var session *models.GameSession
	for attempt := 0; attempt < createRetries; attempt++ {
		session = &models.GameSession{
			SessionCode:  generateSessionCode(),
			HostKey:      uuid.NewString(),
			Status:       models.StatusWaiting,
			CurrentRound: 0,
			Pattern:      datatypes.NewJSONType(p),
		}
		err := c.store.CreateSession(ctx, session)
		if err == nil {
			logger.Infof("[session %s] created", session.SessionCode)
			return session, nil
		}
		if !errors.Is(err, models.ErrConflict) {
			return nil, err
		}
	}
	return nil, models.ErrConflict
}

func (c *Coordinator) GetSession(ctx context.Context, code string) (*models.GameSession, error) {
	return c.store.SessionByCode(ctx, code)
}

// StartRound increments the round counter, deals a fresh card to every
// joined player from the full active image pool and activates the
// session.
func (c *Coordinator) StartRound(ctx context.Context, code, hostKey string) (int, error) {
	session, err := c.hostSession(ctx, code, hostKey)
	if err != nil {
		return 0, err
	}

	lock := c.sessionLock(session.ID)
	lock.Lock()
	defer lock.Unlock()

	// Reload under the lock: another host request may have advanced
	// the round in between.
	session, err = c.store.SessionByID(ctx, session.ID)
	if err != nil {
		return 0, err
	}
	if session.Status == models.StatusEnded {
		return 0, models.ErrSessionEnded
	}

	round := session.CurrentRound + 1
	pool := c.catalog.ImageIDs()

	players, err := c.store.SessionPlayers(ctx, session.ID)
	if err != nil {
		return 0, err
	}
	for _, player := range players {
		if err := c.dealCard(ctx, session.ID, player.ID, round, pool); err != nil {
			return 0, err
		}
	}

	session.CurrentRound = round
	session.Status = models.StatusActive
	if err := c.store.UpdateSession(ctx, session); err != nil {
		return 0, err
	}

	logger.Infof("[session %s] round %d started with %d players", code, round, len(players))
	c.hub.Publish(code, EventRoundStarted, map[string]any{"round_number": round})
	return round, nil
}

// dealCard persists one generated card, retrying locally when the card
// id collides with an existing one.
func (c *Coordinator) dealCard(ctx context.Context, sessionID, playerID uint, round int, pool []int) error {
	imageIDs, err := game.GenerateCard(pool)
	if err != nil {
		return err
	}
	for {
		card := &models.BingoCard{
			CardID:      game.GenerateCardID(),
			SessionID:   sessionID,
			PlayerID:    playerID,
			RoundNumber: round,
			ImageIDs:    datatypes.NewJSONSlice(imageIDs),
			Marked:      datatypes.NewJSONSlice(game.NewMarked()),
		}
		err := c.store.CreateCard(ctx, card)
		if err == nil {
			return nil
		}
		if !errors.Is(err, models.ErrConflict) {
			return err
		}
	}
}

// CallImage appends to the called-image log. The store assigns
// calledOrder atomically, so concurrent calls cannot share an order.
func (c *Coordinator) CallImage(ctx context.Context, code, hostKey string, imageID int) (*models.CalledImage, error) {
	session, err := c.hostSession(ctx, code, hostKey)
	if err != nil {
		return nil, err
	}
	if session.Status == models.StatusEnded {
		return nil, models.ErrSessionEnded
	}

	entry, err := c.store.AppendCalledImage(ctx, session.ID, session.CurrentRound, imageID)
	if err != nil {
		return nil, err
	}

	c.hub.Publish(code, EventImageCalled, map[string]any{
		"image_id":    imageID,
		"description": c.catalog.Describe(imageID),
		"order":       entry.CalledOrder,
	})
	return entry, nil
}

// EndRound pauses the session. The round counter is untouched; the
// next StartRound increments it further.
func (c *Coordinator) EndRound(ctx context.Context, code, hostKey string) error {
	session, err := c.hostSession(ctx, code, hostKey)
	if err != nil {
		return err
	}

	lock := c.sessionLock(session.ID)
	lock.Lock()
	defer lock.Unlock()

	session, err = c.store.SessionByID(ctx, session.ID)
	if err != nil {
		return err
	}
	if session.Status == models.StatusEnded {
		return models.ErrSessionEnded
	}

	session.Status = models.StatusPaused
	if err := c.store.UpdateSession(ctx, session); err != nil {
		return err
	}

	c.hub.Publish(code, EventRoundEnded, map[string]any{"round_number": session.CurrentRound})
	return nil
}

// ResetGame returns the session to waiting with round 0. Cards, claims
// and called-image logs are kept for audit; a later StartRound that
// reuses a round number supersedes them (newest card per player wins,
// the called sequence for that round continues without gaps).
func (c *Coordinator) ResetGame(ctx context.Context, code, hostKey string) error {
	session, err := c.hostSession(ctx, code, hostKey)
	if err != nil {
		return err
	}

	lock := c.sessionLock(session.ID)
	lock.Lock()
	defer lock.Unlock()

	session, err = c.store.SessionByID(ctx, session.ID)
	if err != nil {
		return err
	}

	session.Status = models.StatusWaiting
	session.CurrentRound = 0
	if err := c.store.UpdateSession(ctx, session); err != nil {
		return err
	}

	logger.Infof("[session %s] game reset", code)
	c.hub.Publish(code, EventGameReset, map[string]any{})
	return nil
}

// UpdatePattern sets the win pattern for the coming round.
func (c *Coordinator) UpdatePattern(ctx context.Context, code, hostKey string, pattern game.Pattern) error {
	if err := pattern.Validate(); err != nil {
		return err
	}
	session, err := c.hostSession(ctx, code, hostKey)
	if err != nil {
		return err
	}
	if session.Status == models.StatusEnded {
		return models.ErrSessionEnded
	}

	session.Pattern = datatypes.NewJSONType(pattern)
	return c.store.UpdateSession(ctx, session)
}

// VerifyBingo resolves a pending claim. Approval sets verified and
// verifiedAt exactly once and credits the player's score; the store
// reports which call performed the flip, so a concurrent re-verify
// never credits twice. The pattern detector's opinion travels with the
// claim notification as a hint; the host's call here is what counts.
func (c *Coordinator) VerifyBingo(ctx context.Context, hostKey string, claimID uint, approved bool) (*models.BingoClaim, error) {
	claim, err := c.store.ClaimByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	session, err := c.store.SessionByID(ctx, claim.SessionID)
	if err != nil {
		return nil, err
	}
	if session.HostKey == "" || session.HostKey != hostKey {
		return nil, models.ErrNotHost
	}

	if !approved {
		c.hub.Publish(session.SessionCode, EventBingoVerified, map[string]any{
			"claim_id":  claim.ID,
			"player_id": claim.PlayerID,
			"approved":  false,
		})
		return claim, nil
	}

	lock := c.sessionLock(session.ID)
	lock.Lock()
	defer lock.Unlock()

	claim, flipped, err := c.store.VerifyClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if flipped {
		if err := c.creditPlayer(ctx, session, claim.PlayerID); err != nil {
			return nil, err
		}
	}

	c.hub.Publish(session.SessionCode, EventBingoVerified, map[string]any{
		"claim_id":  claim.ID,
		"player_id": claim.PlayerID,
		"approved":  true,
	})
	return claim, nil
}

func (c *Coordinator) creditPlayer(ctx context.Context, session *models.GameSession, playerID uint) error {
	players, err := c.store.SessionPlayers(ctx, session.ID)
	if err != nil {
		return err
	}
	for i := range players {
		if players[i].ID != playerID {
			continue
		}
		players[i].TotalBingos++
		players[i].Score += scorePerBingo
		if err := c.store.UpdatePlayer(ctx, &players[i]); err != nil {
			return err
		}
		break
	}

	scoreboard, err := c.Scoreboard(ctx, session.SessionCode)
	if err != nil {
		return err
	}
	c.hub.Publish(session.SessionCode, EventScoreboardUpdated, map[string]any{
		"scoreboard": scoreboard,
	})
	return nil
}

// ---------- Player operations ----------

// JoinSession creates a player and returns it with the private uuid
// that authenticates all later mark/claim actions.
func (c *Coordinator) JoinSession(ctx context.Context, code, displayName string) (*models.Player, error) {
	session, err := c.store.SessionByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if session.Status == models.StatusEnded {
		return nil, models.ErrSessionEnded
	}

	player := &models.Player{
		SessionID:  session.ID,
		PlayerUUID: uuid.NewString(),
		PlayerName: displayName,
		IsActive:   true,
	}
	if err := c.store.CreatePlayer(ctx, player); err != nil {
		return nil, err
	}

	logger.Infof("[session %s] player %q joined", code, displayName)
	c.hub.Publish(code, EventPlayerJoined, map[string]any{
		"player_id":   player.ID,
		"player_name": player.PlayerName,
	})
	return player, nil
}

// PlayerCard returns the player's current-round card.
func (c *Coordinator) PlayerCard(ctx context.Context, playerUUID string) (*models.BingoCard, error) {
	player, err := c.store.PlayerByUUID(ctx, playerUUID)
	if err != nil {
		return nil, err
	}
	session, err := c.store.SessionByID(ctx, player.SessionID)
	if err != nil {
		return nil, err
	}
	return c.store.CardForRound(ctx, player.ID, session.CurrentRound)
}

// MarkTile validates one mark against the called-image log and
// persists it. Rejections come back as the game package's anti-cheat
// errors and leave the card untouched.
func (c *Coordinator) MarkTile(ctx context.Context, playerUUID string, row, col int) error {
	player, err := c.store.PlayerByUUID(ctx, playerUUID)
	if err != nil {
		return err
	}
	session, err := c.store.SessionByID(ctx, player.SessionID)
	if err != nil {
		return err
	}
	card, err := c.store.CardForRound(ctx, player.ID, session.CurrentRound)
	if err != nil {
		return err
	}

	lock := c.cardLock(card.ID)
	lock.Lock()
	defer lock.Unlock()

	// Reload under the lock so concurrent marks on the same card
	// never overwrite each other's whole-array write.
	card, err = c.store.CardForRound(ctx, player.ID, session.CurrentRound)
	if err != nil {
		return err
	}

	called, err := c.calledSet(ctx, session.ID, session.CurrentRound)
	if err != nil {
		return err
	}

	marked := append([]bool(nil), card.Marked...)
	if err := game.MarkTile(card.ImageIDs, marked, row, col, called); err != nil {
		return err
	}
	if err := c.store.UpdateCardMarks(ctx, card.ID, marked); err != nil {
		return err
	}

	c.hub.Publish(session.SessionCode, EventTileMarked, map[string]any{
		"player_id":   player.ID,
		"player_name": player.PlayerName,
		"row":         row,
		"col":         col,
	})
	return nil
}

// ClaimBingo records a pending claim and notifies the host. The
// detector result rides along as an advisory hint only; the claim is
// not decided here.
func (c *Coordinator) ClaimBingo(ctx context.Context, playerUUID string) (*models.BingoClaim, game.Match, error) {
	player, err := c.store.PlayerByUUID(ctx, playerUUID)
	if err != nil {
		return nil, game.Match{}, err
	}
	session, err := c.store.SessionByID(ctx, player.SessionID)
	if err != nil {
		return nil, game.Match{}, err
	}
	card, err := c.store.CardForRound(ctx, player.ID, session.CurrentRound)
	if err != nil {
		return nil, game.Match{}, err
	}

	pattern := session.Pattern.Data()
	claim := &models.BingoClaim{
		SessionID:   session.ID,
		PlayerID:    player.ID,
		CardID:      card.ID,
		RoundNumber: session.CurrentRound,
		ClaimType:   string(pattern.Type),
	}
	if err := c.store.CreateClaim(ctx, claim); err != nil {
		return nil, game.Match{}, err
	}

	called, err := c.calledSet(ctx, session.ID, session.CurrentRound)
	if err != nil {
		return nil, game.Match{}, err
	}
	hint := game.Verify(card.ImageIDs, called, []game.Pattern{pattern})

	c.hub.PublishHost(session.SessionCode, EventBingoClaimed, map[string]any{
		"claim_id":    claim.ID,
		"player_id":   player.ID,
		"player_name": player.PlayerName,
		"hint":        hint,
	})
	return claim, hint, nil
}

// ---------- Query operations (reconnect reconciliation) ----------

// CalledImages returns the full called-image log for the round, the
// query a reconnecting client reconciles against instead of replayed
// events. Round <= 0 means the session's current round.
func (c *Coordinator) CalledImages(ctx context.Context, code string, round int) ([]models.CalledImage, error) {
	session, err := c.store.SessionByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if round <= 0 {
		round = session.CurrentRound
	}
	return c.store.CalledImages(ctx, session.ID, round)
}

func (c *Coordinator) calledSet(ctx context.Context, sessionID uint, round int) (map[int]bool, error) {
	entries, err := c.store.CalledImages(ctx, sessionID, round)
	if err != nil {
		return nil, err
	}
	called := make(map[int]bool, len(entries))
	for _, e := range entries {
		called[e.ImageID] = true
	}
	return called, nil
}

// Scoreboard lists the session's players by score, highest first.
func (c *Coordinator) Scoreboard(ctx context.Context, code string) ([]models.Player, error) {
	session, err := c.store.SessionByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	players, err := c.store.SessionPlayers(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(players, func(i, j int) bool { return players[i].Score > players[j].Score })
	return players, nil
}

// ---------- Card read/export surface ----------

// GenerateBatch creates standalone printable cards, not bound to any
// player, for the PDF/export collaborators.
func (c *Coordinator) GenerateBatch(ctx context.Context, count int) ([]models.BingoCard, error) {
	pool := c.catalog.ImageIDs()
	out := make([]models.BingoCard, 0, count)
	for i := 0; i < count; i++ {
		imageIDs, err := game.GenerateCard(pool)
		if err != nil {
			return nil, err
		}
		for {
			card := models.BingoCard{
				CardID:   game.GenerateCardID(),
				ImageIDs: datatypes.NewJSONSlice(imageIDs),
				Marked:   datatypes.NewJSONSlice(game.NewMarked()),
			}
			err := c.store.CreateCard(ctx, &card)
			if err == nil {
				out = append(out, card)
				break
			}
			if !errors.Is(err, models.ErrConflict) {
				return nil, err
			}
		}
	}
	return out, nil
}

// CardByID looks a card up by its printed 5-character id.
func (c *Coordinator) CardByID(ctx context.Context, cardID string) (*models.BingoCard, error) {
	return c.store.CardByCardID(ctx, cardID)
}

// Patterns lists the selectable round patterns.
func (c *Coordinator) Patterns() []game.Pattern {
	return game.StandardPatterns()
}

// Catalog lists the callable images for the host's call picker.
func (c *Coordinator) Catalog() []catalog.Image {
	return c.catalog.Images()
}

// PlayerLeft emits the advisory departure event. Disconnects never
// mutate session state; presence is best-effort.
func (c *Coordinator) PlayerLeft(ctx context.Context, code, playerUUID string) {
	player, err := c.store.PlayerByUUID(ctx, playerUUID)
	if err != nil {
		return
	}
	c.hub.Publish(code, EventPlayerLeft, map[string]any{
		"player_id":   player.ID,
		"player_name": player.PlayerName,
	})
}
