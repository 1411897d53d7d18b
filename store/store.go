// Package store is the persistence provider for the game core. The
// gorm implementation backs production; the memory implementation
// backs tests and single-process deployments.
package store

import (
	"context"

	"github.com/picbingo/bingo-backend/models"
)

type Store interface {
	CreateSession(ctx context.Context, s *models.GameSession) error
	SessionByCode(ctx context.Context, code string) (*models.GameSession, error)
	SessionByID(ctx context.Context, id uint) (*models.GameSession, error)
	UpdateSession(ctx context.Context, s *models.GameSession) error

	CreatePlayer(ctx context.Context, p *models.Player) error
	PlayerByUUID(ctx context.Context, uuid string) (*models.Player, error)
	UpdatePlayer(ctx context.Context, p *models.Player) error
	SessionPlayers(ctx context.Context, sessionID uint) ([]models.Player, error)

	CreateCard(ctx context.Context, c *models.BingoCard) error
	// CardForRound returns the newest card for the (player, round)
	// pair; older cards for a reused round number stay retained for
	// audit but are no longer current.
	CardForRound(ctx context.Context, playerID uint, round int) (*models.BingoCard, error)
	CardByCardID(ctx context.Context, cardID string) (*models.BingoCard, error)
	UpdateCardMarks(ctx context.Context, id uint, marked []bool) error

	// AppendCalledImage assigns the next calledOrder atomically within
	// the (session, round) scope. Concurrent calls must never produce
	// the same order.
	AppendCalledImage(ctx context.Context, sessionID uint, round, imageID int) (*models.CalledImage, error)
	CalledImages(ctx context.Context, sessionID uint, round int) ([]models.CalledImage, error)

	CreateClaim(ctx context.Context, c *models.BingoClaim) error
	ClaimByID(ctx context.Context, id uint) (*models.BingoClaim, error)
	// VerifyClaim flips verified false->true and stamps verifiedAt
	// exactly once; verifying an already verified claim is a no-op.
	// The bool reports whether this call performed the flip, so the
	// caller can attach flip-once side effects without a racy
	// read-then-write of its own.
	VerifyClaim(ctx context.Context, id uint) (*models.BingoClaim, bool, error)
}
