package store

import (
	"context"
	"errors"
	"time"

	"github.com/picbingo/bingo-backend/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Gorm backs the Store with a relational database.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return models.ErrConflict
	default:
		return err
	}
}

func (g *Gorm) CreateSession(ctx context.Context, s *models.GameSession) error {
	return translate(g.db.WithContext(ctx).Create(s).Error, nil)
}

func (g *Gorm) SessionByCode(ctx context.Context, code string) (*models.GameSession, error) {
	var s models.GameSession
	err := g.db.WithContext(ctx).Where("session_code = ?", code).First(&s).Error
	if err != nil {
		return nil, translate(err, models.ErrSessionNotFound)
	}
	return &s, nil
}

func (g *Gorm) SessionByID(ctx context.Context, id uint) (*models.GameSession, error) {
	var s models.GameSession
	err := g.db.WithContext(ctx).First(&s, id).Error
	if err != nil {
		return nil, translate(err, models.ErrSessionNotFound)
	}
	return &s, nil
}

func (g *Gorm) UpdateSession(ctx context.Context, s *models.GameSession) error {
	return translate(g.db.WithContext(ctx).Save(s).Error, models.ErrSessionNotFound)
}

func (g *Gorm) CreatePlayer(ctx context.Context, p *models.Player) error {
	return translate(g.db.WithContext(ctx).Create(p).Error, nil)
}

func (g *Gorm) PlayerByUUID(ctx context.Context, uuid string) (*models.Player, error) {
	var p models.Player
	err := g.db.WithContext(ctx).Where("player_uuid = ?", uuid).First(&p).Error
	if err != nil {
		return nil, translate(err, models.ErrPlayerNotFound)
	}
	return &p, nil
}

func (g *Gorm) UpdatePlayer(ctx context.Context, p *models.Player) error {
	return translate(g.db.WithContext(ctx).Save(p).Error, models.ErrPlayerNotFound)
}

func (g *Gorm) SessionPlayers(ctx context.Context, sessionID uint) ([]models.Player, error) {
	var players []models.Player
	err := g.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id").
		Find(&players).Error
	return players, translate(err, nil)
}

func (g *Gorm) CreateCard(ctx context.Context, c *models.BingoCard) error {
	return translate(g.db.WithContext(ctx).Create(c).Error, nil)
}

func (g *Gorm) CardForRound(ctx context.Context, playerID uint, round int) (*models.BingoCard, error) {
	var c models.BingoCard
	err := g.db.WithContext(ctx).
		Where("player_id = ? AND round_number = ?", playerID, round).
		Order("id DESC").
		First(&c).Error
	if err != nil {
		return nil, translate(err, models.ErrCardNotFound)
	}
	return &c, nil
}

func (g *Gorm) CardByCardID(ctx context.Context, cardID string) (*models.BingoCard, error) {
	var c models.BingoCard
	err := g.db.WithContext(ctx).Where("card_id = ?", cardID).First(&c).Error
	if err != nil {
		return nil, translate(err, models.ErrCardNotFound)
	}
	return &c, nil
}

func (g *Gorm) UpdateCardMarks(ctx context.Context, id uint, marked []bool) error {
	res := g.db.WithContext(ctx).
		Model(&models.BingoCard{}).
		Where("id = ?", id).
		Update("marked", datatypes.NewJSONSlice(marked))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrCardNotFound
	}
	return nil
}

// AppendCalledImage assigns calledOrder inside a transaction that locks
// the session row, so concurrent calls on the same session serialize on
// the database rather than on process-local state.
func (g *Gorm) AppendCalledImage(ctx context.Context, sessionID uint, round, imageID int) (*models.CalledImage, error) {
	var entry models.CalledImage
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session models.GameSession
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&session, sessionID).Error; err != nil {
			return translate(err, models.ErrSessionNotFound)
		}

		var count int64
		if err := tx.Model(&models.CalledImage{}).
			Where("session_id = ? AND round_number = ?", sessionID, round).
			Count(&count).Error; err != nil {
			return err
		}

		entry = models.CalledImage{
			SessionID:   sessionID,
			RoundNumber: round,
			ImageID:     imageID,
			CalledOrder: int(count) + 1,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (g *Gorm) CalledImages(ctx context.Context, sessionID uint, round int) ([]models.CalledImage, error) {
	var out []models.CalledImage
	err := g.db.WithContext(ctx).
		Where("session_id = ? AND round_number = ?", sessionID, round).
		Order("called_order").
		Find(&out).Error
	return out, translate(err, nil)
}

func (g *Gorm) CreateClaim(ctx context.Context, c *models.BingoClaim) error {
	return translate(g.db.WithContext(ctx).Create(c).Error, nil)
}

func (g *Gorm) ClaimByID(ctx context.Context, id uint) (*models.BingoClaim, error) {
	var c models.BingoClaim
	err := g.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		return nil, translate(err, models.ErrClaimNotFound)
	}
	return &c, nil
}

func (g *Gorm) VerifyClaim(ctx context.Context, id uint) (*models.BingoClaim, bool, error) {
	var claim models.BingoClaim
	flipped := false
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&claim, id).Error; err != nil {
			return translate(err, models.ErrClaimNotFound)
		}
		if claim.Verified {
			return nil
		}
		now := time.Now()
		claim.Verified = true
		claim.VerifiedAt = &now
		flipped = true
		return tx.Save(&claim).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &claim, flipped, nil
}
