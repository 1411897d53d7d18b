package models

import "time"

// CalledImage is one append-only log entry: image calls are never
// mutated or deleted, and CalledOrder is strictly increasing from 1
// within a (session, round).
type CalledImage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SessionID   uint      `gorm:"index:idx_called_session_round" json:"session_id"`
	RoundNumber int       `gorm:"index:idx_called_session_round" json:"round_number"`
	ImageID     int       `json:"image_id"`
	CalledOrder int       `json:"called_order"`
	CalledAt    time.Time `gorm:"autoCreateTime" json:"called_at"`
}
