package models

import (
	"time"

	"gorm.io/datatypes"
)

// BingoCard belongs to one (player, round) pair. ImageIDs is the flat
// 25-slot layout (index 12 is the FREE space) and never changes after
// creation; Marked is the only mutable part.
type BingoCard struct {
	ID          uint                      `gorm:"primaryKey" json:"id"`
	CardID      string                    `gorm:"uniqueIndex;size:8" json:"card_id"`
	SessionID   uint                      `gorm:"index" json:"session_id"`
	PlayerID    uint                      `gorm:"index" json:"player_id"`
	RoundNumber int                       `json:"round_number"`
	ImageIDs    datatypes.JSONSlice[int]  `json:"image_ids"`
	Marked      datatypes.JSONSlice[bool] `json:"marked"`
	CreatedAt   time.Time                 `json:"created_at"`
}
