package models

import (
	"time"

	"github.com/picbingo/bingo-backend/game"
	"gorm.io/datatypes"
)

type SessionStatus string

const (
	StatusWaiting SessionStatus = "waiting"
	StatusActive  SessionStatus = "active"
	StatusPaused  SessionStatus = "paused"
	StatusEnded   SessionStatus = "ended"
)

// GameSession is one hosted game. SessionCode is the shareable join
// code; HostKey is the secret returned to the creator and required for
// every host action.
type GameSession struct {
	ID           uint                             `gorm:"primaryKey" json:"id"`
	SessionCode  string                           `gorm:"uniqueIndex;size:16" json:"session_code"`
	HostKey      string                           `gorm:"size:64" json:"-"`
	Status       SessionStatus                    `gorm:"size:16" json:"status"`
	CurrentRound int                              `json:"current_round"`
	Pattern      datatypes.JSONType[game.Pattern] `json:"pattern"`
	CreatedAt    time.Time                        `json:"created_at"`
	UpdatedAt    time.Time                        `json:"updated_at"`
}
