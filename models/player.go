package models

import "time"

// Player is a joined participant. PlayerUUID is issued at join time and
// acts as that player's only credential for mark/claim actions.
type Player struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SessionID   uint      `gorm:"index" json:"session_id"`
	PlayerUUID  string    `gorm:"uniqueIndex;size:64" json:"-"`
	PlayerName  string    `gorm:"size:100" json:"player_name"`
	Score       int       `json:"score"`
	TotalBingos int       `json:"total_bingos"`
	IsActive    bool      `json:"is_active"`
	JoinedAt    time.Time `gorm:"autoCreateTime" json:"joined_at"`
}
