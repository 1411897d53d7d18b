package models

import "time"

// BingoClaim is a player's win assertion, resolved only by the host.
// Verified flips false->true exactly once; VerifiedAt is set at that
// moment and never changes again.
type BingoClaim struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	SessionID   uint       `gorm:"index" json:"session_id"`
	PlayerID    uint       `gorm:"index" json:"player_id"`
	CardID      uint       `json:"card_id"`
	RoundNumber int        `json:"round_number"`
	ClaimType   string     `gorm:"size:50" json:"claim_type"`
	Verified    bool       `json:"verified"`
	VerifiedAt  *time.Time `json:"verified_at,omitempty"`
	ClaimedAt   time.Time  `gorm:"autoCreateTime" json:"claimed_at"`
}
