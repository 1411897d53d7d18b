package services

import "time"

type EventType string

const (
	EventPlayerJoined      EventType = "player_joined"
	EventPlayerLeft        EventType = "player_left"
	EventImageCalled       EventType = "image_called"
	EventTileMarked        EventType = "tile_marked"
	EventBingoClaimed      EventType = "bingo_claimed"
	EventBingoVerified     EventType = "bingo_verified"
	EventRoundStarted      EventType = "round_started"
	EventRoundEnded        EventType = "round_ended"
	EventGameReset         EventType = "game_reset"
	EventScoreboardUpdated EventType = "scoreboard_updated"
)

// Event is the broadcast envelope. Timestamp is unix milliseconds at
// emission time.
type Event struct {
	Type      EventType `json:"type"`
	Payload   any       `json:"payload"`
	Timestamp int64     `json:"timestamp"`
}

func newEvent(t EventType, payload any) Event {
	return Event{Type: t, Payload: payload, Timestamp: time.Now().UnixMilli()}
}
