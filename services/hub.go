package services

import (
	"sync"

	"github.com/picbingo/bingo-backend/utils/logger"
)

// Role selects which of a session's two channels a subscriber listens
// on. Host events only reach host subscribers.
type Role string

const (
	RolePlayer Role = "player"
	RoleHost   Role = "host"
)

const subscriberBuffer = 32

// Subscriber receives a session's events. C is closed on Unsubscribe.
type Subscriber struct {
	C chan Event

	role Role
}

// Hub fans session events out to subscribed clients. Delivery is
// fire-and-forget and at-most-once: a full subscriber buffer drops the
// event, and clients that reconnect reconcile through query endpoints,
// not replay.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*Subscriber]bool
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[string]map[*Subscriber]bool)}
}

func (h *Hub) Subscribe(sessionCode string, role Role) *Subscriber {
	sub := &Subscriber{C: make(chan Event, subscriberBuffer), role: role}
	h.mu.Lock()
	if h.sessions[sessionCode] == nil {
		h.sessions[sessionCode] = make(map[*Subscriber]bool)
	}
	h.sessions[sessionCode][sub] = true
	h.mu.Unlock()
	return sub
}

func (h *Hub) Unsubscribe(sessionCode string, sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.sessions[sessionCode]
	if subs == nil || !subs[sub] {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.sessions, sessionCode)
	}
	close(sub.C)
}

// Publish emits to every subscriber of the session, host included.
func (h *Hub) Publish(sessionCode string, t EventType, payload any) {
	h.send(sessionCode, newEvent(t, payload), false)
}

// PublishHost emits on the host channel only.
func (h *Hub) PublishHost(sessionCode string, t EventType, payload any) {
	h.send(sessionCode, newEvent(t, payload), true)
}

func (h *Hub) send(sessionCode string, ev Event, hostOnly bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.sessions[sessionCode] {
		if hostOnly && sub.role != RoleHost {
			continue
		}
		select {
		case sub.C <- ev:
		default:
			logger.Debugf("[hub] dropping %s event for session %s", ev.Type, sessionCode)
		}
	}
}
