package services

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/picbingo/bingo-backend/utils/logger"
)

// Client binds one websocket connection to a hub subscription. Events
// flow server to client only; game actions go through the REST API.
type Client struct {
	sessionCode string
	playerUUID  string
	conn        *websocket.Conn
	hub         *Hub
	sub         *Subscriber
	coordinator *Coordinator
	once        sync.Once
}

func (c *Client) Close() {
	c.once.Do(func() {
		c.hub.Unsubscribe(c.sessionCode, c.sub)
		c.conn.Close()
	})
}

// writePump drains the subscription onto the socket.
func (c *Client) writePump() {
	defer c.Close()
	for ev := range c.sub.C {
		if err := c.conn.WriteJSON(ev); err != nil {
			logger.Debugf("[ws %s] write error: %v", c.sessionCode, err)
			return
		}
	}
}

// readPump discards inbound frames and detects the disconnect. A
// departing player produces an advisory player_left event; session
// state is never mutated by a disconnect.
func (c *Client) readPump() {
	defer func() {
		c.Close()
		if c.playerUUID != "" {
			c.coordinator.PlayerLeft(context.Background(), c.sessionCode, c.playerUUID)
		}
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debugf("[ws %s] client disconnected", c.sessionCode)
			} else {
				logger.Debugf("[ws %s] read error: %v", c.sessionCode, err)
			}
			return
		}
	}
}
