package services

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/picbingo/bingo-backend/utils/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades /ws/:code connections and attaches them to the
// session's player channel, or to the host channel when a valid host
// key accompanies role=host.
func WSHandler(coordinator *Coordinator, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")
		session, err := coordinator.GetSession(c.Request.Context(), code)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}

		role := RolePlayer
		if c.Query("role") == "host" {
			if c.Query("key") != session.HostKey {
				c.JSON(http.StatusForbidden, gin.H{"error": "not the session host"})
				return
			}
			role = RoleHost
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Errorf("[ws %s] upgrade error: %v", code, err)
			return
		}

		client := &Client{
			sessionCode: code,
			playerUUID:  c.Query("player_uuid"),
			conn:        conn,
			hub:         hub,
			sub:         hub.Subscribe(code, role),
			coordinator: coordinator,
		}
		logger.Infof("[ws %s] client connected role=%s", code, role)

		go client.writePump()
		go client.readPump()
	}
}
