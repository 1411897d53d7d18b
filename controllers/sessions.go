package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/picbingo/bingo-backend/game"
)

// CreateSession allocates a session and returns the join code together
// with the host key. The key is only ever returned here.
func (a *API) CreateSession(c *gin.Context) {
	var req struct {
		Pattern *game.Pattern `json:"pattern"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	session, err := a.Coordinator.CreateSession(c.Request.Context(), req.Pattern)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_code": session.SessionCode,
		"host_key":     session.HostKey,
		"session":      session,
	})
}

func (a *API) GetSession(c *gin.Context) {
	session, err := a.Coordinator.GetSession(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (a *API) StartRound(c *gin.Context) {
	round, err := a.Coordinator.StartRound(c.Request.Context(), c.Param("code"), hostKey(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"round_number": round})
}

func (a *API) CallImage(c *gin.Context) {
	var req struct {
		ImageID int `json:"image_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := a.Coordinator.CallImage(c.Request.Context(), c.Param("code"), hostKey(c), req.ImageID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (a *API) EndRound(c *gin.Context) {
	if err := a.Coordinator.EndRound(c.Request.Context(), c.Param("code"), hostKey(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "paused"})
}

func (a *API) ResetGame(c *gin.Context) {
	if err := a.Coordinator.ResetGame(c.Request.Context(), c.Param("code"), hostKey(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "waiting"})
}

func (a *API) UpdatePattern(c *gin.Context) {
	var req struct {
		Pattern game.Pattern `json:"pattern" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := a.Coordinator.UpdatePattern(c.Request.Context(), c.Param("code"), hostKey(c), req.Pattern); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pattern": req.Pattern})
}

// CalledImages serves the reconnect-reconciliation query: the full
// called-image log for a round, in call order.
func (a *API) CalledImages(c *gin.Context) {
	round := 0
	if v := c.Query("round"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid round"})
			return
		}
		round = parsed
	}

	log, err := a.Coordinator.CalledImages(c.Request.Context(), c.Param("code"), round)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

func (a *API) Scoreboard(c *gin.Context) {
	scoreboard, err := a.Coordinator.Scoreboard(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scoreboard)
}

func (a *API) Patterns(c *gin.Context) {
	c.JSON(http.StatusOK, a.Coordinator.Patterns())
}

func (a *API) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, a.Coordinator.Catalog())
}
