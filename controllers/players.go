package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// JoinSession creates a player and returns the private uuid the client
// must present on every later action.
func (a *API) JoinSession(c *gin.Context) {
	var req struct {
		PlayerName string `json:"player_name" binding:"required,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, err := a.Coordinator.JoinSession(c.Request.Context(), c.Param("code"), req.PlayerName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"player_uuid": player.PlayerUUID,
		"player_id":   player.ID,
		"session_id":  player.SessionID,
	})
}

func (a *API) GetMyCard(c *gin.Context) {
	card, err := a.Coordinator.PlayerCard(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (a *API) MarkTile(c *gin.Context) {
	var req struct {
		Row int `json:"row"`
		Col int `json:"col"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := a.Coordinator.MarkTile(c.Request.Context(), c.Param("uuid"), req.Row, req.Col); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (a *API) ClaimBingo(c *gin.Context) {
	claim, hint, err := a.Coordinator.ClaimBingo(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"claim_id": claim.ID, "hint": hint})
}

// VerifyClaim is the host's resolution of a pending claim.
func (a *API) VerifyClaim(c *gin.Context) {
	claimID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid claim id"})
		return
	}

	var req struct {
		Approved bool `json:"approved"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claim, err := a.Coordinator.VerifyBingo(c.Request.Context(), hostKey(c), uint(claimID), req.Approved)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, claim)
}
