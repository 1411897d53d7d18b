package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// GenerateCards creates a batch of standalone printable cards for the
// PDF/export collaborators.
func (a *API) GenerateCards(c *gin.Context) {
	var req struct {
		Count int `json:"count" binding:"required,min=1,max=1000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cards, err := a.Coordinator.GenerateBatch(c.Request.Context(), req.Count)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"count": len(cards), "cards": cards})
}

// GetCard looks a card up by its printed 5-character id.
func (a *API) GetCard(c *gin.Context) {
	cardID := strings.ToUpper(c.Param("cardId"))
	card, err := a.Coordinator.CardByID(c.Request.Context(), cardID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}
