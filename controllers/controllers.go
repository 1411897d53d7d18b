package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/picbingo/bingo-backend/game"
	"github.com/picbingo/bingo-backend/models"
	"github.com/picbingo/bingo-backend/services"
)

// API holds the handler dependencies.
type API struct {
	Coordinator *services.Coordinator
}

func New(coordinator *services.Coordinator) *API {
	return &API{Coordinator: coordinator}
}

// hostKey pulls the host credential from the request.
func hostKey(c *gin.Context) string {
	return c.GetHeader("X-Host-Key")
}

// respondError maps the coordinator's error taxonomy to HTTP status
// codes. Anti-cheat rejections are plain 400s with the reason; the
// session keeps running.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrSessionNotFound),
		errors.Is(err, models.ErrPlayerNotFound),
		errors.Is(err, models.ErrCardNotFound),
		errors.Is(err, models.ErrClaimNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrNotHost):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrSessionEnded),
		errors.Is(err, models.ErrRoundNotActive):
		status = http.StatusConflict
	case errors.Is(err, game.ErrInsufficientPool),
		errors.Is(err, game.ErrInvalidPosition),
		errors.Is(err, game.ErrAlreadyMarked),
		errors.Is(err, game.ErrNotCalledYet):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
