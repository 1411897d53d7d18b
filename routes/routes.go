package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/picbingo/bingo-backend/controllers"
)

func SetupRoutes(r *gin.Engine, a *controllers.API) {
	api := r.Group("/api")

	// ----------------------
	// Session routes (host)
	// ----------------------
	api.POST("/sessions", a.CreateSession)
	api.GET("/sessions/:code", a.GetSession)
	api.POST("/sessions/:code/start", a.StartRound)
	api.POST("/sessions/:code/call", a.CallImage)
	api.POST("/sessions/:code/end", a.EndRound)
	api.POST("/sessions/:code/reset", a.ResetGame)
	api.POST("/sessions/:code/pattern", a.UpdatePattern)

	// ----------------------
	// Session queries (reconnect reconciliation)
	// ----------------------
	api.GET("/sessions/:code/called", a.CalledImages)
	api.GET("/sessions/:code/scoreboard", a.Scoreboard)
	api.GET("/patterns", a.Patterns)
	api.GET("/catalog", a.Catalog)

	// ----------------------
	// Player routes
	// ----------------------
	api.POST("/sessions/:code/join", a.JoinSession)
	api.GET("/players/:uuid/card", a.GetMyCard)
	api.POST("/players/:uuid/mark", a.MarkTile)
	api.POST("/players/:uuid/claim", a.ClaimBingo)
	api.POST("/claims/:id/verify", a.VerifyClaim)

	// ----------------------
	// Card export routes (print/PDF collaborators)
	// ----------------------
	api.POST("/cards/generate", a.GenerateCards)
	api.GET("/cards/:cardId", a.GetCard)
}
