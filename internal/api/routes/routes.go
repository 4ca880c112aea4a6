package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/compassionai/compassion/internal/api/handlers"
)

type Deps struct {
	Chat         *handlers.ChatHandler
	Analytics    *handlers.AnalyticsHandler
	Conversation *handlers.ConversationHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/chat", d.Chat.Chat)
	r.GET("/analytics", d.Analytics.Series)
	r.GET("/conversation/:session_id", d.Conversation.ListBySession)
}
