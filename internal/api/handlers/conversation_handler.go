package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/compassionai/compassion/internal/services"
)

type ConversationHandler struct {
	svc services.ConversationService
}

func NewConversationHandler(svc services.ConversationService) *ConversationHandler {
	return &ConversationHandler{svc: svc}
}

func (h *ConversationHandler) ListBySession(c *gin.Context) {
	sessionID := c.Param("session_id")

	rows, err := h.svc.ListBySession(c.Request.Context(), sessionID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":   sessionID,
		"interactions": rows,
	})
}
