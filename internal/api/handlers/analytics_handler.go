package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/compassionai/compassion/internal/services"
)

type AnalyticsHandler struct {
	svc services.AnalyticsService
}

func NewAnalyticsHandler(svc services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

func (h *AnalyticsHandler) Series(c *gin.Context) {
	sessionID := c.Query("session_id")
	mode := services.AnalyticsMode(c.Query("roles"))

	// Unknown sessions degrade to empty columns, never an error.
	series, err := h.svc.Series(c.Request.Context(), sessionID, mode)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, series)
}
