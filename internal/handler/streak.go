package handler

import (
	"brainshift/internal/service"
	"brainshift/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
)

type StreakHandler struct {
	Streaks *service.StreakService
	Log     hclog.Logger
}

func NewStreakHandler(streaks *service.StreakService, log hclog.Logger) *StreakHandler {
	return &StreakHandler{Streaks: streaks, Log: log.Named("http")}
}

// Get GET /api/streaks
func (h *StreakHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	view, err := h.Streaks.Read(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	util.Success(c, util.Response{
		"currentStreak":  view.CurrentStreak,
		"longestStreak":  view.LongestStreak,
		"lastStreakDate": view.LastStreakDate,
	})
}
