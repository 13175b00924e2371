package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fanzoftheone/taskdeck/internal/stats"
	"github.com/fanzoftheone/taskdeck/internal/taskops"
	"github.com/fanzoftheone/taskdeck/internal/utils"
	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	tasks  *taskops.Service
	now    func() time.Time
	logger *slog.Logger
}

func NewStatsHandler(tasks *taskops.Service, now func() time.Time, logger *slog.Logger) *StatsHandler {
	if now == nil {
		now = time.Now
	}
	return &StatsHandler{tasks: tasks, now: now, logger: logger}
}

func (h *StatsHandler) Get(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	tasks, err := h.tasks.List(ctx.Request.Context(), userID)

	if err != nil {
		h.logger.Error("loading tasks for stats failed", "error", err, "user_id", userID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	ctx.JSON(http.StatusOK, stats.Compute(tasks, h.now()))
}
