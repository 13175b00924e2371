package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fanzoftheone/taskdeck/internal/models"
	"github.com/fanzoftheone/taskdeck/internal/store"
	"github.com/fanzoftheone/taskdeck/internal/utils"
	"github.com/gin-gonic/gin"
)

type ActivityResponse struct {
	ID        uint   `json:"id"`
	Action    string `json:"action"`
	TaskID    *uint  `json:"task_id"`
	CreatedAt string `json:"created_at"`
}

// ActivityHandler exposes a read-only view of the audit log. The core only
// ever appends; this listing exists for the logs page.
type ActivityHandler struct {
	activity store.ActivityStore
	logger   *slog.Logger
}

func NewActivityHandler(activity store.ActivityStore, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{activity: activity, logger: logger}
}

func (h *ActivityHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	entries, err := h.activity.ListActivityByOwner(ctx.Request.Context(), userID)

	if err != nil {
		h.logger.Error("listing activity failed", "error", err, "user_id", userID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve activity log"})
		return
	}

	response := make([]ActivityResponse, 0, len(entries))

	for _, entry := range entries {
		response = append(response, toActivityResponse(entry))
	}

	ctx.JSON(http.StatusOK, response)
}

func toActivityResponse(entry models.ActivityLog) ActivityResponse {
	return ActivityResponse{
		ID:        entry.ID,
		Action:    entry.Action,
		TaskID:    entry.TaskID,
		CreatedAt: entry.CreatedAt.Format(time.RFC3339),
	}
}
