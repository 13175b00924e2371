package handlers

import (
	"log/slog"
	"net/http"

	"github.com/fanzoftheone/taskdeck/internal/overseer"
	"github.com/fanzoftheone/taskdeck/internal/utils"
	"github.com/gin-gonic/gin"
)

type OverseerRequest struct {
	Idea string `json:"idea" binding:"required,max=5000"`
}

type OverseerResponse struct {
	Approval string `json:"approval"`
}

type OverseerHandler struct {
	reviews *overseer.Service
	logger  *slog.Logger
}

func NewOverseerHandler(reviews *overseer.Service, logger *slog.Logger) *OverseerHandler {
	return &OverseerHandler{reviews: reviews, logger: logger}
}

func (h *OverseerHandler) Submit(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req OverseerRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := h.reviews.Submit(ctx.Request.Context(), userID, req.Idea)

	if err != nil {
		h.logger.Error("idea submission failed", "error", err, "user_id", userID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, OverseerResponse{Approval: result.Approval()})
}
