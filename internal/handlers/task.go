package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fanzoftheone/taskdeck/internal/models"
	"github.com/fanzoftheone/taskdeck/internal/store"
	"github.com/fanzoftheone/taskdeck/internal/taskops"
	"github.com/fanzoftheone/taskdeck/internal/utils"
	"github.com/gin-gonic/gin"
)

const dueDateLayout = "2006-01-02"

type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    int     `json:"priority"`
	DueDate     *string `json:"due_date"`
}

// optionalDate distinguishes an absent due_date from an explicit null, which
// clears the field on partial updates.
type optionalDate struct {
	set   bool
	value *time.Time
}

func (d *optionalDate) UnmarshalJSON(data []byte) error {
	d.set = true

	if bytes.Equal(data, []byte("null")) {
		d.value = nil
		return nil
	}

	var raw string

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := time.Parse(dueDateLayout, raw)

	if err != nil {
		return err
	}

	d.value = &parsed
	return nil
}

type UpdateTaskRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Status      *string      `json:"status"`
	Priority    *int         `json:"priority"`
	DueDate     optionalDate `json:"due_date"`
}

type TaskResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    int     `json:"priority"`
	DueDate     *string `json:"due_date"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func toTaskResponse(task models.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}

	if task.DueDate != nil {
		due := time.Time(*task.DueDate).Format(dueDateLayout)
		resp.DueDate = &due
	}

	return resp
}

type TaskHandler struct {
	tasks  *taskops.Service
	hub    *Hub
	logger *slog.Logger
}

func NewTaskHandler(tasks *taskops.Service, hub *Hub, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, hub: hub, logger: logger}
}

func (h *TaskHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	tasks, err := h.tasks.List(ctx.Request.Context(), userID)

	if err != nil {
		h.logger.Error("listing tasks failed", "error", err, "user_id", userID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	response := make([]TaskResponse, 0, len(tasks))

	for _, task := range tasks {
		response = append(response, toTaskResponse(task))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *TaskHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateTaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	input := taskops.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	}

	if req.DueDate != nil {
		due, err := time.Parse(dueDateLayout, *req.DueDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be YYYY-MM-DD"})
			return
		}
		input.DueDate = &due
	}

	task, err := h.tasks.Create(ctx.Request.Context(), userID, input)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.hub.BroadcastRefresh(userID)

	ctx.JSON(http.StatusCreated, toTaskResponse(*task))
}

func (h *TaskHandler) Update(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateTaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.tasks.Update(ctx.Request.Context(), userID, taskID, taskops.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate.value,
		DueDateSet:  req.DueDate.set,
	})

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.hub.BroadcastRefresh(userID)

	ctx.JSON(http.StatusOK, toTaskResponse(*task))
}

func (h *TaskHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.tasks.Delete(ctx.Request.Context(), userID, taskID); err != nil {
		h.respondError(ctx, err)
		return
	}

	h.hub.BroadcastRefresh(userID)

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *TaskHandler) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	case errors.Is(err, taskops.ErrInvalidStatus):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": taskops.ErrInvalidStatus.Error()})
	case errors.Is(err, taskops.ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("task operation failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
