package taskops

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fanzoftheone/taskdeck/internal/models"
	"github.com/fanzoftheone/taskdeck/internal/store"
	"gorm.io/datatypes"
)

var (
	ErrInvalidStatus = errors.New("status must be todo|doing|done")
	ErrInvalidInput  = errors.New("invalid input")
)

// Service validates and applies task lifecycle transitions. Every mutation
// persists its entity change and an activity entry as one atomic unit.
type Service struct {
	store  store.Store
	now    func() time.Time
	logger *slog.Logger
}

func NewService(st store.Store, now func() time.Time, logger *slog.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: st, now: now, logger: logger}
}

type CreateInput struct {
	Title       string
	Description string
	Status      string
	Priority    int
	DueDate     *time.Time
}

// UpdateInput carries a partial payload. Nil pointer fields are left
// unchanged; DueDateSet with a nil DueDate explicitly clears the due date.
type UpdateInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *int
	DueDate     *time.Time
	DueDateSet  bool
}

// List returns the caller's tasks, newest first.
func (s *Service) List(ctx context.Context, userID uint) ([]models.Task, error) {
	return s.store.ListTasksByOwner(ctx, userID)
}

func (s *Service) Create(ctx context.Context, userID uint, input CreateInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)

	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	status := input.Status

	if status == "" {
		status = models.StatusTodo
	}

	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}

	priority := input.Priority

	if priority == 0 {
		priority = models.PriorityMedium
	}

	if priority < models.PriorityHigh || priority > models.PriorityLow {
		return nil, fmt.Errorf("%w: priority must be between 1 and 3", ErrInvalidInput)
	}

	now := s.now()

	task := &models.Task{
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      status,
		Priority:    priority,
		DueDate:     toDate(input.DueDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.store.Atomic(ctx, func(tx store.Store) error {
		if err := tx.CreateTask(ctx, task); err != nil {
			return err
		}

		return tx.AppendActivity(ctx, &models.ActivityLog{
			UserID:    userID,
			Action:    "Created task: " + task.Title,
			TaskID:    &task.ID,
			CreatedAt: now,
		})
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("task created", "task_id", task.ID, "user_id", userID)

	return task, nil
}

func (s *Service) Update(ctx context.Context, userID, taskID uint, input UpdateInput) (*models.Task, error) {
	task, err := s.store.GetOwnedTask(ctx, taskID, userID)

	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		task.Title = title
	}

	if input.Description != nil {
		task.Description = strings.TrimSpace(*input.Description)
	}

	if input.Status != nil {
		if !validStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}

	if input.Priority != nil {
		if *input.Priority < models.PriorityHigh || *input.Priority > models.PriorityLow {
			return nil, fmt.Errorf("%w: priority must be between 1 and 3", ErrInvalidInput)
		}
		task.Priority = *input.Priority
	}

	if input.DueDateSet {
		task.DueDate = toDate(input.DueDate)
	}

	now := s.now()
	task.UpdatedAt = now

	err = s.store.Atomic(ctx, func(tx store.Store) error {
		if err := tx.SaveTask(ctx, task); err != nil {
			return err
		}

		return tx.AppendActivity(ctx, &models.ActivityLog{
			UserID:    userID,
			Action:    "Updated task: " + task.Title,
			TaskID:    &task.ID,
			CreatedAt: now,
		})
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("task updated", "task_id", task.ID, "user_id", userID)

	return task, nil
}

// Delete removes the task. The activity entry keeps referencing the deleted
// id so the audit trail survives.
func (s *Service) Delete(ctx context.Context, userID, taskID uint) error {
	task, err := s.store.GetOwnedTask(ctx, taskID, userID)

	if err != nil {
		return err
	}

	now := s.now()

	err = s.store.Atomic(ctx, func(tx store.Store) error {
		if err := tx.DeleteTask(ctx, task); err != nil {
			return err
		}

		return tx.AppendActivity(ctx, &models.ActivityLog{
			UserID:    userID,
			Action:    "Deleted task: " + task.Title,
			TaskID:    &task.ID,
			CreatedAt: now,
		})
	})

	if err != nil {
		return err
	}

	s.logger.Info("task deleted", "task_id", taskID, "user_id", userID)

	return nil
}

// validStatus checks set membership only. There is no transition graph:
// any status may move to any other, done -> todo included.
func validStatus(status string) bool {
	switch status {
	case models.StatusTodo, models.StatusDoing, models.StatusDone:
		return true
	}
	return false
}

func toDate(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := datatypes.Date(*t)
	return &d
}
