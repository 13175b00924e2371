package store

import (
	"context"
	"errors"

	"github.com/fanzoftheone/taskdeck/internal/models"
)

// ErrNotFound indicates an entity was not located. A task that exists but
// belongs to another user is reported identically to a missing row.
var ErrNotFound = errors.New("store: record not found")

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type TaskStore interface {
	CreateTask(ctx context.Context, task *models.Task) error
	// GetOwnedTask applies the implicit owner filter. Every task mutation
	// must resolve its target through this lookup.
	GetOwnedTask(ctx context.Context, taskID, userID uint) (*models.Task, error)
	// ListTasksByOwner returns the owner's tasks newest first.
	ListTasksByOwner(ctx context.Context, userID uint) ([]models.Task, error)
	SaveTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, task *models.Task) error
}

type ActivityStore interface {
	AppendActivity(ctx context.Context, entry *models.ActivityLog) error
	ListActivityByOwner(ctx context.Context, userID uint) ([]models.ActivityLog, error)
}

// Store bundles the repositories behind one handle. Atomic runs fn against a
// store whose writes commit together or not at all.
type Store interface {
	UserStore
	TaskStore
	ActivityStore
	Atomic(ctx context.Context, fn func(Store) error) error
}
