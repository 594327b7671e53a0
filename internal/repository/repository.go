package repository

import (
	"github.com/taskbridge/task-marketplace-api/internal/models"
)

// TaskRepository is the authoritative task store. Tasks are created and
// replaced, never deleted; Replace swaps in a full task value so readers
// never observe a half-applied transition.
type TaskRepository interface {
	// Create inserts a new task
	Create(task *models.Task) error

	// FindByID loads a task with its creator, team and message thread
	FindByID(id uint64) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Replace swaps in a new task value. The write is guarded by the
	// task's version; a stale value yields ErrOptimisticLock.
	Replace(task *models.Task) error
}

// TaskFilter holds the caller-supplied projections over the task list
type TaskFilter struct {
	Status         *models.TaskStatus
	CreatedBy      *uint64
	AssignedUserID *uint64
	OnlyAvailable  bool
	Page           int
	PageSize       int
}

// UserRepository provides read access to the fixed set of identities
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// List returns all selectable identities
	List() ([]models.User, error)
}
