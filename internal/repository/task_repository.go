package repository

import (
	"errors"

	"github.com/taskbridge/task-marketplace-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrOptimisticLock is returned when Replace loses a version race. With a
// single actor this never fires; it is the compare-and-swap guard a real
// multi-user deployment needs so two accepts cannot both take the last slot.
var ErrOptimisticLock = errors.New("optimistic locking conflict")

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create inserts a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Omit(clause.Associations).Create(task).Error
}

// FindByID loads a task with its creator, team (in acceptance order) and
// message thread (oldest first)
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	err := r.db.
		Preload("Creator").
		Preload("Assignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("task_assignments.position ASC")
		}).
		Preload("Assignments.User").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.created_at ASC")
		}).
		Preload("Messages.User").
		First(&task, id).Error
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering and pagination, newest first
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.CreatedBy != nil {
		query = query.Where("tasks.created_by = ?", *filter.CreatedBy)
	}
	if filter.AssignedUserID != nil {
		assignmentSubQuery := r.db.Model(&models.TaskAssignment{}).
			Select("1").
			Where("task_assignments.task_id = tasks.id").
			Where("task_assignments.user_id = ?", *filter.AssignedUserID)
		query = query.Where("EXISTS (?)", assignmentSubQuery)
	}
	if filter.OnlyAvailable {
		query = query.
			Where("tasks.status = ?", models.TaskStatusOpen).
			Where("(SELECT COUNT(*) FROM task_assignments WHERE task_assignments.task_id = tasks.id) < tasks.required_associates")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	err := listQuery.
		Preload("Creator").
		Preload("Assignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("task_assignments.position ASC")
		}).
		Preload("Assignments.User").
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Replace swaps in a new task value inside a single transaction: a
// version-checked update of the task row, then insert-if-absent of the
// team and thread rows. Assignments and messages are append-only, so
// rows already present are left untouched.
func (r *GormTaskRepository) Replace(task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Task{}).
			Where("id = ? AND version = ?", task.ID, task.Version).
			Updates(map[string]interface{}{
				"status":       task.Status,
				"completed_at": task.CompletedAt,
				"version":      gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOptimisticLock
		}

		if len(task.Assignments) > 0 {
			assignments := task.Assignments
			if err := tx.Omit(clause.Associations).
				Clauses(clause.OnConflict{DoNothing: true}).
				Create(&assignments).Error; err != nil {
				return err
			}
		}

		if len(task.Messages) > 0 {
			messages := task.Messages
			if err := tx.Omit(clause.Associations).
				Clauses(clause.OnConflict{DoNothing: true}).
				Create(&messages).Error; err != nil {
				return err
			}
		}

		task.Version++
		return nil
	})
}
