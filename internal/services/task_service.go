package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/taskbridge/task-marketplace-api/internal/authz"
	"github.com/taskbridge/task-marketplace-api/internal/constants"
	"github.com/taskbridge/task-marketplace-api/internal/models"
	"github.com/taskbridge/task-marketplace-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound              = errors.New("task not found")
	ErrUserNotFound              = errors.New("user not found")
	ErrAcceptNotAllowed          = errors.New("user cannot accept this task")
	ErrCompleteNotAllowed        = errors.New("user cannot complete this task")
	ErrMessageNotAllowed         = errors.New("user cannot post to this task's thread")
	ErrNotTaskPoster             = errors.New("only JPT users can post tasks")
	ErrEmptyMessage              = errors.New("message text cannot be empty")
	ErrTitleTooShort             = fmt.Errorf("title must be at least %d characters long", constants.MinTitleLength)
	ErrDescriptionTooShort       = fmt.Errorf("description must be at least %d characters long", constants.MinDescriptionLength)
	ErrTagsRequired              = errors.New("at least one tag is required")
	ErrInvalidRequiredAssociates = errors.New("at least one associate is required")
	ErrStaleTask                 = errors.New("task was modified concurrently")
	ErrAIServiceNotConfigured    = errors.New("AI service is not configured")
)

// TaskService is the task lifecycle engine. Every transition loads the
// current record, checks the authz predicates, builds a replacement value
// and hands it to the store; no mutation happens outside this package.
type TaskService struct {
	taskRepo  repository.TaskRepository
	userRepo  repository.UserRepository
	aiService *AIService
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, aiService *AIService) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		userRepo:  userRepo,
		aiService: aiService,
	}
}

// ListTasksInput represents the caller-supplied projections for listing tasks
type ListTasksInput struct {
	UserID       uint64
	Status       *models.TaskStatus
	Available    bool
	CreatedByMe  bool
	AssignedToMe bool
	Page         int
	PageSize     int
}

// CreateTaskInput represents input for posting a new task
type CreateTaskInput struct {
	Title              string
	Description        string
	Tags               []string
	RequiredAssociates int
	CreatorID          uint64
}

// ListTasks returns the tasks matching the requested projection
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		Status:        input.Status,
		OnlyAvailable: input.Available,
		Page:          input.Page,
		PageSize:      input.PageSize,
	}
	if input.CreatedByMe {
		filter.CreatedBy = &input.UserID
	}
	if input.AssignedToMe {
		filter.AssignedUserID = &input.UserID
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task with its team and message thread
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTask validates the submitted fields and posts a new open task
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	user, err := s.findUser(input.CreatorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanCreateTask(user) {
		return nil, ErrNotTaskPoster
	}

	title := strings.TrimSpace(input.Title)
	if utf8.RuneCountInString(title) < constants.MinTitleLength {
		return nil, ErrTitleTooShort
	}

	description := strings.TrimSpace(input.Description)
	if utf8.RuneCountInString(description) < constants.MinDescriptionLength {
		return nil, ErrDescriptionTooShort
	}

	tags := normalizeTags(input.Tags)
	if len(tags) == 0 {
		return nil, ErrTagsRequired
	}

	if input.RequiredAssociates < constants.MinRequiredAssociates {
		return nil, ErrInvalidRequiredAssociates
	}

	task := &models.Task{
		Title:              title,
		Description:        description,
		Tags:               tags,
		Status:             models.TaskStatusOpen,
		CreatedBy:          user.ID,
		RequiredAssociates: input.RequiredAssociates,
		Version:            1,
		CreatedAt:          time.Now(),
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID)
}

// AcceptTask adds the associate to the task's team. The moment the team
// reaches the required headcount the task flips to In Progress, never
// earlier, so the capacity invariant is enforced in exactly one place.
func (s *TaskService) AcceptTask(taskID, userID uint64) (*models.Task, error) {
	task, user, err := s.findTaskAndUser(taskID, userID)
	if err != nil {
		return nil, err
	}

	if !authz.CanAccept(task, user) {
		return nil, ErrAcceptNotAllowed
	}

	updated := task.Clone()
	updated.Assignments = append(updated.Assignments, models.TaskAssignment{
		TaskID:   task.ID,
		UserID:   user.ID,
		Position: len(task.Assignments) + 1,
	})
	if len(updated.Assignments) == updated.RequiredAssociates {
		updated.Status = models.TaskStatusInProgress
	}

	if err := s.replace(updated); err != nil {
		return nil, err
	}

	return s.taskRepo.FindByID(task.ID)
}

// CompleteTask marks an in-progress task completed. Completed is terminal:
// completedAt is stamped and the thread becomes read-only.
func (s *TaskService) CompleteTask(taskID, userID uint64) (*models.Task, error) {
	task, user, err := s.findTaskAndUser(taskID, userID)
	if err != nil {
		return nil, err
	}

	if !authz.CanComplete(task, user) {
		return nil, ErrCompleteNotAllowed
	}

	now := time.Now()
	updated := task.Clone()
	updated.Status = models.TaskStatusCompleted
	updated.CompletedAt = &now

	if err := s.replace(updated); err != nil {
		return nil, err
	}

	return s.taskRepo.FindByID(task.ID)
}

// PostMessage appends a message to the task's collaboration thread
func (s *TaskService) PostMessage(taskID, userID uint64, text string) (*models.Task, error) {
	task, user, err := s.findTaskAndUser(taskID, userID)
	if err != nil {
		return nil, err
	}

	if !authz.CanMessage(task, user) {
		return nil, ErrMessageNotAllowed
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}

	updated := task.Clone()
	updated.Messages = append(updated.Messages, models.Message{
		ID:        uuid.NewString(),
		TaskID:    task.ID,
		UserID:    user.ID,
		Text:      trimmed,
		CreatedAt: time.Now(),
	})

	if err := s.replace(updated); err != nil {
		return nil, err
	}

	return s.taskRepo.FindByID(task.ID)
}

// SuggestTags asks the AI collaborator for tags matching a description.
// Best effort only: any failure here leaves the create-task form usable.
func (s *TaskService) SuggestTags(ctx context.Context, description string) ([]string, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	trimmed := strings.TrimSpace(description)
	if utf8.RuneCountInString(trimmed) < constants.MinDescriptionLength {
		return nil, ErrDescriptionTooShort
	}

	suggested, err := s.aiService.SuggestTags(ctx, trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest tags: %w", err)
	}

	tags := normalizeTags(suggested)
	if len(tags) > constants.MaxSuggestedTags {
		tags = tags[:constants.MaxSuggestedTags]
	}

	return tags, nil
}

func (s *TaskService) findTaskAndUser(taskID, userID uint64) (*models.Task, *models.User, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.findUser(userID)
	if err != nil {
		return nil, nil, err
	}

	return task, user, nil
}

func (s *TaskService) findUser(userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *TaskService) replace(task *models.Task) error {
	if err := s.taskRepo.Replace(task); err != nil {
		if errors.Is(err, repository.ErrOptimisticLock) {
			return ErrStaleTask
		}
		return fmt.Errorf("failed to replace task: %w", err)
	}
	return nil
}

// normalizeTags trims each tag, drops empties and removes duplicates while
// preserving the submitted order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))

	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}

	return result
}
