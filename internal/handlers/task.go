package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskbridge/task-marketplace-api/internal/constants"
	"github.com/taskbridge/task-marketplace-api/internal/dto"
	apierrors "github.com/taskbridge/task-marketplace-api/internal/errors"
	"github.com/taskbridge/task-marketplace-api/internal/middleware"
	"github.com/taskbridge/task-marketplace-api/internal/models"
	"github.com/taskbridge/task-marketplace-api/internal/services"
	"github.com/taskbridge/task-marketplace-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns tasks matching the requested projection: the associate
// board ("available"), a user's team tasks ("assigned_to_me"), a poster's
// own tasks ("created_by_me"), or a plain status filter.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	input := services.ListTasksInput{
		UserID:       userID,
		Available:    c.Query("available") == "true",
		CreatedByMe:  c.Query("created_by_me") == "true",
		AssignedToMe: c.Query("assigned_to_me") == "true",
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.TaskStatus(statusStr)
		switch status {
		case models.TaskStatusOpen, models.TaskStatusInProgress, models.TaskStatusCompleted:
			input.Status = &status
		default:
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
	}

	params := utils.GetPaginationParams(c)
	input.Page = params.Page
	input.PageSize = params.Limit

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// GetTask returns the task detail with team and message thread.
// The task is already loaded and authorized by RequireTaskView.
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskInterface, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	task, ok := taskInterface.(models.Task)
	if !ok {
		apierrors.InternalError(c, "Invalid task data")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// CreateTask posts a new task for associates to pick up.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title              string   `json:"title" binding:"required"`
		Description        string   `json:"description" binding:"required"`
		Tags               []string `json:"tags"`
		RequiredAssociates int      `json:"required_associates"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:              req.Title,
		Description:        req.Description,
		Tags:               req.Tags,
		RequiredAssociates: req.RequiredAssociates,
		CreatorID:          userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// AcceptTask adds the current associate to the task's team.
func (h *TaskHandler) AcceptTask(c *gin.Context) {
	taskID, userID, ok := taskAndUserIDs(c)
	if !ok {
		return
	}

	task, err := h.taskService.AcceptTask(taskID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CompleteTask marks an in-progress task completed.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	taskID, userID, ok := taskAndUserIDs(c)
	if !ok {
		return
	}

	task, err := h.taskService.CompleteTask(taskID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// PostMessage appends a message to the task's collaboration thread.
func (h *TaskHandler) PostMessage(c *gin.Context) {
	taskID, userID, ok := taskAndUserIDs(c)
	if !ok {
		return
	}

	type PostMessageRequest struct {
		Text string `json:"text"`
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.PostMessage(taskID, userID, req.Text)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// SuggestTags asks the AI collaborator for tags matching a description.
// A failure only means the create-task form gets no suggestions.
func (h *TaskHandler) SuggestTags(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type SuggestTagsRequest struct {
		Description string `json:"description" binding:"required"`
	}

	var req SuggestTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	tags, err := h.taskService.SuggestTags(c.Request.Context(), req.Description)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// taskAndUserIDs pulls the task ID from the path and the user ID from the
// context, responding itself when either is missing.
func taskAndUserIDs(c *gin.Context) (uint64, uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, 0, false
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return 0, 0, false
	}

	return taskID, userID, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAcceptNotAllowed),
		errors.Is(err, services.ErrCompleteNotAllowed),
		errors.Is(err, services.ErrMessageNotAllowed),
		errors.Is(err, services.ErrNotTaskPoster):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrTitleTooShort),
		errors.Is(err, services.ErrDescriptionTooShort),
		errors.Is(err, services.ErrTagsRequired),
		errors.Is(err, services.ErrInvalidRequiredAssociates):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrStaleTask):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
	default:
		apierrors.InternalError(c, "")
	}
}
