package dto

import (
	"time"

	"github.com/taskbridge/task-marketplace-api/internal/models"
)

// MessageDTO represents one thread entry in API responses
type MessageDTO struct {
	ID        string    `json:"id"`
	UserID    uint64    `json:"user_id"`
	User      *UserDTO  `json:"user,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskDTO represents a full task detail in API responses
type TaskDTO struct {
	ID                 uint64            `json:"id"`
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	Tags               []string          `json:"tags"`
	Status             models.TaskStatus `json:"status"`
	CreatedBy          uint64            `json:"created_by"`
	Creator            *UserDTO          `json:"creator,omitempty"`
	RequiredAssociates int               `json:"required_associates"`
	AssignedTo         []uint64          `json:"assigned_to"`
	Team               []UserDTO         `json:"team,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	CompletedAt        *time.Time        `json:"completed_at,omitempty"`
	Messages           []MessageDTO      `json:"messages"`
}

// TaskListItemDTO represents a task in list responses (no thread)
type TaskListItemDTO struct {
	ID                 uint64            `json:"id"`
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	Tags               []string          `json:"tags"`
	Status             models.TaskStatus `json:"status"`
	CreatedBy          uint64            `json:"created_by"`
	Creator            *UserDTO          `json:"creator,omitempty"`
	RequiredAssociates int               `json:"required_associates"`
	AssignedTo         []uint64          `json:"assigned_to"`
	Team               []UserDTO         `json:"team,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskListItemDTO `json:"tasks"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int64             `json:"total_count"`
	TotalPages int               `json:"total_pages"`
}

// Conversion functions

// ToMessageDTO converts a Message model to MessageDTO
func ToMessageDTO(message models.Message) MessageDTO {
	dto := MessageDTO{
		ID:        message.ID,
		UserID:    message.UserID,
		Text:      message.Text,
		CreatedAt: message.CreatedAt,
	}

	if message.User.ID != 0 {
		user := ToUserDTO(message.User)
		dto.User = &user
	}

	return dto
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:                 task.ID,
		Title:              task.Title,
		Description:        task.Description,
		Tags:               task.Tags,
		Status:             task.Status,
		CreatedBy:          task.CreatedBy,
		RequiredAssociates: task.RequiredAssociates,
		AssignedTo:         task.AssignedUserIDs(),
		CreatedAt:          task.CreatedAt,
		CompletedAt:        task.CompletedAt,
		Messages:           make([]MessageDTO, 0, len(task.Messages)),
	}

	if task.Creator.ID != 0 {
		creator := ToUserDTO(task.Creator)
		dto.Creator = &creator
	}

	for _, assignment := range task.Assignments {
		if assignment.User.ID != 0 {
			dto.Team = append(dto.Team, ToUserDTO(assignment.User))
		}
	}

	for _, message := range task.Messages {
		dto.Messages = append(dto.Messages, ToMessageDTO(message))
	}

	return dto
}

// ToTaskListItemDTO converts a Task model to TaskListItemDTO
func ToTaskListItemDTO(task models.Task) TaskListItemDTO {
	dto := TaskListItemDTO{
		ID:                 task.ID,
		Title:              task.Title,
		Description:        task.Description,
		Tags:               task.Tags,
		Status:             task.Status,
		CreatedBy:          task.CreatedBy,
		RequiredAssociates: task.RequiredAssociates,
		AssignedTo:         task.AssignedUserIDs(),
		CreatedAt:          task.CreatedAt,
	}

	if task.Creator.ID != 0 {
		creator := ToUserDTO(task.Creator)
		dto.Creator = &creator
	}

	for _, assignment := range task.Assignments {
		if assignment.User.ID != 0 {
			dto.Team = append(dto.Team, ToUserDTO(assignment.User))
		}
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, totalCount int64) TaskListResponse {
	items := make([]TaskListItemDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskListItemDTO(task)
	}

	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
