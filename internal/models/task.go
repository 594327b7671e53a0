package models

import "time"

type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "Open"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

type Task struct {
	ID                 uint64     `gorm:"primarykey" json:"id"`
	Title              string     `gorm:"not null" json:"title"`
	Description        string     `gorm:"type:text" json:"description"`
	Tags               []string   `gorm:"serializer:json" json:"tags"`
	Status             TaskStatus `gorm:"type:varchar(20);not null;default:'Open'" json:"status"`
	CreatedBy          uint64     `gorm:"not null" json:"created_by"`
	RequiredAssociates int        `gorm:"not null;default:1" json:"required_associates"`
	Version            uint       `gorm:"not null;default:1" json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
	CompletedAt        *time.Time `json:"completed_at"`

	// Relations
	Creator     User             `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
	Messages    []Message        `gorm:"foreignKey:TaskID" json:"messages,omitempty"`
}

// IsAssignedTo reports whether the user is on the task's team.
// Assignments must be preloaded.
func (t *Task) IsAssignedTo(userID uint64) bool {
	for _, a := range t.Assignments {
		if a.UserID == userID {
			return true
		}
	}
	return false
}

// AssignedUserIDs returns the team's user IDs in acceptance order.
// Assignments must be preloaded.
func (t *Task) AssignedUserIDs() []uint64 {
	ids := make([]uint64, len(t.Assignments))
	for i, a := range t.Assignments {
		ids[i] = a.UserID
	}
	return ids
}

// IsFull reports whether the team has reached the required headcount.
func (t *Task) IsFull() bool {
	return len(t.Assignments) >= t.RequiredAssociates
}

// Clone returns a copy of the task whose slices are safe to mutate,
// so a transition can build a full replacement value without touching
// the record other readers hold.
func (t *Task) Clone() *Task {
	clone := *t
	clone.Tags = append([]string(nil), t.Tags...)
	clone.Assignments = append([]TaskAssignment(nil), t.Assignments...)
	clone.Messages = append([]Message(nil), t.Messages...)
	return &clone
}
