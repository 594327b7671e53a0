package models

import "time"

// Message is one entry in a task's collaboration thread.
// Messages are append-only and immutable once written.
type Message struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	TaskID    uint64    `gorm:"index;not null" json:"task_id"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
