package models

import "time"

type UserRole string

const (
	RoleJPT       UserRole = "JPT"
	RoleAssociate UserRole = "Associate"
)

type User struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Role      UserRole  `gorm:"type:varchar(20);not null" json:"role"`
	Avatar    string    `gorm:"type:varchar(255)" json:"avatar"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	CreatedTasks []Task           `gorm:"foreignKey:CreatedBy" json:"-"`
	Assignments  []TaskAssignment `gorm:"foreignKey:UserID" json:"-"`
}
