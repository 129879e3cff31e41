package models

import (
	"time"
)

// Task belongs to exactly one project. AssignedUserID may be nil.
//
// CompletedAt and HoursConsumed are written once, on the first transition
// into COMPLETED, and are never cleared by later status changes.
type Task struct {
	ID             uint64     `gorm:"primarykey" json:"id"`
	ProjectID      uint64     `gorm:"not null" json:"project_id"`
	Name           string     `gorm:"type:varchar(255);not null" json:"name"`
	Description    string     `gorm:"type:text" json:"description"`
	Status         Status     `gorm:"type:varchar(20);not null;default:'CREATED'" json:"status"`
	HoursConsumed  int64      `gorm:"not null;default:0" json:"hours_consumed"`
	AssignedUserID *uint64    `json:"assigned_user_id"`
	StartDate      time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate        time.Time  `gorm:"type:date;not null" json:"end_date"`
	CompletedAt    *time.Time `json:"completed_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	Project      Project `gorm:"foreignKey:ProjectID" json:"-"`
	AssignedUser *User   `gorm:"foreignKey:AssignedUserID" json:"assigned_user,omitempty"`
}
