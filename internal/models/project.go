package models

import (
	"time"
)

// Project groups tasks under a single assigned user.
//
// HoursConsumed is derived, not authoritative: it is recomputed as the sum
// of the hours of all tasks in the project after every task write.
type Project struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	Status         Status    `gorm:"type:varchar(20);not null;default:'CREATED'" json:"status"`
	HoursConsumed  int64     `gorm:"not null;default:0" json:"hours_consumed"`
	StartDate      time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate        time.Time `gorm:"type:date;not null" json:"end_date"`
	AssignedUserID uint64    `gorm:"not null" json:"assigned_user_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	AssignedUser User   `gorm:"foreignKey:AssignedUserID" json:"assigned_user,omitempty"`
	Tasks        []Task `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}
