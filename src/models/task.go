package models

import (
	"castbook/src/types"
	"time"
)

// Task scope determines which of BookingID/TalentID is expected to be set.
// The linkage is a weak reference, not an ownership cascade.
type Task struct {
	ID          uint             `gorm:"primarykey" json:"id"`
	Scope       string           `gorm:"default:'general'" json:"scope,omitempty"`
	BookingID   *uint            `json:"booking_id,omitempty"`
	TalentID    *uint            `json:"talent_id,omitempty"`
	AssigneeID  *uint            `json:"assignee_id,omitempty"`
	Title       string           `json:"title,omitempty"`
	Description string           `json:"description,omitempty"`
	Status      types.TaskStatus `gorm:"default:'todo'" json:"status,omitempty"`
	Priority    string           `gorm:"default:'medium'" json:"priority,omitempty"`
	DueAt       *time.Time       `json:"due_at,omitempty"`
	CreatedBy   uint             `json:"created_by,omitempty"`

	Booking  *Booking `gorm:"foreignKey:booking_id" json:"booking,omitempty"`
	Assignee *User    `gorm:"foreignKey:assignee_id" json:"assignee,omitempty"`

	types.Timestamps
}
