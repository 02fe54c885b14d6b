package models

import (
	"castbook/src/types"
	"time"

	"github.com/shopspring/decimal"
)

type Booking struct {
	ID           uint                `gorm:"primarykey" json:"id"`
	Code         string              `gorm:"uniqueIndex" json:"code,omitempty"`
	Title        string              `json:"title,omitempty"`
	Category     string              `gorm:"default:'general'" json:"category,omitempty"`
	Location     string              `json:"location,omitempty"`
	StartsAt     time.Time           `json:"starts_at,omitempty"`
	EndsAt       time.Time           `json:"ends_at,omitempty"`
	Rate         *decimal.Decimal    `gorm:"type:decimal(10,2)" json:"rate,omitempty"`
	Status       types.BookingStatus `gorm:"default:'inquiry'" json:"status,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	Deliverables string              `json:"deliverables,omitempty"`
	UsageRights  string              `json:"usage_rights,omitempty"`
	CreatedBy    uint                `json:"created_by,omitempty"`
	ClientID     uint                `json:"client_id,omitempty"`

	Client    *User           `gorm:"foreignKey:client_id" json:"client,omitempty"`
	Creator   *User           `gorm:"foreignKey:created_by" json:"-"`
	Talents   []BookingTalent `gorm:"foreignKey:booking_id" json:"talents,omitempty"`
	Contracts []*Contract     `gorm:"foreignKey:booking_id" json:"contracts,omitempty"`

	types.Timestamps
}

// BookingTalent links one candidate talent to a booking. The unique index on
// (booking_id, talent_id) makes request fan-out idempotent under race.
type BookingTalent struct {
	ID              uint                `gorm:"primarykey" json:"id"`
	BookingID       uint                `gorm:"uniqueIndex:idx_booking_talent" json:"booking_id,omitempty"`
	TalentID        uint                `gorm:"uniqueIndex:idx_booking_talent" json:"talent_id,omitempty"`
	RequestStatus   types.RequestStatus `gorm:"default:'pending'" json:"request_status,omitempty"`
	ResponseMessage string              `json:"response_message,omitempty"`

	Booking *Booking `gorm:"foreignKey:booking_id" json:"booking,omitempty"`
	Talent  *User    `gorm:"foreignKey:talent_id" json:"talent,omitempty"`

	types.Timestamps
}
