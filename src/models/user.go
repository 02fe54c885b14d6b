package models

import (
	"castbook/src/types"
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID               uint            `gorm:"primarykey" json:"id"`
	Name             string          `json:"name,omitempty"`
	Email            string          `gorm:"uniqueIndex" json:"email,omitempty"`
	Role             string          `gorm:"default:'client'" json:"role,omitempty"`
	PasswordHash     string          `json:"-"`
	StripeCustomerId *string         `json:"-"`
	LastActive       *time.Time      `json:"last_active,omitempty"`
	Metadata         *types.Metadata `gorm:"type:jsonb" json:"-"`

	TalentProfile *TalentProfile  `gorm:"foreignKey:user_id" json:"talent_profile,omitempty"`
	Requests      []BookingTalent `gorm:"foreignKey:talent_id" json:"requests,omitempty"`
	Bookings      []Booking       `gorm:"foreignKey:client_id" json:"bookings,omitempty"`

	types.Timestamps
}

type TalentProfile struct {
	ID        uint             `gorm:"primarykey" json:"id"`
	UserID    uint             `gorm:"uniqueIndex" json:"user_id,omitempty"`
	StageName string           `json:"stage_name,omitempty"`
	Category  string           `gorm:"default:'general'" json:"category,omitempty"`
	Bio       string           `json:"bio,omitempty"`
	DayRate   *decimal.Decimal `gorm:"type:decimal(10,2)" json:"day_rate,omitempty"`
	Location  string           `json:"location,omitempty"`
	MediaKeys types.JSONBArray `gorm:"type:jsonb" json:"media_keys,omitempty"`

	User User `gorm:"foreignKey:user_id" json:"-"`

	types.Timestamps
}
