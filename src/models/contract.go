package models

import (
	"castbook/src/types"
	"time"

	"github.com/google/uuid"
)

type Contract struct {
	ID              uuid.UUID            `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	BookingID       uint                 `json:"booking_id,omitempty"`
	BookingTalentID uint                 `json:"booking_talent_id,omitempty"`
	Title           string               `json:"title,omitempty"`
	Content         string               `gorm:"type:text" json:"content,omitempty"`
	PdfKey          string               `json:"-"`
	PdfURL          string               `json:"pdf_url,omitempty"`
	Status          types.ContractStatus `gorm:"default:'draft'" json:"status,omitempty"`
	DueDate         *time.Time           `json:"due_date,omitempty"`
	CreatedBy       uint                 `json:"created_by,omitempty"`

	Booking       *Booking       `gorm:"foreignKey:booking_id" json:"booking,omitempty"`
	BookingTalent *BookingTalent `gorm:"foreignKey:booking_talent_id" json:"booking_talent,omitempty"`
	Signatures    []Signature    `gorm:"foreignKey:contract_id" json:"signatures,omitempty"`

	types.Timestamps
}

// Signature flips pending -> signed exactly once, capturing provenance at
// that moment. It never reverts.
type Signature struct {
	ID                uuid.UUID             `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	ContractID        uuid.UUID             `gorm:"type:uuid;uniqueIndex:idx_contract_signer" json:"contract_id,omitempty"`
	SignerID          uint                  `gorm:"uniqueIndex:idx_contract_signer" json:"signer_id,omitempty"`
	SignatureImageURL string                `json:"signature_image_url,omitempty"`
	IPAddress         string                `json:"ip_address,omitempty"`
	UserAgent         string                `json:"user_agent,omitempty"`
	Status            types.SignatureStatus `gorm:"default:'pending'" json:"status,omitempty"`
	SignedAt          *time.Time            `json:"signed_at,omitempty"`

	Contract *Contract `gorm:"foreignKey:contract_id" json:"-"`
	Signer   *User     `gorm:"foreignKey:signer_id" json:"signer,omitempty"`

	types.Timestamps
}
