package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any
type JSONBArray []any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

func (a JSONBArray) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONBArray) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type Metadata map[string]any

type Role string

const (
	ROLE_ADMIN  Role = "admin"
	ROLE_TALENT Role = "talent"
	ROLE_CLIENT Role = "client"
)

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type UUIDRequestParams struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type PageQueryParams struct {
	Page    int `form:"page,default=1" binding:"omitempty,min=1"`
	PerPage int `form:"per_page,default=20" binding:"omitempty,min=1,max=100"`
}

func (p PageQueryParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

type RegisterUserRequestBody struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role,omitempty" binding:"omitempty,oneof=admin talent client"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateBookingRequestBody struct {
	Title        string  `json:"title" binding:"required"`
	Category     string  `json:"category,omitempty" binding:"omitempty,oneof=modeling acting commercial event general"`
	Location     string  `json:"location,omitempty"`
	StartsAt     string  `json:"starts_at" binding:"required,bookabledate" time_format:"2006-01-02 15:04:05 -07:00"`
	EndsAt       string  `json:"ends_at" binding:"required,bookabledate,gtdate=StartsAt" time_format:"2006-01-02 15:04:05 -07:00"`
	Rate         *string `json:"rate,omitempty"`
	ClientID     uint    `json:"client_id,omitempty"`
	Notes        string  `json:"notes,omitempty"`
	Deliverables string  `json:"deliverables,omitempty"`
	UsageRights  string  `json:"usage_rights,omitempty"`
}

type UpdateBookingRequestBody struct {
	Title        *string `json:"title,omitempty"`
	Location     *string `json:"location,omitempty"`
	StartsAt     *string `json:"starts_at,omitempty" binding:"omitempty,bookabledate"`
	EndsAt       *string `json:"ends_at,omitempty" binding:"omitempty,bookabledate"`
	Rate         *string `json:"rate,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	Deliverables *string `json:"deliverables,omitempty"`
	UsageRights  *string `json:"usage_rights,omitempty"`
	Status       *string `json:"status,omitempty" binding:"omitempty,oneof=inquiry proposed contract_sent signed invoiced paid completed cancelled"`
}

type SendRequestsRequestBody struct {
	TalentIDs []uint `json:"talent_ids" binding:"required,min=1"`
}

type RespondToRequestBody struct {
	Status  string `json:"status" binding:"required,oneof=accepted declined"`
	Message string `json:"message,omitempty"`
}

type CreateContractRequestBody struct {
	BookingID       uint    `json:"booking_id" binding:"required"`
	BookingTalentID uint    `json:"booking_talent_id" binding:"required"`
	Title           string  `json:"title,omitempty"`
	DueDate         *string `json:"due_date,omitempty" binding:"omitempty,bookabledate" time_format:"2006-01-02 15:04:05 -07:00"`
}

type SignContractRequestBody struct {
	SignatureImageURL string `json:"signature_image_url" binding:"required,url"`
}

type CreateTaskRequestBody struct {
	Scope       string  `json:"scope,omitempty" binding:"omitempty,oneof=general booking talent"`
	BookingID   *uint   `json:"booking_id,omitempty"`
	TalentID    *uint   `json:"talent_id,omitempty"`
	AssigneeID  *uint   `json:"assignee_id,omitempty"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description,omitempty"`
	Priority    string  `json:"priority,omitempty" binding:"omitempty,oneof=low medium high"`
	DueAt       *string `json:"due_at,omitempty" binding:"omitempty,bookabledate" time_format:"2006-01-02 15:04:05 -07:00"`
}

type UpdateTaskRequestBody struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty" binding:"omitempty,oneof=todo in_progress blocked done"`
	Priority    *string `json:"priority,omitempty" binding:"omitempty,oneof=low medium high"`
	AssigneeID  *uint   `json:"assignee_id,omitempty"`
	DueAt       *string `json:"due_at,omitempty" binding:"omitempty,bookabledate" time_format:"2006-01-02 15:04:05 -07:00"`
}

type UpsertTalentProfileRequestBody struct {
	StageName string  `json:"stage_name,omitempty"`
	Category  string  `json:"category,omitempty" binding:"omitempty,oneof=modeling acting commercial event general"`
	Bio       string  `json:"bio,omitempty"`
	DayRate   *string `json:"day_rate,omitempty"`
	Location  string  `json:"location,omitempty"`
}

type BookingQueryFilters struct {
	PageQueryParams
	Status   string `form:"status" binding:"omitempty,oneof=inquiry proposed contract_sent signed invoiced paid completed cancelled"`
	Category string `form:"category" binding:"omitempty,oneof=modeling acting commercial event general"`
	ClientID uint   `form:"client_id" binding:"omitempty"`
}

type TaskQueryFilters struct {
	PageQueryParams
	Scope      string `form:"scope" binding:"omitempty,oneof=general booking talent"`
	Status     string `form:"status" binding:"omitempty,oneof=todo in_progress blocked done"`
	AssigneeID uint   `form:"assignee_id" binding:"omitempty"`
	BookingID  uint   `form:"booking_id" binding:"omitempty"`
}

type TalentQueryFilters struct {
	PageQueryParams
	Category string `form:"category" binding:"omitempty,oneof=modeling acting commercial event general"`
}

type ContractQueryFilters struct {
	PageQueryParams
	BookingID uint   `form:"booking_id" binding:"omitempty"`
	Status    string `form:"status" binding:"omitempty,oneof=draft sent signed"`
}
