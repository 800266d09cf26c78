package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Lead struct {
	ID             int64               `json:"id" gorm:"primaryKey"`
	Name           string              `json:"name" gorm:"not null"`
	Email          string              `json:"email,omitempty" gorm:"index"`
	Phone          string              `json:"phone" gorm:"not null"`
	Address        string              `json:"address,omitempty"`
	ServiceNeeded  string              `json:"service_needed" gorm:"not null"`
	Description    string              `json:"description,omitempty" gorm:"type:text"`
	Status         LeadStatus          `json:"status" gorm:"type:varchar(16);not null;index"`
	Source         LeadSource          `json:"source" gorm:"type:varchar(24);not null;default:'WEBSITE'"`
	Urgency        *int                `json:"urgency"`
	EstimatedValue decimal.NullDecimal `json:"estimated_value" gorm:"type:decimal(12,2)"`
	CustomerID     *int64              `json:"customer_id,omitempty" gorm:"index"`
	Customer       *User               `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	CreatedAt      time.Time           `json:"created_at" gorm:"index"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func (Lead) TableName() string { return "leads" }

const ServiceRequestStatusNew = "new"

// ServiceRequest is the raw public contact-form submission. After creation
// it has no lifecycle link to the Lead derived from it.
type ServiceRequest struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	Reference     uuid.UUID `json:"reference" gorm:"type:uuid;uniqueIndex;not null"`
	Name          string    `json:"name" gorm:"not null"`
	Email         string    `json:"email" gorm:"not null"`
	Phone         string    `json:"phone" gorm:"not null"`
	Address       string    `json:"address,omitempty"`
	ServiceType   string    `json:"service_type" gorm:"not null"`
	Description   string    `json:"description" gorm:"type:text;not null"`
	Urgency       string    `json:"urgency" gorm:"size:16;not null;default:'normal'"`
	PreferredDate string    `json:"preferred_date,omitempty" gorm:"size:32"`
	PreferredTime string    `json:"preferred_time,omitempty" gorm:"size:32"`
	Status        string    `json:"status" gorm:"size:16;not null;default:'new'"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (ServiceRequest) TableName() string { return "service_requests" }

func (r *ServiceRequest) BeforeCreate(_ *gorm.DB) error {
	if r.Reference == uuid.Nil {
		r.Reference = uuid.New()
	}
	return nil
}
