package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Property struct {
	ID         int64        `json:"id" gorm:"primaryKey"`
	CustomerID int64        `json:"customer_id" gorm:"not null;index"`
	Customer   *User        `json:"-" gorm:"foreignKey:CustomerID"`
	Name       string       `json:"name"`
	Street     string       `json:"street" gorm:"not null"`
	City       string       `json:"city" gorm:"not null"`
	State      string       `json:"state"`
	Zip        string       `json:"zip"`
	Type       PropertyType `json:"type" gorm:"type:varchar(16);not null;default:'RESIDENTIAL'"`
	Units      []Unit       `json:"units,omitempty" gorm:"foreignKey:PropertyID"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (Property) TableName() string { return "properties" }

// Unit is a piece of equipment installed at a property.
type Unit struct {
	ID            int64      `json:"id" gorm:"primaryKey"`
	PropertyID    int64      `json:"property_id" gorm:"not null;index"`
	EquipmentType string     `json:"equipment_type" gorm:"not null"`
	Brand         string     `json:"brand,omitempty"`
	Model         string     `json:"model,omitempty"`
	SerialNumber  string     `json:"serial_number,omitempty"`
	InstalledAt   *time.Time `json:"installed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Unit) TableName() string { return "units" }

type Membership struct {
	ID         int64            `json:"id" gorm:"primaryKey"`
	CustomerID int64            `json:"customer_id" gorm:"not null;index"`
	Plan       string           `json:"plan" gorm:"not null"`
	Status     MembershipStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	StartDate  time.Time        `json:"start_date"`
	EndDate    *time.Time       `json:"end_date,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (Membership) TableName() string { return "memberships" }

type Invoice struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	CustomerID    int64           `json:"customer_id" gorm:"not null;index"`
	JobID         *int64          `json:"job_id,omitempty" gorm:"index"`
	InvoiceNumber string          `json:"invoice_number" gorm:"uniqueIndex;not null"`
	Total         decimal.Decimal `json:"total" gorm:"type:decimal(12,3);not null;default:0"`
	Status        InvoiceStatus   `json:"status" gorm:"type:varchar(16);not null;index"`
	IssuedAt      time.Time       `json:"issued_at"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }
