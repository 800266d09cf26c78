package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	Name         string    `json:"name" gorm:"not null;index"`
	Phone        string    `json:"phone,omitempty"`
	Role         Role      `json:"role" gorm:"type:varchar(16);not null;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Customer side
	Properties  []Property   `json:"properties,omitempty" gorm:"foreignKey:CustomerID"`
	Memberships []Membership `json:"memberships,omitempty" gorm:"foreignKey:CustomerID"`
	Invoices    []Invoice    `json:"invoices,omitempty" gorm:"foreignKey:CustomerID"`

	// Technician side
	TechProfile *TechProfile `json:"tech_profile,omitempty" gorm:"foreignKey:UserID"`
}

func (User) TableName() string { return "users" }

func (u *User) IsStaff() bool {
	return u.Role == RoleOwner || u.Role == RoleTechnician
}

// TechProfile counters are maintained outside the request path and are read
// as-is.
type TechProfile struct {
	ID               int64           `json:"id" gorm:"primaryKey"`
	UserID           int64           `json:"user_id" gorm:"uniqueIndex;not null"`
	Skills           []string        `json:"skills" gorm:"type:text;serializer:json"`
	IsAvailable      bool            `json:"is_available" gorm:"not null;default:true;index"`
	Location         string          `json:"location,omitempty"`
	JobsCompleted    int             `json:"jobs_completed" gorm:"not null;default:0"`
	RevenueGenerated decimal.Decimal `json:"revenue_generated" gorm:"type:decimal(14,2);not null;default:0"`
	AverageRating    float64         `json:"average_rating" gorm:"not null;default:0"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (TechProfile) TableName() string { return "tech_profiles" }
