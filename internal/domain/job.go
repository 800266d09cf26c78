package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Job struct {
	ID             int64               `json:"id" gorm:"primaryKey"`
	JobNumber      string              `json:"job_number" gorm:"uniqueIndex;not null;size:32"`
	Title          string              `json:"title" gorm:"not null"`
	Description    string              `json:"description" gorm:"type:text;not null"`
	JobType        JobType             `json:"job_type" gorm:"type:varchar(16);not null;index"`
	Priority       Priority            `json:"priority" gorm:"type:varchar(16);not null;default:'NORMAL'"`
	Status         JobStatus           `json:"status" gorm:"type:varchar(16);not null;index"`
	CustomerID     int64               `json:"customer_id" gorm:"not null;index"`
	PropertyID     int64               `json:"property_id" gorm:"not null;index"`
	UnitID         *int64              `json:"unit_id,omitempty" gorm:"index"`
	TechnicianID   *int64              `json:"technician_id,omitempty" gorm:"index"`
	ScheduledDate  *time.Time          `json:"scheduled_date,omitempty"`
	ScheduledStart *string             `json:"scheduled_start,omitempty" gorm:"size:8"`
	ScheduledEnd   *string             `json:"scheduled_end,omitempty" gorm:"size:8"`
	EstimatedCost  decimal.NullDecimal `json:"estimated_cost" gorm:"type:decimal(12,2)"`
	CompletedAt    *time.Time          `json:"completed_at,omitempty"`
	Notes          string              `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt      time.Time           `json:"created_at" gorm:"index"`
	UpdatedAt      time.Time           `json:"updated_at"`

	Customer   *User     `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Technician *User     `json:"technician,omitempty" gorm:"foreignKey:TechnicianID"`
	Property   *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Unit       *Unit     `json:"unit,omitempty" gorm:"foreignKey:UnitID"`
}

func (Job) TableName() string { return "jobs" }

// DeriveJobStatus is evaluated once at creation: a job is SCHEDULED only when
// both a technician and a date are supplied.
func DeriveJobStatus(technicianID *int64, scheduledDate *time.Time) JobStatus {
	if technicianID != nil && scheduledDate != nil {
		return JobScheduled
	}
	return JobPending
}

// JobSequence holds the last issued job number suffix per job number prefix.
type JobSequence struct {
	Prefix    string    `gorm:"primaryKey;size:64"`
	LastValue int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (JobSequence) TableName() string { return "job_sequences" }

// JobNumberPrefix is "<company code>-<year>-".
func JobNumberPrefix(companyCode string, year int) string {
	return fmt.Sprintf("%s-%d-", companyCode, year)
}

// FormatJobNumber pads the sequence to at least three digits.
func FormatJobNumber(prefix string, seq int) string {
	return fmt.Sprintf("%s%03d", prefix, seq)
}

// JobNumberSequence extracts the numeric suffix after prefix. Numbers with a
// different prefix or an unparsable suffix count as 0.
func JobNumberSequence(jobNumber, prefix string) int {
	if !strings.HasPrefix(jobNumber, prefix) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(jobNumber, prefix))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
