package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyMetric is a precomputed per-day business summary. The API only reads
// it; rows are produced by the rollup command.
type DailyMetric struct {
	ID              int64           `json:"id" gorm:"primaryKey"`
	Date            time.Time       `json:"date" gorm:"uniqueIndex;not null"`
	JobsCreated     int             `json:"jobs_created" gorm:"not null;default:0"`
	JobsCompleted   int             `json:"jobs_completed" gorm:"not null;default:0"`
	Revenue         decimal.Decimal `json:"revenue" gorm:"type:decimal(14,2);not null;default:0"`
	NewLeads        int             `json:"new_leads" gorm:"not null;default:0"`
	LeadsWon        int             `json:"leads_won" gorm:"not null;default:0"`
	ServiceRequests int             `json:"service_requests" gorm:"not null;default:0"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (DailyMetric) TableName() string { return "daily_metrics" }

// Models lists every persisted entity in migration order.
func Models() []any {
	return []any{
		&User{},
		&TechProfile{},
		&Property{},
		&Unit{},
		&Membership{},
		&Invoice{},
		&Job{},
		&JobSequence{},
		&Lead{},
		&ServiceRequest{},
		&DailyMetric{},
	}
}
