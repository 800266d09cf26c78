package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hvacops/internal/database"
	"hvacops/internal/domain"
	"hvacops/internal/pkg/apperr"
)

type MetricRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewMetricRepository(db *gorm.DB, timeout time.Duration) *MetricRepository {
	return &MetricRepository{db: db, timeout: timeout}
}

// Since returns rows dated at or after cutoff in ascending date order.
// Missing days stay missing.
func (r *MetricRepository) Since(ctx context.Context, cutoff time.Time) ([]domain.DailyMetric, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var rows []domain.DailyMetric
	err := r.db.WithContext(ctx).
		Where("date >= ?", cutoff.UTC()).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Persistence("list daily metrics", err)
	}
	return rows, nil
}

// Upsert writes one row per date, replacing the counters of an existing row.
func (r *MetricRepository) Upsert(ctx context.Context, m *domain.DailyMetric) error {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	m.Date = m.Date.UTC()
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"jobs_created", "jobs_completed", "revenue",
				"new_leads", "leads_won", "service_requests", "updated_at",
			}),
		}).
		Create(m).Error
	if err != nil {
		return apperr.Persistence("upsert daily metric", err)
	}
	return nil
}

// Compute derives the counters for the half-open interval [start, end) from
// the operational tables.
func (r *MetricRepository) Compute(ctx context.Context, start, end time.Time) (*domain.DailyMetric, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	start, end = start.UTC(), end.UTC()
	db := r.db.WithContext(ctx)
	m := &domain.DailyMetric{Date: start}

	counts := []struct {
		model any
		where string
		args  []any
		dst   *int
	}{
		{&domain.Job{}, "created_at >= ? AND created_at < ?", nil, &m.JobsCreated},
		{&domain.Job{}, "completed_at >= ? AND completed_at < ?", nil, &m.JobsCompleted},
		{&domain.Lead{}, "created_at >= ? AND created_at < ?", nil, &m.NewLeads},
		{&domain.Lead{}, "status = ? AND updated_at >= ? AND updated_at < ?", []any{domain.LeadWon}, &m.LeadsWon},
		{&domain.ServiceRequest{}, "created_at >= ? AND created_at < ?", nil, &m.ServiceRequests},
	}
	for _, c := range counts {
		var n int64
		args := append(append([]any{}, c.args...), start, end)
		if err := db.Model(c.model).Where(c.where, args...).Count(&n).Error; err != nil {
			return nil, apperr.Persistence("compute daily metric", err)
		}
		*c.dst = int(n)
	}

	var totals []decimal.Decimal
	err := db.Model(&domain.Invoice{}).
		Where("status = ? AND paid_at >= ? AND paid_at < ?", domain.InvoicePaid, start, end).
		Pluck("total", &totals).Error
	if err != nil {
		return nil, apperr.Persistence("compute daily revenue", fmt.Errorf("sum invoices: %w", err))
	}
	m.Revenue = decimal.Sum(decimal.Zero, totals...).Round(2)

	return m, nil
}
