package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hvacops/internal/database"
	"hvacops/internal/domain"
	"hvacops/internal/pkg/apperr"
)

type LeadFilter struct {
	Status *domain.LeadStatus
	Source *domain.LeadSource
	Limit  int
}

type LeadRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewLeadRepository(db *gorm.DB, timeout time.Duration) *LeadRepository {
	return &LeadRepository{db: db, timeout: timeout}
}

func (r *LeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(lead).Error; err != nil {
		return apperr.Persistence("create lead", err)
	}
	return nil
}

func (r *LeadRepository) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var lead domain.Lead
	if err := r.db.WithContext(ctx).Preload("Customer").First(&lead, id).Error; err != nil {
		return nil, notFoundOr(err, "lead", id, "get lead")
	}
	return &lead, nil
}

func (r *LeadRepository) List(ctx context.Context, f LeadFilter) ([]domain.Lead, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	q := r.db.WithContext(ctx).Model(&domain.Lead{}).Preload("Customer")
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Source != nil {
		q = q.Where("source = ?", *f.Source)
	}

	var leads []domain.Lead
	if err := q.Order("created_at DESC").Order("id DESC").Limit(f.Limit).Find(&leads).Error; err != nil {
		return nil, apperr.Persistence("list leads", err)
	}
	return leads, nil
}

func (r *LeadRepository) CountByStatus(ctx context.Context) (map[domain.LeadStatus]int64, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var rows []struct {
		Status domain.LeadStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Lead{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Persistence("count leads", err)
	}

	out := make(map[domain.LeadStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}
