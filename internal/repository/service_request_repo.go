package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hvacops/internal/database"
	"hvacops/internal/domain"
	"hvacops/internal/pkg/apperr"
)

type ServiceRequestRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewServiceRequestRepository(db *gorm.DB, timeout time.Duration) *ServiceRequestRepository {
	return &ServiceRequestRepository{db: db, timeout: timeout}
}

// CreateWithLead persists the submission and its derived lead in one
// transaction. Either both rows commit or neither does, including when ctx
// is cancelled mid-way.
func (r *ServiceRequestRepository) CreateWithLead(ctx context.Context, req *domain.ServiceRequest, lead *domain.Lead) error {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(req).Error; err != nil {
			return fmt.Errorf("insert service request: %w", err)
		}
		if err := tx.Omit(clause.Associations).Create(lead).Error; err != nil {
			return fmt.Errorf("insert lead: %w", err)
		}
		return nil
	})
	if err != nil {
		req.ID = 0
		lead.ID = 0
		return apperr.Persistence("submit service request", err)
	}
	return nil
}

func (r *ServiceRequestRepository) ListRecent(ctx context.Context, limit int) ([]domain.ServiceRequest, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var out []domain.ServiceRequest
	err := r.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, apperr.Persistence("list service requests", err)
	}
	return out, nil
}
