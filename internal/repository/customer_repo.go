package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hvacops/internal/database"
	"hvacops/internal/domain"
	"hvacops/internal/pkg/apperr"
)

type CustomerRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewCustomerRepository(db *gorm.DB, timeout time.Duration) *CustomerRepository {
	return &CustomerRepository{db: db, timeout: timeout}
}

// List returns customers ordered by name with their properties, ACTIVE
// memberships and PAID invoices attached. Other memberships and invoices
// are never loaded.
func (r *CustomerRepository) List(ctx context.Context, limit int) ([]domain.User, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var customers []domain.User
	err := r.db.WithContext(ctx).
		Where("role = ?", domain.RoleCustomer).
		Preload("Properties", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Memberships", "status = ?", domain.MembershipActive).
		Preload("Invoices", "status = ?", domain.InvoicePaid).
		Order("name ASC").Order("id ASC").
		Limit(limit).
		Find(&customers).Error
	if err != nil {
		return nil, apperr.Persistence("list customers", err)
	}
	return customers, nil
}

func (r *CustomerRepository) GetProperty(ctx context.Context, id int64) (*domain.Property, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var p domain.Property
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFoundOr(err, "property", id, "get property")
	}
	return &p, nil
}

func (r *CustomerRepository) GetUnit(ctx context.Context, id int64) (*domain.Unit, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var u domain.Unit
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFoundOr(err, "unit", id, "get unit")
	}
	return &u, nil
}
