package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hvacops/internal/database"
	"hvacops/internal/domain"
	"hvacops/internal/pkg/apperr"
)

type TechnicianFilter struct {
	Available *bool
	Limit     int
}

// TechnicianRow is a technician with the number of jobs ever assigned.
type TechnicianRow struct {
	User     domain.User
	JobCount int64
}

type TechnicianRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewTechnicianRepository(db *gorm.DB, timeout time.Duration) *TechnicianRepository {
	return &TechnicianRepository{db: db, timeout: timeout}
}

func (r *TechnicianRepository) List(ctx context.Context, f TechnicianFilter) ([]TechnicianRow, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	q := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("users.role = ?", domain.RoleTechnician).
		Preload("TechProfile")
	if f.Available != nil {
		q = q.Joins("JOIN tech_profiles ON tech_profiles.user_id = users.id").
			Where("tech_profiles.is_available = ?", *f.Available)
	}

	var techs []domain.User
	err := q.Order("users.name ASC").Order("users.id ASC").
		Limit(f.Limit).
		Find(&techs).Error
	if err != nil {
		return nil, apperr.Persistence("list technicians", err)
	}
	if len(techs) == 0 {
		return []TechnicianRow{}, nil
	}

	ids := make([]int64, len(techs))
	for i, t := range techs {
		ids[i] = t.ID
	}

	var counts []struct {
		TechnicianID int64
		Count        int64
	}
	err = r.db.WithContext(ctx).Model(&domain.Job{}).
		Select("technician_id, COUNT(*) AS count").
		Where("technician_id IN ?", ids).
		Group("technician_id").
		Scan(&counts).Error
	if err != nil {
		return nil, apperr.Persistence("count technician jobs", err)
	}

	byTech := make(map[int64]int64, len(counts))
	for _, c := range counts {
		byTech[c.TechnicianID] = c.Count
	}

	out := make([]TechnicianRow, len(techs))
	for i, t := range techs {
		out[i] = TechnicianRow{User: t, JobCount: byTech[t.ID]}
	}
	return out, nil
}

func (r *TechnicianRepository) CountAvailable(ctx context.Context) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var n int64
	err := r.db.WithContext(ctx).Model(&domain.TechProfile{}).
		Joins("JOIN users ON users.id = tech_profiles.user_id").
		Where("users.role = ? AND tech_profiles.is_available = ?", domain.RoleTechnician, true).
		Count(&n).Error
	if err != nil {
		return 0, apperr.Persistence("count available technicians", err)
	}
	return n, nil
}
