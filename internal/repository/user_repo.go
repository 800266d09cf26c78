package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"hvacops/internal/database"
	"hvacops/internal/domain"
	"hvacops/internal/pkg/apperr"
)

type UserRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewUserRepository(db *gorm.DB, timeout time.Duration) *UserRepository {
	return &UserRepository{db: db, timeout: timeout}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	u.Email = normalizeEmail(u.Email)
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueConstraintError(err) {
			return apperr.Invalid("email", "taken")
		}
		return apperr.Persistence("create user", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	email = normalizeEmail(email)
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", email).
		First(&u).Error
	if err != nil {
		return nil, notFoundOr(err, "user", email, "get user by email")
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFoundOr(err, "user", id, "get user")
	}
	return &u, nil
}

// GetByIDAndRole treats a user with a different role as absent.
func (r *UserRepository) GetByIDAndRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var u domain.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, role).
		First(&u).Error
	if err != nil {
		return nil, notFoundOr(err, strings.ToLower(string(role)), id, "get user")
	}
	return &u, nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("password_hash", hash)
	if res.Error != nil {
		return apperr.Persistence("update password", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user", id)
	}
	return nil
}
