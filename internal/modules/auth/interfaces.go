package auth

import (
	"context"
	"time"

	"hvacops/internal/domain"
)

// UserRepository is the subset of user storage auth needs.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64, role, email string) (string, error)
	TTL() time.Duration
}
