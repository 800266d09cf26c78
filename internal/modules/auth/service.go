package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"hvacops/internal/domain"
	"hvacops/internal/pkg/apperr"
	"hvacops/internal/pkg/validator"
)

// Service contains all business logic for authentication
type Service struct {
	users  UserRepository
	tokens TokenIssuer
	now    func() time.Time
}

func NewService(users UserRepository, tokens TokenIssuer) *Service {
	return &Service{users: users, tokens: tokens, now: time.Now}
}

// Login verifies the password and issues a session token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	req.normalize()
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		slog.InfoContext(ctx, "login rejected", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role), user.Email)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:      user,
		Token:     token,
		ExpiresAt: s.now().Add(s.tokens.TTL()).UTC(),
	}, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}
