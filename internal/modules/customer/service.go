package customer

import (
	"context"

	"hvacops/internal/domain"
	"hvacops/internal/pkg/query"
)

type Repository interface {
	List(ctx context.Context, limit int) ([]domain.User, error)
}

type Service struct {
	customers Repository
}

func NewService(customers Repository) *Service {
	return &Service{customers: customers}
}

func (s *Service) ListCustomers(ctx context.Context, limit string) ([]CustomerView, error) {
	users, err := s.customers.List(ctx, query.Limit(limit))
	if err != nil {
		return nil, err
	}
	return FromCustomers(users), nil
}
