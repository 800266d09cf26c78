package technician

import (
	"context"

	"hvacops/internal/pkg/query"
	"hvacops/internal/repository"
)

type Repository interface {
	List(ctx context.Context, f repository.TechnicianFilter) ([]repository.TechnicianRow, error)
}

type ListParams struct {
	Available string
	Limit     string
}

type Service struct {
	technicians Repository
}

func NewService(technicians Repository) *Service {
	return &Service{technicians: technicians}
}

// ListTechnicians ignores an unparsable availability filter.
func (s *Service) ListTechnicians(ctx context.Context, p ListParams) ([]TechnicianView, error) {
	f := repository.TechnicianFilter{Limit: query.Limit(p.Limit)}
	if v, ok := query.Bool(p.Available); ok {
		f.Available = &v
	}

	rows, err := s.technicians.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return FromRows(rows), nil
}
