package job

import (
	"context"

	"hvacops/internal/domain"
	"hvacops/internal/repository"
)

type JobRepository interface {
	CreateNumbered(ctx context.Context, job *domain.Job, companyCode string, year int) error
	GetByID(ctx context.Context, id int64) (*domain.Job, error)
	List(ctx context.Context, f repository.JobFilter) ([]domain.Job, error)
	ListUnassigned(ctx context.Context, limit int) ([]domain.Job, error)
}

// PropertyRepository resolves the property and unit a job points at.
type PropertyRepository interface {
	GetProperty(ctx context.Context, id int64) (*domain.Property, error)
	GetUnit(ctx context.Context, id int64) (*domain.Unit, error)
}

type UserRepository interface {
	GetByIDAndRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error)
}

type Publisher interface {
	Publish(topic, eventType string, payload any)
}
