package job

import (
	"context"
	"log/slog"
	"time"

	"hvacops/internal/domain"
	"hvacops/internal/metrics"
	"hvacops/internal/modules/dispatch"
	"hvacops/internal/pkg/apperr"
	"hvacops/internal/pkg/query"
	"hvacops/internal/pkg/validator"
	"hvacops/internal/repository"
)

// ListParams carries raw query-string values. Unrecognized values drop the
// corresponding filter.
type ListParams struct {
	Status       string
	Type         string
	TechnicianID string
	Limit        string
}

type Service struct {
	jobs        JobRepository
	properties  PropertyRepository
	users       UserRepository
	publisher   Publisher
	companyCode string
	now         func() time.Time
}

func NewService(jobs JobRepository, properties PropertyRepository, users UserRepository, publisher Publisher, companyCode string) *Service {
	return &Service{
		jobs:        jobs,
		properties:  properties,
		users:       users,
		publisher:   publisher,
		companyCode: companyCode,
		now:         time.Now,
	}
}

func (s *Service) CreateJob(ctx context.Context, req CreateJobRequest) (*domain.Job, error) {
	req.normalize()
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	jobType, ok := domain.ParseJobType(req.JobType)
	if !ok {
		return nil, apperr.Invalid("jobType", "oneof")
	}
	scheduledDate, ok := parseScheduledDate(req.ScheduledDate)
	if !ok {
		return nil, apperr.Invalid("scheduledDate", "date")
	}

	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	job := &domain.Job{
		Title:          req.Title,
		Description:    req.Description,
		JobType:        jobType,
		Priority:       domain.PriorityOrDefault(req.Priority),
		Status:         domain.DeriveJobStatus(req.TechnicianID, scheduledDate),
		CustomerID:     req.CustomerID,
		PropertyID:     req.PropertyID,
		UnitID:         req.UnitID,
		TechnicianID:   req.TechnicianID,
		ScheduledDate:  scheduledDate,
		ScheduledStart: optionalString(req.ScheduledStart),
		ScheduledEnd:   optionalString(req.ScheduledEnd),
		Notes:          req.Notes,
	}
	if req.EstimatedCost != nil {
		job.EstimatedCost.Decimal = req.EstimatedCost.Round(2)
		job.EstimatedCost.Valid = true
	}

	if err := s.jobs.CreateNumbered(ctx, job, s.companyCode, s.now().Year()); err != nil {
		return nil, err
	}
	metrics.JobsCreated.WithLabelValues(string(job.JobType), string(job.Status)).Inc()

	created, err := s.jobs.GetByID(ctx, job.ID)
	if err != nil {
		// the insert committed; fall back to the bare row
		slog.WarnContext(ctx, "reload created job", "job_id", job.ID, "err", err)
		created = job
	}

	if s.publisher != nil {
		s.publisher.Publish(dispatch.TopicJobs, dispatch.EventJobCreated, FromJob(created))
	}
	return created, nil
}

// checkReferences resolves every referenced row. Missing rows are 404s;
// rows that exist but do not belong together are validation errors.
func (s *Service) checkReferences(ctx context.Context, req CreateJobRequest) error {
	if _, err := s.users.GetByIDAndRole(ctx, req.CustomerID, domain.RoleCustomer); err != nil {
		return err
	}

	property, err := s.properties.GetProperty(ctx, req.PropertyID)
	if err != nil {
		return err
	}
	if property.CustomerID != req.CustomerID {
		return apperr.Invalid("propertyId", "customer")
	}

	if req.UnitID != nil {
		unit, err := s.properties.GetUnit(ctx, *req.UnitID)
		if err != nil {
			return err
		}
		if unit.PropertyID != req.PropertyID {
			return apperr.Invalid("unitId", "property")
		}
	}

	if req.TechnicianID != nil {
		if _, err := s.users.GetByIDAndRole(ctx, *req.TechnicianID, domain.RoleTechnician); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

func (s *Service) ListJobs(ctx context.Context, p ListParams) ([]domain.Job, error) {
	f := repository.JobFilter{Limit: query.Limit(p.Limit)}
	if status, ok := domain.ParseJobStatus(p.Status); ok {
		f.Status = &status
	}
	if jobType, ok := domain.ParseJobType(p.Type); ok {
		f.Type = &jobType
	}
	if techID, ok := query.ID(p.TechnicianID); ok {
		f.TechnicianID = &techID
	}
	return s.jobs.List(ctx, f)
}

func (s *Service) ListUnassigned(ctx context.Context, limit string) ([]domain.Job, error) {
	return s.jobs.ListUnassigned(ctx, query.Limit(limit))
}
