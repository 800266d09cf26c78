package lead

import (
	"context"

	"hvacops/internal/domain"
	"hvacops/internal/metrics"
	"hvacops/internal/modules/dispatch"
	"hvacops/internal/pkg/query"
	"hvacops/internal/pkg/validator"
	"hvacops/internal/repository"
)

type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id int64) (*domain.Lead, error)
	List(ctx context.Context, f repository.LeadFilter) ([]domain.Lead, error)
	CountByStatus(ctx context.Context) (map[domain.LeadStatus]int64, error)
}

type CustomerLookup interface {
	GetByIDAndRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error)
}

type Publisher interface {
	Publish(topic, eventType string, payload any)
}

type ListParams struct {
	Status string
	Source string
	Limit  string
}

type Service struct {
	leads     LeadRepository
	customers CustomerLookup
	publisher Publisher
}

func NewService(leads LeadRepository, customers CustomerLookup, publisher Publisher) *Service {
	return &Service{leads: leads, customers: customers, publisher: publisher}
}

// CreateLead stores a NEW lead. Unknown sources become WEBSITE and an
// unparsable urgency is stored as null; neither is an error.
func (s *Service) CreateLead(ctx context.Context, req CreateLeadRequest) (*domain.Lead, error) {
	req.normalize()
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	if req.CustomerID != nil {
		if _, err := s.customers.GetByIDAndRole(ctx, *req.CustomerID, domain.RoleCustomer); err != nil {
			return nil, err
		}
	}

	lead := &domain.Lead{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		ServiceNeeded: req.ServiceNeeded,
		Description:   req.Description,
		Status:        domain.LeadNew,
		Source:        domain.LeadSourceOrDefault(req.Source),
		Urgency:       parseUrgency(req.Urgency),
		CustomerID:    req.CustomerID,
	}
	if req.EstimatedValue != nil {
		lead.EstimatedValue.Decimal = req.EstimatedValue.Round(2)
		lead.EstimatedValue.Valid = true
	}

	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}
	metrics.LeadsCreated.WithLabelValues(string(lead.Source)).Inc()

	if lead.CustomerID != nil {
		if full, err := s.leads.GetByID(ctx, lead.ID); err == nil {
			lead = full
		}
	}

	if s.publisher != nil {
		s.publisher.Publish(dispatch.TopicLeads, dispatch.EventLeadCreated, FromLead(lead))
	}
	return lead, nil
}

func (s *Service) ListLeads(ctx context.Context, p ListParams) ([]domain.Lead, error) {
	f := repository.LeadFilter{Limit: query.Limit(p.Limit)}
	if status, ok := domain.ParseLeadStatus(p.Status); ok {
		f.Status = &status
	}
	if source, ok := domain.ParseLeadSource(p.Source); ok {
		f.Source = &source
	}
	return s.leads.List(ctx, f)
}

func (s *Service) GetStats(ctx context.Context) (StatsView, error) {
	counts, err := s.leads.CountByStatus(ctx)
	if err != nil {
		return StatsView{}, err
	}
	return FromCounts(counts), nil
}
