package servicerequest

import (
	"context"

	"hvacops/internal/domain"
	"hvacops/internal/metrics"
	"hvacops/internal/modules/dispatch"
	"hvacops/internal/pkg/apperr"
	"hvacops/internal/pkg/query"
	"hvacops/internal/pkg/validator"
)

const defaultUrgency = "normal"

type Repository interface {
	CreateWithLead(ctx context.Context, req *domain.ServiceRequest, lead *domain.Lead) error
	ListRecent(ctx context.Context, limit int) ([]domain.ServiceRequest, error)
}

type Publisher interface {
	Publish(topic, eventType string, payload any)
}

type Service struct {
	repo      Repository
	publisher Publisher
}

func NewService(repo Repository, publisher Publisher) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// Submit stores the raw request and its derived lead as one unit of work.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Result, error) {
	req.normalize()
	if err := validator.Validate(&req); err != nil {
		metrics.ServiceRequests.WithLabelValues("rejected").Inc()
		return nil, err
	}

	urgency := req.Urgency
	if urgency == "" {
		urgency = defaultUrgency
	}

	sr := &domain.ServiceRequest{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		ServiceType:   req.ServiceType,
		Description:   req.Description,
		Urgency:       urgency,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Status:        domain.ServiceRequestStatusNew,
	}

	score := domain.UrgencyScore(urgency)
	lead := &domain.Lead{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		ServiceNeeded: req.ServiceType,
		Description:   req.Description,
		Status:        domain.LeadNew,
		Source:        domain.SourceWebsite,
		Urgency:       &score,
	}

	if err := s.repo.CreateWithLead(ctx, sr, lead); err != nil {
		metrics.ServiceRequests.WithLabelValues("failed").Inc()
		return nil, apperr.Persistence("submit service request", err)
	}
	metrics.ServiceRequests.WithLabelValues("accepted").Inc()

	if s.publisher != nil {
		s.publisher.Publish(dispatch.TopicServiceRequests, dispatch.EventServiceRequestSubmitted, FromServiceRequest(sr))
	}

	return &Result{
		ServiceRequestID: sr.ID,
		LeadID:           lead.ID,
		Reference:        sr.Reference,
	}, nil
}

func (s *Service) ListRecent(ctx context.Context, limit string) ([]domain.ServiceRequest, error) {
	return s.repo.ListRecent(ctx, query.Limit(limit))
}
