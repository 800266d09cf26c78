package dashboard

import (
	"context"
	"log/slog"
	"time"

	"hvacops/internal/domain"
	"hvacops/internal/pkg/query"
)

type MetricRepository interface {
	Since(ctx context.Context, cutoff time.Time) ([]domain.DailyMetric, error)
	Compute(ctx context.Context, start, end time.Time) (*domain.DailyMetric, error)
	Upsert(ctx context.Context, m *domain.DailyMetric) error
}

type JobCounter interface {
	CountByStatus(ctx context.Context) (map[domain.JobStatus]int64, error)
	CountUnassigned(ctx context.Context) (int64, error)
}

type LeadCounter interface {
	CountByStatus(ctx context.Context) (map[domain.LeadStatus]int64, error)
}

type TechnicianCounter interface {
	CountAvailable(ctx context.Context) (int64, error)
}

type Service struct {
	metrics     MetricRepository
	jobs        JobCounter
	leads       LeadCounter
	technicians TechnicianCounter
	loc         *time.Location
	now         func() time.Time
}

func NewService(metrics MetricRepository, jobs JobCounter, leads LeadCounter, technicians TechnicianCounter) *Service {
	return &Service{
		metrics:     metrics,
		jobs:        jobs,
		leads:       leads,
		technicians: technicians,
		loc:         time.Local,
		now:         time.Now,
	}
}

// startOfDay returns local midnight of the day daysAgo days before now.
func (s *Service) startOfDay(daysAgo int) time.Time {
	t := s.now().In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day()-daysAgo, 0, 0, 0, 0, s.loc)
}

// Metrics returns stored rows dated on or after local midnight days ago.
// Days without a row are absent, not zero-filled.
func (s *Service) Metrics(ctx context.Context, days string) ([]MetricView, error) {
	cutoff := s.startOfDay(query.Days(days))
	rows, err := s.metrics.Since(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	return FromMetrics(rows, s.loc), nil
}

func (s *Service) Summary(ctx context.Context) (*SummaryView, error) {
	byStatus, err := s.jobs.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	unassigned, err := s.jobs.CountUnassigned(ctx)
	if err != nil {
		return nil, err
	}
	leads, err := s.leads.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	available, err := s.technicians.CountAvailable(ctx)
	if err != nil {
		return nil, err
	}

	out := &SummaryView{
		JobsByStatus:         make(map[domain.JobStatus]int64),
		UnassignedJobs:       unassigned,
		NewLeads:             leads[domain.LeadNew],
		AvailableTechnicians: available,
	}
	for _, st := range domain.JobStatuses() {
		n := byStatus[st]
		out.JobsByStatus[st] = n
		if !st.IsTerminal() {
			out.OpenJobs += n
		}
	}
	return out, nil
}

// Rollup recomputes one row per local day for the last days days, today
// included, oldest first.
func (s *Service) Rollup(ctx context.Context, days int) ([]domain.DailyMetric, error) {
	if days < 1 {
		days = 1
	}
	if days > query.MaxDays {
		days = query.MaxDays
	}

	out := make([]domain.DailyMetric, 0, days)
	for ago := days - 1; ago >= 0; ago-- {
		start := s.startOfDay(ago)
		end := time.Date(start.Year(), start.Month(), start.Day()+1, 0, 0, 0, 0, s.loc)

		m, err := s.metrics.Compute(ctx, start, end)
		if err != nil {
			return nil, err
		}
		m.Date = start
		if err := s.metrics.Upsert(ctx, m); err != nil {
			return nil, err
		}
		slog.DebugContext(ctx, "daily metric rolled up",
			"date", start.Format("2006-01-02"),
			"jobs_created", m.JobsCreated,
			"revenue", m.Revenue.String(),
		)
		out = append(out, *m)
	}
	return out, nil
}
