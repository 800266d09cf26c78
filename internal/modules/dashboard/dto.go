package dashboard

import (
	"time"

	"hvacops/internal/domain"
	"hvacops/internal/pkg/view"
)

type MetricView struct {
	Date            string  `json:"date"`
	JobsCreated     int     `json:"jobsCreated"`
	JobsCompleted   int     `json:"jobsCompleted"`
	Revenue         float64 `json:"revenue"`
	NewLeads        int     `json:"newLeads"`
	LeadsWon        int     `json:"leadsWon"`
	ServiceRequests int     `json:"serviceRequests"`
}

// FromMetric renders the date in loc, the zone the row was produced in.
func FromMetric(m *domain.DailyMetric, loc *time.Location) MetricView {
	return MetricView{
		Date:            m.Date.In(loc).Format(view.DateLayout),
		JobsCreated:     m.JobsCreated,
		JobsCompleted:   m.JobsCompleted,
		Revenue:         view.Money(m.Revenue),
		NewLeads:        m.NewLeads,
		LeadsWon:        m.LeadsWon,
		ServiceRequests: m.ServiceRequests,
	}
}

func FromMetrics(rows []domain.DailyMetric, loc *time.Location) []MetricView {
	out := make([]MetricView, len(rows))
	for i := range rows {
		out[i] = FromMetric(&rows[i], loc)
	}
	return out
}

// SummaryView is the dispatch board header.
type SummaryView struct {
	JobsByStatus         map[domain.JobStatus]int64 `json:"jobsByStatus"`
	OpenJobs             int64                      `json:"openJobs"`
	UnassignedJobs       int64                      `json:"unassignedJobs"`
	NewLeads             int64                      `json:"newLeads"`
	AvailableTechnicians int64                      `json:"availableTechnicians"`
}
