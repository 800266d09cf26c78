package job

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hvacops/internal/domain"
	"hvacops/internal/pkg/view"
)

type CreateJobRequest struct {
	Title          string           `json:"title" validate:"required,max=200"`
	Description    string           `json:"description" validate:"required"`
	JobType        string           `json:"jobType" validate:"required"`
	CustomerID     int64            `json:"customerId" validate:"required,gt=0"`
	PropertyID     int64            `json:"propertyId" validate:"required,gt=0"`
	Priority       string           `json:"priority"`
	UnitID         *int64           `json:"unitId" validate:"omitempty,gt=0"`
	ScheduledDate  string           `json:"scheduledDate"`
	ScheduledStart string           `json:"scheduledStart" validate:"max=8"`
	ScheduledEnd   string           `json:"scheduledEnd" validate:"max=8"`
	TechnicianID   *int64           `json:"technicianId" validate:"omitempty,gt=0"`
	EstimatedCost  *decimal.Decimal `json:"estimatedCost"`
	Notes          string           `json:"notes"`
}

func (r *CreateJobRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.JobType = strings.TrimSpace(r.JobType)
	r.Priority = strings.TrimSpace(r.Priority)
	r.ScheduledDate = strings.TrimSpace(r.ScheduledDate)
	r.ScheduledStart = strings.TrimSpace(r.ScheduledStart)
	r.ScheduledEnd = strings.TrimSpace(r.ScheduledEnd)
	r.Notes = strings.TrimSpace(r.Notes)
}

// parseScheduledDate accepts YYYY-MM-DD or RFC3339 and keeps only the
// calendar date, stored as UTC midnight.
func parseScheduledDate(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	t, err := time.Parse(view.DateLayout, s)
	if err != nil {
		ts, err2 := time.Parse(time.RFC3339, s)
		if err2 != nil {
			return nil, false
		}
		t = time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	}
	return &t, true
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type JobView struct {
	ID             int64                 `json:"id"`
	JobNumber      string                `json:"jobNumber"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	JobType        domain.JobType        `json:"jobType"`
	Priority       domain.Priority       `json:"priority"`
	Status         domain.JobStatus      `json:"status"`
	ScheduledDate  *string               `json:"scheduledDate"`
	ScheduledStart *string               `json:"scheduledStart"`
	ScheduledEnd   *string               `json:"scheduledEnd"`
	EstimatedCost  *float64              `json:"estimatedCost"`
	CompletedAt    *time.Time            `json:"completedAt"`
	Notes          string                `json:"notes,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	Customer       *view.UserSummary     `json:"customer"`
	Technician     *view.UserSummary     `json:"technician"`
	Property       *view.PropertySummary `json:"property"`
	Unit           *view.UnitSummary     `json:"unit"`
}

func FromJob(j *domain.Job) JobView {
	return JobView{
		ID:             j.ID,
		JobNumber:      j.JobNumber,
		Title:          j.Title,
		Description:    j.Description,
		JobType:        j.JobType,
		Priority:       j.Priority,
		Status:         j.Status,
		ScheduledDate:  view.Date(j.ScheduledDate),
		ScheduledStart: j.ScheduledStart,
		ScheduledEnd:   j.ScheduledEnd,
		EstimatedCost:  view.NullMoney(j.EstimatedCost),
		CompletedAt:    j.CompletedAt,
		Notes:          j.Notes,
		CreatedAt:      j.CreatedAt,
		Customer:       view.User(j.Customer),
		Technician:     view.User(j.Technician),
		Property:       view.Property(j.Property),
		Unit:           view.Unit(j.Unit),
	}
}

func FromJobs(jobs []domain.Job) []JobView {
	out := make([]JobView, len(jobs))
	for i := range jobs {
		out[i] = FromJob(&jobs[i])
	}
	return out
}
