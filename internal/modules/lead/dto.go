package lead

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hvacops/internal/domain"
	"hvacops/internal/pkg/view"
)

type CreateLeadRequest struct {
	Name           string           `json:"name" validate:"required,max=200"`
	Phone          string           `json:"phone" validate:"required,max=40"`
	ServiceNeeded  string           `json:"serviceNeeded" validate:"required,max=200"`
	Email          string           `json:"email" validate:"max=254"`
	Address        string           `json:"address"`
	Source         string           `json:"source"`
	Description    string           `json:"description"`
	Urgency        json.RawMessage  `json:"urgency"`
	EstimatedValue *decimal.Decimal `json:"estimatedValue"`
	CustomerID     *int64           `json:"customerId" validate:"omitempty,gt=0"`
}

func (r *CreateLeadRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	r.ServiceNeeded = strings.TrimSpace(r.ServiceNeeded)
	r.Email = strings.TrimSpace(r.Email)
	r.Address = strings.TrimSpace(r.Address)
	r.Description = strings.TrimSpace(r.Description)
}

// parseUrgency accepts a JSON number or a numeric string. Anything else,
// including an absent value, is nil. Fractions are truncated.
func parseUrgency(raw json.RawMessage) *int {
	if len(raw) == 0 {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		s = string(raw)
	}
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return nil
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n > math.MaxInt32 || n < math.MinInt32 {
			return nil
		}
		v := int(n)
		return &v
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return nil
	}
	n := int(math.Trunc(f))
	return &n
}

type LeadView struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Email          string            `json:"email,omitempty"`
	Phone          string            `json:"phone"`
	Address        string            `json:"address,omitempty"`
	ServiceNeeded  string            `json:"serviceNeeded"`
	Description    string            `json:"description,omitempty"`
	Status         domain.LeadStatus `json:"status"`
	Source         domain.LeadSource `json:"source"`
	Urgency        *int              `json:"urgency"`
	EstimatedValue *float64          `json:"estimatedValue"`
	Customer       *view.UserSummary `json:"customer"`
	CreatedAt      time.Time         `json:"createdAt"`
}

func FromLead(l *domain.Lead) LeadView {
	return LeadView{
		ID:             l.ID,
		Name:           l.Name,
		Email:          l.Email,
		Phone:          l.Phone,
		Address:        l.Address,
		ServiceNeeded:  l.ServiceNeeded,
		Description:    l.Description,
		Status:         l.Status,
		Source:         l.Source,
		Urgency:        l.Urgency,
		EstimatedValue: view.NullMoney(l.EstimatedValue),
		Customer:       view.User(l.Customer),
		CreatedAt:      l.CreatedAt,
	}
}

func FromLeads(leads []domain.Lead) []LeadView {
	out := make([]LeadView, len(leads))
	for i := range leads {
		out[i] = FromLead(&leads[i])
	}
	return out
}

// StatsView has an entry for every status, zero when no lead has it.
type StatsView struct {
	Total    int64                       `json:"total"`
	ByStatus map[domain.LeadStatus]int64 `json:"byStatus"`
	Open     int64                       `json:"open"`
}

func FromCounts(counts map[domain.LeadStatus]int64) StatsView {
	out := StatsView{ByStatus: make(map[domain.LeadStatus]int64)}
	for _, s := range domain.LeadStatuses() {
		n := counts[s]
		out.ByStatus[s] = n
		out.Total += n
		if !s.IsTerminal() {
			out.Open += n
		}
	}
	return out
}
