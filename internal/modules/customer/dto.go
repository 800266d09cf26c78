package customer

import (
	"github.com/shopspring/decimal"

	"hvacops/internal/domain"
	"hvacops/internal/pkg/view"
)

type MembershipView struct {
	ID        int64   `json:"id"`
	Plan      string  `json:"plan"`
	Status    string  `json:"status"`
	StartDate string  `json:"startDate"`
	EndDate   *string `json:"endDate,omitempty"`
}

// CustomerView carries lifetime value computed from PAID invoices only.
type CustomerView struct {
	ID           int64                  `json:"id"`
	Name         string                 `json:"name"`
	Email        string                 `json:"email"`
	Phone        string                 `json:"phone,omitempty"`
	Properties   []view.PropertySummary `json:"properties"`
	Memberships  []MembershipView       `json:"memberships"`
	InvoiceCount int                    `json:"invoiceCount"`
	TotalSpent   float64                `json:"totalSpent"`
}

func FromCustomer(u *domain.User) CustomerView {
	out := CustomerView{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Properties:  make([]view.PropertySummary, 0, len(u.Properties)),
		Memberships: make([]MembershipView, 0, len(u.Memberships)),
	}

	for i := range u.Properties {
		out.Properties = append(out.Properties, *view.Property(&u.Properties[i]))
	}

	for _, m := range u.Memberships {
		start := m.StartDate
		out.Memberships = append(out.Memberships, MembershipView{
			ID:        m.ID,
			Plan:      m.Plan,
			Status:    string(m.Status),
			StartDate: *view.Date(&start),
			EndDate:   view.Date(m.EndDate),
		})
	}

	total := decimal.Zero
	for _, inv := range u.Invoices {
		if inv.Status != domain.InvoicePaid {
			continue
		}
		total = total.Add(inv.Total)
		out.InvoiceCount++
	}
	out.TotalSpent = view.Money(total)

	return out
}

func FromCustomers(users []domain.User) []CustomerView {
	out := make([]CustomerView, len(users))
	for i := range users {
		out[i] = FromCustomer(&users[i])
	}
	return out
}
