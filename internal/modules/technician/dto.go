package technician

import (
	"hvacops/internal/domain"
	"hvacops/internal/pkg/view"
	"hvacops/internal/repository"
)

type ProfileView struct {
	Skills           []string `json:"skills"`
	IsAvailable      bool     `json:"isAvailable"`
	Location         string   `json:"location,omitempty"`
	JobsCompleted    int      `json:"jobsCompleted"`
	RevenueGenerated float64  `json:"revenueGenerated"`
	AverageRating    float64  `json:"averageRating"`
}

type TechnicianView struct {
	ID       int64        `json:"id"`
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Phone    string       `json:"phone,omitempty"`
	Profile  *ProfileView `json:"profile"`
	JobCount int64        `json:"jobCount"`
}

func fromProfile(p *domain.TechProfile) *ProfileView {
	if p == nil {
		return nil
	}
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return &ProfileView{
		Skills:           skills,
		IsAvailable:      p.IsAvailable,
		Location:         p.Location,
		JobsCompleted:    p.JobsCompleted,
		RevenueGenerated: view.Money(p.RevenueGenerated),
		AverageRating:    p.AverageRating,
	}
}

func FromRow(row repository.TechnicianRow) TechnicianView {
	return TechnicianView{
		ID:       row.User.ID,
		Name:     row.User.Name,
		Email:    row.User.Email,
		Phone:    row.User.Phone,
		Profile:  fromProfile(row.User.TechProfile),
		JobCount: row.JobCount,
	}
}

func FromRows(rows []repository.TechnicianRow) []TechnicianView {
	out := make([]TechnicianView, len(rows))
	for i, row := range rows {
		out[i] = FromRow(row)
	}
	return out
}
