package servicerequest

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"hvacops/internal/domain"
)

const submittedMessage = "Service request submitted successfully. We will contact you shortly."

type SubmitRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	Email         string `json:"email" validate:"required,max=254"`
	Phone         string `json:"phone" validate:"required,max=40"`
	ServiceType   string `json:"serviceType" validate:"required,max=200"`
	Description   string `json:"description" validate:"required,max=5000"`
	Address       string `json:"address" validate:"max=500"`
	Urgency       string `json:"urgency" validate:"max=16"`
	PreferredDate string `json:"preferredDate" validate:"max=32"`
	PreferredTime string `json:"preferredTime" validate:"max=32"`
}

func (r *SubmitRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.ServiceType = strings.TrimSpace(r.ServiceType)
	r.Description = strings.TrimSpace(r.Description)
	r.Address = strings.TrimSpace(r.Address)
	r.Urgency = strings.ToLower(strings.TrimSpace(r.Urgency))
	r.PreferredDate = strings.TrimSpace(r.PreferredDate)
	r.PreferredTime = strings.TrimSpace(r.PreferredTime)
}

// Result identifies both rows written by a submission.
type Result struct {
	ServiceRequestID int64
	LeadID           int64
	Reference        uuid.UUID
}

// SubmittedView is the public acknowledgement. The lead stays internal.
type SubmittedView struct {
	Message          string    `json:"message"`
	ServiceRequestID uuid.UUID `json:"serviceRequestId"`
}

type ServiceRequestView struct {
	ID            int64     `json:"id"`
	Reference     uuid.UUID `json:"reference"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address,omitempty"`
	ServiceType   string    `json:"serviceType"`
	Description   string    `json:"description"`
	Urgency       string    `json:"urgency"`
	PreferredDate string    `json:"preferredDate,omitempty"`
	PreferredTime string    `json:"preferredTime,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

func FromServiceRequest(r *domain.ServiceRequest) ServiceRequestView {
	return ServiceRequestView{
		ID:            r.ID,
		Reference:     r.Reference,
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		Address:       r.Address,
		ServiceType:   r.ServiceType,
		Description:   r.Description,
		Urgency:       r.Urgency,
		PreferredDate: r.PreferredDate,
		PreferredTime: r.PreferredTime,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
	}
}

func FromServiceRequests(rows []domain.ServiceRequest) []ServiceRequestView {
	out := make([]ServiceRequestView, len(rows))
	for i := range rows {
		out[i] = FromServiceRequest(&rows[i])
	}
	return out
}
