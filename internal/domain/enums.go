package domain

import "strings"

type Role string

const (
	RoleOwner      Role = "OWNER"
	RoleTechnician Role = "TECHNICIAN"
	RoleCustomer   Role = "CUSTOMER"
)

type JobType string

const (
	JobTypeInstallation JobType = "INSTALLATION"
	JobTypeRepair       JobType = "REPAIR"
	JobTypeMaintenance  JobType = "MAINTENANCE"
	JobTypeInspection   JobType = "INSPECTION"
	JobTypeEmergency    JobType = "EMERGENCY"
	JobTypeQuote        JobType = "QUOTE"
)

// Priority values are declared from lowest to highest; PriorityRank relies on
// this order.
type Priority string

const (
	PriorityLow       Priority = "LOW"
	PriorityNormal    Priority = "NORMAL"
	PriorityHigh      Priority = "HIGH"
	PriorityUrgent    Priority = "URGENT"
	PriorityEmergency Priority = "EMERGENCY"
)

type JobStatus string

const (
	JobPending    JobStatus = "PENDING"
	JobScheduled  JobStatus = "SCHEDULED"
	JobDispatched JobStatus = "DISPATCHED"
	JobInProgress JobStatus = "IN_PROGRESS"
	JobOnHold     JobStatus = "ON_HOLD"
	JobCompleted  JobStatus = "COMPLETED"
	JobCancelled  JobStatus = "CANCELLED"
)

type LeadStatus string

const (
	LeadNew         LeadStatus = "NEW"
	LeadContacted   LeadStatus = "CONTACTED"
	LeadQualified   LeadStatus = "QUALIFIED"
	LeadQuoted      LeadStatus = "QUOTED"
	LeadNegotiating LeadStatus = "NEGOTIATING"
	LeadWon         LeadStatus = "WON"
	LeadLost        LeadStatus = "LOST"
)

type LeadSource string

const (
	SourceWebsite        LeadSource = "WEBSITE"
	SourceReferral       LeadSource = "REFERRAL"
	SourcePhone          LeadSource = "PHONE"
	SourceGoogle         LeadSource = "GOOGLE"
	SourceFacebook       LeadSource = "FACEBOOK"
	SourceYelp           LeadSource = "YELP"
	SourceRepeatCustomer LeadSource = "REPEAT_CUSTOMER"
	SourceOther          LeadSource = "OTHER"
)

type MembershipStatus string

const (
	MembershipActive    MembershipStatus = "ACTIVE"
	MembershipPaused    MembershipStatus = "PAUSED"
	MembershipCancelled MembershipStatus = "CANCELLED"
	MembershipExpired   MembershipStatus = "EXPIRED"
)

type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "DRAFT"
	InvoiceSent    InvoiceStatus = "SENT"
	InvoicePaid    InvoiceStatus = "PAID"
	InvoiceOverdue InvoiceStatus = "OVERDUE"
	InvoiceVoid    InvoiceStatus = "VOID"
)

type PropertyType string

const (
	PropertyResidential PropertyType = "RESIDENTIAL"
	PropertyCommercial  PropertyType = "COMMERCIAL"
	PropertyIndustrial  PropertyType = "INDUSTRIAL"
)

var (
	roles = []Role{RoleOwner, RoleTechnician, RoleCustomer}

	jobTypes = []JobType{
		JobTypeInstallation, JobTypeRepair, JobTypeMaintenance,
		JobTypeInspection, JobTypeEmergency, JobTypeQuote,
	}

	priorities = []Priority{
		PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent, PriorityEmergency,
	}

	jobStatuses = []JobStatus{
		JobPending, JobScheduled, JobDispatched, JobInProgress,
		JobOnHold, JobCompleted, JobCancelled,
	}

	leadStatuses = []LeadStatus{
		LeadNew, LeadContacted, LeadQualified, LeadQuoted,
		LeadNegotiating, LeadWon, LeadLost,
	}

	leadSources = []LeadSource{
		SourceWebsite, SourceReferral, SourcePhone, SourceGoogle,
		SourceFacebook, SourceYelp, SourceRepeatCustomer, SourceOther,
	}
)

// parseEnum matches s case-insensitively against the allowed members.
func parseEnum[T ~string](s string, allowed []T) (T, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, v := range allowed {
		if string(v) == s {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func ParseRole(s string) (Role, bool)             { return parseEnum(s, roles) }
func ParseJobType(s string) (JobType, bool)       { return parseEnum(s, jobTypes) }
func ParsePriority(s string) (Priority, bool)     { return parseEnum(s, priorities) }
func ParseJobStatus(s string) (JobStatus, bool)   { return parseEnum(s, jobStatuses) }
func ParseLeadStatus(s string) (LeadStatus, bool) { return parseEnum(s, leadStatuses) }
func ParseLeadSource(s string) (LeadSource, bool) { return parseEnum(s, leadSources) }

// Priorities returns all priorities ordered from lowest to highest.
func Priorities() []Priority {
	out := make([]Priority, len(priorities))
	copy(out, priorities)
	return out
}

func JobStatuses() []JobStatus {
	out := make([]JobStatus, len(jobStatuses))
	copy(out, jobStatuses)
	return out
}

func LeadStatuses() []LeadStatus {
	out := make([]LeadStatus, len(leadStatuses))
	copy(out, leadStatuses)
	return out
}

// PriorityRank is 0 for LOW up to 4 for EMERGENCY, -1 for unknown values.
func PriorityRank(p Priority) int {
	for i, v := range priorities {
		if v == p {
			return i
		}
	}
	return -1
}

func (s LeadStatus) IsTerminal() bool {
	return s == LeadWon || s == LeadLost
}

func (s JobStatus) IsTerminal() bool {
	return s == JobCompleted || s == JobCancelled
}

// LeadSourceOrDefault normalizes unknown or empty sources to WEBSITE.
func LeadSourceOrDefault(s string) LeadSource {
	if src, ok := ParseLeadSource(s); ok {
		return src
	}
	return SourceWebsite
}

// PriorityOrDefault normalizes unknown or empty priorities to NORMAL.
func PriorityOrDefault(s string) Priority {
	if p, ok := ParsePriority(s); ok {
		return p
	}
	return PriorityNormal
}

// UrgencyScore maps a textual urgency level from the public form to the
// numeric lead scale. Unknown and empty values map to 5.
func UrgencyScore(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "low":
		return 2
	case "high":
		return 7
	case "emergency":
		return 10
	default:
		return 5
	}
}
