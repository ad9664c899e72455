package domain

import "time"

type AgentStatus string

const (
	AgentActive   AgentStatus = "Active"
	AgentOnLeave  AgentStatus = "On Leave"
	AgentInactive AgentStatus = "Inactive"
)

func (s AgentStatus) Valid() bool {
	switch s {
	case AgentActive, AgentOnLeave, AgentInactive:
		return true
	}
	return false
}

type Specialization string

const (
	SpecResidential Specialization = "Residential"
	SpecCommercial  Specialization = "Commercial"
	SpecLuxury      Specialization = "Luxury"
	SpecOffPlan     Specialization = "Off-Plan"
	SpecRentals     Specialization = "Rentals"
)

type Language string

const (
	LangEnglish Language = "English"
	LangArabic  Language = "Arabic"
	LangFrench  Language = "French"
	LangHindi   Language = "Hindi"
	LangRussian Language = "Russian"
)

// MonthlyStat is one "YYYY-MM" bucket of an agent's sales.
type MonthlyStat struct {
	Month      string  `json:"month"`
	SalesCount int     `json:"salesCount"`
	SalesValue float64 `json:"salesValue"`
}

// Performance counters are owned by the agent repository: listings move through
// assign/unassign and sales through AddTransaction.
type Performance struct {
	TotalListings   int           `json:"totalListings"`
	ActiveListings  int           `json:"activeListings"`
	SoldProperties  int           `json:"soldProperties"`
	TotalSalesValue float64       `json:"totalSalesValue"`
	AverageRating   float64       `json:"averageRating"`
	SuccessRate     float64       `json:"successRate"`
	MonthlyStats    []MonthlyStat `json:"monthlyStats"`
}

type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Schedule struct {
	AvailableDays []string     `json:"availableDays"`
	WorkingHours  WorkingHours `json:"workingHours"`
}

// DefaultSchedule is Monday to Friday, 09:00-17:00.
func DefaultSchedule() Schedule {
	return Schedule{
		AvailableDays: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		WorkingHours:  WorkingHours{Start: "09:00", End: "17:00"},
	}
}

type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name" validate:"required"`
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type Certification struct {
	ID         string     `json:"id"`
	Name       string     `json:"name" validate:"required"`
	Issuer     string     `json:"issuer"`
	IssuedAt   *time.Time `json:"issuedAt,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	RecordedAt time.Time  `json:"recordedAt"`
}

type Transaction struct {
	ID              string    `json:"id"`
	PropertyID      string    `json:"propertyId"`
	Value           float64   `json:"value"`
	TransactionDate time.Time `json:"transactionDate"`
	ClientName      string    `json:"clientName,omitempty"`
	RecordedAt      time.Time `json:"recordedAt"`
}

type TransactionInput struct {
	PropertyID      string    `json:"propertyId"`
	Value           float64   `json:"value" validate:"gte=0"`
	TransactionDate time.Time `json:"transactionDate" validate:"required"`
	ClientName      string    `json:"clientName"`
}

type Agent struct {
	ID                 string           `json:"id"`
	UserID             string           `json:"userId"`
	Name               string           `json:"name"`
	Title              string           `json:"title"`
	Email              string           `json:"email"`
	Phone              string           `json:"phone"`
	Image              string           `json:"image,omitempty"`
	Bio                string           `json:"bio,omitempty"`
	LicenseNumber      string           `json:"licenseNumber"`
	LicenseExpiry      *time.Time       `json:"licenseExpiry,omitempty"`
	Specializations    []Specialization `json:"specializations"`
	Languages          []Language       `json:"languages"`
	Performance        Performance      `json:"performance"`
	AssignedProperties []string         `json:"assignedProperties"`
	Schedule           Schedule         `json:"schedule"`
	Documents          []Document       `json:"documents"`
	Certifications     []Certification  `json:"certifications"`
	PastTransactions   []Transaction    `json:"pastTransactions"`
	Status             AgentStatus      `json:"status"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

type AgentInput struct {
	UserID          string           `json:"userId" validate:"required"`
	Name            string           `json:"name" validate:"required,max=64"`
	Title           string           `json:"title"`
	Email           string           `json:"email" validate:"required,email"`
	Phone           string           `json:"phone"`
	Image           string           `json:"image"`
	Bio             string           `json:"bio"`
	LicenseNumber   string           `json:"licenseNumber"`
	LicenseExpiry   *time.Time       `json:"licenseExpiry"`
	Specializations []Specialization `json:"specializations" validate:"dive,oneof=Residential Commercial Luxury Off-Plan Rentals"`
	Languages       []Language       `json:"languages" validate:"dive,oneof=English Arabic French Hindi Russian"`
}

// AgentPatch updates identity fields only; counters, assignments and trails have their own operations.
type AgentPatch struct {
	Name            *string          `json:"name" validate:"omitempty,min=1,max=64"`
	Title           *string          `json:"title"`
	Email           *string          `json:"email" validate:"omitempty,email"`
	Phone           *string          `json:"phone"`
	Image           *string          `json:"image"`
	Bio             *string          `json:"bio"`
	LicenseNumber   *string          `json:"licenseNumber"`
	LicenseExpiry   *time.Time       `json:"licenseExpiry"`
	Specializations []Specialization `json:"specializations" validate:"dive,oneof=Residential Commercial Luxury Off-Plan Rentals"`
	Languages       []Language       `json:"languages" validate:"dive,oneof=English Arabic French Hindi Russian"`
}

// PerformancePatch covers the performance fields that are not derived from assignments or sales.
type PerformancePatch struct {
	AverageRating *float64 `json:"averageRating" validate:"omitempty,gte=0,lte=5"`
	SuccessRate   *float64 `json:"successRate" validate:"omitempty,gte=0,lte=100"`
}

type SchedulePatch struct {
	AvailableDays []string      `json:"availableDays"`
	WorkingHours  *WorkingHours `json:"workingHours"`
}
