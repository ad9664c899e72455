package domain

import "time"

type InquiryStatus string

const (
	InquiryNew        InquiryStatus = "New"
	InquiryInProgress InquiryStatus = "In Progress"
	InquiryResolved   InquiryStatus = "Resolved"
	InquiryCancelled  InquiryStatus = "Cancelled"
)

func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryNew, InquiryInProgress, InquiryResolved, InquiryCancelled:
		return true
	}
	return false
}

// SystemActor stamps history entries that no person caused.
const SystemActor = "system"

// PropertySnapshot is the listing as the requester saw it; it is never refreshed.
type PropertySnapshot struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Location string  `json:"location"`
	Image    string  `json:"image"`
}

// SnapshotOf captures the fields of p an inquiry keeps.
func SnapshotOf(p *Property) PropertySnapshot {
	s := PropertySnapshot{ID: p.ID, Title: p.Title, Price: p.Price, Location: p.Location}
	if len(p.Images) > 0 {
		s.Image = p.Images[0]
	}
	return s
}

type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

type StatusChange struct {
	Status    InquiryStatus `json:"status"`
	ChangedAt time.Time     `json:"changedAt"`
	ChangedBy string        `json:"changedBy"`
}

type Inquiry struct {
	ID               string           `json:"id"`
	PropertyID       int              `json:"propertyId"`
	PropertySnapshot PropertySnapshot `json:"propertySnapshot"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	Message          string           `json:"message"`
	Status           InquiryStatus    `json:"status"`
	Notes            []Note           `json:"notes"`
	StatusHistory    []StatusChange   `json:"statusHistory"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

type InquiryInput struct {
	PropertyID       int              `json:"propertyId" validate:"required"`
	PropertySnapshot PropertySnapshot `json:"propertySnapshot"`
	Name             string           `json:"name" validate:"required,max=100"`
	Email            string           `json:"email" validate:"required,email"`
	Phone            string           `json:"phone"`
	Message          string           `json:"message" validate:"max=4000"`
}
