package domain

import "time"

type PropertyStatus string

const (
	PropertyNowSelling PropertyStatus = "Now Selling"
	PropertyComingSoon PropertyStatus = "Coming Soon"
	PropertySoldOut    PropertyStatus = "Sold Out"
)

type PropertyCategory string

const (
	CategoryVilla     PropertyCategory = "Villa"
	CategorySemi      PropertyCategory = "Semi"
	CategoryTownhouse PropertyCategory = "Townhouse"
	CategoryApartment PropertyCategory = "Apartment"
	CategoryPenthouse PropertyCategory = "Penthouse"
)

// Section names used by the public site to bucket categories.
const (
	SectionVillas     = "villas"
	SectionApartments = "apartments"
)

var sectionCategories = map[string][]PropertyCategory{
	SectionVillas:     {CategoryVilla, CategorySemi, CategoryTownhouse},
	SectionApartments: {CategoryApartment, CategoryPenthouse},
}

// SectionCategories returns the categories shown under a site section, or nil for an unknown section.
func SectionCategories(section string) []PropertyCategory {
	return sectionCategories[section]
}

// AgentSnapshot is the listing agent as printed on the property page at creation time.
type AgentSnapshot struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Image string `json:"image"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Property struct {
	ID          int              `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Location    string           `json:"location"`
	City        string           `json:"city"`
	Bedrooms    int              `json:"bedrooms"`
	Bathrooms   int              `json:"bathrooms"`
	Area        float64          `json:"area"`
	Category    PropertyCategory `json:"type"`
	Status      PropertyStatus   `json:"status"`
	Images      []string         `json:"images"`
	Amenities   []string         `json:"amenities,omitempty"`
	Developer   string           `json:"developer"`
	Agent       AgentSnapshot    `json:"agent"`
	Coordinates Coordinates      `json:"coordinates"`
	IsFeatured  bool             `json:"isFeatured"`
	CreatedAt   time.Time        `json:"createdAt"`
	ViewCount   int              `json:"viewCount"`
	LastViewed  *time.Time       `json:"lastViewed,omitempty"`
	Favorites   int              `json:"favorites"`
}

// PropertyInput carries the caller-owned fields of a new listing.
type PropertyInput struct {
	Title       string           `json:"title" validate:"required,max=200"`
	Description string           `json:"description"`
	Price       float64          `json:"price" validate:"gte=0"`
	Location    string           `json:"location" validate:"required"`
	City        string           `json:"city"`
	Bedrooms    int              `json:"bedrooms" validate:"gte=0"`
	Bathrooms   int              `json:"bathrooms" validate:"gte=0"`
	Area        float64          `json:"area" validate:"gte=0"`
	Category    PropertyCategory `json:"type" validate:"required,oneof=Villa Semi Townhouse Apartment Penthouse"`
	Status      PropertyStatus   `json:"status" validate:"omitempty,oneof='Now Selling' 'Coming Soon' 'Sold Out'"`
	Images      []string         `json:"images"`
	Amenities   []string         `json:"amenities"`
	Developer   string           `json:"developer"`
	Agent       AgentSnapshot    `json:"agent"`
	Coordinates Coordinates      `json:"coordinates"`
	IsFeatured  bool             `json:"isFeatured"`
}

// PropertyPatch updates a listing. Nil fields are left untouched; identity, creation time
// and view counters are not patchable.
type PropertyPatch struct {
	Title       *string           `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string           `json:"description"`
	Price       *float64          `json:"price" validate:"omitempty,gte=0"`
	Location    *string           `json:"location" validate:"omitempty,min=1"`
	City        *string           `json:"city"`
	Bedrooms    *int              `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms   *int              `json:"bathrooms" validate:"omitempty,gte=0"`
	Area        *float64          `json:"area" validate:"omitempty,gte=0"`
	Category    *PropertyCategory `json:"type" validate:"omitempty,oneof=Villa Semi Townhouse Apartment Penthouse"`
	Status      *PropertyStatus   `json:"status" validate:"omitempty,oneof='Now Selling' 'Coming Soon' 'Sold Out'"`
	Images      []string          `json:"images"`
	Amenities   []string          `json:"amenities"`
	Developer   *string           `json:"developer"`
	Agent       *AgentSnapshot    `json:"agent"`
	Coordinates *Coordinates      `json:"coordinates"`
	IsFeatured  *bool             `json:"isFeatured"`
}

// ViewsSnapshot is the month-over-month baseline for aggregate listing views.
type ViewsSnapshot struct {
	LastMonthViews    int       `json:"lastMonthViews"`
	CurrentMonthViews int       `json:"currentMonthViews"`
	LastUpdated       time.Time `json:"lastUpdated"`
}
