package domain

import "time"

type Trend string

const (
	TrendIncrease Trend = "increase"
	TrendDecrease Trend = "decrease"
)

// Stat is a headline number with its month-over-month change in percent.
type Stat struct {
	Total         int     `json:"total"`
	MonthlyChange float64 `json:"monthlyChange"`
	Trend         Trend   `json:"trend"`
}

type PropertyStats struct {
	Properties Stat `json:"properties"`
	Views      Stat `json:"views"`
}

type PopularProperty struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Views     int    `json:"views"`
	Favorites int    `json:"favorites"`
	Inquiries int    `json:"inquiries"`
}

// Report is the flat dashboard export.
type Report struct {
	GeneratedAt       time.Time         `json:"generatedAt"`
	Properties        Stat              `json:"properties"`
	Users             Stat              `json:"users"`
	Inquiries         Stat              `json:"inquiries"`
	Views             Stat              `json:"views"`
	ViewsData         ViewsSnapshot     `json:"viewsData"`
	PopularProperties []PopularProperty `json:"popularProperties"`
}
