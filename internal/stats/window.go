// Package stats holds the month-over-month arithmetic shared by every repository.
//
// A "month" is a rolling 30-day window ending now: the current window is
// (now-30d, now] and the previous one is (now-60d, now-30d].
package stats

import (
	"math"
	"time"

	"estate-admin/internal/domain"
)

const Span = 30 * 24 * time.Hour

type Window struct {
	Now time.Time
}

func At(now time.Time) Window { return Window{Now: now} }

// Start is the exclusive lower bound of the current window.
func (w Window) Start() time.Time { return w.Now.Add(-Span) }

// PrevStart is the exclusive lower bound of the previous window.
func (w Window) PrevStart() time.Time { return w.Now.Add(-2 * Span) }

func (w Window) InCurrent(t time.Time) bool {
	return t.After(w.Start()) && !t.After(w.Now)
}

func (w Window) InPrevious(t time.Time) bool {
	return t.After(w.PrevStart()) && !t.After(w.Start())
}

// Before reports whether t falls on or before the start of the current window.
func (w Window) Before(t time.Time) bool {
	return !t.After(w.Start())
}

// Change is the percent change from previous to current, rounded to one decimal.
// A zero previous value counts as a 100% increase.
func Change(current, previous int) float64 {
	if previous == 0 {
		return 100
	}
	pct := float64(current-previous) / float64(previous) * 100
	return math.Round(pct*10) / 10
}

func NewStat(total, current, previous int) domain.Stat {
	ch := Change(current, previous)
	trend := domain.TrendIncrease
	if ch < 0 {
		trend = domain.TrendDecrease
	}
	return domain.Stat{Total: total, MonthlyChange: ch, Trend: trend}
}

// CountCreated counts the items created in the current and previous windows.
func CountCreated[T any](w Window, items []T, createdAt func(T) time.Time) (current, previous int) {
	for _, it := range items {
		t := createdAt(it)
		switch {
		case w.InCurrent(t):
			current++
		case w.InPrevious(t):
			previous++
		}
	}
	return current, previous
}
