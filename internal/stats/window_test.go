package stats

import (
	"testing"
	"time"

	"estate-admin/internal/domain"
)

func TestChange(t *testing.T) {
	tests := []struct {
		name     string
		cur, old int
		want     float64
	}{
		{"no previous counts as full increase", 3, 0, 100},
		{"both empty", 0, 0, 100},
		{"growth", 3, 2, 50},
		{"decline", 1, 4, -75},
		{"rounded to one decimal", 2, 3, -33.3},
		{"flat", 5, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Change(tt.cur, tt.old)
			if got != tt.want {
				t.Fatalf("Change(%d, %d) = %v, want %v", tt.cur, tt.old, got, tt.want)
			}
		})
	}
}

func TestNewStatTrend(t *testing.T) {
	if s := NewStat(10, 1, 4); s.Trend != domain.TrendDecrease || s.Total != 10 {
		t.Fatalf("unexpected stat %+v", s)
	}
	if s := NewStat(10, 0, 0); s.Trend != domain.TrendIncrease || s.MonthlyChange != 100 {
		t.Fatalf("unexpected stat %+v", s)
	}
}

func TestCountCreated(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	w := At(now)
	times := []time.Time{
		now,                            // current, inclusive upper bound
		now.Add(-Span + time.Second),   // current
		now.Add(-Span),                 // previous: the boundary belongs to the older window
		now.Add(-2*Span + time.Second), // previous
		now.Add(-2 * Span),             // outside both
		now.Add(time.Hour),             // future, outside both
	}
	cur, prev := CountCreated(w, times, func(t time.Time) time.Time { return t })
	if cur != 2 || prev != 2 {
		t.Fatalf("got current=%d previous=%d, want 2/2", cur, prev)
	}
	if !w.Before(now.Add(-Span)) || w.Before(now) {
		t.Fatal("Before boundary is wrong")
	}
}
