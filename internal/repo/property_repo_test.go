package repo

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"estate-admin/internal/domain"
)

func ids(ps []domain.Property) []int {
	out := make([]int, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestPropertyLifecycle(t *testing.T) {
	ctx := context.Background()
	mem, _, opts := newEnv(t)
	r := NewPropertyRepo(mem, opts...)

	p, err := r.Add(ctx, domain.PropertyInput{
		Title:    "Test Apartment",
		Price:    1_000_000,
		Location: "Business Bay",
		Category: domain.CategoryApartment,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if p.ViewCount != 0 || !p.CreatedAt.Equal(t0) || p.Status != domain.PropertyNowSelling {
		t.Fatalf("defaults not applied: %+v", p)
	}

	apts, err := r.GetByCategory(ctx, domain.CategoryApartment)
	if err != nil || !slices.Contains(ids(apts), p.ID) {
		t.Fatalf("GetByCategory = %v, %v", ids(apts), err)
	}

	for range 3 {
		if got, err := r.TrackView(ctx, p.ID); err != nil || got == nil {
			t.Fatalf("TrackView: %v, %v", got, err)
		}
	}
	got, _ := r.GetByID(ctx, p.ID)
	if got.ViewCount != 3 || got.LastViewed == nil {
		t.Fatalf("after 3 views: %+v", got)
	}

	ok, err := r.Delete(ctx, p.ID)
	if !ok || err != nil {
		t.Fatalf("Delete = %v, %v", ok, err)
	}
	if got, _ := r.GetByID(ctx, p.ID); got != nil {
		t.Fatalf("deleted listing still readable: %+v", got)
	}
	apts, _ = r.GetByCategory(ctx, domain.CategoryApartment)
	if slices.Contains(ids(apts), p.ID) {
		t.Fatal("deleted listing still listed")
	}
}

func TestPropertyAddAssignsNextID(t *testing.T) {
	ctx := context.Background()
	in := domain.PropertyInput{Title: "x", Location: "y", Category: domain.CategoryVilla}

	mem, _, opts := newEnv(t, WithoutSeed())
	empty := NewPropertyRepo(mem, opts...)
	for want := 1; want <= 2; want++ {
		p, err := empty.Add(ctx, in)
		if err != nil || p.ID != want {
			t.Fatalf("empty store: got %+v, %v; want id %d", p, err, want)
		}
	}

	mem, _, opts = newEnv(t)
	seeded := NewPropertyRepo(mem, opts...)
	p, err := seeded.Add(ctx, in)
	if err != nil || p.ID != 6 {
		t.Fatalf("seeded store: got %+v, %v; want id 6", p, err)
	}
}

func TestPropertyAddValidation(t *testing.T) {
	mem, _, opts := newEnv(t)
	r := NewPropertyRepo(mem, opts...)
	cases := map[string]domain.PropertyInput{
		"missing title":  {Location: "y", Category: domain.CategoryVilla},
		"bad category":   {Title: "x", Location: "y", Category: "Castle"},
		"bad status":     {Title: "x", Location: "y", Category: domain.CategoryVilla, Status: "Gone"},
		"negative price": {Title: "x", Location: "y", Category: domain.CategoryVilla, Price: -1},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := r.Add(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("got %v, want ErrValidation", err)
			}
		})
	}
	all, _ := r.GetAll(context.Background())
	if len(all) != 5 {
		t.Fatalf("rejected input changed the collection: %d listings", len(all))
	}
}

func TestTrackViewIsMonotonic(t *testing.T) {
	ctx := context.Background()
	mem, _, opts := newEnv(t)
	r := NewPropertyRepo(mem, opts...)
	before, _ := r.GetByID(ctx, 1)
	const n = 7
	for range n {
		if _, err := r.TrackView(ctx, 1); err != nil {
			t.Fatal(err)
		}
	}
	after, _ := r.GetByID(ctx, 1)
	if after.ViewCount != before.ViewCount+n {
		t.Fatalf("viewCount %d -> %d, want +%d", before.ViewCount, after.ViewCount, n)
	}
	if got, err := r.TrackView(ctx, 999); got != nil || err != nil {
		t.Fatalf("unknown id: got %v, %v", got, err)
	}
}

func TestPropertyDeleteAbsent(t *testing.T) {
	ctx := context.Background()
	mem, _, opts := newEnv(t)
	r := NewPropertyRepo(mem, opts...)
	ok, err := r.Delete(ctx, 999)
	if ok || err != nil {
		t.Fatalf("Delete(999) = %v, %v", ok, err)
	}
	all, _ := r.GetAll(ctx)
	if len(all) != 5 {
		t.Fatalf("collection changed: %d", len(all))
	}
	if ok, _ := r.Delete(ctx, 3); !ok {
		t.Fatal("Delete(3) = false")
	}
	all, _ = r.GetAll(ctx)
	if len(all) != 4 {
		t.Fatalf("want 4 listings, got %d", len(all))
	}
}

func TestPropertyQueries(t *testing.T) {
	ctx := context.Background()
	mem, _, opts := newEnv(t)
	r := NewPropertyRepo(mem, opts...)

	tests := []struct {
		name string
		get  func() ([]domain.Property, error)
		want []int
	}{
		{"villas", func() ([]domain.Property, error) { return r.GetBySection(ctx, domain.SectionVillas) }, []int{1, 4, 5}},
		{"apartments", func() ([]domain.Property, error) { return r.GetBySection(ctx, domain.SectionApartments) }, []int{2, 3}},
		{"unknown section", func() ([]domain.Property, error) { return r.GetBySection(ctx, "castles") }, []int{}},
		{"featured", func() ([]domain.Property, error) { return r.GetFeatured(ctx) }, []int{1, 2}},
		{"sold out", func() ([]domain.Property, error) { return r.GetByStatus(ctx, domain.PropertySoldOut) }, []int{5}},
		{"location", func() ([]domain.Property, error) { return r.GetByLocation(ctx, "  jumeirah ") }, []int{1, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.get()
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(ids(got), tt.want) {
				t.Fatalf("got %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestPropertyUpdate(t *testing.T) {
	ctx := context.Background()
	mem, _, opts := newEnv(t)
	r := NewPropertyRepo(mem, opts...)

	price := 5_000_000.0
	status := domain.PropertySoldOut
	p, err := r.Update(ctx, 1, domain.PropertyPatch{Price: &price, Status: &status})
	if err != nil || p == nil {
		t.Fatalf("Update: %v, %v", p, err)
	}
	if p.Price != price || p.Status != status || p.Title != "Palm Crest Villa" || p.ViewCount != 42 {
		t.Fatalf("patch misapplied: %+v", p)
	}

	bad := domain.PropertyStatus("Gone")
	if _, err := r.Update(ctx, 1, domain.PropertyPatch{Status: &bad}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
	if got, err := r.Update(ctx, 999, domain.PropertyPatch{Price: &price}); got != nil || err != nil {
		t.Fatalf("unknown id: %v, %v", got, err)
	}
}

func TestFavoritesFloorAtZero(t *testing.T) {
	ctx := context.Background()
	mem, _, opts := newEnv(t)
	r := NewPropertyRepo(mem, opts...)
	if _, err := r.AddFavorite(ctx, 2); err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if _, err := r.RemoveFavorite(ctx, 2); err != nil {
			t.Fatal(err)
		}
	}
	p, _ := r.GetByID(ctx, 2)
	if p.Favorites != 0 {
		t.Fatalf("favorites = %d", p.Favorites)
	}
}

func TestPropertyStats(t *testing.T) {
	ctx := context.Background()
	mem, clk, opts := newEnv(t)
	r := NewPropertyRepo(mem, opts...)

	// Seed: 2 listings in the current window, 2 in the previous, 1 older.
	st, err := r.GetStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.Properties != (domain.Stat{Total: 5, MonthlyChange: 0, Trend: domain.TrendIncrease}) {
		t.Fatalf("properties stat = %+v", st.Properties)
	}
	// The views baseline starts at zero, so the first figure is a 100% rise.
	if st.Views != (domain.Stat{Total: 342, MonthlyChange: 100, Trend: domain.TrendIncrease}) {
		t.Fatalf("views stat = %+v", st.Views)
	}

	clk.Advance(31 * 24 * time.Hour)
	if _, err := r.TrackView(ctx, 1); err != nil {
		t.Fatal(err)
	}
	st, _ = r.GetStats(ctx)
	if st.Views.Total != 343 || st.Views.MonthlyChange != 0.3 {
		t.Fatalf("views after rollover = %+v", st.Views)
	}
	snap, _ := r.ViewsData(ctx)
	if snap.LastMonthViews != 342 || snap.CurrentMonthViews != 343 || !snap.LastUpdated.Equal(clk.Now()) {
		t.Fatalf("snapshot = %+v", snap)
	}
	// Listings moved one window back: nothing new, two in the previous window.
	if st.Properties.MonthlyChange != -100 || st.Properties.Trend != domain.TrendDecrease {
		t.Fatalf("properties after a month = %+v", st.Properties)
	}
}

func TestPropertyStatsEmptyPreviousMonth(t *testing.T) {
	ctx := context.Background()
	mem, _, opts := newEnv(t, WithoutSeed())
	r := NewPropertyRepo(mem, opts...)
	if _, err := r.Add(ctx, domain.PropertyInput{Title: "x", Location: "y", Category: domain.CategorySemi}); err != nil {
		t.Fatal(err)
	}
	st, err := r.GetStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.Properties.MonthlyChange != 100 || st.Properties.Trend != domain.TrendIncrease {
		t.Fatalf("got %+v", st.Properties)
	}
}

func TestPropertyResetAll(t *testing.T) {
	ctx := context.Background()
	mem, _, opts := newEnv(t)
	r := NewPropertyRepo(mem, opts...)
	_, _ = r.Delete(ctx, 1)
	_, _ = r.TrackView(ctx, 2)
	if err := r.ResetAll(ctx); err != nil {
		t.Fatal(err)
	}
	all, _ := r.GetAll(ctx)
	if !slices.Equal(ids(all), []int{1, 2, 3, 4, 5}) || all[1].ViewCount != 87 {
		t.Fatalf("reset left %v", ids(all))
	}
}
