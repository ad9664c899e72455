package repo

import (
	"context"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"estate-admin/internal/domain"
	"estate-admin/internal/seed"
	"estate-admin/internal/stats"
	"estate-admin/internal/store"
)

// firstPropertyID is assigned when the collection is empty.
const firstPropertyID = 1

type PropertyRepo struct {
	props *store.Collection[domain.Property]
	views *store.Record[domain.ViewsSnapshot]
	opt   options
}

func NewPropertyRepo(b store.Backend, opts ...Option) *PropertyRepo {
	o := buildOptions(opts)
	r := &PropertyRepo{opt: o}
	r.props = store.NewCollection(b, store.KeyProperties, r.seedProperties, o.log)
	r.views = store.NewRecord(b, store.KeyViews, func() domain.ViewsSnapshot { return seed.Views(o.now()) }, o.log)
	return r
}

func (r *PropertyRepo) seedProperties() []domain.Property {
	if r.opt.noSeed {
		return []domain.Property{}
	}
	return seed.Properties(r.opt.now())
}

func (r *PropertyRepo) GetAll(ctx context.Context) ([]domain.Property, error) {
	return r.props.Load(ctx)
}

// GetByID returns nil, nil when id is unknown.
func (r *PropertyRepo) GetByID(ctx context.Context, id int) (*domain.Property, error) {
	items, err := r.props.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(items, func(p *domain.Property) bool { return p.ID == id })
	if i < 0 {
		return nil, nil
	}
	return &items[i], nil
}

func (r *PropertyRepo) where(ctx context.Context, keep func(*domain.Property) bool) ([]domain.Property, error) {
	items, err := r.props.Load(ctx)
	if err != nil {
		return nil, err
	}
	return filter(items, keep), nil
}

func (r *PropertyRepo) GetByCategory(ctx context.Context, c domain.PropertyCategory) ([]domain.Property, error) {
	return r.where(ctx, func(p *domain.Property) bool { return p.Category == c })
}

// GetBySection returns the listings of a site section ("villas" or "apartments").
// An unknown section matches nothing.
func (r *PropertyRepo) GetBySection(ctx context.Context, section string) ([]domain.Property, error) {
	cats := domain.SectionCategories(section)
	return r.where(ctx, func(p *domain.Property) bool { return slices.Contains(cats, p.Category) })
}

func (r *PropertyRepo) GetByStatus(ctx context.Context, s domain.PropertyStatus) ([]domain.Property, error) {
	return r.where(ctx, func(p *domain.Property) bool { return p.Status == s })
}

// GetByLocation matches q case-insensitively against location and city.
func (r *PropertyRepo) GetByLocation(ctx context.Context, q string) ([]domain.Property, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	return r.where(ctx, func(p *domain.Property) bool {
		return q == "" ||
			strings.Contains(strings.ToLower(p.Location), q) ||
			strings.Contains(strings.ToLower(p.City), q)
	})
}

func (r *PropertyRepo) GetFeatured(ctx context.Context) ([]domain.Property, error) {
	return r.where(ctx, func(p *domain.Property) bool { return p.IsFeatured })
}

// Add stores a new listing with id max+1, createdAt now and no views.
func (r *PropertyRepo) Add(ctx context.Context, in domain.PropertyInput) (*domain.Property, error) {
	if err := validateInput(in); err != nil {
		r.opt.log.Debug("property rejected", zap.Error(err))
		return nil, err
	}
	items, err := r.props.Load(ctx)
	if err != nil {
		return nil, err
	}
	id := firstPropertyID
	for _, p := range items {
		if p.ID >= id {
			id = p.ID + 1
		}
	}
	status := in.Status
	if status == "" {
		status = domain.PropertyNowSelling
	}
	p := domain.Property{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Location:    in.Location,
		City:        in.City,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		Area:        in.Area,
		Category:    in.Category,
		Status:      status,
		Images:      nonNil(in.Images),
		Amenities:   in.Amenities,
		Developer:   in.Developer,
		Agent:       in.Agent,
		Coordinates: in.Coordinates,
		IsFeatured:  in.IsFeatured,
		CreatedAt:   r.opt.now(),
	}
	items = append(items, p)
	if err := r.props.Save(ctx, items); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PropertyRepo) mutate(ctx context.Context, id int, fn func(p *domain.Property)) (*domain.Property, error) {
	items, err := r.props.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(items, func(p *domain.Property) bool { return p.ID == id })
	if i < 0 {
		return nil, nil
	}
	fn(&items[i])
	if err := r.props.Save(ctx, items); err != nil {
		return nil, err
	}
	return &items[i], nil
}

// Update applies patch. It returns nil, nil when id is unknown.
func (r *PropertyRepo) Update(ctx context.Context, id int, patch domain.PropertyPatch) (*domain.Property, error) {
	if err := validateInput(patch); err != nil {
		return nil, err
	}
	return r.mutate(ctx, id, func(p *domain.Property) {
		setIf(&p.Title, patch.Title)
		setIf(&p.Description, patch.Description)
		setIf(&p.Price, patch.Price)
		setIf(&p.Location, patch.Location)
		setIf(&p.City, patch.City)
		setIf(&p.Bedrooms, patch.Bedrooms)
		setIf(&p.Bathrooms, patch.Bathrooms)
		setIf(&p.Area, patch.Area)
		setIf(&p.Category, patch.Category)
		setIf(&p.Status, patch.Status)
		setIf(&p.Developer, patch.Developer)
		setIf(&p.Agent, patch.Agent)
		setIf(&p.Coordinates, patch.Coordinates)
		setIf(&p.IsFeatured, patch.IsFeatured)
		if patch.Images != nil {
			p.Images = patch.Images
		}
		if patch.Amenities != nil {
			p.Amenities = patch.Amenities
		}
	})
}

// Delete reports whether a listing was removed.
func (r *PropertyRepo) Delete(ctx context.Context, id int) (bool, error) {
	items, err := r.props.Load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(items, func(p *domain.Property) bool { return p.ID == id })
	if i < 0 {
		return false, nil
	}
	if err := r.props.Save(ctx, slices.Delete(items, i, i+1)); err != nil {
		return false, err
	}
	return true, nil
}

// TrackView counts one view. It returns nil, nil when id is unknown.
func (r *PropertyRepo) TrackView(ctx context.Context, id int) (*domain.Property, error) {
	now := r.opt.now()
	return r.mutate(ctx, id, func(p *domain.Property) {
		p.ViewCount++
		p.LastViewed = &now
	})
}

func (r *PropertyRepo) AddFavorite(ctx context.Context, id int) (*domain.Property, error) {
	return r.mutate(ctx, id, func(p *domain.Property) { p.Favorites++ })
}

// RemoveFavorite never takes the counter below zero.
func (r *PropertyRepo) RemoveFavorite(ctx context.Context, id int) (*domain.Property, error) {
	return r.mutate(ctx, id, func(p *domain.Property) { p.Favorites = max(0, p.Favorites-1) })
}

func (r *PropertyRepo) ViewsData(ctx context.Context) (domain.ViewsSnapshot, error) {
	return r.views.Load(ctx)
}

// UpdateViewsData refreshes the views baseline: once the snapshot is a full window old,
// the current figure becomes last month's, then current is set to the live total.
func (r *PropertyRepo) UpdateViewsData(ctx context.Context) (domain.ViewsSnapshot, error) {
	items, err := r.props.Load(ctx)
	if err != nil {
		return domain.ViewsSnapshot{}, err
	}
	return r.updateViews(ctx, totalViews(items))
}

func (r *PropertyRepo) updateViews(ctx context.Context, total int) (domain.ViewsSnapshot, error) {
	snap, err := r.views.Load(ctx)
	if err != nil {
		return snap, err
	}
	now := r.opt.now()
	if now.Sub(snap.LastUpdated) >= stats.Span {
		snap.LastMonthViews = snap.CurrentMonthViews
		snap.LastUpdated = now
	}
	snap.CurrentMonthViews = total
	if err := r.views.Save(ctx, snap); err != nil {
		return snap, err
	}
	return snap, nil
}

// GetStats counts listings and views month over month. It refreshes the views baseline.
func (r *PropertyRepo) GetStats(ctx context.Context) (domain.PropertyStats, error) {
	items, err := r.props.Load(ctx)
	if err != nil {
		return domain.PropertyStats{}, err
	}
	cur, prev := stats.CountCreated(stats.At(r.opt.now()), items,
		func(p domain.Property) time.Time { return p.CreatedAt })
	total := totalViews(items)
	snap, err := r.updateViews(ctx, total)
	if err != nil {
		return domain.PropertyStats{}, err
	}
	return domain.PropertyStats{
		Properties: stats.NewStat(len(items), cur, prev),
		Views:      stats.NewStat(total, snap.CurrentMonthViews, snap.LastMonthViews),
	}, nil
}

// ResetAll restores the default listings and views baseline.
func (r *PropertyRepo) ResetAll(ctx context.Context) error {
	if err := r.props.Save(ctx, r.seedProperties()); err != nil {
		return err
	}
	r.opt.log.Info("properties reset")
	return r.views.Save(ctx, seed.Views(r.opt.now()))
}

func totalViews(items []domain.Property) int {
	n := 0
	for _, p := range items {
		n += p.ViewCount
	}
	return n
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
