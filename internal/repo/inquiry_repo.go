package repo

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"estate-admin/internal/domain"
	"estate-admin/internal/seed"
	"estate-admin/internal/stats"
	"estate-admin/internal/store"
)

type InquiryRepo struct {
	inquiries *store.Collection[domain.Inquiry]
	opt       options
}

// NewInquiryRepo starts empty; SeedDefaults fills in the sample inquiries.
func NewInquiryRepo(b store.Backend, opts ...Option) *InquiryRepo {
	o := buildOptions(opts)
	return &InquiryRepo{
		inquiries: store.NewCollection[domain.Inquiry](b, store.KeyInquiries, nil, o.log),
		opt:       o,
	}
}

func (r *InquiryRepo) GetAll(ctx context.Context) ([]domain.Inquiry, error) {
	return r.inquiries.Load(ctx)
}

func (r *InquiryRepo) GetByID(ctx context.Context, id string) (*domain.Inquiry, error) {
	items, err := r.inquiries.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(items, func(q *domain.Inquiry) bool { return q.ID == id })
	if i < 0 {
		return nil, nil
	}
	return &items[i], nil
}

func (r *InquiryRepo) GetByPropertyID(ctx context.Context, propertyID int) ([]domain.Inquiry, error) {
	items, err := r.inquiries.Load(ctx)
	if err != nil {
		return nil, err
	}
	return filter(items, func(q *domain.Inquiry) bool { return q.PropertyID == propertyID }), nil
}

func (r *InquiryRepo) GetByStatus(ctx context.Context, status domain.InquiryStatus) ([]domain.Inquiry, error) {
	items, err := r.inquiries.Load(ctx)
	if err != nil {
		return nil, err
	}
	return filter(items, func(q *domain.Inquiry) bool { return q.Status == status }), nil
}

// Create stores the inquiry as New, with the matching first history entry in the same write.
func (r *InquiryRepo) Create(ctx context.Context, in domain.InquiryInput) (*domain.Inquiry, error) {
	if err := validateInput(in); err != nil {
		r.opt.log.Debug("inquiry rejected", zap.Error(err))
		return nil, err
	}
	items, err := r.inquiries.Load(ctx)
	if err != nil {
		return nil, err
	}
	snap := in.PropertySnapshot
	if snap.ID == 0 {
		snap.ID = in.PropertyID
	}
	now := r.opt.now()
	q := domain.Inquiry{
		ID:               uuid.NewString(),
		PropertyID:       in.PropertyID,
		PropertySnapshot: snap,
		Name:             in.Name,
		Email:            in.Email,
		Phone:            in.Phone,
		Message:          in.Message,
		Status:           domain.InquiryNew,
		Notes:            []domain.Note{},
		StatusHistory: []domain.StatusChange{
			{Status: domain.InquiryNew, ChangedAt: now, ChangedBy: domain.SystemActor},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.inquiries.Save(ctx, append(items, q)); err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *InquiryRepo) mutate(ctx context.Context, id string, fn func(q *domain.Inquiry, at time.Time)) (*domain.Inquiry, error) {
	items, err := r.inquiries.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(items, func(q *domain.Inquiry) bool { return q.ID == id })
	if i < 0 {
		return nil, nil
	}
	q := &items[i]
	at := nextStamp(q.UpdatedAt, r.opt.now())
	fn(q, at)
	q.UpdatedAt = at
	if err := r.inquiries.Save(ctx, items); err != nil {
		return nil, err
	}
	return q, nil
}

// UpdateStatus sets the status and appends to the history, even when the status is unchanged.
// An empty actor is recorded as the system.
func (r *InquiryRepo) UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus, actor string) (*domain.Inquiry, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown inquiry status %q", domain.ErrValidation, status)
	}
	if actor == "" {
		actor = domain.SystemActor
	}
	return r.mutate(ctx, id, func(q *domain.Inquiry, at time.Time) {
		q.Status = status
		q.StatusHistory = append(q.StatusHistory, domain.StatusChange{Status: status, ChangedAt: at, ChangedBy: actor})
	})
}

func (r *InquiryRepo) AddNote(ctx context.Context, id, content, author string) (*domain.Inquiry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: note content is empty", domain.ErrValidation)
	}
	return r.mutate(ctx, id, func(q *domain.Inquiry, at time.Time) {
		q.Notes = append(q.Notes, domain.Note{ID: uuid.NewString(), Content: content, Author: author, CreatedAt: at})
	})
}

func (r *InquiryRepo) Delete(ctx context.Context, id string) (bool, error) {
	items, err := r.inquiries.Load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(items, func(q *domain.Inquiry) bool { return q.ID == id })
	if i < 0 {
		return false, nil
	}
	if err := r.inquiries.Save(ctx, slices.Delete(items, i, i+1)); err != nil {
		return false, err
	}
	return true, nil
}

func (r *InquiryRepo) GetStats(ctx context.Context) (domain.Stat, error) {
	items, err := r.inquiries.Load(ctx)
	if err != nil {
		return domain.Stat{}, err
	}
	cur, prev := stats.CountCreated(stats.At(r.opt.now()), items,
		func(q domain.Inquiry) time.Time { return q.CreatedAt })
	return stats.NewStat(len(items), cur, prev), nil
}

// SeedDefaults writes the sample inquiries when the collection is empty and
// reports whether it did.
func (r *InquiryRepo) SeedDefaults(ctx context.Context) (bool, error) {
	if r.opt.noSeed {
		return false, nil
	}
	items, err := r.inquiries.Load(ctx)
	if err != nil || len(items) > 0 {
		return false, err
	}
	now := r.opt.now()
	if err := r.inquiries.Save(ctx, seed.Inquiries(now, seed.Properties(now))); err != nil {
		return false, err
	}
	r.opt.log.Info("inquiries seeded")
	return true, nil
}
