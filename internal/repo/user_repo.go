package repo

import (
	"context"
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

type UserRepo struct {
	users *store.Collection[domain.User]
	opt   options
}

func NewUserRepo(b store.Backend, opts ...Option) *UserRepo {
	o := buildOptions(opts)
	r := &UserRepo{opt: o}
	r.users = store.NewCollection(b, store.KeyUsers, func() []domain.User {
		if o.noSeed {
			return []domain.User{}
		}
		return seed.Users(o.now())
	}, o.log)
	return r
}

func (r *UserRepo) GetAll(ctx context.Context) ([]domain.User, error) {
	return r.users.Load(ctx)
}

// List pages through users, newest first.
func (r *UserRepo) List(ctx context.Context, offset, limit int) ([]domain.User, int, error) {
	items, err := r.users.Load(ctx)
	if err != nil {
		return nil, 0, err
	}
	slices.SortStableFunc(items, newest(func(u domain.User) time.Time { return u.CreatedAt }))
	total := len(items)
	offset = min(max(offset, 0), total)
	end := total
	if limit > 0 {
		end = min(offset+limit, total)
	}
	return items[offset:end], total, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.find(ctx, func(u *domain.User) bool { return u.ID == id })
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(ctx, func(u *domain.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *UserRepo) find(ctx context.Context, match func(*domain.User) bool) (*domain.User, error) {
	items, err := r.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(items, match)
	if i < 0 {
		return nil, nil
	}
	return &items[i], nil
}

func (r *UserRepo) GetByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	items, err := r.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	return filter(items, func(u *domain.User) bool { return u.Role == role }), nil
}

func (r *UserRepo) GetByStatus(ctx context.Context, status domain.UserStatus) ([]domain.User, error) {
	items, err := r.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	return filter(items, func(u *domain.User) bool { return u.Status == status }), nil
}

// Create stores a new user with the permissions of its role.
func (r *UserRepo) Create(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	if err := validateInput(in); err != nil {
		r.opt.log.Debug("user rejected", zap.Error(err))
		return nil, err
	}
	items, err := r.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	if emailTaken(items, in.Email, "") {
		return nil, domain.ErrEmailTaken
	}
	status := in.Status
	if status == "" {
		status = domain.UserActive
	}
	now := r.opt.now()
	u := domain.User{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Role:        in.Role,
		Status:      status,
		Permissions: domain.PermissionsFor(in.Role),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.users.Save(ctx, append(items, u)); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) mutate(ctx context.Context, id string, fn func(items []domain.User, u *domain.User) error) (*domain.User, error) {
	items, err := r.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(items, func(u *domain.User) bool { return u.ID == id })
	if i < 0 {
		return nil, nil
	}
	u := &items[i]
	if err := fn(items, u); err != nil {
		return nil, err
	}
	u.UpdatedAt = nextStamp(u.UpdatedAt, r.opt.now())
	if err := r.users.Save(ctx, items); err != nil {
		return nil, err
	}
	return u, nil
}

// Update applies patch. Changing the role resets permissions to that role's set;
// otherwise permissions are left alone.
func (r *UserRepo) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	if err := validateInput(patch); err != nil {
		return nil, err
	}
	return r.mutate(ctx, id, func(items []domain.User, u *domain.User) error {
		if patch.Email != nil && emailTaken(items, *patch.Email, u.ID) {
			return domain.ErrEmailTaken
		}
		setIf(&u.Name, patch.Name)
		setIf(&u.Email, patch.Email)
		setIf(&u.Phone, patch.Phone)
		setIf(&u.Status, patch.Status)
		if patch.Role != nil {
			u.Role = *patch.Role
			u.Permissions = domain.PermissionsFor(u.Role)
		}
		return nil
	})
}

func (r *UserRepo) UpdateStatus(ctx context.Context, id string, status domain.UserStatus) (*domain.User, error) {
	return r.Update(ctx, id, domain.UserPatch{Status: &status})
}

// RecordLogin stamps lastLogin with the current time.
func (r *UserRepo) RecordLogin(ctx context.Context, id string) (*domain.User, error) {
	return r.mutate(ctx, id, func(_ []domain.User, u *domain.User) error {
		t := r.opt.now()
		u.LastLogin = &t
		return nil
	})
}

func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	items, err := r.users.Load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(items, func(u *domain.User) bool { return u.ID == id })
	if i < 0 {
		return false, nil
	}
	if err := r.users.Save(ctx, slices.Delete(items, i, i+1)); err != nil {
		return false, err
	}
	return true, nil
}

// HasPermission is false for unknown and inactive users.
func (r *UserRepo) HasPermission(ctx context.Context, id string, p domain.Permission) (bool, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil || u == nil {
		return false, err
	}
	return u.Status == domain.UserActive && u.HasPermission(p), nil
}

// GetStats counts active users. The change compares them with the active users
// that already existed before the current window started.
func (r *UserRepo) GetStats(ctx context.Context) (domain.Stat, error) {
	items, err := r.users.Load(ctx)
	if err != nil {
		return domain.Stat{}, err
	}
	w := stats.At(r.opt.now())
	active, before := 0, 0
	for _, u := range items {
		if u.Status != domain.UserActive {
			continue
		}
		active++
		if w.Before(u.CreatedAt) {
			before++
		}
	}
	return stats.NewStat(active, active, before), nil
}

func emailTaken(items []domain.User, email, except string) bool {
	return slices.ContainsFunc(items, func(u domain.User) bool {
		return u.ID != except && strings.EqualFold(u.Email, email)
	})
}

// newest sorts by creation time, most recent first.
func newest[T any](createdAt func(T) time.Time) func(a, b T) int {
	return func(a, b T) int { return createdAt(b).Compare(createdAt(a)) }
}
