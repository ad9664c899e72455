package repo

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"estate-admin/internal/domain"
	"estate-admin/internal/store"
)

// UserLookup is the one cross-repository read: agents must point at an Agent-role user.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// monthKey buckets transactions in monthlyStats.
const monthKey = "2006-01"

type AgentRepo struct {
	agents *store.Collection[domain.Agent]
	users  UserLookup
	opt    options
}

// NewAgentRepo starts with no agents: they can only be created against an existing user.
func NewAgentRepo(b store.Backend, users UserLookup, opts ...Option) *AgentRepo {
	o := buildOptions(opts)
	return &AgentRepo{
		agents: store.NewCollection[domain.Agent](b, store.KeyAgents, nil, o.log),
		users:  users,
		opt:    o,
	}
}

func (r *AgentRepo) GetAll(ctx context.Context) ([]domain.Agent, error) {
	return r.agents.Load(ctx)
}

func (r *AgentRepo) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	return r.find(ctx, func(a *domain.Agent) bool { return a.ID == id })
}

func (r *AgentRepo) GetByUserID(ctx context.Context, userID string) (*domain.Agent, error) {
	return r.find(ctx, func(a *domain.Agent) bool { return a.UserID == userID })
}

func (r *AgentRepo) GetByStatus(ctx context.Context, status domain.AgentStatus) ([]domain.Agent, error) {
	return r.where(ctx, func(a *domain.Agent) bool { return a.Status == status })
}

func (r *AgentRepo) GetBySpecialization(ctx context.Context, spec domain.Specialization) ([]domain.Agent, error) {
	return r.where(ctx, func(a *domain.Agent) bool { return slices.Contains(a.Specializations, spec) })
}

func (r *AgentRepo) where(ctx context.Context, keep func(*domain.Agent) bool) ([]domain.Agent, error) {
	items, err := r.agents.Load(ctx)
	if err != nil {
		return nil, err
	}
	return filter(items, keep), nil
}

func (r *AgentRepo) find(ctx context.Context, match func(*domain.Agent) bool) (*domain.Agent, error) {
	items, err := r.agents.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(items, match)
	if i < 0 {
		return nil, nil
	}
	return &items[i], nil
}

// Create fails with domain.ErrAgentUserInvalid unless in.UserID names an Agent-role user.
func (r *AgentRepo) Create(ctx context.Context, in domain.AgentInput) (*domain.Agent, error) {
	if err := validateInput(in); err != nil {
		r.opt.log.Debug("agent rejected", zap.Error(err))
		return nil, err
	}
	u, err := r.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("lookup user %s: %w", in.UserID, err)
	}
	if u == nil || u.Role != domain.RoleAgent {
		r.opt.log.Debug("agent rejected", zap.String("userId", in.UserID))
		return nil, domain.ErrAgentUserInvalid
	}
	items, err := r.agents.Load(ctx)
	if err != nil {
		return nil, err
	}
	now := r.opt.now()
	a := domain.Agent{
		ID:                 uuid.NewString(),
		UserID:             in.UserID,
		Name:               in.Name,
		Title:              in.Title,
		Email:              in.Email,
		Phone:              in.Phone,
		Image:              in.Image,
		Bio:                in.Bio,
		LicenseNumber:      in.LicenseNumber,
		LicenseExpiry:      in.LicenseExpiry,
		Specializations:    distinct(in.Specializations),
		Languages:          distinct(in.Languages),
		Performance:        domain.Performance{MonthlyStats: []domain.MonthlyStat{}},
		AssignedProperties: []string{},
		Schedule:           domain.DefaultSchedule(),
		Documents:          []domain.Document{},
		Certifications:     []domain.Certification{},
		PastTransactions:   []domain.Transaction{},
		Status:             domain.AgentActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := r.agents.Save(ctx, append(items, a)); err != nil {
		return nil, err
	}
	return &a, nil
}

// mutate loads, edits one agent and writes the collection back. Unknown ids yield nil, nil.
func (r *AgentRepo) mutate(ctx context.Context, id string, fn func(a *domain.Agent) error) (*domain.Agent, error) {
	items, err := r.agents.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(items, func(a *domain.Agent) bool { return a.ID == id })
	if i < 0 {
		return nil, nil
	}
	a := &items[i]
	if err := fn(a); err != nil {
		return nil, err
	}
	a.UpdatedAt = nextStamp(a.UpdatedAt, r.opt.now())
	if err := r.agents.Save(ctx, items); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AgentRepo) Update(ctx context.Context, id string, patch domain.AgentPatch) (*domain.Agent, error) {
	if err := validateInput(patch); err != nil {
		return nil, err
	}
	return r.mutate(ctx, id, func(a *domain.Agent) error {
		setIf(&a.Name, patch.Name)
		setIf(&a.Title, patch.Title)
		setIf(&a.Email, patch.Email)
		setIf(&a.Phone, patch.Phone)
		setIf(&a.Image, patch.Image)
		setIf(&a.Bio, patch.Bio)
		setIf(&a.LicenseNumber, patch.LicenseNumber)
		if patch.LicenseExpiry != nil {
			a.LicenseExpiry = patch.LicenseExpiry
		}
		if patch.Specializations != nil {
			a.Specializations = distinct(patch.Specializations)
		}
		if patch.Languages != nil {
			a.Languages = distinct(patch.Languages)
		}
		return nil
	})
}

func (r *AgentRepo) Delete(ctx context.Context, id string) (bool, error) {
	items, err := r.agents.Load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(items, func(a *domain.Agent) bool { return a.ID == id })
	if i < 0 {
		return false, nil
	}
	if err := r.agents.Save(ctx, slices.Delete(items, i, i+1)); err != nil {
		return false, err
	}
	return true, nil
}

func (r *AgentRepo) UpdateStatus(ctx context.Context, id string, status domain.AgentStatus) (*domain.Agent, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown agent status %q", domain.ErrValidation, status)
	}
	return r.mutate(ctx, id, func(a *domain.Agent) error {
		a.Status = status
		return nil
	})
}

// AssignProperty is idempotent: only the first assignment of a property moves the counters.
func (r *AgentRepo) AssignProperty(ctx context.Context, agentID, propertyID string) (*domain.Agent, error) {
	return r.mutate(ctx, agentID, func(a *domain.Agent) error {
		if slices.Contains(a.AssignedProperties, propertyID) {
			return nil
		}
		a.AssignedProperties = append(a.AssignedProperties, propertyID)
		a.Performance.ActiveListings++
		a.Performance.TotalListings++
		return nil
	})
}

// UnassignProperty drops the property and lowers activeListings, never below zero.
// Unassigning a property the agent does not hold changes nothing.
func (r *AgentRepo) UnassignProperty(ctx context.Context, agentID, propertyID string) (*domain.Agent, error) {
	return r.mutate(ctx, agentID, func(a *domain.Agent) error {
		i := slices.Index(a.AssignedProperties, propertyID)
		if i < 0 {
			return nil
		}
		a.AssignedProperties = slices.Delete(a.AssignedProperties, i, i+1)
		a.Performance.ActiveListings = max(0, a.Performance.ActiveListings-1)
		return nil
	})
}

func (r *AgentRepo) AddCertification(ctx context.Context, agentID string, c domain.Certification) (*domain.Agent, error) {
	if err := validateInput(c); err != nil {
		return nil, err
	}
	return r.mutate(ctx, agentID, func(a *domain.Agent) error {
		c.ID = uuid.NewString()
		c.RecordedAt = r.opt.now()
		a.Certifications = append(a.Certifications, c)
		return nil
	})
}

func (r *AgentRepo) AddDocument(ctx context.Context, agentID string, d domain.Document) (*domain.Agent, error) {
	if err := validateInput(d); err != nil {
		return nil, err
	}
	return r.mutate(ctx, agentID, func(a *domain.Agent) error {
		d.ID = uuid.NewString()
		d.UploadedAt = r.opt.now()
		a.Documents = append(a.Documents, d)
		return nil
	})
}

// UpdatePerformance sets the rating fields. Listing and sales counters are not reachable from here.
func (r *AgentRepo) UpdatePerformance(ctx context.Context, agentID string, patch domain.PerformancePatch) (*domain.Agent, error) {
	if err := validateInput(patch); err != nil {
		return nil, err
	}
	return r.mutate(ctx, agentID, func(a *domain.Agent) error {
		setIf(&a.Performance.AverageRating, patch.AverageRating)
		setIf(&a.Performance.SuccessRate, patch.SuccessRate)
		return nil
	})
}

func (r *AgentRepo) UpdateSchedule(ctx context.Context, agentID string, patch domain.SchedulePatch) (*domain.Agent, error) {
	return r.mutate(ctx, agentID, func(a *domain.Agent) error {
		if patch.AvailableDays != nil {
			a.Schedule.AvailableDays = patch.AvailableDays
		}
		setIf(&a.Schedule.WorkingHours, patch.WorkingHours)
		return nil
	})
}

// AddTransaction records a sale and folds it into the "YYYY-MM" bucket of its date.
func (r *AgentRepo) AddTransaction(ctx context.Context, agentID string, in domain.TransactionInput) (*domain.Agent, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	return r.mutate(ctx, agentID, func(a *domain.Agent) error {
		a.PastTransactions = append(a.PastTransactions, domain.Transaction{
			ID:              uuid.NewString(),
			PropertyID:      in.PropertyID,
			Value:           in.Value,
			TransactionDate: in.TransactionDate,
			ClientName:      in.ClientName,
			RecordedAt:      r.opt.now(),
		})
		perf := &a.Performance
		perf.SoldProperties++
		perf.TotalSalesValue += in.Value

		month := in.TransactionDate.Format(monthKey)
		i := slices.IndexFunc(perf.MonthlyStats, func(m domain.MonthlyStat) bool { return m.Month == month })
		if i < 0 {
			perf.MonthlyStats = append(perf.MonthlyStats, domain.MonthlyStat{Month: month})
			slices.SortStableFunc(perf.MonthlyStats, func(x, y domain.MonthlyStat) int { return cmp.Compare(x.Month, y.Month) })
			i = slices.IndexFunc(perf.MonthlyStats, func(m domain.MonthlyStat) bool { return m.Month == month })
		}
		perf.MonthlyStats[i].SalesCount++
		perf.MonthlyStats[i].SalesValue += in.Value
		return nil
	})
}

// GetTopPerformers ranks by total sales value. Equal values keep collection order.
// A limit below 1 yields no agents.
func (r *AgentRepo) GetTopPerformers(ctx context.Context, limit int) ([]domain.Agent, error) {
	if limit < 1 {
		return []domain.Agent{}, nil
	}
	items, err := r.agents.Load(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(items, func(a, b domain.Agent) int {
		return cmp.Compare(b.Performance.TotalSalesValue, a.Performance.TotalSalesValue)
	})
	return items[:min(limit, len(items))], nil
}

// distinct drops repeated tags, keeping first-seen order. Never nil.
func distinct[T comparable](tags []T) []T {
	out := make([]T, 0, len(tags))
	for _, t := range tags {
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
