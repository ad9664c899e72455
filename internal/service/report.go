// Package service assembles the dashboard report from the repositories.
package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"estate-admin/internal/domain"
)

// PopularLimit is how many listings the report ranks.
const PopularLimit = 5

type PropertySource interface {
	GetAll(ctx context.Context) ([]domain.Property, error)
	GetStats(ctx context.Context) (domain.PropertyStats, error)
	ViewsData(ctx context.Context) (domain.ViewsSnapshot, error)
}

type StatSource interface {
	GetStats(ctx context.Context) (domain.Stat, error)
}

type InquirySource interface {
	StatSource
	GetAll(ctx context.Context) ([]domain.Inquiry, error)
}

type ReportService struct {
	props     PropertySource
	users     StatSource
	inquiries InquirySource
	log       *zap.Logger

	// Clock defaults to time.Now.
	Clock func() time.Time
}

func NewReportService(props PropertySource, users StatSource, inquiries InquirySource, log *zap.Logger) *ReportService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportService{props: props, users: users, inquiries: inquiries, log: log, Clock: time.Now}
}

// Generate re-derives every figure from the current collections.
func (s *ReportService) Generate(ctx context.Context) (*domain.Report, error) {
	ps, err := s.props.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("property stats: %w", err)
	}
	us, err := s.users.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	is, err := s.inquiries.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("inquiry stats: %w", err)
	}
	views, err := s.props.ViewsData(ctx)
	if err != nil {
		return nil, fmt.Errorf("views data: %w", err)
	}
	popular, err := s.popular(ctx)
	if err != nil {
		return nil, err
	}
	rep := &domain.Report{
		GeneratedAt:       s.Clock(),
		Properties:        ps.Properties,
		Users:             us,
		Inquiries:         is,
		Views:             ps.Views,
		ViewsData:         views,
		PopularProperties: popular,
	}
	s.log.Debug("report generated",
		zap.Int("properties", rep.Properties.Total),
		zap.Int("users", rep.Users.Total),
		zap.Int("inquiries", rep.Inquiries.Total))
	return rep, nil
}

// popular ranks listings by views, highest first; ties keep collection order.
func (s *ReportService) popular(ctx context.Context) ([]domain.PopularProperty, error) {
	props, err := s.props.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("properties: %w", err)
	}
	inqs, err := s.inquiries.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("inquiries: %w", err)
	}
	perProperty := make(map[int]int, len(props))
	for _, q := range inqs {
		perProperty[q.PropertyID]++
	}

	slices.SortStableFunc(props, func(a, b domain.Property) int { return cmp.Compare(b.ViewCount, a.ViewCount) })
	props = props[:min(PopularLimit, len(props))]

	out := make([]domain.PopularProperty, 0, len(props))
	for _, p := range props {
		out = append(out, domain.PopularProperty{
			ID:        p.ID,
			Title:     p.Title,
			Views:     p.ViewCount,
			Favorites: p.Favorites,
			Inquiries: perProperty[p.ID],
		})
	}
	return out, nil
}
