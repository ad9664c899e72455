// Package app wires config, logging, the store and the repositories into the HTTP engines.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"estate-admin/internal/core/auth"
	"estate-admin/internal/core/config"
	"estate-admin/internal/core/server"
	"estate-admin/internal/domain"
	"estate-admin/internal/repo"
	"estate-admin/internal/service"
	"estate-admin/internal/store"
	"estate-admin/internal/transport/http/router"
)

type App struct {
	Cfg  *config.Config
	Log  *zap.Logger
	Deps router.Deps

	close func() error
}

// New opens the configured store and builds the repositories on it. Inquiries are seeded
// once, after the listings they point at exist.
func New(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	backend, closeFn, err := store.Open(ctx, cfg, l)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	opts := []repo.Option{repo.WithLogger(l)}
	users := repo.NewUserRepo(backend, opts...)
	d := router.Deps{
		Props:     repo.NewPropertyRepo(backend, opts...),
		Users:     users,
		Agents:    repo.NewAgentRepo(backend, users, opts...),
		Inquiries: repo.NewInquiryRepo(backend, opts...),
	}
	seeded, err := d.Inquiries.SeedDefaults(ctx)
	if err != nil {
		_ = closeFn()
		return nil, fmt.Errorf("seed inquiries: %w", err)
	}
	if seeded {
		l.Info("sample inquiries seeded")
	}
	d.Reports = service.NewReportService(d.Props, d.Users, d.Inquiries, l.Named("report"))

	return &App{Cfg: cfg, Log: l, Deps: d, close: closeFn}, nil
}

func (a *App) Close() error { return a.close() }

func (a *App) serverOptions() server.Options {
	return server.Options{Mode: server.GinMode(a.Cfg.App.Env), CORSOrigins: a.Cfg.App.CORSOrigins}
}

func (a *App) build(host string, port int, h http.Handler) *http.Server {
	c := a.Cfg.App.HTTP
	return server.BuildServer(
		server.Addr(host, port), h,
		time.Duration(c.ReadTimeoutSec)*time.Second,
		time.Duration(c.WriteTimeoutSec)*time.Second,
		time.Duration(c.IdleTimeoutSec)*time.Second,
	)
}

// PublicServer serves /api/v1.
func (a *App) PublicServer(reg *router.Registry) *http.Server {
	return a.build(a.Cfg.App.HTTP.Host, a.Cfg.App.HTTP.Port, router.NewAPIEngine(a.Log, a.serverOptions(), reg))
}

// AdminServer serves /admin/v1 and /metrics. It needs jwt.secret.
func (a *App) AdminServer(reg *router.Registry) (*http.Server, error) {
	jwter, err := auth.NewJWTer(a.Cfg.JWT)
	if err != nil {
		return nil, err
	}
	return a.build(a.Cfg.App.Admin.Host, a.Cfg.App.Admin.Port, router.NewAdminEngine(a.Log, a.serverOptions(), reg, jwter)), nil
}

// IssueToken signs a back-office token for an active stored user and records the login.
func (a *App) IssueToken(ctx context.Context, uid string) (string, *domain.User, error) {
	jwter, err := auth.NewJWTer(a.Cfg.JWT)
	if err != nil {
		return "", nil, err
	}
	u, err := a.Deps.Users.GetByID(ctx, uid)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, fmt.Errorf("user %q not found", uid)
	}
	if u.Status != domain.UserActive {
		return "", nil, fmt.Errorf("user %q is %s", uid, u.Status)
	}
	if u, err = a.Deps.Users.RecordLogin(ctx, uid); err != nil {
		return "", nil, err
	}
	tok, err := jwter.Issue(u.ID, string(u.Role))
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

// BaseURL is a clickable address for startup logs.
func BaseURL(host string, port int) string {
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s:%d", host, port)
}
