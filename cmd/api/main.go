package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"estate-admin/internal/app"
	"estate-admin/internal/core/config"
	"estate-admin/internal/core/logger"
	"estate-admin/internal/core/server"
)

// The storefront API. With app.admin.port set it also serves the back office from the same
// process, which the embedded badger store requires.
func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic(err)
	}
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("store close", zap.Error(err))
		}
	}()

	reg := a.Deps.Registry()
	srvs := []*http.Server{a.PublicServer(reg)}
	base := app.BaseURL(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	log.Info("user api starting",
		zap.String("open", base),
		zap.String("health", base+"/health"),
		zap.String("api_v1", base+"/api/v1"),
	)

	if cfg.App.Admin.Port > 0 {
		adm, err := a.AdminServer(reg)
		if err != nil {
			log.Fatal("admin api", zap.Error(err))
		}
		srvs = append(srvs, adm)
		log.Info("admin api starting", zap.String("admin_v1", app.BaseURL(cfg.App.Admin.Host, cfg.App.Admin.Port)+"/admin/v1"))
	}

	if err := server.Run(ctx, log, srvs...); err != nil {
		log.Error("http stopped", zap.Error(err))
		return
	}
	log.Info("stopped gracefully")
}
