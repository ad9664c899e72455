package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"estate-admin/internal/core/config"
	"estate-admin/internal/core/database"
)

// Open builds the backend selected by cfg.Store.Driver. The returned close func releases it.
func Open(ctx context.Context, cfg *config.Config, l *zap.Logger) (Backend, func() error, error) {
	var (
		b       Backend
		closeFn = func() error { return nil }
	)
	switch cfg.Store.Driver {
	case "", "memory":
		b = NewMemoryBackend()
	case "badger":
		bb, err := OpenBadger(cfg.Store.BadgerPath)
		if err != nil {
			return nil, nil, err
		}
		b, closeFn = bb, bb.Close
	case "redis":
		rb := NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := rb.RDB.Ping(ctx).Err(); err != nil {
			_ = rb.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		b, closeFn = rb, rb.Close
	case "gorm":
		db, err := database.NewGorm(database.Opts{
			Driver:             cfg.DB.Driver,
			DSN:                cfg.DB.DSN,
			Username:           cfg.DB.Username,
			Password:           cfg.DB.Password,
			MaxOpenConns:       cfg.DB.MaxOpenConns,
			MaxIdleConns:       cfg.DB.MaxIdleConns,
			ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
			LogLevel:           cfg.DB.LogLevel,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("db open: %w", err)
		}
		gb, err := NewGormBackend(db, cfg.DB.AutoMigrate)
		if err != nil {
			return nil, nil, fmt.Errorf("automigrate: %w", err)
		}
		b = gb
		if sqlDB, err := db.DB(); err == nil {
			closeFn = sqlDB.Close
		}
	case "mongo":
		mb, err := ConnectMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
		if err != nil {
			return nil, nil, err
		}
		b, closeFn = mb, func() error { return mb.Close(context.Background()) }
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	l.Info("store opened", zap.String("driver", cfg.Store.Driver), zap.String("prefix", cfg.Store.Prefix))
	return Prefixed(b, cfg.Store.Prefix), closeFn, nil
}
