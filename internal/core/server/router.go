package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mdw "estate-admin/internal/transport/http/middleware"
)

type Options struct {
	Mode        string   // gin mode: debug | release | test
	CORSOrigins []string // empty allows any origin
}

// NewRouter returns a bare engine with panic recovery and CORS. Access logging is the
// engine's own AccessLog middleware, so gin's logger is not installed.
func NewRouter(l *zap.Logger, opt Options) *gin.Engine {
	if opt.Mode != "" {
		gin.SetMode(opt.Mode)
	}
	r := gin.New()
	r.Use(mdw.Recovery(l))
	r.Use(cors.New(corsConfig(opt.CORSOrigins)))
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "X-Request-ID")
	cfg.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// GinMode maps app.env onto a gin mode.
func GinMode(env string) string {
	switch env {
	case "prod", "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	}
	return gin.DebugMode
}

func StartHTTP(srv *http.Server, l *zap.Logger) error {
	l.Info("http starting", zap.String("addr", srv.Addr))
	return srv.ListenAndServe()
}

func BuildServer(addr string, handler http.Handler, rt, wt, it time.Duration) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    rt,
		WriteTimeout:   wt,
		IdleTimeout:    it,
		MaxHeaderBytes: 1 << 20, // 1MB
	}
}

func Addr(host string, port int) string { return fmt.Sprintf("%s:%d", host, port) }

// Run serves every srv until ctx is done or one of them fails, then shuts all of them down.
func Run(ctx context.Context, l *zap.Logger, srvs ...*http.Server) error {
	errCh := make(chan error, len(srvs))
	for _, srv := range srvs {
		go func() {
			if err := StartHTTP(srv, l); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("serve %s: %w", srv.Addr, err)
			}
		}()
	}

	var err error
	select {
	case <-ctx.Done():
	case err = <-errCh:
	}

	// 优雅关闭
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, srv := range srvs {
		if e := srv.Shutdown(sctx); e != nil {
			l.Warn("http shutdown", zap.String("addr", srv.Addr), zap.Error(e))
		}
	}
	return err
}
