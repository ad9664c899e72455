package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"estate-admin/internal/core/server"
	mdw "estate-admin/internal/transport/http/middleware"
)

// NewAPIEngine serves the public storefront: browsing, favorites and inquiries. No login.
func NewAPIEngine(l *zap.Logger, opt server.Options, reg *Registry) *gin.Engine {
	r := server.NewRouter(l, opt)

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	// 前缀；公开接口按 IP 限速，防刷浏览量和咨询
	api := r.Group("/api/v1")
	api.Use(mdw.RateLimitPerIP(5, 20))
	reg.MountAPI(api)

	return r
}
