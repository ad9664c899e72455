package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"estate-admin/internal/core/auth"
	"estate-admin/internal/core/server"
	"estate-admin/internal/domain"
	mdw "estate-admin/internal/transport/http/middleware"
)

// backOfficeRoles may hold an admin token; what each can do is decided per route.
var backOfficeRoles = []string{
	string(domain.RoleSuperAdmin),
	string(domain.RoleAgent),
	string(domain.RoleEditor),
	string(domain.RoleViewer),
}

func NewAdminEngine(l *zap.Logger, opt server.Options, reg *Registry, jwter *auth.JWTer) *gin.Engine {
	r := server.NewRouter(l, opt)

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 管理端 v1（后台角色均可登录，具体权限按路由校验）
	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, backOfficeRoles...))
	reg.MountAdmin(admin)

	return r
}
