package router

import (
	"github.com/gin-gonic/gin"

	"estate-admin/internal/domain"
	"estate-admin/internal/repo"
	"estate-admin/internal/service"
	"estate-admin/internal/transport/http/handler"
	mdw "estate-admin/internal/transport/http/middleware"
)

// Deps are the repositories and services the handlers are built from.
type Deps struct {
	Props     *repo.PropertyRepo
	Users     *repo.UserRepo
	Agents    *repo.AgentRepo
	Inquiries *repo.InquiryRepo
	Reports   *service.ReportService
}

// Registry builds every handler module; admin routes check the caller's stored permissions.
func (d Deps) Registry() *Registry {
	guard := handler.Guard(func(p domain.Permission) gin.HandlerFunc {
		return mdw.RequirePermission(d.Users, p)
	})
	var reg Registry
	reg.Register(
		handler.NewPropertyHandler(d.Props, guard),
		handler.NewInquiryHandler(d.Inquiries, d.Props, guard),
		handler.NewUserHandler(d.Users, guard),
		handler.NewAgentHandler(d.Agents, guard),
		handler.NewReportHandler(d.Reports, d.Props, d.Inquiries, guard),
	)
	return &reg
}
