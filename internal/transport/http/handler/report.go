package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estate-admin/internal/domain"
	"estate-admin/internal/repo"
	"estate-admin/internal/service"
	"estate-admin/internal/transport/http/ez"
)

type ReportHandler struct {
	reports   *service.ReportService
	props     *repo.PropertyRepo
	inquiries *repo.InquiryRepo
	guard     Guard
}

func NewReportHandler(reports *service.ReportService, props *repo.PropertyRepo, inquiries *repo.InquiryRepo, guard Guard) *ReportHandler {
	return &ReportHandler{reports: reports, props: props, inquiries: inquiries, guard: guard}
}

// dashboard is the report without the popular listings.
type dashboard struct {
	Properties domain.Stat          `json:"properties"`
	Users      domain.Stat          `json:"users"`
	Inquiries  domain.Stat          `json:"inquiries"`
	Views      domain.Stat          `json:"views"`
	ViewsData  domain.ViewsSnapshot `json:"viewsData"`
}

type resetResult struct {
	Properties int  `json:"properties"`
	Inquiries  bool `json:"inquiriesSeeded"`
}

func (h *ReportHandler) MountAdmin(g *gin.RouterGroup) {
	read, write := split(g, h.guard, domain.PermReportsRead, domain.PermSettingsWrite)

	ez.RegisterAction(read, ez.Action[struct{}, *domain.Report]{
		Method: "GET", Path: "/report", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Report, error) {
			return h.reports.Generate(c.Request.Context())
		},
	})
	ez.RegisterAction(read, ez.Action[struct{}, dashboard]{
		Method: "GET", Path: "/stats", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (dashboard, error) {
			rep, err := h.reports.Generate(c.Request.Context())
			if err != nil {
				return dashboard{}, err
			}
			return dashboard{
				Properties: rep.Properties,
				Users:      rep.Users,
				Inquiries:  rep.Inquiries,
				Views:      rep.Views,
				ViewsData:  rep.ViewsData,
			}, nil
		},
	})

	// CSV 导出：直接下载，不走 JSON 信封
	read.Group().GET("/report.csv", func(c *gin.Context) {
		rep, err := h.reports.Generate(c.Request.Context())
		if err != nil {
			ez.Fail(c, err)
			return
		}
		name := "property-report-" + rep.GeneratedAt.UTC().Format("2006-01-02") + ".csv"
		c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(service.MarshalCSV(rep)))
	})

	ez.RegisterAction(write, ez.Action[struct{}, domain.ViewsSnapshot]{
		Method: "POST", Path: "/stats/views/refresh", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (domain.ViewsSnapshot, error) {
			return h.props.UpdateViewsData(c.Request.Context())
		},
	})
	ez.RegisterAction(write, ez.Action[struct{}, resetResult]{
		Method: "POST", Path: "/maintenance/reset", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (resetResult, error) {
			ctx := c.Request.Context()
			if err := h.props.ResetAll(ctx); err != nil {
				return resetResult{}, err
			}
			seeded, err := h.inquiries.SeedDefaults(ctx)
			if err != nil {
				return resetResult{}, err
			}
			all, err := h.props.GetAll(ctx)
			return resetResult{Properties: len(all), Inquiries: seeded}, err
		},
	})
}
