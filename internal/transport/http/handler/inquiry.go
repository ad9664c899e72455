package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"estate-admin/internal/domain"
	"estate-admin/internal/repo"
	"estate-admin/internal/transport/http/ez"
)

type InquiryHandler struct {
	inquiries *repo.InquiryRepo
	props     *repo.PropertyRepo
	guard     Guard
}

func NewInquiryHandler(inquiries *repo.InquiryRepo, props *repo.PropertyRepo, guard Guard) *InquiryHandler {
	return &InquiryHandler{inquiries: inquiries, props: props, guard: guard}
}

// inquiryBody is what a visitor submits; the listing snapshot is taken server-side.
type inquiryBody struct {
	PropertyID int    `json:"propertyId" binding:"required"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
}

type noteBody struct {
	Content string `json:"content" binding:"required"`
}

func (h *InquiryHandler) MountAPI(g *gin.RouterGroup) {
	ez.RegisterAction(ez.New(g), ez.Action[inquiryBody, *domain.Inquiry]{
		Method: "POST", Path: "/inquiries", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *inquiryBody) (*domain.Inquiry, error) {
			ctx := c.Request.Context()
			p, err := found(h.props.GetByID(ctx, in.PropertyID))
			if err != nil {
				return nil, err
			}
			return h.inquiries.Create(ctx, domain.InquiryInput{
				PropertyID:       in.PropertyID,
				PropertySnapshot: domain.SnapshotOf(p),
				Name:             in.Name,
				Email:            in.Email,
				Phone:            in.Phone,
				Message:          in.Message,
			})
		},
	})
}

func (h *InquiryHandler) MountAdmin(g *gin.RouterGroup) {
	read, write := split(g, h.guard, domain.PermInquiriesRead, domain.PermInquiriesWrite)

	ez.Crud(read, ez.Resource[domain.Inquiry, string, domain.InquiryInput, struct{}]{
		Path: "/inquiries", Name: "inquiry", ParseID: ez.StringID,
		List: h.inquiries.GetAll,
		Filter: func(c *gin.Context, items []domain.Inquiry) ([]domain.Inquiry, error) {
			ctx := c.Request.Context()
			if s := c.Query("status"); s != "" {
				return h.inquiries.GetByStatus(ctx, domain.InquiryStatus(s))
			}
			if pid := c.Query("propertyId"); pid != "" {
				id, err := ez.IntID(pid)
				if err != nil {
					return nil, err
				}
				return h.inquiries.GetByPropertyID(ctx, id)
			}
			return items, nil
		},
		Get: h.inquiries.GetByID,
	})
	ez.Crud(write, ez.Resource[domain.Inquiry, string, domain.InquiryInput, struct{}]{
		Path: "/inquiries", Name: "inquiry", ParseID: ez.StringID,
		Delete: h.inquiries.Delete,
	})

	ez.RegisterAction(read, ez.Action[struct{}, []domain.Inquiry]{
		Method: "GET", Path: "/properties/:id/inquiries", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Inquiry, error) {
			id, err := strconv.Atoi(c.Param("id"))
			if err != nil {
				return nil, ez.BadRequest("invalid id")
			}
			return h.inquiries.GetByPropertyID(c.Request.Context(), id)
		},
	})

	// 状态流转记录操作人
	ez.RegisterAction(write, ez.Action[statusBody[domain.InquiryStatus], *domain.Inquiry]{
		Method: "PUT", Path: "/inquiries/:id/status", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *statusBody[domain.InquiryStatus]) (*domain.Inquiry, error) {
			return found(h.inquiries.UpdateStatus(c.Request.Context(), c.Param("id"), in.Status, c.GetString(ez.KeyUserID)))
		},
	})
	ez.RegisterAction(write, ez.Action[noteBody, *domain.Inquiry]{
		Method: "POST", Path: "/inquiries/:id/notes", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *noteBody) (*domain.Inquiry, error) {
			return found(h.inquiries.AddNote(c.Request.Context(), c.Param("id"), in.Content, c.GetString(ez.KeyUserID)))
		},
	})
}
