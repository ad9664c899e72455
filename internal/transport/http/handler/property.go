package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"estate-admin/internal/domain"
	"estate-admin/internal/repo"
	"estate-admin/internal/transport/http/ez"
	resp "estate-admin/internal/transport/http/response"
)

type PropertyHandler struct {
	props *repo.PropertyRepo
	guard Guard
}

func NewPropertyHandler(props *repo.PropertyRepo, guard Guard) *PropertyHandler {
	return &PropertyHandler{props: props, guard: guard}
}

// listingQuery selects one listing filter; the first non-empty field wins.
type listingQuery struct {
	Category string `form:"category"`
	Section  string `form:"section"`
	Status   string `form:"status"`
	Location string `form:"location"`
	Featured bool   `form:"featured"`
	Page     int    `form:"page"`
	Size     int    `form:"size"`
}

func (h *PropertyHandler) listings(c *gin.Context, q *listingQuery) ([]domain.Property, error) {
	ctx := c.Request.Context()
	switch {
	case q.Category != "":
		return h.props.GetByCategory(ctx, domain.PropertyCategory(q.Category))
	case q.Section != "":
		return h.props.GetBySection(ctx, strings.ToLower(q.Section))
	case q.Status != "":
		return h.props.GetByStatus(ctx, domain.PropertyStatus(q.Status))
	case q.Location != "":
		return h.props.GetByLocation(ctx, q.Location)
	case q.Featured:
		return h.props.GetFeatured(ctx)
	}
	return h.props.GetAll(ctx)
}

// MountAPI registers the public storefront routes.
func (h *PropertyHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[listingQuery, resp.Page[domain.Property]]{
		Method: "GET", Path: "/properties", Binder: ez.BindQuery,
		Handler: func(c *gin.Context, q *listingQuery) (resp.Page[domain.Property], error) {
			items, err := h.listings(c, q)
			if err != nil {
				return resp.Page[domain.Property]{}, err
			}
			page, size := pageArgs(q.Page, q.Size)
			return resp.Paginate(items, page, size), nil
		},
	})

	// 详情页：每次打开记一次浏览
	ez.RegisterAction(e, ez.Action[struct{}, *domain.Property]{
		Method: "GET", Path: "/properties/:id", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Property, error) {
			id, err := ez.IntID(c.Param("id"))
			if err != nil {
				return nil, err
			}
			return found(h.props.TrackView(c.Request.Context(), id))
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Property]{
		Method: "POST", Path: "/properties/:id/favorite", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Property, error) {
			id, err := ez.IntID(c.Param("id"))
			if err != nil {
				return nil, err
			}
			return found(h.props.AddFavorite(c.Request.Context(), id))
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Property]{
		Method: "DELETE", Path: "/properties/:id/favorite", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Property, error) {
			id, err := ez.IntID(c.Param("id"))
			if err != nil {
				return nil, err
			}
			return found(h.props.RemoveFavorite(c.Request.Context(), id))
		},
	})
}

// MountAdmin registers listing management. Reads here do not count as views.
func (h *PropertyHandler) MountAdmin(g *gin.RouterGroup) {
	read, write := split(g, h.guard, domain.PermPropertiesRead, domain.PermPropertiesWrite)

	ez.Crud(read, ez.Resource[domain.Property, int, domain.PropertyInput, domain.PropertyPatch]{
		Path: "/properties", Name: "property", ParseID: ez.IntID,
		List: h.props.GetAll,
		Filter: func(c *gin.Context, items []domain.Property) ([]domain.Property, error) {
			var q listingQuery
			if err := c.ShouldBindQuery(&q); err != nil {
				return nil, ez.BadRequest(err.Error())
			}
			if q == (listingQuery{Page: q.Page, Size: q.Size}) {
				return items, nil
			}
			return h.listings(c, &q)
		},
		Get: h.props.GetByID,
	})
	ez.Crud(write, ez.Resource[domain.Property, int, domain.PropertyInput, domain.PropertyPatch]{
		Path: "/properties", Name: "property", ParseID: ez.IntID,
		Create: h.props.Add,
		Update: h.props.Update,
		Delete: h.props.Delete,
	})
}
