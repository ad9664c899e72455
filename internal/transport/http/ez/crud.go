package ez

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	resp "estate-admin/internal/transport/http/response"
)

// Resource wires a repository into the five CRUD routes. Nil funcs leave their route out.
// T is the entity, ID its key, C the create input and P the patch.
type Resource[T any, ID any, C any, P any] struct {
	Path    string
	Name    string // used in "<name> not found"
	ParseID func(string) (ID, error)

	List   func(ctx context.Context) ([]T, error)
	Filter func(c *gin.Context, items []T) ([]T, error) // 自定义筛选（可选）
	Get    func(ctx context.Context, id ID) (*T, error)
	Create func(ctx context.Context, in C) (*T, error)
	Update func(ctx context.Context, id ID, patch P) (*T, error)
	Delete func(ctx context.Context, id ID) (bool, error)
}

// StringID accepts any path id as is.
func StringID(s string) (string, error) { return s, nil }

// IntID parses numeric path ids.
func IntID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, BadRequest("invalid id")
	}
	return id, nil
}

func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}

// Crud 注册（仓库方法即配置）
func Crud[T any, ID any, C any, P any](e EZ, r Resource[T, ID, C, P]) {
	notFound := r.Name + " not found"
	withID := func(c *gin.Context) (ID, bool) {
		id, err := r.ParseID(c.Param("id"))
		if err != nil {
			Fail(c, err)
			return id, false
		}
		return id, true
	}

	if r.List != nil {
		e.g.GET(r.Path, func(c *gin.Context) {
			items, err := r.List(c.Request.Context())
			if err == nil && r.Filter != nil {
				items, err = r.Filter(c, items)
			}
			if err != nil {
				Fail(c, err)
				return
			}
			page := atoiDefault(c.Query("page"), 1)
			size := atoiDefault(c.Query("size"), 20)
			if size > 100 {
				size = 20
			}
			c.JSON(http.StatusOK, resp.OK(resp.Paginate(items, page, size)))
		})
	}

	if r.Get != nil {
		e.g.GET(r.Path+"/:id", func(c *gin.Context) {
			id, ok := withID(c)
			if !ok {
				return
			}
			m, err := r.Get(c.Request.Context(), id)
			Reply(c, m, err, notFound)
		})
	}

	if r.Create != nil {
		e.g.POST(r.Path, func(c *gin.Context) {
			var in C
			if err := c.ShouldBindJSON(&in); err != nil {
				c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
				return
			}
			m, err := r.Create(c.Request.Context(), in)
			Reply(c, m, err, notFound)
		})
	}

	if r.Update != nil {
		e.g.PUT(r.Path+"/:id", func(c *gin.Context) {
			id, ok := withID(c)
			if !ok {
				return
			}
			var patch P
			if err := c.ShouldBindJSON(&patch); err != nil {
				c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
				return
			}
			m, err := r.Update(c.Request.Context(), id, patch)
			Reply(c, m, err, notFound)
		})
	}

	if r.Delete != nil {
		e.g.DELETE(r.Path+"/:id", func(c *gin.Context) {
			id, ok := withID(c)
			if !ok {
				return
			}
			deleted, err := r.Delete(c.Request.Context(), id)
			if err != nil {
				Fail(c, err)
				return
			}
			if !deleted {
				c.JSON(http.StatusOK, resp.Error(resp.CodeNotFound, notFound))
				return
			}
			c.JSON(http.StatusOK, resp.OK(gin.H{"id": c.Param("id")}))
		})
	}
}

// Reply turns a repository's soft not-found (nil, nil) into a 404 envelope.
func Reply[T any](c *gin.Context, m *T, err error, notFound string) {
	switch {
	case err != nil:
		Fail(c, err)
	case m == nil:
		c.JSON(http.StatusOK, resp.Error(resp.CodeNotFound, notFound))
	default:
		c.JSON(http.StatusOK, resp.OK(m))
	}
}
