// Package handler maps the repositories onto the public and back-office routes.
package handler

import (
	"github.com/gin-gonic/gin"

	"estate-admin/internal/domain"
	"estate-admin/internal/transport/http/ez"
)

// Guard builds the middleware that requires a permission. A nil Guard lets everything through.
type Guard func(p domain.Permission) gin.HandlerFunc

func (g Guard) on(p domain.Permission) gin.HandlerFunc {
	if g == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return g(p)
}

// split returns one registrar for reads and one for writes, each behind its permission.
func split(g *gin.RouterGroup, guard Guard, read, write domain.Permission) (r, w ez.EZ) {
	return ez.New(g.Group("", guard.on(read))), ez.New(g.Group("", guard.on(write)))
}

// found turns a repository's soft not-found (nil, nil) into a 404 action error.
func found[T any](m *T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ez.NotFound("not found")
	}
	return m, nil
}

func pageArgs(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	return page, size
}
