package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"estate-admin/internal/domain"
	"estate-admin/internal/repo"
	"estate-admin/internal/transport/http/ez"
)

type UserHandler struct {
	users *repo.UserRepo
	guard Guard
}

func NewUserHandler(users *repo.UserRepo, guard Guard) *UserHandler {
	return &UserHandler{users: users, guard: guard}
}

type statusBody[S ~string] struct {
	Status S `json:"status" binding:"required"`
}

func (h *UserHandler) newestFirst(ctx context.Context) ([]domain.User, error) {
	items, _, err := h.users.List(ctx, 0, 0)
	return items, err
}

func (h *UserHandler) MountAdmin(g *gin.RouterGroup) {
	// 当前登录用户，不需要额外权限
	ez.RegisterAction(ez.New(g), ez.Action[struct{}, *domain.User]{
		Method: "GET", Path: "/me", Binder: ez.BindNone, Auth: true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			return found(h.users.GetByID(c.Request.Context(), c.GetString(ez.KeyUserID)))
		},
	})

	read, write := split(g, h.guard, domain.PermUsersRead, domain.PermUsersWrite)
	ez.Crud(read, ez.Resource[domain.User, string, domain.UserInput, domain.UserPatch]{
		Path: "/users", Name: "user", ParseID: ez.StringID,
		List: h.newestFirst,
		Filter: func(c *gin.Context, items []domain.User) ([]domain.User, error) {
			switch {
			case c.Query("email") != "":
				u, err := h.users.FindByEmail(c.Request.Context(), c.Query("email"))
				if err != nil || u == nil {
					return []domain.User{}, err
				}
				return []domain.User{*u}, nil
			case c.Query("role") != "":
				return h.users.GetByRole(c.Request.Context(), domain.Role(c.Query("role")))
			case c.Query("status") != "":
				return h.users.GetByStatus(c.Request.Context(), domain.UserStatus(c.Query("status")))
			}
			return items, nil
		},
		Get: h.users.GetByID,
	})
	ez.Crud(write, ez.Resource[domain.User, string, domain.UserInput, domain.UserPatch]{
		Path: "/users", Name: "user", ParseID: ez.StringID,
		Create: h.users.Create,
		Update: h.users.Update,
		Delete: h.users.Delete,
	})

	ez.RegisterAction(write, ez.Action[statusBody[domain.UserStatus], *domain.User]{
		Method: "PUT", Path: "/users/:id/status", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *statusBody[domain.UserStatus]) (*domain.User, error) {
			return found(h.users.UpdateStatus(c.Request.Context(), c.Param("id"), in.Status))
		},
	})
}
