package ez

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"estate-admin/internal/domain"
	resp "estate-admin/internal/transport/http/response"
)

// Context keys set by the auth middleware.
const (
	KeyUserID = "userId"
	KeyRole   = "role"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// Group exposes the underlying group for routes that do not answer with the envelope.
func (e EZ) Group() *gin.RouterGroup { return e.g }

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param / c.PostForm 取
)

// 统一错误对象（配合 resp.Error(int, msg)）
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Forbidden(msg string) error  { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error   { return &AErr{Code: resp.CodeNotFound, Msg: msg} }

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT" | "DELETE"
	Path    string // 例："/properties/:id/view"
	Binder  Binder // 绑定方式
	Auth    bool   // 是否要求登录（检查 userId）
	Handler func(c *gin.Context, in *I) (O, error)
}

// RegisterAction mounts a on the group behind e.
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		// 1) 鉴权（权限由路由组上的 RequirePermission 判断）
		if a.Auth && c.GetString(KeyUserID) == "" {
			c.JSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "unauthorized"))
			return
		}

		// 2) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone: 不绑定
		}
		if bindErr != nil {
			c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, bindErr.Error()))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

// Fail 统一错误映射：validation → 400，超时 → 504，其余 → 500（细节只进日志）
func Fail(c *gin.Context, err error) {
	var ae *AErr
	switch {
	case errors.As(err, &ae):
		if ae.Err != nil {
			_ = c.Error(ae.Err)
		}
		c.JSON(http.StatusOK, resp.Error(ae.Code, ae.Error()))
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusOK, resp.Error(resp.CodeTimeout, "timeout"))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, ""))
	}
}
