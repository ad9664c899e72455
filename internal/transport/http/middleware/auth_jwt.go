package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"estate-admin/internal/core/auth"
	"estate-admin/internal/domain"
	"estate-admin/internal/transport/http/ez"
	resp "estate-admin/internal/transport/http/response"
)

const KeyClaims = "claims"

// AuthJWT requires a valid bearer token. With roles given, the token's role must be one of them.
func AuthJWT(j *auth.JWTer, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if len(roles) > 0 && !slices.Contains(roles, claims.Role) {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Set(KeyClaims, claims)
		c.Set(ez.KeyUserID, claims.UID)
		c.Set(ez.KeyRole, claims.Role)
		c.Next()
	}
}

type PermissionChecker interface {
	HasPermission(ctx context.Context, userID string, p domain.Permission) (bool, error)
}

// RequirePermission checks the caller's stored permissions, so a role change or a
// deactivation takes effect before the token expires.
func RequirePermission(pc PermissionChecker, p domain.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := pc.HasPermission(c.Request.Context(), c.GetString(ez.KeyUserID), p)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeServerError, ""))
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "missing permission "+string(p)))
			return
		}
		c.Next()
	}
}
