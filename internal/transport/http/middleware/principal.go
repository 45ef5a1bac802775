package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-movements-api/internal/core/auth"
	"go-movements-api/internal/domain"
	resp "go-movements-api/internal/transport/http/response"
)

func bearerToken(c *gin.Context) (string, bool) {
	ah := c.GetHeader("Authorization")
	if !strings.HasPrefix(ah, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(ah, "Bearer "), true
}

// AttachPrincipal 有凭证就解析出 Principal 挂到请求 ctx；没有或无效不拦截，
// 由 GraphQL 层的闸口决定能做什么。
func AttachPrincipal(src *auth.PrincipalSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if p, err := src.Resolve(c.Request.Context(), token); err == nil && p != nil {
				c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), p))
				c.Set("userId", p.UserID)
				c.Set("role", string(p.Role))
			}
		}
		c.Next()
	}
}

// RequireRole 管理端分组用：没登录 401，角色不符 403
func RequireRole(src *auth.PrincipalSource, role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		p, err := src.Resolve(c.Request.Context(), token)
		if err != nil || p == nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if p.Role != role {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), p))
		c.Set("userId", p.UserID)
		c.Set("role", string(p.Role))
		c.Next()
	}
}
