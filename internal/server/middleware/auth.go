package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"moonpages/internal/pkg/ctxutil"
	"moonpages/internal/pkg/jwt"
)

// Auth JWT 认证中间件
// 从 Authorization header 中提取 Bearer token，验证后注入调用方身份到 context
func Auth(jwtUtil *jwt.JWT) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Authentication required.",
			})
			c.Abort()
			return
		}

		// 提取 Token（Bearer {token}）
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid authorization header",
			})
			c.Abort()
			return
		}

		claims, err := jwtUtil.ValidateAccessToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		// 将调用方身份注入到 context
		ctx := ctxutil.WithIdentity(c.Request.Context(), ctxutil.Identity{
			UserID: claims.UserID,
			Roles:  claims.Roles,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole 角色鉴权中间件，需在 Auth 之后使用
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := ctxutil.GetIdentity(c.Request.Context())
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Authentication required.",
			})
			c.Abort()
			return
		}

		if !ident.HasRole(role) {
			c.JSON(http.StatusForbidden, gin.H{
				"message": "Access denied. Insufficient permissions.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
