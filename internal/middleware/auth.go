package middleware

import (
	"strings"

	"course_center_backend/internal/model"
	"course_center_backend/internal/service"
	"course_center_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// AuthMiddleware 从请求里取会话令牌，经缓存解析出用户快照。
// 令牌未命中缓存（未登录或会话过期）一律 401。
func AuthMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if token == "" {
			token = c.Query("token")
		}

		if token == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		principal, err := auth.Resolve(token)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		if !service.IsActive(principal) {
			util.Forbidden(c)
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Set("token", token)
		c.Next()
	}
}

// GetPrincipal 取出中间件解析好的用户快照，未经认证链路时为 nil。
func GetPrincipal(c *gin.Context) *model.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	principal, ok := v.(*model.Principal)
	if !ok {
		return nil
	}
	return principal
}

// GetToken 当前请求所带的会话令牌。
func GetToken(c *gin.Context) string {
	return c.GetString("token")
}

// RoleMiddleware 角色门卫，管理员直接放行。
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			if principal.Role == model.Admin || principal.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
