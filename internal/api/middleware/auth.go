package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"course-portal/backend/pkg/response"
	"course-portal/backend/pkg/session"
)

// SessionAuth 会话认证中间件
// 从 Cookie 中提取不透明 Token 并取回服务端会话
func SessionAuth(sessionMgr *session.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			response.Unauthorized(c, "未认证")
			c.Abort()
			return
		}

		state, err := sessionMgr.Get(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, session.ErrSessionNotFound) {
				response.Unauthorized(c, "会话无效或已过期")
			} else {
				response.InternalError(c)
			}
			c.Abort()
			return
		}

		// 将用户信息注入上下文
		c.Set("user_id", state.UserID)
		c.Set("user_name", state.Name)
		c.Set("role", state.Role)

		c.Next()
	}
}

// AdminOnly 管理员权限中间件
// 非管理员一律按未认证处理，不区分"无账号"与"权限不足"
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role.(string) != "admin" {
			response.Unauthorized(c, "未认证")
			c.Abort()
			return
		}

		c.Next()
	}
}
