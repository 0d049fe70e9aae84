package handler

import (
	"github.com/gin-gonic/gin"

	"course-portal/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果会话中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, "未认证")
		return "", false
	}
	return s, true
}

// MustGetUserName 从 Gin 上下文中安全提取 user_name。
// 评论与回复的作者署名取自会话，不信任请求体。
func MustGetUserName(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_name")
	if !exists {
		response.Unauthorized(c, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, "未认证")
		return "", false
	}
	return s, true
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, "未认证")
		return "", false
	}
	return s, true
}
