package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"course-portal/backend/config"
	"course-portal/backend/internal/dto"
	"course-portal/backend/internal/service"
	"course-portal/backend/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
// 登录成功后将会话 Token 写入 HttpOnly Cookie，前端不接触 Token 本体
type AuthHandler struct {
	authSvc    service.AuthService
	sessionCfg *config.SessionConfig
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, sessionCfg *config.SessionConfig) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, sessionCfg: sessionCfg}
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	result, token, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "邮箱或密码错误")
			return
		}
		response.InternalError(c)
		return
	}

	h.setSessionCookie(c, token, int(h.sessionCfg.TTL.Seconds()))
	response.OK(c, result)
}

// Logout 用户登出
// POST /api/v1/auth/logout
// Cookie 缺失时也返回成功，登出操作幂等
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(h.sessionCfg.Cookie.Name)
	if err == nil && token != "" {
		if err := h.authSvc.Logout(c.Request.Context(), token); err != nil {
			response.InternalError(c)
			return
		}
	}

	// 清除客户端 Cookie
	h.setSessionCookie(c, "", -1)
	response.OKMessage(c, "已退出登录")
}

// Register 自助注册
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			response.Conflict(c, "邮箱已被占用")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, user)
}

// Me 获取当前用户信息
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// 会话仍在但账号已被删除
			response.Unauthorized(c, "会话无效或已过期")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}

// ChangePassword 修改本人密码
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordIncorrect):
			response.BadRequest(c, "当前密码不正确")
		case errors.Is(err, service.ErrUserNotFound):
			response.Unauthorized(c, "会话无效或已过期")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OKMessage(c, "密码修改成功")
}

// ── 内部辅助方法 ──

// setSessionCookie 按配置写入会话 Cookie
// maxAge 为负时表示立即过期（登出清除）
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(parseSameSite(h.sessionCfg.Cookie.SameSite))
	c.SetCookie(
		h.sessionCfg.Cookie.Name,
		token,
		maxAge,
		"/",
		h.sessionCfg.Cookie.Domain,
		h.sessionCfg.Cookie.Secure,
		true, // HttpOnly
	)
}

func parseSameSite(mode string) http.SameSite {
	switch mode {
	case "Strict":
		return http.SameSiteStrictMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
