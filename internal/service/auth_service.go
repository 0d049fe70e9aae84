package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"course-portal/backend/internal/dto"
	"course-portal/backend/internal/model"
	"course-portal/backend/internal/repository"
	"course-portal/backend/pkg/session"
)

// ── 认证模块业务错误 ──

var (
	// ErrInvalidCredentials 统一的登录失败错误
	// 邮箱不存在与密码错误返回同一错误，避免泄露账号是否存在
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrPasswordIncorrect  = errors.New("当前密码不正确")
	ErrUserNotFound       = errors.New("用户不存在")
)

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, string, error)
	Logout(ctx context.Context, token string) error
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	repo       *repository.Repository
	sessionMgr *session.Manager
	logger     *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(repo *repository.Repository, sessionMgr *session.Manager, logger *zap.Logger) AuthService {
	return &authService{
		repo:       repo,
		sessionMgr: sessionMgr,
		logger:     logger,
	}
}

// Login 校验凭证并建立会话
// 返回值依次为登录响应、会话 Token
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, string, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, "", err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	// 3. 建立服务端会话
	token, err := s.sessionMgr.Create(ctx, &session.State{
		UserID:  user.UserID,
		Name:    user.Name,
		Role:    user.Role,
		LoginAt: time.Now(),
	})
	if err != nil {
		s.logger.Error("建立会话失败", zap.Error(err))
		return nil, "", err
	}

	// 4. 按角色返回落地页
	redirect := "/"
	if user.Role == model.RoleAdmin {
		redirect = "/admin.html"
	}

	return &dto.LoginResponse{
		User:     *toUserResponse(user),
		Redirect: redirect,
	}, token, nil
}

// Logout 销毁会话
func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessionMgr.Destroy(ctx, token); err != nil {
		s.logger.Error("销毁会话失败", zap.Error(err))
		return err
	}
	return nil
}

// Register 自助注册（注册即学生角色）
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.TrimSpace(req.Email)

	exists, err := s.repo.User.EmailExists(ctx, email, "")
	if err != nil {
		s.logger.Error("检查邮箱占用失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleStudent,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	return toUserResponse(user), nil
}

// GetCurrentUser 获取当前用户信息
func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

// ChangePassword 修改本人密码（需验证当前密码）
func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrPasswordIncorrect
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新密码失败", zap.String("id", userID), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

func toUserResponse(user *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.UserID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(timestampLayout),
	}
}
