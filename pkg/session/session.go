package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"course-portal/backend/config"
)

var (
	ErrSessionNotFound = errors.New("会话不存在或已过期")
)

// State 服务端会话状态
// 登录时一次性写入，角色只有 student / admin 两种取值
type State struct {
	UserID  string    `json:"user_id"`
	Name    string    `json:"name"`
	Role    string    `json:"role"`
	LoginAt time.Time `json:"login_at"`
}

// IsAdmin 当前会话是否为管理员
func (s *State) IsAdmin() bool { return s.Role == "admin" }

// Manager 会话管理器
// Cookie 中只携带不透明 Token（UUID），状态保存在服务端 Store 中
type Manager struct {
	store Store
	ttl   time.Duration
}

// NewManager 创建会话管理器
func NewManager(cfg *config.SessionConfig, store Store) *Manager {
	return &Manager{store: store, ttl: cfg.TTL}
}

// Create 建立新会话，返回不透明 Token
func (m *Manager) Create(ctx context.Context, state *State) (string, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return "", err
	}

	token := uuid.New().String()
	if err := m.store.Set(ctx, token, data, m.ttl); err != nil {
		return "", err
	}

	return token, nil
}

// Get 根据 Token 取回会话状态
func (m *Manager) Get(ctx context.Context, token string) (*State, error) {
	data, err := m.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		// 存储内容损坏视同会话失效
		return nil, ErrSessionNotFound
	}

	return &state, nil
}

// Destroy 销毁会话（登出）
// Token 不存在时不报错，登出操作幂等
func (m *Manager) Destroy(ctx context.Context, token string) error {
	return m.store.Delete(ctx, token)
}

// TTL 会话有效期（Cookie Max-Age 与其保持一致）
func (m *Manager) TTL() time.Duration { return m.ttl }
