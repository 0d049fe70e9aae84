package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"course-portal/backend/pkg/redis"
)

// Store 会话存储接口
type Store interface {
	Set(ctx context.Context, token string, data []byte, ttl time.Duration) error
	Get(ctx context.Context, token string) ([]byte, error)
	Delete(ctx context.Context, token string) error
}

// ── Redis 实现 ──

// RedisStore 基于 Redis 的会话存储（多实例共享）
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 RedisStore
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Set(ctx context.Context, token string, data []byte, ttl time.Duration) error {
	return s.client.SetSession(ctx, token, data, ttl)
}

func (s *RedisStore) Get(ctx context.Context, token string) ([]byte, error) {
	data, err := s.client.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, redis.ErrKeyNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.DeleteSession(ctx, token)
}

// ── 进程内实现 ──

// MemoryStore 进程内会话存储
// Redis 不可用时的降级方案，也用于单元测试；重启后会话全部失效
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryStore 创建 MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Set(_ context.Context, token string, data []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryEntry{data: data, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, token string) ([]byte, error) {
	s.mu.RLock()
	entry, ok := s.entries[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, token)
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	return entry.data, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}
