package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"course-portal/backend/config"
)

// Client Redis 客户端封装
// 当前用于会话存储与登录限流；后续可扩展缓存等场景
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 会话存储 ──

const sessionPrefix = "session:"

// ErrKeyNotFound 键不存在
var ErrKeyNotFound = goredis.Nil

// SetSession 写入会话状态，TTL 为会话有效期
func (c *Client) SetSession(ctx context.Context, token string, data []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, sessionPrefix+token, data, ttl).Err()
}

// GetSession 读取会话状态，键不存在时返回 ErrKeyNotFound
func (c *Client) GetSession(ctx context.Context, token string) ([]byte, error) {
	return c.rdb.Get(ctx, sessionPrefix+token).Bytes()
}

// DeleteSession 删除会话状态
func (c *Client) DeleteSession(ctx context.Context, token string) error {
	return c.rdb.Del(ctx, sessionPrefix+token).Err()
}

// ── 限流 ──

// CheckRateLimit 基于 Redis 有序集合的滑动窗口限流
// 返回 true 表示放行
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now().UnixNano()
	windowStart := now - window.Nanoseconds()

	pipe := c.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))
	countCmd := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, goredis.Z{Score: float64(now), Member: now})
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return countCmd.Val() < int64(limit), nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
