// Package cache 用 redis 缓存看板统计快照。任何写操作递增版本号，
// 旧版本的键随之失效并等待过期；redis 不可用时退化为直接计算。
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"facility-work-tracker/config"
	"facility-work-tracker/internal/global/logger"
	"facility-work-tracker/internal/global/sentry/tracing"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "facility:dashboard"
	versionKey = keyPrefix + ":version"
)

// Cache 为 nil 或未启用时所有操作都是空操作
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

var Default *Cache

func Init() {
	Default = New(config.Get())
}

func New(cfg *config.Config) *Cache {
	if !cfg.Redis.Enabled() || cfg.Stats.CacheTTL <= 0 {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if cfg.Sentry.Dsn != "" {
		client.AddHook(tracing.NewRedisHook(cfg))
	}
	return NewWithClient(client, time.Duration(cfg.Stats.CacheTTL)*time.Second)
}

func NewWithClient(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl, log: logger.New("Cache")}
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil
}

// Key 由当前版本号与查询条件生成缓存键
func (c *Cache) Key(ctx context.Context, kind string, params any) (string, bool) {
	if !c.enabled() {
		return "", false
	}
	version, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && err != redis.Nil {
		c.log.Warn("读取缓存版本失败", "error", err)
		return "", false
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return "", false
	}
	sum := sha1.Sum(append([]byte(kind+":"), raw...))
	return fmt.Sprintf("%s:v%d:%s", keyPrefix, version, hex.EncodeToString(sum[:8])), true
}

// Get 命中时把缓存内容解码到 dst
func (c *Cache) Get(ctx context.Context, key string, dst any) bool {
	if !c.enabled() || key == "" {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("读取统计缓存失败", "error", err, "key", key)
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.log.Warn("统计缓存内容无法解析", "error", err, "key", key)
		return false
	}
	return true
}

func (c *Cache) Set(ctx context.Context, key string, value any) {
	if !c.enabled() || key == "" {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("写入统计缓存失败", "error", err, "key", key)
	}
}

// Invalidate 递增版本号，使所有已缓存的统计失效
func (c *Cache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		c.log.Warn("递增缓存版本失败", "error", err)
	}
}

func (c *Cache) Close() error {
	if !c.enabled() {
		return nil
	}
	return c.client.Close()
}
