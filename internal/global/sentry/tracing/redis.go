package tracing

import (
	"context"
	"net"
	"strings"
	"time"

	"facility-work-tracker/config"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
)

// RedisHook 为统计缓存的读写创建 span
type RedisHook struct {
	slow time.Duration
}

func NewRedisHook(cfg *config.Config) *RedisHook {
	return &RedisHook{slow: time.Duration(cfg.Sentry.Tracing.RedisSlowThresholdMs) * time.Millisecond}
}

func (h *RedisHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *RedisHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		span, ctx := h.start(ctx, "db.redis", strings.ToUpper(cmd.Name()))
		begin := time.Now()
		err := next(ctx, cmd)
		h.end(span, begin, err)
		return err
	}
}

func (h *RedisHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		span, ctx := h.start(ctx, "db.redis.pipeline", pipelineDesc(cmds))
		begin := time.Now()
		err := next(ctx, cmds)
		h.end(span, begin, err)
		return err
	}
}

func (h *RedisHook) start(ctx context.Context, op, desc string) (*sentry.Span, context.Context) {
	parent := sentry.SpanFromContext(ctx)
	if parent == nil {
		return nil, ctx
	}
	span := parent.StartChild(op)
	span.Description = desc
	span.SetData("db.system", "redis")
	return span, span.Context()
}

func (h *RedisHook) end(span *sentry.Span, begin time.Time, err error) {
	if span == nil {
		return
	}
	// 缓存未命中不算错误
	if err == redis.Nil {
		err = nil
	}
	finish(span, h.slow, time.Since(begin), err)
}

func pipelineDesc(cmds []redis.Cmder) string {
	names := make([]string, 0, 4)
	for i, cmd := range cmds {
		if i == 3 {
			names = append(names, "...")
			break
		}
		names = append(names, strings.ToUpper(cmd.Name()))
	}
	return "PIPELINE: " + strings.Join(names, ", ")
}
