package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"facility-work-tracker/config"

	sentryslog "github.com/getsentry/sentry-go/slog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const appName = "facility-work-tracker"

var (
	instance *slog.Logger
	once     sync.Once
)

// fanout 把同一条日志分发给多个 handler
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// Get 全局 Logger，release 模式写入滚动日志文件，配置了 sentry 时同时上报
func Get() *slog.Logger {
	once.Do(func() {
		instance = build(config.Get())
		slog.SetDefault(instance)
	})
	return instance
}

func build(cfg *config.Config) *slog.Logger {
	release := cfg.Mode == config.ModeRelease
	opts := &slog.HandlerOptions{AddSource: release, Level: level(cfg.Log.Level)}

	var handler slog.Handler
	if release && cfg.Log.FilePath != "" {
		handler = slog.NewJSONHandler(&lumberjack.Logger{
			Filename:   cfg.Log.FilePath,
			MaxSize:    cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAge,
			Compress:   cfg.Log.Compress,
		}, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	if cfg.Sentry.Dsn != "" {
		// Error 作为事件上报，Warn 以上作为日志上报
		handler = fanout{handler, sentryslog.Option{
			EventLevel: []slog.Level{slog.LevelError},
			LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
			AddSource:  release,
		}.NewSentryHandler(context.Background())}
	}

	return slog.New(handler).With("app_name", appName, "env", string(cfg.Mode))
}

// New 带模块字段的 Logger
func New(module string) *slog.Logger {
	return Get().With("module", module)
}

type requestInfo interface {
	ClientIP() string
	GetHeader(string) string
}

// WithRequest 在日志中带上请求来源 IP
func WithRequest(base *slog.Logger, c requestInfo) *slog.Logger {
	l := base.With("client_ip", c.ClientIP())
	if v := c.GetHeader("X-Forwarded-For"); v != "" {
		l = l.With("x_forwarded_for", v)
	}
	return l
}

func level(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
