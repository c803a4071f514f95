package sentry

import (
	"fmt"
	"time"

	"facility-work-tracker/config"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

const release = "facility-work-tracker@1.0.0"

// CodedError 带错误码的错误，只有 5xx 会上报
type CodedError interface {
	error
	GetCode() int32
}

func Enabled() bool {
	return config.Get().Sentry.Dsn != ""
}

// Init 未配置 DSN 时不做任何事
func Init() error {
	cfg := config.Get()
	if cfg.Sentry.Dsn == "" {
		return nil
	}

	traces := cfg.Sentry.SampleRate
	if traces <= 0 {
		traces = 1.0
	}
	env := cfg.Sentry.Environment
	if env == "" {
		env = string(cfg.Mode)
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.Dsn,
		Environment:      env,
		Release:          release,
		SampleRate:       1.0,
		EnableTracing:    true,
		TracesSampleRate: traces,
		EnableLogs:       true,
	})
	if err != nil {
		return fmt.Errorf("初始化 sentry 失败: %w", err)
	}
	return nil
}

func Middleware() gin.HandlerFunc {
	if !Enabled() {
		return func(c *gin.Context) { c.Next() }
	}
	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

func CaptureException(c *gin.Context, err error) {
	if !Enabled() || !shouldReport(err) {
		return
	}
	hub := sentrygin.GetHubFromContext(c)
	if hub == nil {
		return
	}
	hub.WithScope(func(scope *sentry.Scope) {
		if c.Request != nil {
			scope.SetRequest(c.Request)
			scope.SetTag("path", c.Request.URL.Path)
			scope.SetTag("method", c.Request.Method)
		}
		if payload, ok := c.Get("payload"); ok {
			scope.SetUser(sentry.User{Data: map[string]string{"payload": fmt.Sprintf("%+v", payload)}})
		}
		hub.CaptureException(err)
	})
}

// CaptureMessage 记录非错误类的重要事件，例如批量清理数据
func CaptureMessage(c *gin.Context, message string) {
	if !Enabled() {
		return
	}
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.CaptureMessage(message)
	}
}

func shouldReport(err error) bool {
	if e, ok := err.(CodedError); ok {
		return e.GetCode() >= 500 && e.GetCode() < 600
	}
	return true
}

func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}
