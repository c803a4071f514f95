package middleware

import (
	"bytes"
	"log/slog"
	"strings"
	"time"

	"facility-work-tracker/internal/global/jwt"
	"facility-work-tracker/internal/global/logger"

	sentrylib "github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// maxBodyLog 访问日志中最多记录的响应体字节数
const maxBodyLog = 4 * 1024

// bodyRecorder 记录响应体前 maxBodyLog 字节，导出的 xlsx 等二进制内容不记录
type bodyRecorder struct {
	gin.ResponseWriter
	body      bytes.Buffer
	truncated bool
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	if remaining := maxBodyLog - w.body.Len(); remaining > 0 {
		if len(b) > remaining {
			w.body.Write(b[:remaining])
			w.truncated = true
		} else {
			w.body.Write(b)
		}
	} else if len(b) > 0 {
		w.truncated = true
	}
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) String() string {
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		return ""
	}
	if w.truncated {
		return w.body.String() + "...(truncated)"
	}
	return w.body.String()
}

// Logger 访问日志，5xx 记为 Error，4xx 记为 Warn
func Logger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", status,
			"latency", time.Since(start).String(),
			"response_body", rec.String(),
		}
		if p, ok := jwt.GetUserPayload(c); ok {
			args = append(args, "user", p.Email)
		}
		logger.WithRequest(log, c).Log(c.Request.Context(), level, "HTTP 请求", args...)
	}
}

// SentryEnrichIP 把来源 IP 写入 sentry scope，需放在 sentry.Middleware() 之后
func SentryEnrichIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.ConfigureScope(func(scope *sentrylib.Scope) {
				ip := c.ClientIP()
				scope.SetUser(sentrylib.User{IPAddress: ip})
				scope.SetTag("client_ip", ip)
				if v := c.GetHeader("X-Forwarded-For"); v != "" {
					scope.SetTag("x_forwarded_for", v)
				}
			})
		}
		c.Next()
	}
}
