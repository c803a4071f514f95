// Package tracing 为数据库、Redis 与外部 HTTP 调用创建 sentry span
package tracing

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
)

// StartSpan 在 ctx 中的 span 下创建子 span，没有父 span 时返回 nil
func StartSpan(ctx context.Context, operation, description string) *sentry.Span {
	parent := sentry.SpanFromContext(ctx)
	if parent == nil {
		return nil
	}
	span := parent.StartChild(operation)
	span.Description = description
	return span
}

// End 结束 StartSpan 返回的 span，允许为 nil
func End(span *sentry.Span) {
	if span != nil {
		span.Finish()
	}
}

// finish 未超过阈值的 span 不发送
func finish(span *sentry.Span, slow, elapsed time.Duration, err error) {
	if slow > 0 && elapsed < slow {
		span.Sampled = sentry.SampledFalse
	}
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		span.SetData("error", err.Error())
	} else {
		span.Status = sentry.SpanStatusOK
	}
	span.Finish()
}
