package otel

import (
	"context"
	"fmt"

	"facility-work-tracker/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.25.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "facility-work-tracker"

var tracerProvider *sdktrace.TracerProvider

// Init 通过 OTLP/HTTP 导出 span
func Init(ctx context.Context, cfg config.OTel) error {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return fmt.Errorf("创建 otel resource 失败: %w", err)
	}

	exp, err := otlptracehttp.New(ctx,
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithEndpoint(fmt.Sprintf("%s:%s", cfg.AgentHost, cfg.AgentPort)),
	)
	if err != nil {
		return fmt.Errorf("创建 otlp 导出器失败: %w", err)
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exp),
	)
	otel.SetTracerProvider(tracerProvider)
	return nil
}

// Tracer 未初始化时返回全局默认（空操作）实现
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

func Shutdown(ctx context.Context) error {
	if tracerProvider != nil {
		return tracerProvider.Shutdown(ctx)
	}
	return nil
}
