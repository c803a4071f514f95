package httpclient

import (
	"time"

	"facility-work-tracker/config"
	"facility-work-tracker/internal/global/sentry/tracing"

	"github.com/go-resty/resty/v2"
)

var Client *resty.Client

func Init() {
	Client = New(config.Get())
}

func New(cfg *config.Config) *resty.Client {
	timeout := time.Duration(cfg.Webhook.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("User-Agent", "facility-work-tracker")
	if cfg.Sentry.Dsn != "" {
		tracing.SetupResty(client, cfg)
	}
	return client
}
