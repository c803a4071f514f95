// Package notify 把数据清理、导出等事件推送到外部 webhook
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"facility-work-tracker/config"
	"facility-work-tracker/internal/global/httpclient"
	"facility-work-tracker/internal/global/logger"

	"github.com/go-resty/resty/v2"
)

const (
	EventCleanup = "cleanup.completed"
	EventExport  = "export.stored"
)

type Event struct {
	Event string    `json:"event"`
	Time  time.Time `json:"time"`
	Data  any       `json:"data"`
}

// Notifier 未配置 URL 时不发送
type Notifier struct {
	url    string
	client *resty.Client
	log    *slog.Logger
}

var Default *Notifier

func Init() {
	Default = New(config.Get().Webhook.URL, httpclient.Client)
}

func New(url string, client *resty.Client) *Notifier {
	if client == nil {
		client = resty.New().SetTimeout(10 * time.Second)
	}
	return &Notifier{url: url, client: client, log: logger.New("Notify")}
}

func (n *Notifier) Send(ctx context.Context, event string, data any) error {
	if n == nil || n.url == "" {
		return nil
	}
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(Event{Event: event, Time: time.Now(), Data: data}).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("发送 webhook 失败: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook 返回状态码 %d", resp.StatusCode())
	}
	return nil
}

// SendAsync 后台发送，失败只记录日志
func (n *Notifier) SendAsync(event string, data any) {
	if n == nil || n.url == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := n.Send(ctx, event, data); err != nil {
			n.log.Warn("webhook 推送失败", "error", err, "event", event)
		}
	}()
}
