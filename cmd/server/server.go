package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"facility-work-tracker/config"
	"facility-work-tracker/internal/global/cache"
	"facility-work-tracker/internal/global/database"
	"facility-work-tracker/internal/global/filestore"
	"facility-work-tracker/internal/global/httpclient"
	"facility-work-tracker/internal/global/logger"
	"facility-work-tracker/internal/global/middleware"
	"facility-work-tracker/internal/global/notify"
	internalOtel "facility-work-tracker/internal/global/otel"
	"facility-work-tracker/internal/global/sentry"
	"facility-work-tracker/internal/module"
	"facility-work-tracker/internal/store"
	"facility-work-tracker/tools"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

var log *slog.Logger

func Init() {
	config.Init()
	log = logger.New("Server")

	if err := sentry.Init(); err != nil {
		log.Error("Sentry 初始化失败", "error", err)
	}

	database.Init()
	store.Default = store.NewGormStores(database.DB)

	cache.Init()
	httpclient.Init()
	notify.Init()
	filestore.Init()

	if config.Get().OTel.Enable {
		log.Info("OTel Enabled")
		tools.PanicOnErr(internalOtel.Init(context.Background(), config.Get().OTel))
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
}

func Run() {
	gin.SetMode(string(config.Get().Mode))
	r := gin.New()

	r.Use(sentry.Middleware())
	r.Use(middleware.SentryEnrichIP())
	switch config.Get().Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(middleware.Cors())
	r.Use(middleware.Recovery())

	if config.Get().OTel.Enable {
		r.Use(middleware.Trace())
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/" + config.Get().Prefix))
	}

	srv := &http.Server{
		Addr:    config.Get().Host + ":" + config.Get().Port,
		Handler: r,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			tools.PanicOnErr(err)
		}
	}()
	log.Info("服务已启动", "addr", srv.Addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("正在关闭服务")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("关闭 HTTP 服务失败", "error", err)
	}
	if err := internalOtel.Shutdown(ctx); err != nil {
		log.Error("Failed to shutdown TracerProvider", "error", err)
	}
	if err := cache.Default.Close(); err != nil {
		log.Error("关闭 redis 连接失败", "error", err)
	}
	sentry.Flush(2 * time.Second)
}
