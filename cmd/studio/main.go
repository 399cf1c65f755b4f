package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/heroxshorts/heroxshorts-studio/internal/domain/port"
	"github.com/heroxshorts/heroxshorts-studio/internal/fixture"
	"github.com/heroxshorts/heroxshorts-studio/internal/infra/assets"
	"github.com/heroxshorts/heroxshorts-studio/internal/infra/config"
	"github.com/heroxshorts/heroxshorts-studio/internal/infra/httpapi"
	"github.com/heroxshorts/heroxshorts-studio/internal/infra/metrics"
	miniostorage "github.com/heroxshorts/heroxshorts-studio/internal/infra/minio"
	"github.com/heroxshorts/heroxshorts-studio/internal/infra/notify"
	"github.com/heroxshorts/heroxshorts-studio/internal/infra/rabbitmq"
	"github.com/heroxshorts/heroxshorts-studio/internal/infra/tracing"
	"github.com/heroxshorts/heroxshorts-studio/internal/usecase"
	"github.com/heroxshorts/heroxshorts-studio/pkg/logger"
	"github.com/jonboulle/clockwork"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(".env")
	fatalOnErr(err, "load config")

	log, err := logger.New(cfg.LogLevel)
	fatalOnErr(err, "init logger")
	defer log.Sync()

	log.Info("starting heroxshorts-studio")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Tracing (non-fatal if the collector is unavailable)
	tp, err := tracing.InitTracer(ctx, cfg.JaegerEndpoint)
	if err != nil {
		log.Warn("tracing init failed, continuing without tracing", zap.Error(err))
	} else if tp != nil {
		defer tp.Shutdown(context.Background())
	}

	// Assets: presigned MinIO links when configured, base path otherwise
	var resolver port.AssetResolver = assets.NewBasePathResolver(cfg.AssetBasePath)
	if cfg.MinIOEndpoint != "" {
		store, err := miniostorage.NewAssetStore(miniostorage.StorageConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			UseSSL:    cfg.MinIOUseSSL,
			Region:    cfg.MinIORegion,
			Bucket:    cfg.MinIOBucket,
			TTL:       cfg.MinIOPresignTTL,
		})
		fatalOnErr(err, "create minio asset store")
		fatalOnErr(store.EnsureBucket(ctx), "ensure minio bucket")
		resolver = store
	}

	// RabbitMQ notification events (optional)
	var publisher port.NotificationPublisher
	if cfg.RabbitMQURL != "" {
		rmqConn, err := amqp.Dial(cfg.RabbitMQURL)
		fatalOnErr(err, "connect to rabbitmq")
		defer rmqConn.Close()

		pub, err := rabbitmq.NewPublisher(rmqConn, cfg.RabbitMQExchange)
		fatalOnErr(err, "create rabbitmq publisher")
		defer pub.Close()

		publisher = rabbitmq.NewNotificationPublisher(pub, cfg.RabbitMQRoutingKey)
	}

	clock := clockwork.NewRealClock()

	// Use cases
	registry := usecase.NewRegistry(usecase.SessionDeps{
		Clock:     clock,
		Timings:   usecase.TimingsFromConfig(cfg),
		Fault:     usecase.FaultForFlows(cfg.FaultFlows),
		Logger:    log,
		Publisher: publisher,
	})
	defer registry.CloseAll()

	feed := usecase.NewProjectFeed(fixture.NewStaticSource(), resolver, log,
		usecase.WithFeedClock(clock),
		usecase.WithFeedInterval(cfg.FeedInterval),
	)

	settingsSinks := []port.Notifier{notify.NewLogNotifier(log.Named("settings"))}
	if publisher != nil {
		settingsSinks = append(settingsSinks, notify.NewPublishingNotifier(publisher, "settings", "SETTINGS"))
	}
	settings := usecase.NewSettingsService(clock, cfg.PlanDelay, notify.NewFanout(clock.Now, settingsSinks...), log)

	// Metrics server
	metricsSrv := metrics.StartMetricsServer(ctx, cfg.MetricsPort, log)

	// HTTP API
	gin.SetMode(cfg.GinMode)
	apiSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           httpapi.NewRouter(httpapi.NewHandler(registry, feed, settings, log)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("api server listening", zap.Int("port", cfg.HTTPPort))
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("api server error", zap.Error(err))
			cancel()
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
	case <-ctx.Done():
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := apiSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("api server shutdown", zap.Error(err))
	}
	metricsSrv.Shutdown(shutdownCtx)

	log.Info("heroxshorts-studio stopped")
}

func fatalOnErr(err error, msg string) {
	if err != nil {
		panic(msg + ": " + err.Error())
	}
}
