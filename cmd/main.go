package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/quantlabs/quant-analytics/internal/aggregator"
	"github.com/quantlabs/quant-analytics/internal/alerting"
	"github.com/quantlabs/quant-analytics/internal/analytics"
	"github.com/quantlabs/quant-analytics/internal/bootstrap"
	"github.com/quantlabs/quant-analytics/internal/consumer"
	"github.com/quantlabs/quant-analytics/internal/ingester"
	"github.com/quantlabs/quant-analytics/internal/scheduler"
	"github.com/quantlabs/quant-analytics/pkg/config"
	"github.com/quantlabs/quant-analytics/pkg/logger"
	"github.com/quantlabs/quant-analytics/pkg/redis"
	"github.com/quantlabs/quant-analytics/pkg/timescale"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	timescaleClient, err := timescale.NewClient(ctx, cfg.Timescale)
	if err != nil {
		appLogger.Error(err, logger.Field{Key: "action", Value: "timescale_connect"})
		os.Exit(1)
	}
	defer timescaleClient.Close()

	if err := timescaleClient.Ping(ctx); err != nil {
		appLogger.Error(err, logger.Field{Key: "action", Value: "timescale_ping"})
		os.Exit(1)
	}
	appLogger.Info("timescale connected")

	redisClient := redis.NewClient(appLogger, &cfg.Redis)
	if err := redisClient.Connect(ctx); err != nil {
		appLogger.Error(err, logger.Field{Key: "action", Value: "redis_connect"})
		os.Exit(1)
	}
	defer redisClient.Disconnect(ctx)
	appLogger.Info("redis connected")

	b := bootstrap.Bootstrap{}
	b.Init(bootstrap.BootstrapConfig{
		Timescale: timescaleClient,
		Redis:     redisClient,
		Logger:    appLogger,
	})

	agg, err := aggregator.New(cfg.Aggregation, appLogger)
	if err != nil {
		appLogger.Error(err, logger.Field{Key: "action", Value: "aggregator_init"})
		os.Exit(1)
	}

	policies, err := cfg.Aggregation.Policies()
	if err != nil {
		appLogger.Error(err, logger.Field{Key: "action", Value: "policies_init"})
		os.Exit(1)
	}

	var alertRedis redis.Client
	if cfg.Alert.PublishStream {
		alertRedis = redisClient
	}
	alertEngine := alerting.NewEngine(b.Usecase.AlertUsecase, alertRedis, cfg.Alert, cfg.Stream.AlertStream, appLogger)

	sched := scheduler.New(agg, b.Usecase.OhlcvUsecase, policies, appLogger)
	sched.AddListener(alertEngine)

	symbols := make([]string, 0, len(cfg.Ingester.Symbols))
	for _, s := range cfg.Ingester.Symbols {
		symbols = append(symbols, strings.ToUpper(s))
	}
	analyticsEngine := analytics.NewEngine(
		b.Usecase.OhlcvUsecase,
		b.Usecase.AnalyticsUsecase,
		alertEngine,
		cfg.Analytics,
		symbols,
		appLogger,
	)

	tickConsumer := consumer.NewTickConsumer(redisClient, b.Usecase.TickUsecase, agg, cfg.Stream, appLogger)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := alertEngine.Start(runCtx); err != nil {
		appLogger.Error(err, logger.Field{Key: "action", Value: "alert_engine_start"})
		os.Exit(1)
	}
	sched.Start(runCtx)
	analyticsEngine.Start(runCtx)

	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		if err := tickConsumer.Start(runCtx); err != nil {
			appLogger.Error(err, logger.Field{Key: "action", Value: "tick_consumer"})
		}
	}()

	var ing *ingester.Ingester
	if cfg.Ingester.Enabled {
		ing = ingester.New(redisClient, cfg.Ingester, cfg.Stream, appLogger)
		ing.Start(runCtx)
	}

	appLogger.Info("quant analytics started", logger.Field{
		Key:   "environment",
		Value: cfg.App.Environment,
	}, logger.Field{
		Key:   "intervals",
		Value: cfg.Aggregation.EnabledIntervals,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down")
	cancel()

	// Upstream first, then the pipeline stages, so nothing new arrives while
	// the consumer drains and the scheduler runs its final emission pass.
	if ing != nil {
		ing.Stop()
	}
	<-consumerDone
	sched.Stop()
	analyticsEngine.Stop()
	alertEngine.Stop()

	appLogger.Info("quant analytics stopped")
}
