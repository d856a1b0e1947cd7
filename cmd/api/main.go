package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/cafe-companion/api/routes"
	"github.com/angelmondragon/cafe-companion/internal/catalog"
	"github.com/angelmondragon/cafe-companion/internal/giftcards"
	"github.com/angelmondragon/cafe-companion/internal/recommend"
	"github.com/angelmondragon/cafe-companion/internal/sessions"
	"github.com/angelmondragon/cafe-companion/internal/tableorder"
	"github.com/angelmondragon/cafe-companion/pkg/config"
	"github.com/angelmondragon/cafe-companion/pkg/ids"
	"github.com/angelmondragon/cafe-companion/pkg/instance"
	"github.com/angelmondragon/cafe-companion/pkg/logger"
	"github.com/angelmondragon/cafe-companion/pkg/metrics"
	"github.com/angelmondragon/cafe-companion/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "cafe-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "cafe-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(ctx, "redis not configured, idempotency keys are not enforced")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storefront := metrics.NewStorefront(reg)

	gen, err := ids.NewGenerator(cfg.IDs.SnowflakeNode)
	if err != nil {
		logg.Error(ctx, "failed to create id generator", err)
		os.Exit(1)
	}

	engine, err := recommend.NewEngine(cfg.Recommend, storefront, logg)
	if err != nil {
		logg.Error(ctx, "failed to create recommendation engine", err)
		os.Exit(1)
	}

	giftCards, err := giftcards.NewService(cfg.GiftCard, giftcards.LogSender{Logger: logg}, gen, storefront, logg)
	if err != nil {
		logg.Error(ctx, "failed to create gift card service", err)
		os.Exit(1)
	}

	registry := sessions.NewRegistry(sessions.Deps{
		Loyalty: cfg.Loyalty,
		IDs:     gen,
		Scanner: tableorder.MockScanner{},
		Metrics: storefront,
		Logger:  logg,
		IdleTTL: cfg.Sessions.IdleTTL,
	})
	go func() {
		if err := registry.Run(ctx, cfg.Sessions.SweepInterval); err != nil && !errors.Is(err, context.Canceled) {
			logg.Error(ctx, "session sweeper stopped", err)
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	startCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
	})
	logg.Info(startCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, redisClient, reg, registry, catalog.Default(), engine, giftCards),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(startCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(startCtx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(startCtx, "graceful shutdown failed", err)
		}
	}
}
