package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/healthplug/pharmabot/internal/api/router"
	"github.com/healthplug/pharmabot/internal/chat"
	appconfig "github.com/healthplug/pharmabot/internal/config"
	"github.com/healthplug/pharmabot/internal/intent"
	"github.com/healthplug/pharmabot/internal/observability/metrics"
	"github.com/healthplug/pharmabot/internal/orders"
	"github.com/healthplug/pharmabot/internal/session"
	"github.com/healthplug/pharmabot/pkg/logging"
)

func main() {
	// .env is optional; real deployments inject environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting pharmabot API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	redisClient := redis.NewClient(newRedisOptions(cfg))

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		logger.Error("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}
	cancelPing()

	store := session.NewStore(redisClient, cfg.SessionTTL)

	engine := buildEngine(logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	classifierMetrics := metrics.NewClassifierMetrics(registry)

	service := chat.NewService(engine, store, classifierMetrics, logger)
	handler := chat.NewHandler(service, logger)

	r := router.New(&router.Config{
		Logger:         logger,
		ChatHandler:    handler,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		RateLimit:      cfg.RateLimit,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	if err := redisClient.Close(); err != nil {
		logger.Error("failed to close redis client", "error", err)
	}

	logger.Info("server stopped")
}

func newRedisOptions(cfg *appconfig.Config) *redis.Options {
	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts
}

func buildEngine(logger *logging.Logger) *intent.Engine {
	return intent.NewEngine(intent.Options{
		ParseOrderID: func(text string) (string, bool) {
			id := orders.ParseOrderIDFromText(text)
			return id, id != ""
		},
		IsValidOrderID: orders.IsValidOrderID,
		Logger:         logger,
	})
}
