// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angelamos/kol-backend/internal/admin"
	"github.com/angelamos/kol-backend/internal/auth"
	"github.com/angelamos/kol-backend/internal/config"
	"github.com/angelamos/kol-backend/internal/core"
	"github.com/angelamos/kol-backend/internal/health"
	"github.com/angelamos/kol-backend/internal/kol"
	"github.com/angelamos/kol-backend/internal/middleware"
	"github.com/angelamos/kol-backend/internal/server"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	store, err := core.NewDynamo(ctx, cfg.Dynamo)
	if err != nil {
		return err
	}
	logger.Info("dynamodb connected",
		"region", cfg.Dynamo.Region,
		"kol_table", cfg.Dynamo.KOLTable,
		"user_table", cfg.Dynamo.UserTable,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	tokenManager, err := auth.NewTokenManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("token manager initialized",
		"algorithm", "HS256",
		"token_expire", cfg.JWT.TokenExpire.String(),
	)

	sanitizer := core.NewSanitizer()

	kolRepo := kol.NewRepository(store.Client, cfg.Dynamo.KOLTable)
	kolSvc := kol.NewService(kolRepo, sanitizer)
	kolHandler := kol.NewHandler(kolSvc)

	authRepo := auth.NewRepository(store.Client, cfg.Dynamo.UserTable)
	authSvc := auth.NewService(authRepo, tokenManager)
	authHandler := auth.NewHandler(authSvc)

	healthHandler := health.NewHandler(store, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		StorePing:  store.Ping,
		RedisPing:  redis.Ping,
		RedisStats: redis.PoolStats,
		StoreInfo: admin.StoreInfo{
			Region:    cfg.Dynamo.Region,
			KOLTable:  cfg.Dynamo.KOLTable,
			UserTable: cfg.Dynamo.UserTable,
		},
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	authenticator := middleware.Authenticator(tokenManager)

	authHandler.RegisterRoutes(router)
	kolHandler.RegisterRoutes(router, authenticator)
	adminHandler.RegisterRoutes(router, authenticator)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
