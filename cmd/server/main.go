package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garageconnect/customer/internal/api"
	"github.com/garageconnect/customer/internal/buildconfig"
	"github.com/garageconnect/customer/internal/cache"
	"github.com/garageconnect/customer/internal/config"
	"github.com/garageconnect/customer/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger() *zap.Logger {
	logConfig := zap.NewProductionConfig()
	if config.IsDevelopment() {
		logConfig = zap.NewDevelopmentConfig()
		logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(config.LogLevel())); err != nil {
		level = zapcore.InfoLevel
	}
	logConfig.Level.SetLevel(level)

	logger, err := logConfig.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger
}

func main() {
	if err := config.Load(); err != nil {
		panic(err)
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	dbURL := config.DatabaseURL()
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}
	if config.JWTSecret() == "" {
		logger.Fatal("JWT_SECRET is required")
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("failed to ping database", zap.Error(err))
	}
	logger.Info("connected to database")

	rc, err := cache.NewClient(config.RedisAddr(), config.RedisPassword(), config.RedisDB())
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer func() { _ = rc.Close() }()
	logger.Info("connected to redis", zap.String("addr", config.RedisAddr()))

	blobs, err := storage.NewDriver(storage.Config{
		Driver:             config.StorageDriver(),
		UploadsPath:        config.UploadsPath(),
		PublicBaseURL:      config.PublicBaseURL(),
		AWSRegion:          config.AWSRegion(),
		AWSAccessKeyID:     config.AWSAccessKeyID(),
		AWSSecretAccessKey: config.AWSSecretAccessKey(),
		BucketPrefix:       config.S3BucketPrefix(),
		Endpoint:           config.S3Endpoint(),
	})
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.String("driver", config.StorageDriver()), zap.Error(err))
	}

	app := api.NewApp(pool, rc, blobs, logger)

	sweepCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	go app.Screens.RunSweeper(sweepCtx, 10*time.Minute)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting",
			zap.String("addr", addr),
			zap.String("version", buildconfig.Version()),
			zap.String("commit", buildconfig.Commit()),
			zap.String("demo_tenant", config.DemoTenantSlug()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
