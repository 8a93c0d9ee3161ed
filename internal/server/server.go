// Package server owns process bootstrap and the listen/shutdown lifecycle:
// config, database, cache, storage, queue workers, the Mongo audit sink,
// the gRPC health server, and the HTTP server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/aushadhi/config"
	"github.com/shashiranjanraj/aushadhi/pkg/cache"
	"github.com/shashiranjanraj/aushadhi/pkg/database"
	grpcserver "github.com/shashiranjanraj/aushadhi/pkg/grpc"
	"github.com/shashiranjanraj/aushadhi/pkg/logger"
	"github.com/shashiranjanraj/aushadhi/pkg/queue"
	"github.com/shashiranjanraj/aushadhi/pkg/storage"
)

const (
	shutdownTimeout = 15 * time.Second
	queueWorkers    = 4
)

var mongoSink *logger.MongoHandler

// Boot loads config and connects every backing service. Must be called
// before Start. Redis and Mongo are optional; the database is not.
func Boot() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: config: %w", err)
	}

	if err := database.Connect(); err != nil {
		return fmt.Errorf("server: database: %w", err)
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("server: redis unavailable, falling back to in-process cache", "error", err)
	}

	storage.Connect()

	// Durable audit sink: fan out slog to stdout and Mongo when configured.
	if uri := config.MongoLogURI(); uri != "" {
		h, err := logger.NewMongoHandler(uri, config.MongoLogDatabase(), config.MongoLogCollection())
		if err != nil {
			logger.Warn("server: mongo log sink disabled", "error", err)
		} else {
			mongoSink = h
			logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), h))
		}
	}

	// Queue: redis driver when available, otherwise the in-memory driver
	// the manager starts with.
	if rdb := cache.Client(); rdb != nil {
		queue.SetDriver(queue.NewRedisDriver(rdb))
	}
	if db := database.DB; db != nil {
		queue.UseDB(db)
	}

	return nil
}

// Start runs the HTTP server with handler and the gRPC health server, and
// blocks until SIGINT/SIGTERM, then drains in-flight requests.
func Start(handler http.Handler) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue.StartWorkers(ctx, queueWorkers)

	grpcSrv, _, err := grpcserver.Start(config.GRPCPort())
	if err != nil {
		return err
	}

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutdown signal received, draining")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}

	grpcserver.Stop(grpcSrv)

	if mongoSink != nil {
		mongoSink.Close()
	}

	if db := database.DB; db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if rdb := cache.Client(); rdb != nil {
		_ = rdb.Close()
	}

	logger.Info("server stopped")
	return nil
}

// Health reports liveness of the backing services, used by GET /health.
func Health(ctx context.Context) map[string]string {
	out := map[string]string{"status": "ok"}

	if db := database.DB; db != nil {
		if sqlDB, err := db.DB(); err == nil && sqlDB.PingContext(ctx) == nil {
			out["database"] = "up"
		} else {
			out["database"] = "down"
			out["status"] = "degraded"
		}
	} else {
		out["database"] = "down"
		out["status"] = "degraded"
	}

	if rdb := cache.Client(); rdb != nil && rdb.Ping(ctx).Err() == nil {
		out["redis"] = "up"
	} else {
		out["redis"] = "down"
	}

	return out
}
