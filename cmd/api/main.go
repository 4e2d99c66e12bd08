package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gravadigital/partnerships-api/internal/config"
	"github.com/gravadigital/partnerships-api/internal/logger"
	"github.com/gravadigital/partnerships-api/internal/metrics"
	"github.com/gravadigital/partnerships-api/internal/server"
	"github.com/gravadigital/partnerships-api/internal/services"
	"github.com/gravadigital/partnerships-api/internal/storage"
	"github.com/gravadigital/partnerships-api/internal/storage/blob"
	"github.com/gravadigital/partnerships-api/internal/storage/postgres"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	logger.Configure(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	log := logger.Get()

	log.Info("Starting Partnerships API",
		"environment", cfg.Environment,
		"storage", cfg.Storage.Type,
		"blob", cfg.BlobDriver())

	container, err := storage.NewFromConfig(cfg)
	if err != nil {
		log.Fatal("Failed to initialize storage", "error", err)
	}
	defer func() {
		if err := container.Close(); err != nil {
			log.Error("Failed to close storage", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	blobs, err := blob.New(ctx, cfg, server.FilesPrefix)
	if err != nil {
		log.Error("Failed to initialize blob store", "error", err)
		return
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		if pg, ok := container.(*postgres.Container); ok {
			if sqlDB, err := postgres.SQLDB(pg.GetDB()); err == nil {
				if err := m.RegisterDB(sqlDB, cfg.Storage.Type); err != nil {
					log.Warn("Failed to register pool metrics", "error", err)
				}
			}
		}
	}

	srv := server.New(cfg, container, services.New(container), blobs, m)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("Server stopped", "error", err)
		}
		return
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
	}
	log.Info("Server exited")
}
