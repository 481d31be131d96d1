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

	"fsanano/csmarket/internal/config"
	"fsanano/csmarket/internal/handler"
	"fsanano/csmarket/internal/logging"
	"fsanano/csmarket/internal/repository"
	"fsanano/csmarket/internal/service"
	"fsanano/csmarket/internal/service/csmarket"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		logging.New("info").Fatalf("Failed to load config: %v", err)
	}
	logger := logging.New(cfg.LogLevel)

	// Wait for interrupt signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithField("component", "main").Error(err)
		stop()
		os.Exit(1)
	}
}

// run serves until ctx is done or the listener fails. Resources are released
// before it returns on every path.
func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	log := logger.WithField("component", "main")

	// 2. Setup upstream client
	client := csmarket.NewClient(csmarket.Config{
		APIURL:  cfg.CSMarket.APIURL,
		APIKey:  cfg.CSMarket.APIKey,
		Timeout: cfg.CSMarket.Timeout,
	}, csmarket.WithLogger(logger.WithField("component", "csmarket")))
	defer client.Close()

	// 3. Setup Database (optional)
	var snapshotHandler *handler.SnapshotHandler
	if cfg.DatabaseURL != "" {
		dbPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbPool.Close()

		if err := dbPool.Ping(ctx); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}

		snapshotRepo := repository.NewSnapshotRepository(dbPool)
		if err := snapshotRepo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to prepare schema: %w", err)
		}
		log.Info("Connected to database")

		snapshotService := service.NewSnapshotService(client, snapshotRepo, cfg.SnapshotConcurrency, logrus.NewEntry(logger))
		snapshotHandler = handler.NewSnapshotHandler(snapshotService, logrus.NewEntry(logger))
	} else {
		log.Warn("DATABASE_URL not set, snapshot routes disabled")
	}

	h := handler.NewHandler(client, snapshotHandler, logrus.NewEntry(logger))

	// 4. Setup Server
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: h,
	}

	// 5. Run Server with Graceful Shutdown
	serverErr := make(chan error, 1)
	go func() {
		log.Infof("Starting server on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server exiting")
	return nil
}
