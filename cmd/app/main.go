package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"procurement/cmd"
	"procurement/internal/adapters/out/storage"
	"procurement/internal/pkg/logging"

	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	configs, err := cmd.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger, err := logging.New(configs.Logging())
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err = run(configs, logger); err != nil {
		logger.Error("service stopped with error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(configs cmd.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := storage.Open(configs.Storage())
	if err != nil {
		return err
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}
	if err = storage.Migrate(gormDB); err != nil {
		return err
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		return err
	}

	if jobManager := app.CreateJobManager(); jobManager != nil {
		if err = jobManager.StartAll(); err != nil {
			return err
		}
		defer jobManager.StopAll()
	}

	return startWebServer(ctx, app, configs.HTTP, logger)
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, cfg cmd.HTTPConfig, logger *zap.Logger) error {
	e := app.CreateHTTPServer().Echo()
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	serveErr := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", cfg.Port)
		logger.Info("http server listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
