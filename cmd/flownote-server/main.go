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

	"github.com/existflow/flownote/internal/auth"
	"github.com/existflow/flownote/internal/config"
	"github.com/existflow/flownote/internal/kv"
	"github.com/existflow/flownote/internal/logger"
	"github.com/existflow/flownote/internal/store"
	"github.com/existflow/flownote/internal/timer"
	"github.com/existflow/flownote/server"
)

func main() {
	if err := run(); err != nil {
		logger.Error("Server failed", logger.F("error", err))
		fmt.Fprintln(os.Stderr, err)
		logger.Close()
		os.Exit(1)
	}
	logger.Close()
}

func run() error {
	cfg := config.DefaultConfig()
	if port := os.Getenv("PORT"); port != "" {
		cfg.ListenAddr = ":" + port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logConfig := logger.DefaultConfig()
	logConfig.Level = logger.ParseLevel(cfg.LogLevel)
	logConfig.FilePath = os.Getenv("FLOWNOTE_LOG_FILE")
	logConfig.Console = true
	if err := logger.Init(logConfig); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storage, err := kv.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			logger.Warn("Error closing storage", logger.F("error", err))
		}
	}()

	st, err := store.New(ctx, storage, store.WithTaskStatuses(cfg.TaskStatuses))
	if err != nil {
		return err
	}
	tm := timer.New(st, timer.WithDuration(time.Duration(cfg.DefaultMinutes)*time.Minute))
	srv := server.New(st, tm, auth.NewLocal(st, 0))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("FlowNote server starting", logger.F("addr", cfg.ListenAddr), logger.F("storage", cfg.Storage))
		errCh <- srv.Start(cfg.ListenAddr)
	}()

	select {
	case err := <-errCh:
		tm.Close()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
