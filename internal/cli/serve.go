package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/flownote/internal/auth"
	"github.com/existflow/flownote/internal/logger"
	"github.com/existflow/flownote/internal/timer"
	"github.com/existflow/flownote/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local HTTP API",
	Long: `Serve the FlowNote JSON API on a local address.

Examples:
  flownote serve
  flownote serve --addr 127.0.0.1:9000`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, closeFn, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	tm := timer.New(st,
		timer.WithNotifier(timer.NewLogNotifier()),
		timer.WithDuration(time.Duration(cfg.DefaultMinutes)*time.Minute),
	)
	srv := server.New(st, tm, auth.NewLocal(st, 0))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", logger.F("addr", addr), logger.F("storage", cfg.Storage))
		printf(cmd, "FlowNote API listening on http://%s\n", addr)
		errCh <- srv.Start(addr)
	}()

	select {
	case err := <-errCh:
		tm.Close()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
