package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/flownote/internal/kv"
	"github.com/existflow/flownote/internal/logger"
	"github.com/existflow/flownote/internal/store"
)

// openStore opens the configured backend and loads the store.
func openStore(ctx context.Context) (*store.Store, func(), error) {
	storage, err := kv.Open(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open storage", logger.F("error", err))
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}
	st, err := store.New(ctx, storage, store.WithTaskStatuses(cfg.TaskStatuses))
	if err != nil {
		storage.Close()
		return nil, nil, err
	}
	closeFn := func() {
		_ = storage.Close()
		logger.Debug("Storage closed")
	}
	return st, closeFn, nil
}

// withStore runs fn against a freshly loaded store.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, st *store.Store) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st, closeFn, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, st)
}

// resolveID accepts a full id or a unique prefix of one.
func resolveID(kind, arg string, ids []string) (string, error) {
	var match string
	for _, id := range ids {
		if id == arg {
			return id, nil
		}
		if strings.HasPrefix(id, arg) {
			if match != "" {
				return "", fmt.Errorf("%s id %q is ambiguous", kind, arg)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("%s %q not found", kind, arg)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
