package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/flownote/internal/export"
	"github.com/existflow/flownote/internal/logger"
	"github.com/existflow/flownote/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data as JSON",
	Long: `Write every collection to flownote-export-<date>.json.

Examples:
  flownote export
  flownote export --dir ~/backups
  flownote export --csv events.csv`,
	RunE: runExport,
}

var (
	exportDir string
	exportCSV string
)

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", ".", "Directory to write the export into")
	exportCmd.Flags().StringVar(&exportCSV, "csv", "", "Also write calendar events as CSV to this file")
}

func runExport(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		now := st.Now()
		doc := export.Build(st.Snapshot(), now)
		path, err := export.WriteFile(expandHome(exportDir), doc, now)
		if err != nil {
			return err
		}
		logger.Info("Exported data", logger.F("path", path))
		printf(cmd, "✓ Exported to %s\n", path)

		if exportCSV == "" {
			return nil
		}
		f, err := os.Create(expandHome(exportCSV))
		if err != nil {
			return fmt.Errorf("create csv file: %w", err)
		}
		defer f.Close()
		if err := export.WriteEventsCSV(f, st.CalendarEvents()); err != nil {
			return err
		}
		printf(cmd, "✓ Wrote events to %s\n", exportCSV)
		return nil
	})
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
