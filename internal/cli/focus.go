package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/existflow/flownote/internal/logger"
	"github.com/existflow/flownote/internal/timer"
	"github.com/existflow/flownote/internal/tui"
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Open the focus timer",
	RunE:  runFocus,
}

func runFocus(cmd *cobra.Command, args []string) error {
	st, closeFn, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	tm := timer.New(st,
		timer.WithManualTick(),
		timer.WithNotifier(timer.NewLogNotifier()),
		timer.WithDuration(time.Duration(cfg.DefaultMinutes)*time.Minute),
	)
	defer tm.Close()

	logger.Info("Launching TUI")
	p := tea.NewProgram(tui.NewModel(cmd.Context(), st, tm), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", logger.F("error", err))
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	logger.Info("TUI exited normally")
	return nil
}
