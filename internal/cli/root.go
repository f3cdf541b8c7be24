package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/existflow/flownote/internal/config"
	"github.com/existflow/flownote/internal/logger"
)

var (
	configPath  string
	storageFlag string
	dbPath      string
	logLevel    string
	logFile     string
	logConsole  bool

	// cfg is loaded by the root PersistentPreRunE.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "flownote",
	Short: "FlowNote - focus timer, calendar, habits and tasks",
	Long: `FlowNote keeps habits, notes, a focus timer, tasks and a calendar in one
local store.

Run 'flownote' without arguments to open the focus timer.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			logger.Warn("Failed to load config, using defaults", logger.F("error", err))
			cfg = config.DefaultConfig()
		}

		// Override with CLI flags if provided
		configChanged := false
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
			configChanged = true
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
			configChanged = true
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
			configChanged = true
		}
		if cmd.Flags().Changed("storage") {
			cfg.Storage = storageFlag
			configChanged = true
		}
		if cmd.Flags().Changed("db") {
			cfg.DBPath = dbPath
			configChanged = true
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		if configChanged {
			save := cfg.Save
			if configPath != "" {
				save = func() error { return cfg.SaveTo(configPath) }
			}
			if err := save(); err != nil {
				logger.Warn("Failed to save config", logger.F("error", err))
			}
		}

		logConfig := logger.DefaultConfig()
		logConfig.Level = logger.ParseLevel(cfg.LogLevel)
		logConfig.FilePath = cfg.LogFile
		logConfig.Console = cfg.LogConsole
		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("FlowNote started", logger.F("command", cmd.Name()))
		return nil
	},
	RunE: runFocus,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("FlowNote exiting", logger.F("command", cmd.Name()))
	},
}

// Execute runs the root command
func Execute() error {
	defer logger.Close()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.flownote/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&storageFlag, "storage", "", "Storage backend (sqlite, postgres, memory)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(eventCmd)
	rootCmd.AddCommand(habitCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(rewardCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(authCmd)
}
