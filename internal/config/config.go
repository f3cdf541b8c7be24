package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/existflow/flownote/internal/model"
)

// Storage backends
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds user preferences
type Config struct {
	Storage     string `yaml:"storage" json:"storage"`           // sqlite, postgres or memory
	DBPath      string `yaml:"db_path" json:"db_path"`           // SQLite file for the sqlite backend
	DatabaseURL string `yaml:"database_url" json:"database_url"` // DSN for the postgres backend
	ListenAddr  string `yaml:"listen_addr" json:"listen_addr"`   // Address of the local API

	DefaultMinutes int      `yaml:"default_minutes" json:"default_minutes"` // Focus timer preset
	TaskStatuses   []string `yaml:"task_statuses" json:"task_statuses"`

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// Dir returns ~/.flownote
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".flownote"), nil
}

// DefaultPath returns ~/.flownote/config.yaml
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultConfig returns default settings with environment overrides applied
func DefaultConfig() *Config {
	dbPath, logPath := "", ""
	if dir, err := Dir(); err == nil {
		dbPath = filepath.Join(dir, "flownote.db")
		logPath = filepath.Join(dir, "logs", "flownote.log")
	}

	minutes, err := strconv.Atoi(getEnv("FLOWNOTE_DEFAULT_MINUTES", "25"))
	if err != nil {
		minutes = 25
	}

	return &Config{
		Storage:        getEnv("FLOWNOTE_STORAGE", StorageSQLite),
		DBPath:         getEnv("FLOWNOTE_DB_PATH", dbPath),
		DatabaseURL:    getEnv("DATABASE_URL", "postgres://localhost:5432/flownote?sslmode=disable"),
		ListenAddr:     getEnv("FLOWNOTE_ADDR", "127.0.0.1:8080"),
		DefaultMinutes: minutes,
		TaskStatuses:   append([]string(nil), model.DefaultTaskStatuses...),
		LogLevel:       getEnv("FLOWNOTE_LOG_LEVEL", "INFO"),
		LogFile:        getEnv("FLOWNOTE_LOG_FILE", logPath),
		LogConsole:     getEnv("FLOWNOTE_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Load loads config from ~/.flownote/config.yaml
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads config from path. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the application cannot start with
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageSQLite, StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage)
	}
	if c.DefaultMinutes < 1 || c.DefaultMinutes > 120 {
		return fmt.Errorf("default_minutes must be between 1 and 120, got %d", c.DefaultMinutes)
	}
	if len(c.TaskStatuses) == 0 {
		return fmt.Errorf("task_statuses must not be empty")
	}
	return nil
}

// Save saves config to ~/.flownote/config.yaml
func (c *Config) Save() error {
	path, err := DefaultPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config as yaml to path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
