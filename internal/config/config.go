package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/datadeck/datadeck/internal/loader"
)

// Default values for the service configuration.
const (
	DefaultDataDir       = "data-docs"
	DefaultHost          = "0.0.0.0"
	DefaultPort          = 8000
	DefaultWatchDebounce = 500 * time.Millisecond
)

// Config holds all service settings.
type Config struct {
	// DataDir is the directory scanned for data files.
	DataDir string `yaml:"data_dir"`

	// Host and Port are the HTTP listen address.
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// Watch enables live reload on data-directory changes.
	Watch bool `yaml:"watch"`

	// WatchDebounce is the quiet period collapsing change bursts into a
	// single reload.
	WatchDebounce time.Duration `yaml:"watch_debounce"`

	// CORS enables permissive cross-origin headers on all responses.
	CORS bool `yaml:"cors"`
}

// Load builds the configuration: defaults, then the YAML file at path (when
// non-empty), then environment overrides, then validation.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// ValidateDataDir enforces the startup requirements on the data directory.
func (c *Config) ValidateDataDir() error {
	fi, err := os.Stat(c.DataDir)
	if err != nil {
		return fmt.Errorf("data directory not found: %s", c.DataDir)
	}
	if !fi.IsDir() {
		return fmt.Errorf("data directory path is not a directory: %s", c.DataDir)
	}
	files, err := loader.Discover(c.DataDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no supported files found in directory: %s (want .xlsx, .xls, .json, or .csv)", c.DataDir)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		DataDir:       DefaultDataDir,
		Host:          DefaultHost,
		Port:          DefaultPort,
		WatchDebounce: DefaultWatchDebounce,
	}
}

// applyEnv overlays environment variables onto cfg.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT %q is not an integer", v)
		}
		cfg.Port = p
	}
	if v := os.Getenv("WATCH_FILE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("WATCH_FILE %q is not a boolean", v)
		}
		cfg.Watch = b
	}
	if v := os.Getenv("WATCH_DEBOUNCE_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WATCH_DEBOUNCE_MS %q is not an integer", v)
		}
		cfg.WatchDebounce = time.Duration(ms) * time.Millisecond
	}
	if v := os.Getenv("ENABLE_CORS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ENABLE_CORS %q is not a boolean", v)
		}
		cfg.CORS = b
	}
	return nil
}

// validate checks structural constraints on the assembled configuration.
func validate(cfg *Config) error {
	if cfg.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port %d is out of range [1, 65535]", cfg.Port)
	}
	if cfg.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must not be negative")
	}
	return nil
}
