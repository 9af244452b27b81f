package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where Load looks when no explicit path is given.
const DefaultConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	ServerURL         string `yaml:"serverURL"`
	StateDir          string `yaml:"stateDir"`
	LogLevel          string `yaml:"logLevel"`
	DefaultBorrowDays int    `yaml:"defaultBorrowDays"`
	HTTPTimeout       string `yaml:"httpTimeout"`
}

// Load reads config from path, falling back to defaults when the file is
// absent. Environment variables override file values. A .env file in the
// working directory is honored when present.
func Load(path string) (FileConfig, error) {
	_ = godotenv.Load()

	cfg := FileConfig{
		ServerURL:         "http://localhost:8080",
		DefaultBorrowDays: 14,
		HTTPTimeout:       "10s",
	}
	if path == "" {
		path = DefaultConfigPath
		if v := os.Getenv("LIBRIO_CONFIG"); v != "" {
			path = v
		}
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	case os.IsNotExist(err):
		// Config file is optional for a client tool.
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if v := os.Getenv("LIBRIO_SERVER_URL"); v != "" {
		cfg.ServerURL = strings.TrimSpace(v)
	}
	if v := os.Getenv("LIBRIO_STATE_DIR"); v != "" {
		cfg.StateDir = strings.TrimSpace(v)
	}
	if v := os.Getenv("LIBRIO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v := os.Getenv("LIBRIO_BORROW_DAYS"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.DefaultBorrowDays = n
		}
	}
	if v := os.Getenv("LIBRIO_HTTP_TIMEOUT"); v != "" {
		cfg.HTTPTimeout = strings.TrimSpace(v)
	}

	if cfg.StateDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return cfg, fmt.Errorf("resolve state dir: %w", err)
		}
		cfg.StateDir = filepath.Join(base, "librio")
	}

	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg FileConfig) error {
	if strings.TrimSpace(cfg.ServerURL) == "" {
		return errors.New("config: serverURL is required (set in config.yaml or LIBRIO_SERVER_URL)")
	}
	u, err := url.Parse(cfg.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: serverURL %q is not an absolute URL", cfg.ServerURL)
	}
	if cfg.DefaultBorrowDays < 1 || cfg.DefaultBorrowDays > 30 {
		return errors.New("config: defaultBorrowDays must be between 1 and 30")
	}
	if _, err := ParseHTTPTimeout(cfg.HTTPTimeout); err != nil {
		return err
	}
	return nil
}

// ParseHTTPTimeout parses the optional HTTP timeout duration string.
func ParseHTTPTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 10 * time.Second, nil
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid httpTimeout duration: %w", err)
	}
	if dur <= 0 {
		return 0, errors.New("config: httpTimeout must be positive")
	}
	return dur, nil
}
