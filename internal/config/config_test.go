package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LIBRIO_CONFIG", "LIBRIO_SERVER_URL", "LIBRIO_STATE_DIR", "LIBRIO_LOG_LEVEL", "LIBRIO_BORROW_DAYS", "LIBRIO_HTTP_TIMEOUT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("LIBRIO_STATE_DIR", t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerURL != "http://localhost:8080" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.DefaultBorrowDays != 14 {
		t.Errorf("DefaultBorrowDays = %d, want 14", cfg.DefaultBorrowDays)
	}
	if cfg.HTTPTimeout != "10s" {
		t.Errorf("HTTPTimeout = %q, want 10s", cfg.HTTPTimeout)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := strings.Join([]string{
		"serverURL: https://library.example.com",
		"stateDir: " + dir,
		"logLevel: debug",
		"defaultBorrowDays: 7",
		"httpTimeout: 3s",
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerURL != "https://library.example.com" || cfg.DefaultBorrowDays != 7 {
		t.Errorf("file values not applied: %+v", cfg)
	}

	t.Setenv("LIBRIO_SERVER_URL", "https://other.example.com")
	t.Setenv("LIBRIO_BORROW_DAYS", "21")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("load with env: %v", err)
	}
	if cfg.ServerURL != "https://other.example.com" {
		t.Errorf("env should override file, got %q", cfg.ServerURL)
	}
	if cfg.DefaultBorrowDays != 21 {
		t.Errorf("env should override file, got %d", cfg.DefaultBorrowDays)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cases := []struct {
		name string
		body string
	}{
		{"relative server url", "serverURL: not-a-url\nstateDir: " + dir},
		{"borrow days out of range", "serverURL: http://x.test\ndefaultBorrowDays: 45\nstateDir: " + dir},
		{"bad timeout", "serverURL: http://x.test\nhttpTimeout: soon\nstateDir: " + dir},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestParseHTTPTimeout(t *testing.T) {
	if d, err := ParseHTTPTimeout(""); err != nil || d != 10*time.Second {
		t.Errorf("empty timeout = %v, %v", d, err)
	}
	if d, err := ParseHTTPTimeout("2s"); err != nil || d != 2*time.Second {
		t.Errorf("2s timeout = %v, %v", d, err)
	}
	if _, err := ParseHTTPTimeout("-1s"); err == nil {
		t.Error("negative timeout should be rejected")
	}
}
