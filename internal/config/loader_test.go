package config

import (
	"log/slog"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RESERVAS_HTTP_PORT", "")
	t.Setenv("RESERVAS_SQLITE_DSN", "")
	t.Setenv("RESERVAS_LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTPPort != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.HTTPPort)
	}
	if cfg.SQLiteDSN != "file:reservas.db?_pragma=foreign_keys(1)" {
		t.Fatalf("unexpected default DSN %q", cfg.SQLiteDSN)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("expected default level info, got %v", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RESERVAS_HTTP_PORT", "9090")
	t.Setenv("RESERVAS_SQLITE_DSN", "file::memory:")
	t.Setenv("RESERVAS_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTPPort != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.HTTPPort)
	}
	if cfg.SQLiteDSN != "file::memory:" {
		t.Fatalf("unexpected DSN %q", cfg.SQLiteDSN)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.LogLevel)
	}
}

func TestLoadReportsEveryInvalidVariable(t *testing.T) {
	t.Setenv("RESERVAS_HTTP_PORT", "not-a-port")
	t.Setenv("RESERVAS_LOG_LEVEL", "loud")

	_, err := Load()
	if err == nil {
		t.Fatal("expected an error for invalid variables")
	}
	for _, name := range []string{"RESERVAS_HTTP_PORT", "RESERVAS_LOG_LEVEL"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("expected error to name %s, got %q", name, err.Error())
		}
	}
}

func TestLoadRejectsNonPositivePort(t *testing.T) {
	t.Setenv("RESERVAS_HTTP_PORT", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a non-positive port")
	}
}
