package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config captures environment driven configuration values for the
// reservations service.
type Config struct {
	HTTPPort  int
	SQLiteDSN string
	LogLevel  slog.Level
}

// Load parses configuration values from the current process environment.
//
// Optional fields fall back to defaults; every invalid variable is collected
// and reported in a single error so operators fix them in one pass.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:  8080,
		SQLiteDSN: "file:reservas.db?_pragma=foreign_keys(1)",
		LogLevel:  slog.LevelInfo,
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("RESERVAS_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "RESERVAS_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("RESERVAS_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if levelValue := strings.TrimSpace(os.Getenv("RESERVAS_LOG_LEVEL")); levelValue != "" {
		level, ok := parseLogLevel(levelValue)
		if !ok {
			invalid = append(invalid, "RESERVAS_LOG_LEVEL")
		} else {
			cfg.LogLevel = level
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func parseLogLevel(value string) (slog.Level, bool) {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
