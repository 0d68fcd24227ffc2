package commands

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EnvLogLevel     = "WEA_LOG_LEVEL"
	EnvMaxCallDepth = "WEA_MAX_CALL_DEPTH"
	EnvHistoryFile  = "WEA_HISTORY_FILE"
)

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func DefaultLogLevel() string {
	return getEnvOr(EnvLogLevel, "warn")
}

// DefaultMaxCallDepth returns 0 when unset so the runtime default applies.
func DefaultMaxCallDepth() int {
	n, err := strconv.Atoi(os.Getenv(EnvMaxCallDepth))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func DefaultHistoryFile() string {
	if v := os.Getenv(EnvHistoryFile); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wea_history")
}

// loadEnv reads envfile into the process environment.  A missing file is
// not an error.
func loadEnv(envfile string) error {
	if envfile == "" {
		return nil
	}
	err := godotenv.Load(envfile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return err
	}
	slog.SetDefault(slog.New(NewPrettyHandler(os.Stderr, PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: lvl},
	})))
	return nil
}
