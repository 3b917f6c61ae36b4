package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubble2048/internal/config"
	"github.com/vovakirdan/bubble2048/internal/games/bubble2048"
)

// loadGameConfig resolves the game config from --config and --difficulty.
// A broken file is reported and the defaults are used.
func loadGameConfig(logger *log.Logger) config.GameConfig {
	cfg, err := bubble2048.LoadConfig()
	if err != nil && logger != nil {
		logger.Warn("could not load config, using defaults", "error", err)
	}
	return cfg
}

// newLogger creates a timestamped logger writing to w. The level comes
// from --log-level, then the config file.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})

	level := flagLogLevel
	if level == "" {
		cfg, _ := bubble2048.LoadConfig()
		level = cfg.Log.Level
	}
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level, using info", "level", level)
	}
	return logger
}

// serverLogger logs to stderr for the long-running servers.
func serverLogger(prefix string) *log.Logger {
	return newLogger(os.Stderr, prefix)
}

// tuiLogger logs to ~/.bubble2048/bubble2048.log so output does not
// corrupt the terminal UI. The returned func closes the file.
func tuiLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".bubble2048")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "bubble2048.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	return newLogger(f, "bubble2048"), func() { f.Close() }
}
