// Package logger builds the application logger. The TUI owns the terminal,
// so logs go to a file under ~/.bwtui instead of stdout/stderr.
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a file-backed logger at the given level. When the log file
// cannot be created the returned logger is a no-op; the application must not
// fail because logging is unavailable.
func New(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return zap.NewNop()
	}
	dir := filepath.Join(home, ".bwtui")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return zap.NewNop()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{filepath.Join(dir, "bwtui.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths

	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
