// Package logging builds the diagnostic logger. Output goes to a file
// because the UI owns the terminal; logging is never a correctness
// mechanism here.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dhruvm/cspace/internal/config"
)

// New creates a file-backed logger from config. An unset file falls
// back to cspace.log under the user data directory.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	path := cfg.File
	if path == "" {
		path, err = defaultLogPath()
		if err != nil {
			return nil, err
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(f),
		level,
	)
	return zap.New(core), nil
}

func defaultLogPath() (string, error) {
	dataDir := os.Getenv("XDG_STATE_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "state")
	}
	appDir := filepath.Join(dataDir, "cspace")
	if err := os.MkdirAll(appDir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(appDir, "cspace.log"), nil
}
