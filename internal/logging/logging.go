package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/user/jobboard/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the application logger. Output always goes to the log file,
// since the TUI owns the terminal; console adds stderr for the one-shot
// commands.
func New(cfg config.LogConfig, console bool) (*zap.Logger, error) {
	level := zap.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	var outputs []string
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		outputs = append(outputs, cfg.File)
	}
	if console {
		outputs = append(outputs, "stderr")
	}
	if len(outputs) == 0 {
		return zap.NewNop(), nil
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = outputs
	zcfg.ErrorOutputPaths = outputs
	zcfg.EncoderConfig.TimeKey = "ts"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.Sampling = nil

	return zcfg.Build()
}
