// Package observability builds the zap logger shared by the encounter
// simulator, its session timer, the dice roller, the Lua narration hooks and
// the shell.
//
// Every log line goes to stderr: stdout belongs to the interactive shell. The
// configured level gates the simulator's per-transition Debug lines (spawns,
// attacks, dice rolls), and sampling is off so none of them are dropped when
// the spawn timer fires in bursts.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/forsaken/internal/config"
)

// LoggerName prefixes every logger built by NewLogger.
const LoggerName = "forsaken"

// NewLogger creates the process logger from the logging configuration.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a logger named LoggerName or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	zapCfg, err := buildConfig(cfg)
	if err != nil {
		return nil, err
	}
	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Named(LoggerName), nil
}

func buildConfig(cfg config.LoggingConfig) (zap.Config, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return zap.Config{}, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		// Lua runtime errors are logged at Warn; a Go stack trace says nothing about them.
		zapCfg.DisableStacktrace = true
	default:
		return zap.Config{}, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.Sampling = nil
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapCfg, nil
}
