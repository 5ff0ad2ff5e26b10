package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a zap logger. When debug is true, uses development config
// (human-readable, debug level); otherwise uses production config (JSON, info level).
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// NewLoggerOrNop is NewLogger for callers that must not fail on logger setup
// (CLI query commands); it falls back to a no-op logger.
func NewLoggerOrNop(debug bool) *zap.Logger {
	logger, err := NewLogger(debug)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
