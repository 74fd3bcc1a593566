// Package logger builds the zap logger used across the converter.
package logger

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger for env ("production" or anything else for
// development) at the given level.
func New(env, level string) (*zap.Logger, error) {
	config := configFor(env)

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	config.Level = zap.NewAtomicLevelAt(lvl)

	log, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}

// NewWithWriter builds a JSON logger that writes to w. Used where the
// output has to be captured, e.g. in tests.
func NewWithWriter(w io.Writer, level zapcore.Level) *zap.Logger {
	config := configFor("production")
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(config.EncoderConfig),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core)
}

func configFor(env string) zap.Config {
	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return config
}
