// Package log builds the zap loggers used by the command line tools.
package log

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// where logs go by default.
var logWriter io.Writer = os.Stderr

// NewNop creates silent logger.
func NewNop() *zap.Logger {
	return zap.NewNop()
}

// NewWithLevel creates a logger with a fixed level and with a set of (optional) hooks.
func NewWithLevel(module string,
	level zap.AtomicLevel,
	encoder zapcore.Encoder,
	hooks ...func(zapcore.Entry) error,
) *zap.Logger {
	core := zapcore.NewCore(encoder, zapcore.AddSync(logWriter), level)
	return zap.New(zapcore.RegisterHooks(core, hooks...)).Named(module)
}

// NewConsole creates a human readable logger without timestamps.
func NewConsole(module string, level zap.AtomicLevel, hooks ...func(zapcore.Entry) error) *zap.Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	return NewWithLevel(module, level, zapcore.NewConsoleEncoder(cfg), hooks...)
}

// NewJSON creates a structured logger.
func NewJSON(module string, level zap.AtomicLevel, hooks ...func(zapcore.Entry) error) *zap.Logger {
	return NewWithLevel(module, level, zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), hooks...)
}
