// Package log is a thin key/value facade over the global zap logger.
package log

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelError Level = "ERROR"
)

var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// ParseLevel accepts debug, info or error in any case.
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToUpper(strings.TrimSpace(s))) {
	case LevelDebug:
		return LevelDebug, nil
	case LevelInfo, "":
		return LevelInfo, nil
	case LevelError:
		return LevelError, nil
	}
	return "", fmt.Errorf("unknown log level %q", s)
}

// Init builds the process logger writing to stderr and installs it as zap's
// global. dev selects the human-readable console encoder.
func Init(l Level, dev bool) error {
	var cfg zap.Config
	if dev {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = level
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	SetLevel(l)
	zap.ReplaceGlobals(logger)
	return nil
}

// SetLevel changes the minimum level of loggers built by Init.
func SetLevel(l Level) {
	level.SetLevel(toZap(l))
}

// Sync flushes buffered entries.
func Sync() {
	_ = zap.L().Sync()
}

func Debug(msg string, kv ...any) {
	zap.S().Debugw(msg, kv...)
}

func Info(msg string, kv ...any) {
	zap.S().Infow(msg, kv...)
}

func Error(msg string, err error, kv ...any) {
	zap.S().Errorw(msg, append([]any{"err", err}, kv...)...)
}

func toZap(l Level) zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
