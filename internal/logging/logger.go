package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevelEnvVar is the environment variable that controls diagnostic
// logging. When unset or empty, diagnostics are silent unless --verbose.
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "ADB_AUTOCONNECT_LOG_LEVEL"

// New creates the diagnostic logger for the given output level.
func New(level Level) (*zap.Logger, error) {
	if level == LevelSilent {
		return zap.NewNop(), nil
	}

	name := os.Getenv(LogLevelEnvVar)
	if name == "" && level == LevelVerbose {
		name = "debug"
	}

	// No level requested: silent diagnostics
	if name == "" {
		return zap.NewNop(), nil
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel(name)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return logger, nil
}

// zapLevel maps a level name to a zap level; unknown names fall back to info.
func zapLevel(name string) zapcore.Level {
	switch name {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Sync flushes any buffered log entries
func Sync(logger *zap.Logger) {
	if logger != nil {
		_ = logger.Sync()
	}
}
