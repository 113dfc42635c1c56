// Package logger builds the zap loggers used by the functions and the hello service.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewRequestLogger returns a logger that writes only the message, one entry
// per line. Fields added with zap.String etc. are appended tab-separated.
func NewRequestLogger(w zapcore.WriteSyncer) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
	})
	return zap.New(zapcore.NewCore(enc, w, zapcore.DebugLevel))
}

// Stdout is the request logger the Lambda entry points use.
func Stdout() *zap.Logger {
	return NewRequestLogger(zapcore.Lock(os.Stdout))
}

// New returns a production JSON logger at the given level. An empty or
// unknown level means info.
func New(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))
	return cfg.Build()
}

func ParseLevel(level string) zapcore.Level {
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}
