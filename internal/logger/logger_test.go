package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewRequestLogger_MessageOnly(t *testing.T) {
	var buf bytes.Buffer
	l := NewRequestLogger(zapcore.AddSync(&buf))

	l.Info(`request: {"path":"/foo"}`)

	assert.Equal(t, "request: {\"path\":\"/foo\"}\n", buf.String())
}

func TestNewRequestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewRequestLogger(zapcore.AddSync(&buf))

	l.Info("request: /foo", zap.String("request_id", "abc"))

	assert.Equal(t, "request: /foo\t{\"request_id\": \"abc\"}\n", buf.String())
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		name  string
		level string
		want  zapcore.Level
	}{
		{"debug level", "debug", zap.DebugLevel},
		{"warn level", "warn", zap.WarnLevel},
		{"error level", "error", zap.ErrorLevel},
		{"invalid level", "invalid_level", zap.InfoLevel},
		{"empty level", "", zap.InfoLevel},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseLevel(tc.level))
		})
	}
}

func TestNew(t *testing.T) {
	l, err := New("warn")
	assert.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.WarnLevel))
}
