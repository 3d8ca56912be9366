package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		development bool
		expected    zapcore.Level
	}{
		{name: "default level", level: "", expected: zapcore.InfoLevel},
		{name: "debug production", level: "debug", expected: zapcore.DebugLevel},
		{name: "warn development", level: "warn", development: true, expected: zapcore.WarnLevel},
		{name: "error", level: "error", expected: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.level, tt.development)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.expected))
			if tt.expected > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.expected-1))
			}
		})
	}
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := NewLogger("chatty", false)
	assert.Error(t, err)
}
