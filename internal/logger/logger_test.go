package logger_test

import (
	"testing"

	"upgrade-advisor/internal/logger"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestGetLogger(t *testing.T) {
	t.Parallel()

	// Test that GetLogger returns a valid logger
	log := logger.GetLogger()
	assert.NotNil(t, log)

	// Test that subsequent calls return the same instance (singleton behavior)
	log2 := logger.GetLogger()
	assert.Equal(t, log, log2)

	// Test that the logger can be used for logging
	log.Info("Test log message")
	log.Debug("Test debug message")
}

func TestSetLevel(t *testing.T) {
	t.Parallel()

	logger.SetLevel(zapcore.DebugLevel)
	log := logger.GetLogger()
	assert.NotNil(t, log)

	logger.SetLevel(zapcore.InfoLevel)
	log2 := logger.GetLogger()
	assert.NotNil(t, log2)

	// Test that all loggers are the same instance (singleton)
	assert.Equal(t, log, log2)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  zapcore.Level
	}{
		{
			name:  "debug",
			input: "debug",
			want:  zapcore.DebugLevel,
		},
		{
			name:  "info",
			input: "info",
			want:  zapcore.InfoLevel,
		},
		{
			name:  "warn",
			input: "warn",
			want:  zapcore.WarnLevel,
		},
		{
			name:  "error",
			input: "error",
			want:  zapcore.ErrorLevel,
		},
		{
			name:  "unknown falls back to info",
			input: "verbose",
			want:  zapcore.InfoLevel,
		},
		{
			name:  "empty falls back to info",
			input: "",
			want:  zapcore.InfoLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logger.ParseLevel(tt.input))
		})
	}
}

func TestLoggerConcurrency(t *testing.T) {
	t.Parallel()

	// Test concurrent access to logger
	done := make(chan bool, 10)

	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- true }()

			log := logger.GetLogger()
			assert.NotNil(t, log)

			log.Info("Concurrent log message")
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
