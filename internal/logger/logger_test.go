package logger

import (
	"testing"

	"investment-assistant-go/internal/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	log, err := NewLogger(config.Logger{Level: "warn", Format: "json"})
	assert.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))

	log, err = NewLogger(config.Logger{Level: "debug", Format: "console"})
	assert.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	_, err = NewLogger(config.Logger{Level: "loud"})
	assert.Error(t, err)
}
