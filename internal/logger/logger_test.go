package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	log, err := New("production", "warn")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))

	log, err = New("development", "debug")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("development", "loud")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, zapcore.InfoLevel)

	log.Debug("hidden")
	log.Info("target written", zap.String("target", "n11"))
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"target":"n11"`)
	assert.Contains(t, out, `"timestamp"`)
}
