package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogProvider_DisabledKeepsLogger(t *testing.T) {
	lp, err := NewLogProvider(context.Background(), LogsConfig{}, nil)
	require.NoError(t, err)

	log := zap.NewNop()
	assert.Same(t, log, lp.Attach(log))
	assert.NoError(t, lp.Shutdown(context.Background()))
}

func TestMinLevelCore(t *testing.T) {
	inner, recorded := observer.New(zapcore.DebugLevel)
	log := zap.New(minLevelCore{Core: inner, level: zapcore.WarnLevel}).With(zap.String("component", "receipts"))

	log.Info("skipped")
	log.Warn("kept")
	log.Error("kept too")

	entries := recorded.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "kept", entries[0].Message)
	assert.Equal(t, "receipts", entries[0].ContextMap()["component"])
}
