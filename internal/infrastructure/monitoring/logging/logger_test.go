package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerDefaults(t *testing.T) {
	l, err := NewLogger(LogConfig{})
	require.NoError(t, err)
	require.NotNil(t, l)
	l.Info("ok")
}

func TestObservedFields(t *testing.T) {
	core, logs := observer.New(zapcore.Level(0))
	l := NewLoggerFromCore(core)

	l.Info("retrieved candidates",
		String("industry", "colocation"),
		Int("count", 3),
		Float64("threshold", 0.2),
		Duration("elapsed", 5*time.Millisecond),
		Err(errors.New("boom")),
	)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "retrieved candidates", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "colocation", fields["industry"])
	assert.EqualValues(t, 3, fields["count"])
	assert.Equal(t, 0.2, fields["threshold"])
	assert.Equal(t, "boom", fields["error"])
}

func TestWithDoesNotMutateParent(t *testing.T) {
	core, logs := observer.New(zapcore.Level(0))
	parent := NewLoggerFromCore(core)
	child := parent.With(String("component", "retriever"))

	parent.Info("parent entry")
	child.Info("child entry")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.NotContains(t, entries[0].ContextMap(), "component")
	assert.Equal(t, "retriever", entries[1].ContextMap()["component"])
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Info("dropped")
	assert.Equal(t, l, l.With(String("k", "v")).Named("x"))
}

func TestDefaultLogger(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	core, logs := observer.New(zapcore.Level(0))
	SetDefault(NewLoggerFromCore(core))
	Default().Warn("via default")
	require.Len(t, logs.All(), 1)

	SetDefault(nil) // ignored
	assert.NotNil(t, Default())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLevel("debug").String())
	assert.Equal(t, "info", parseLevel("unknown").String())
	assert.Equal(t, "error", parseLevel("ERROR").String())
}
