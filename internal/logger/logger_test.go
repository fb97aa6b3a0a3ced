package logger

import (
	"context"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"
)

func TestFromContextWithoutLoggerDiscards(t *testing.T) {
	l := FromContext(context.Background())
	require.Equal(t, logr.Discard(), l)
}

func TestWithLoggerRoundTrip(t *testing.T) {
	l, sync := New(0, "test")
	defer sync()

	ctx := WithLogger(context.Background(), l)
	got := FromContext(ctx)
	require.Equal(t, l.GetSink(), got.GetSink())
	require.True(t, got.Enabled())
	require.False(t, got.V(1).Enabled(), "debug output must be off at info level")
}
