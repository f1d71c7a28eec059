package testutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/entitylens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/entitylens/internal/testutil"
)

func TestMockLogger(t *testing.T) {
	logger := testutil.NewMockLogger()

	logger.Info("test info", logging.String("key", "value"))

	messages := logger.GetMessages()
	require.Len(t, messages, 1)
	assert.Equal(t, "info", messages[0].Level)
	assert.Equal(t, "test info", messages[0].Message)

	logger.Clear()
	assert.Len(t, logger.GetMessages(), 0)

	logger.Error("test error")
	assert.True(t, logger.HasMessage("error", "test error"))
	assert.False(t, logger.HasMessage("info", "test info"))
}

func TestMockLogger_ChildrenShareRecord(t *testing.T) {
	root := testutil.NewMockLogger()
	child := root.Named("highlighter").Named("render").With(logging.String("run_id", "r1"))

	child.Warn("render failed", logging.Int("spans", 3))

	msg, ok := root.Find("warn", "render failed")
	require.True(t, ok)
	assert.Equal(t, "highlighter.render", msg.Logger)

	v, ok := msg.Field("run_id")
	require.True(t, ok)
	assert.Equal(t, "r1", v)
	v, ok = msg.Field("spans")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = msg.Field("missing")
	assert.False(t, ok)
	assert.NoError(t, child.Sync())
}

func TestMockLogger_WithDoesNotLeakIntoParent(t *testing.T) {
	root := testutil.NewMockLogger()
	_ = root.With(logging.String("k", "v"))
	root.Info("plain")

	msg, ok := root.Find("info", "plain")
	require.True(t, ok)
	assert.Empty(t, msg.Fields)
}
