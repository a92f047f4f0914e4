package internal

import (
	"alba/entity"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_DebugSuppressed(t *testing.T) {
	db := &fakeDatabase{}
	logger := NewLogger("gateway", false, db)

	logger.Debug("sent POST request")
	logger.Info("started")

	require.Len(t, db.logs, 1)
	message, ok := db.logs[0].(*entity.LogMessage)
	require.True(t, ok)
	assert.Equal(t, levelInfo, message.Level)
	assert.Equal(t, "gateway", message.Category)
}

func TestLogger_DebugEnabled(t *testing.T) {
	db := &fakeDatabase{}
	logger := NewLogger("gateway", true, db)

	logger.Debug("sent POST request")
	logger.Error("refund", errors.New("no money"))

	require.Len(t, db.logs, 2)
	assert.Equal(t, levelDebug, db.logs[0].(*entity.LogMessage).Level)
	assert.Equal(t, "refund: no money", db.logs[1].(*entity.LogMessage).Text)
}

func TestLogger_StoreFailureDoesNotPanic(t *testing.T) {
	db := &fakeDatabase{err: errors.New("mongo down")}
	logger := NewLogger("gateway", true, db)

	assert.NotPanics(t, func() {
		logger.Warn("retry later")
	})
}

func TestLogger_WithoutDatabase(t *testing.T) {
	logger := NewLogger("gateway", true, nil)
	assert.NotPanics(t, func() {
		logger.Error("no error value", nil)
	})
}
