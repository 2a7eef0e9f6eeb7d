package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.info)
	assert.NotNil(t, logger.warn)
	assert.NotNil(t, logger.error)
}

func TestLogger_Levels(t *testing.T) {
	logger := New()

	// None of these should panic
	logger.Info("publishing post %d to %s", 1, "twitter")
	logger.Warn("redis unavailable, rate limiting disabled")
	logger.Error("publish attempt failed: %v", "rate limit exceeded")
}

func TestLogger_Formatting(t *testing.T) {
	logger := New()

	logger.Info("post %d: %d/%d results terminal", 42, 2, 3)
	logger.Error("failed to update result %d: %s", 7, "not found")
}
