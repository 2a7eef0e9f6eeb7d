package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("STORAGE_DRIVER", "postgres")
	os.Setenv("DB_HOST", "db.internal")
	os.Setenv("DB_USER", "testuser")
	os.Setenv("DB_PASSWORD", "testpass")
	os.Setenv("DB_NAME", "testdb")
	os.Setenv("REDIS_HOST", "localhost")
	os.Setenv("UPLOAD_DRIVER", "s3")
	os.Setenv("PUBLISH_MIN_DELAY", "10ms")
	os.Setenv("PUBLISH_MAX_DELAY", "50ms")
	defer func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("STORAGE_DRIVER")
		os.Unsetenv("DB_HOST")
		os.Unsetenv("DB_USER")
		os.Unsetenv("DB_PASSWORD")
		os.Unsetenv("DB_NAME")
		os.Unsetenv("REDIS_HOST")
		os.Unsetenv("UPLOAD_DRIVER")
		os.Unsetenv("PUBLISH_MIN_DELAY")
		os.Unsetenv("PUBLISH_MAX_DELAY")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.NotNil(t, cfg)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.StorageDriver)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "testuser", cfg.DBUser)
	assert.Equal(t, "testpass", cfg.DBPassword)
	assert.Equal(t, "testdb", cfg.DBName)
	assert.Equal(t, "localhost", cfg.RedisHost)
	assert.Equal(t, "s3", cfg.UploadDriver)
	assert.Equal(t, 10*time.Millisecond, cfg.PublishMinDelay)
	assert.Equal(t, 50*time.Millisecond, cfg.PublishMaxDelay)
}

func TestLoadConfig_Defaults(t *testing.T) {
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("STORAGE_DRIVER")
	os.Unsetenv("REDIS_HOST")
	os.Unsetenv("UPLOAD_DRIVER")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "memory", cfg.StorageDriver)
	assert.Equal(t, "", cfg.RedisHost)
	assert.Equal(t, "local", cfg.UploadDriver)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, time.Second, cfg.PublishMinDelay)
	assert.Equal(t, 3*time.Second, cfg.PublishMaxDelay)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	os.Setenv("PUBLISH_MIN_DELAY", "not-a-duration")
	defer os.Unsetenv("PUBLISH_MIN_DELAY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.Equal(t, time.Second, cfg.PublishMinDelay)
}
