package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/go-social-feed/internal/config"
)

func noDotenv(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := config.Load(noDotenv(t))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, 30*time.Second, cfg.ContextTimeout)
	assert.Equal(t, config.DriverMySQL, cfg.StoreDriver)
	assert.Equal(t, uint64(10000000), cfg.BloomFilterSize)
	assert.False(t, cfg.Cache.Enabled())
	assert.False(t, cfg.Engagement.RetractOnUnlike)
	assert.False(t, cfg.Relationship.RefuseBlockedFollow)
	assert.Equal(t, 1024, cfg.Repair.QueueSize)
	assert.Equal(t, time.Second, cfg.Repair.Interval)
	assert.Equal(t, 5, cfg.Repair.MaxAttempts)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadNestedPrefixes(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("CONTEXT_TIMEOUT", "5s")
	t.Setenv("DATABASE_HOST", "db")
	t.Setenv("DATABASE_PORT", "3307")
	t.Setenv("DATABASE_USER", "app")
	t.Setenv("DATABASE_PASS", "pw")
	t.Setenv("DATABASE_NAME", "feed")
	t.Setenv("MONGO_URI", "mongodb://mongo:27017")
	t.Setenv("CACHE_HOST", "redis")
	t.Setenv("CACHE_DB", "2")
	t.Setenv("ENGAGEMENT_RETRACT_ON_UNLIKE", "true")
	t.Setenv("RELATIONSHIP_REFUSE_BLOCKED_FOLLOW", "true")
	t.Setenv("REPAIR_MAX_ATTEMPTS", "9")

	cfg, err := config.Load(noDotenv(t))
	require.NoError(t, err)

	assert.Equal(t, config.DriverMongo, cfg.StoreDriver)
	assert.Equal(t, 5*time.Second, cfg.ContextTimeout)
	assert.Equal(t, "app:pw@tcp(db:3307)/feed?loc=UTC&parseTime=1", cfg.Database.DSN())
	assert.Equal(t, "mongodb://mongo:27017", cfg.Mongo.URI)
	assert.True(t, cfg.Cache.Enabled())
	assert.Equal(t, "redis:6379", cfg.Cache.Addr())
	assert.Equal(t, 2, cfg.Cache.DB)
	assert.True(t, cfg.Engagement.RetractOnUnlike)
	assert.True(t, cfg.Relationship.RefuseBlockedFollow)
	assert.Equal(t, 9, cfg.Repair.MaxAttempts)
}

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=from-file\nSERVER_ADDRESS=:8080\n"), 0o600))
	t.Setenv("SERVER_ADDRESS", ":7070")
	// registers cleanup so the value loaded from the file does not leak
	t.Setenv("JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, ":7070", cfg.ServerAddress)
}

func TestLoadRejects(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("STORE_DRIVER", "postgres")
		_, err := config.Load(noDotenv(t))
		assert.ErrorContains(t, err, "STORE_DRIVER")
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := config.Load(noDotenv(t))
		assert.ErrorContains(t, err, "JWT_SECRET")
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("CONTEXT_TIMEOUT", "soon")
		_, err := config.Load(noDotenv(t))
		assert.Error(t, err)
	})
}
