package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	req := require.New(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	req.NoError(err)
	req.Equal("postgres://journal:pw@localhost:5432/journal?sslmode=disable", cfg.Database.URL)
	req.Equal(24*time.Hour, cfg.Session.SlidingWindow)
	req.Equal(int64(10<<20), cfg.Storage.MaxUploadSize)
	req.Equal("@every 1h", cfg.DeadLetter.CleanupSchedule)
	req.Equal("0.0.0.0:8080", cfg.Address())
}

func TestLoadOverrides(t *testing.T) {
	req := require.New(t)
	t.Setenv("SESSION_SLIDING_WINDOW", "3600")
	t.Setenv("PUSH_ENABLED", "true")
	t.Setenv("DEAD_LETTER_RETENTION", "48h")

	cfg, err := Load()
	req.NoError(err)
	req.Equal(time.Hour, cfg.Session.SlidingWindow)
	req.True(cfg.Push.Enabled)
	req.Equal(48*time.Hour, cfg.DeadLetter.Retention)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Run("missing secret in production", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("sliding window longer than ttl", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "1h")
		t.Setenv("SESSION_SLIDING_WINDOW", "2h")
		_, err := Load()
		require.Error(t, err)
	})
}
