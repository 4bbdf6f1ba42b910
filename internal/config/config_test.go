package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADMIN_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "guru-backend", cfg.AppName)
	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
	assert.Equal(t, "test-key", cfg.Admin.Key)
	assert.Equal(t, 24*time.Hour, cfg.JWT.SessionTTL)
	assert.Equal(t, 720, cfg.Audit.RetentionHours)
	assert.True(t, cfg.Migrations.Enabled)
	assert.Equal(t, "postgres://guru_user:@localhost:5432/guru_db?sslmode=disable", cfg.Database.URL)
}

func TestLoadRequiresAdminKey(t *testing.T) {
	t.Setenv("ADMIN_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_KEY")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ADMIN_KEY", "k")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/app")
	t.Setenv("SESSION_TTL", "90")
	t.Setenv("SERVER_READ_TIMEOUT", "3s")
	t.Setenv("RUN_MIGRATIONS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "postgres://u:p@db:5432/app", cfg.Database.URL)
	assert.Equal(t, 90*time.Second, cfg.JWT.SessionTTL, "bare integers are read as seconds")
	assert.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
	assert.False(t, cfg.Migrations.Enabled)
}
