package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "ATTACHMENTS_PATH", "CORS_ALLOW_ORIGINS", "READ_TIMEOUT", "AUTO_MIGRATE", "LOG_FILE"} {
		t.Setenv(key, "")
	}

	cfg, _ := Load()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Server.AutoMigrate)
	assert.Equal(t, "./data/emails.db", cfg.Database.Path)
	assert.Equal(t, "data/attachments", cfg.Attachments.Path)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.Empty(t, cfg.Log.File)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/mail.db")
	t.Setenv("READ_TIMEOUT", "not-a-number")
	t.Setenv("AUTO_MIGRATE", "false")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:3000, https://mail.example.com,,")

	cfg, _ := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/tmp/mail.db", cfg.Database.Path)
	assert.Equal(t, 15, cfg.Server.ReadTimeout, "invalid integers fall back to the default")
	assert.False(t, cfg.Server.AutoMigrate)
	assert.Equal(t, []string{"http://localhost:3000", "https://mail.example.com"}, cfg.CORS.AllowOrigins)
}
