package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminConfigMatchingIsCaseInsensitive(t *testing.T) {
	admin := NewAdminConfig([]string{" Admin@CareerNest.io ", "second@careernest.io", ""})

	assert.Equal(t, 2, admin.Size())
	assert.True(t, admin.IsAdmin("admin@careernest.io"))
	assert.True(t, admin.IsAdmin("ADMIN@CAREERNEST.IO"))
	assert.True(t, admin.IsAdmin("second@careernest.io"))
	assert.False(t, admin.IsAdmin("student1@example.com"))
	assert.False(t, admin.IsAdmin(""))
}

func TestLoadRequiresAdminEmails(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "")
	t.Setenv("SECRET_KEY", "secret")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresSecretKey(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "admin@careernest.io")
	t.Setenv("SECRET_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "admin@careernest.io")
	t.Setenv("SECRET_KEY", "secret")
	t.Setenv("PORT", "")
	t.Setenv("RATE_LIMIT_REQUESTS_PER_SECOND", "")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, uint(5), cfg.RateLimitPerSec)
	assert.True(t, cfg.Admin.IsAdmin("admin@careernest.io"))
	assert.NotEmpty(t, cfg.Google.TokenInfoEndpoint)
}

func TestLoadDatabaseConnStr(t *testing.T) {
	t.Setenv("USE_CONNECTION_STR", "true")
	t.Setenv("DB_CONNECTION_STR", "host=localhost port=5432")

	db := LoadDatabase()
	assert.True(t, db.UseConnStr)
	assert.Equal(t, "host=localhost port=5432", db.ConnStr)
}
