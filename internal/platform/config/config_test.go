package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DOCUMENT_STORE", "memory")

	cfg, err := loadFrom(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.DocumentStore)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, "finsync", cfg.JWTIssuer)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.AdminEmails)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("DOCUMENT_STORE", "POSTGRES")
	t.Setenv("PGSQL_URL", "postgres://localhost/finsync")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY_DURATION", "15m")
	t.Setenv("ADMIN_EMAILS", " Root@Example.com, ops@example.com ,")
	t.Setenv("DEFAULT_LOCALE", "vi")

	cfg, err := loadFrom(viper.New())
	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.DocumentStore)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, []string{"root@example.com", "ops@example.com"}, cfg.AdminEmails)
	assert.Equal(t, "vi", cfg.DefaultLocale)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Setenv("DOCUMENT_STORE", "postgres")
	t.Setenv("PGSQL_URL", "")
	_, err := loadFrom(viper.New())
	assert.ErrorContains(t, err, "PGSQL_URL")

	t.Setenv("DOCUMENT_STORE", "sqlite")
	_, err = loadFrom(viper.New())
	assert.ErrorContains(t, err, "unsupported DOCUMENT_STORE")

	t.Setenv("DOCUMENT_STORE", "memory")
	t.Setenv("IS_PRODUCTION", "true")
	_, err = loadFrom(viper.New())
	assert.ErrorContains(t, err, "JWT_SECRET")
}
