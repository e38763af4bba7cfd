package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "taskboard", cfg.AppName)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, "unit-test-secret", cfg.JWT.Secret)
	assert.Equal(t, "taskboard", cfg.JWT.Issuer)
	assert.Equal(t, "taskboard-api", cfg.JWT.Audience)
	assert.Equal(t, 60, cfg.JWT.TTLMinutes)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	t.Setenv("JWT_ISSUER", "other-issuer")
	t.Setenv("JWT_TTL_MINUTES", "15")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_NAME", "other_db")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "other-issuer", cfg.JWT.Issuer)
	assert.Equal(t, 15, cfg.JWT.TTLMinutes)
	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "other_db", cfg.DB.Name)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoad_NonPositiveTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	t.Setenv("JWT_TTL_MINUTES", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "JWT_TTL_MINUTES")
}
