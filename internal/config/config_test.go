package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("COMPANY_CODE", "")

	cfg, err := FromEnv("dev")
	require.NoError(t, err)

	assert.Equal(t, defaultDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "ARC", cfg.CompanyCode)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 5*time.Second, cfg.DBTimeout)
	assert.Equal(t, 10, cfg.ServiceRequestRate)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_CompanyCodeIsUppercased(t *testing.T) {
	t.Setenv("COMPANY_CODE", "hvc")

	cfg, err := FromEnv("dev")
	require.NoError(t, err)
	assert.Equal(t, "HVC", cfg.CompanyCode)
}

func TestFromEnv_RejectsBadCompanyCode(t *testing.T) {
	t.Setenv("COMPANY_CODE", "HVAC")

	_, err := FromEnv("dev")
	assert.ErrorContains(t, err, "COMPANY_CODE")
}

func TestFromEnv_RejectsBadDuration(t *testing.T) {
	t.Setenv("DB_TIMEOUT", "soon")

	_, err := FromEnv("dev")
	assert.ErrorContains(t, err, "DB_TIMEOUT")
}

func TestFromEnv_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("COOKIE_SECURE", "true")

	_, err := FromEnv("production")
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("COOKIE_SECURE", "false")
	_, err = FromEnv("production")
	assert.ErrorContains(t, err, "COOKIE_SECURE")

	t.Setenv("COOKIE_SECURE", "true")
	cfg, err := FromEnv("production")
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestFromEnv_CORSOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := FromEnv("dev")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}
