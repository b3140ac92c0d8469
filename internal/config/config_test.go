package config_test

import (
	"testing"
	"time"

	"github.com/relivo/orgportal/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	_, err := config.Load()
	assert.ErrorContains(t, err, "SECRET_KEY")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "unit-test-secret")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "unit-test-secret", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.ExpiryPeriod)
	assert.Equal(t, "HS256", cfg.JWT.Algorithm)
	assert.Equal(t, "8000", cfg.Server.Port)
}

func TestLoadRejectsUnknownAlgorithm(t *testing.T) {
	t.Setenv("SECRET_KEY", "unit-test-secret")
	t.Setenv("ALGORITHM", "none")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadExpiryOverride(t *testing.T) {
	t.Setenv("SECRET_KEY", "unit-test-secret")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "120")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpiryPeriod)
}
