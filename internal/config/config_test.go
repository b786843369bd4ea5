package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "stub", cfg.DataSource)
	assert.Equal(t, "lenient", cfg.StarterPolicy)
	assert.False(t, cfg.RenormalizeRZShares)
	assert.Equal(t, 40.0, cfg.TeamPassAttempts)
	assert.Equal(t, 0.65, cfg.LeagueCatchRate)
	assert.Equal(t, 5, cfg.CircuitBreakerThreshold)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STARTER_POLICY", "strict")
	t.Setenv("TEAM_PASS_ATTEMPTS", "38")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "strict", cfg.StarterPolicy)
	assert.Equal(t, 38.0, cfg.TeamPassAttempts)
}

func TestLoadConfig_InvalidStarterPolicy(t *testing.T) {
	t.Setenv("STARTER_POLICY", "mixed")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_InvalidDataSource(t *testing.T) {
	t.Setenv("DATA_SOURCE", "spreadsheet")

	_, err := LoadConfig()
	assert.Error(t, err)
}
