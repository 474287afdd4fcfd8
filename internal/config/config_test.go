package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("CAS_MOCK_ENABLED", "")
	t.Setenv("SESSION_TTL", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.False(t, cfg.CASMockEnabled, "mock must be off unless explicitly enabled")
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestLoadMockFlagRequiresExactTrue(t *testing.T) {
	for _, v := range []string{"1", "TRUE", "yes", "True"} {
		t.Setenv("CAS_MOCK_ENABLED", v)
		assert.False(t, Load().CASMockEnabled, "value %q", v)
	}

	t.Setenv("CAS_MOCK_ENABLED", "true")
	assert.True(t, Load().CASMockEnabled)
}

func TestLoadSessionTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "90m")
	assert.Equal(t, 90*time.Minute, Load().SessionTTL)

	t.Setenv("SESSION_TTL", "not-a-duration")
	assert.Equal(t, 24*time.Hour, Load().SessionTTL)
}
