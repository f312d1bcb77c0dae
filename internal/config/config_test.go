package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setServerEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AI_UPSTREAM_URL", "https://ai.example.com/v1/complete")
	t.Setenv("AI_UPSTREAM_USER", "svc")
	t.Setenv("AI_UPSTREAM_PASSWORD", "secret")
}

func TestLoadServer_Defaults(t *testing.T) {
	setServerEnv(t)

	cfg, err := LoadServer()

	require.NoError(t, err)
	assert.Equal(t, "vocd", cfg.ServiceName)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 60*time.Second, cfg.UpstreamTimeout)
}

func TestLoadServer_MissingUpstreamURL(t *testing.T) {
	t.Setenv("AI_UPSTREAM_URL", "")
	t.Setenv("AI_UPSTREAM_USER", "svc")
	t.Setenv("AI_UPSTREAM_PASSWORD", "secret")

	_, err := LoadServer()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI_UPSTREAM_URL")
}

func TestLoadServer_MissingCredential(t *testing.T) {
	t.Setenv("AI_UPSTREAM_URL", "https://ai.example.com")
	t.Setenv("AI_UPSTREAM_USER", "")
	t.Setenv("AI_UPSTREAM_PASSWORD", "")

	_, err := LoadServer()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI_UPSTREAM_USER")
}

func TestLoadServer_Overrides(t *testing.T) {
	setServerEnv(t)
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("VOC_API_BASE_URL", "http://voc.internal:8000")

	cfg, err := LoadServer()

	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr())
	assert.Equal(t, "http://voc.internal:8000", cfg.VocAPIBaseURL)
}

func TestLoadConsole_Defaults(t *testing.T) {
	cfg, err := LoadConsole()

	require.NoError(t, err)
	assert.Contains(t, cfg.ChatURL, "/api/voc/chat")
	assert.Equal(t, 10*time.Second, cfg.VocAPITimeout)
}
