package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bimakw/uniswap-subgraph/internal/infrastructure/subgraph"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "SUBGRAPH_URL", "SUBGRAPH_API_KEY", "SUBGRAPH_TIMEOUT", "TOKENS_FILE", "LOG_MODE", "DEBUG"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, subgraph.DefaultEndpoint, cfg.SubgraphURL)
	assert.Empty(t, cfg.SubgraphAPIKey)
	assert.Equal(t, 30*time.Second, cfg.SubgraphTimeout)
	assert.Empty(t, cfg.TokensFile)
	assert.Equal(t, "development", cfg.LogMode)
	assert.False(t, cfg.Debug)
	assert.Len(t, cfg.SubgraphOptions(), 2)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SUBGRAPH_URL", "http://localhost:8000/subgraphs/name/uniswap-v3")
	t.Setenv("SUBGRAPH_API_KEY", "secret")
	t.Setenv("SUBGRAPH_TIMEOUT", "5s")
	t.Setenv("DEBUG", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "http://localhost:8000/subgraphs/name/uniswap-v3", cfg.SubgraphURL)
	assert.Equal(t, "secret", cfg.SubgraphAPIKey)
	assert.Equal(t, 5*time.Second, cfg.SubgraphTimeout)
	assert.True(t, cfg.Debug)
	assert.Len(t, cfg.SubgraphOptions(), 3)

	client := subgraph.NewClient(cfg.SubgraphOptions()...)
	assert.Equal(t, cfg.SubgraphURL, client.Endpoint())
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUBGRAPH_TIMEOUT", "soon")
	t.Setenv("DEBUG", "maybe")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.SubgraphTimeout)
	assert.False(t, cfg.Debug)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("SUBGRAPH_URL")
	os.Unsetenv("PORT")
	t.Setenv("LOG_MODE", "release")

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "SUBGRAPH_URL=http://graph-node:8000/subgraphs/name/uniswap-v3\nPORT=7070\nLOG_MODE=development\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("SUBGRAPH_URL")
		os.Unsetenv("PORT")
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "http://graph-node:8000/subgraphs/name/uniswap-v3", cfg.SubgraphURL)
	assert.Equal(t, "7070", cfg.HTTPPort)
	// variables already set win over the file
	assert.Equal(t, "release", cfg.LogMode)
}
