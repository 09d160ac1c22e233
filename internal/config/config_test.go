package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 0.5, cfg.Verify.SimilarityThreshold)
	assert.Equal(t, 0.6, cfg.Verify.CredibilityWeight)
	assert.Equal(t, 0.4, cfg.Verify.SimilarityWeight)
	assert.Equal(t, 4, cfg.Verify.TopK)
	assert.Equal(t, 0.6, cfg.Verify.ConsensusThreshold)
	assert.Equal(t, 0.3, cfg.Verify.NoClaimConfidence)
	assert.Equal(t, 0.3, cfg.Verify.NoEvidenceConfidence)
	assert.Equal(t, 0.4, cfg.Verify.NoRelevantConfidence)
	assert.Equal(t, 4096, cfg.Cache.Capacity)
	// Weights sum to 1.
	assert.InDelta(t, 1.0, cfg.Verify.CredibilityWeight+cfg.Verify.SimilarityWeight, 1e-9)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[verify]
similarity_threshold = 0.45
top_k = 6

[llm]
provider = "openai"
model = "gpt-4o-mini"

[[llm.backends]]
provider = "claude"
model = "claude-sonnet"
weight = 0.5

[cache]
capacity = 128

[history]
path = "history.db"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.45, cfg.Verify.SimilarityThreshold)
	assert.Equal(t, 6, cfg.Verify.TopK)
	// Untouched keys keep their defaults.
	assert.Equal(t, 0.6, cfg.Verify.ConsensusThreshold)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	require.Len(t, cfg.LLM.Backends, 1)
	assert.Equal(t, "claude", cfg.LLM.Backends[0].Provider)
	assert.Equal(t, 0.5, cfg.LLM.Backends[0].Weight)
	assert.Equal(t, 128, cfg.Cache.Capacity)
	assert.Equal(t, "history.db", cfg.History.Path)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("does/not/exist.toml")
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("LLM_MODEL", "gemini-2.0-flash")
	t.Setenv("LLM_API_KEY", "test-key")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	assert.Equal(t, "test-key", cfg.LLM.APIKey)
}
