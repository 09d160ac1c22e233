package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port int `toml:"port"`
}

// LLMConfig describes one generation/embedding backend. The top-level
// [llm] block is the primary backend and embedder; [[llm.backends]]
// entries join it to form the stance-classification ensemble.
type LLMConfig struct {
	Provider       string  `toml:"provider"`
	Model          string  `toml:"model"`
	EmbeddingModel string  `toml:"embedding_model"`
	APIKey         string  `toml:"api_key"`
	BaseURL        string  `toml:"base_url"`
	Weight         float64 `toml:"weight"`

	Backends []LLMConfig `toml:"backends"`
}

// VerifyConfig holds the pipeline tunables. The early-exit confidences
// and thresholds vary across deployments, so none of them is hard-coded.
type VerifyConfig struct {
	SimilarityThreshold  float64 `toml:"similarity_threshold"`
	CredibilityWeight    float64 `toml:"credibility_weight"`
	SimilarityWeight     float64 `toml:"similarity_weight"`
	TopK                 int     `toml:"top_k"`
	ConsensusThreshold   float64 `toml:"consensus_threshold"`
	NoClaimConfidence    float64 `toml:"no_claim_confidence"`
	NoEvidenceConfidence float64 `toml:"no_evidence_confidence"`
	NoRelevantConfidence float64 `toml:"no_relevant_confidence"`
	ParallelClassify     bool    `toml:"parallel_classify"`
}

type CacheConfig struct {
	// Capacity bounds the verdict cache. 0 disables eviction.
	Capacity int `toml:"capacity"`
}

type HistoryConfig struct {
	// Path to the sqlite database. Empty disables history entirely.
	Path string `toml:"path"`
}

type RetrievalConfig struct {
	MaxSources   int `toml:"max_sources"`
	WikipediaMax int `toml:"wikipedia_max"`
	WebMax       int `toml:"web_max"`
	TimeoutSecs  int `toml:"timeout_secs"`
}

type Config struct {
	Server    ServerConfig    `toml:"server"`
	LLM       LLMConfig       `toml:"llm"`
	Verify    VerifyConfig    `toml:"verify"`
	Cache     CacheConfig     `toml:"cache"`
	History   HistoryConfig   `toml:"history"`
	Retrieval RetrievalConfig `toml:"retrieval"`
}

// Default returns the configuration the service runs with when no TOML
// file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Verify: VerifyConfig{
			SimilarityThreshold:  0.5,
			CredibilityWeight:    0.6,
			SimilarityWeight:     0.4,
			TopK:                 4,
			ConsensusThreshold:   0.6,
			NoClaimConfidence:    0.3,
			NoEvidenceConfidence: 0.3,
			NoRelevantConfidence: 0.4,
			ParallelClassify:     true,
		},
		Cache:   CacheConfig{Capacity: 4096},
		History: HistoryConfig{Path: ""},
		Retrieval: RetrievalConfig{
			MaxSources:   10,
			WikipediaMax: 3,
			WebMax:       3,
			TimeoutSecs:  10,
		},
	}
}

// Load reads a TOML config file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides the LLM block from environment variables, keeping
// secrets out of the config file.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_EMBEDDING_MODEL"); v != "" {
		c.LLM.EmbeddingModel = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
}
