package server

import (
	"context"
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/truthcheck/truthcheck/internal/claims"
	"github.com/truthcheck/truthcheck/internal/config"
	"github.com/truthcheck/truthcheck/internal/core"
	"github.com/truthcheck/truthcheck/internal/core/cache"
	"github.com/truthcheck/truthcheck/internal/core/model"
	"github.com/truthcheck/truthcheck/internal/core/relevance"
	"github.com/truthcheck/truthcheck/internal/core/stance"
	"github.com/truthcheck/truthcheck/internal/history"
	"github.com/truthcheck/truthcheck/internal/llm"
	"github.com/truthcheck/truthcheck/internal/retrieval"
)

const historyPageSize = 50

type Server struct {
	Verifier *core.Verifier
	History  *history.Store
	Log      *zap.Logger
}

// New wires every collaborator from config. Model backends are built
// once here and shared across requests; per-call checks in the pipeline
// only decide whether a backend participates in a given ensemble vote.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}

	// Default to a local Ollama when nothing is configured, so the
	// service comes up without credentials.
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "ollama"
		if cfg.LLM.Model == "" {
			cfg.LLM.Model = "gpt-oss:latest"
		}
	}

	backends, weights, embedder, err := buildBackends(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	var scorer relevance.Scorer
	if embedder != nil {
		scorer = relevance.NewEmbeddingScorer(embedder)
	} else {
		log.Warn("no embedding backend available, falling back to lexical similarity")
		scorer = relevance.LexicalScorer{}
	}

	var store *history.Store
	if cfg.History.Path != "" {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open history store: %w", err)
		}
	}

	verifier := core.NewVerifier(
		claims.NewHeuristicExtractor(),
		claims.NewFrequencyKeywordExtractor(),
		retrieval.NewWebRetriever(cfg.Retrieval, log),
		relevance.NewFilter(scorer, cfg.Verify.SimilarityThreshold, log),
		stance.NewClassifier(backends, weights, log),
		cache.New(cfg.Cache.Capacity),
		cfg.Verify,
		log,
	)

	return &Server{Verifier: verifier, History: store, Log: log}, nil
}

// buildBackends constructs the primary backend plus any additional
// ensemble members. A member that fails to initialize is skipped with a
// warning; the primary failing is fatal.
func buildBackends(ctx context.Context, cfg *config.Config, log *zap.Logger) ([]stance.Backend, []float64, llm.EmbedderClient, error) {
	primary, embedder, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize primary llm client: %w", err)
	}

	backends := []stance.Backend{stance.NewLLMBackend(cfg.LLM.Provider, primary)}
	weights := []float64{cfg.LLM.Weight}

	for i, bc := range cfg.LLM.Backends {
		client, emb, err := llm.NewClient(ctx, bc)
		if err != nil {
			log.Warn("skipping ensemble backend that failed to initialize",
				zap.String("provider", bc.Provider),
				zap.Error(err))
			continue
		}
		name := fmt.Sprintf("%s-%d", bc.Provider, i+1)
		backends = append(backends, stance.NewLLMBackend(name, client))
		weights = append(weights, bc.Weight)
		if embedder == nil && emb != nil {
			embedder = emb
		}
	}

	return backends, weights, embedder, nil
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/api/verify", s.VerifyClaim)
	r.GET("/api/history", s.GetHistory)
	r.GET("/health", s.Health)

	return r
}

type VerifyRequest struct {
	Claim string `json:"claim"`
}

type VerifyResponse struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Evidence   string  `json:"evidence"`
	Claim      string  `json:"claim"`
}

func (s *Server) VerifyClaim(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Claim == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No claim provided"})
		return
	}

	verdict := s.Verifier.Verify(c.Request.Context(), req.Claim)

	if s.History != nil {
		if err := s.History.Insert(c.Request.Context(), req.Claim, string(verdict.Label), verdict.Confidence); err != nil {
			s.Log.Warn("failed to record verification history", zap.Error(err))
		}
	}

	resp := VerifyResponse{
		Label:      string(verdict.Label),
		Confidence: round3(verdict.Confidence),
		Evidence:   verdict.Explanation,
		Claim:      req.Claim,
	}

	// Internal faults carry 500 semantics at this boundary; expected
	// low-confidence outcomes are normal 200 responses.
	status := http.StatusOK
	if verdict.Label == model.VerdictError {
		status = http.StatusInternalServerError
	}
	c.JSON(status, resp)
}

func (s *Server) GetHistory(c *gin.Context) {
	if s.History == nil {
		c.JSON(http.StatusOK, []history.Record{})
		return
	}

	records, err := s.History.Recent(c.Request.Context(), historyPageSize)
	if err != nil {
		s.Log.Error("failed to load verification history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	if records == nil {
		records = []history.Record{}
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "TruthCheck is running."})
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
