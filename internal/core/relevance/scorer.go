package relevance

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/truthcheck/truthcheck/internal/core/model"
	"github.com/truthcheck/truthcheck/internal/llm"
)

// Scorer computes a semantic similarity in [0,1] between two texts.
type Scorer interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// EmbeddingScorer scores by cosine similarity of embedding vectors.
type EmbeddingScorer struct {
	Embedder llm.EmbedderClient
}

func NewEmbeddingScorer(embedder llm.EmbedderClient) *EmbeddingScorer {
	return &EmbeddingScorer{Embedder: embedder}
}

func (s *EmbeddingScorer) Similarity(ctx context.Context, a, b string) (float64, error) {
	va, err := s.Embedder.Embed(ctx, a)
	if err != nil {
		return 0, fmt.Errorf("failed to embed text: %w", err)
	}
	vb, err := s.Embedder.Embed(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("failed to embed text: %w", err)
	}
	return model.Clamp01(cosine(va, vb)), nil
}

func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// LexicalScorer is the degraded-mode scorer used when no embedding
// backend is available: token-overlap Jaccard similarity. Crude, but it
// keeps the pipeline total instead of silently dropping every item.
type LexicalScorer struct{}

func (LexicalScorer) Similarity(_ context.Context, a, b string) (float64, error) {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0, nil
	}
	inter := 0
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			inter++
		}
	}
	union := len(ta) + len(tb) - inter
	return float64(inter) / float64(union), nil
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		tok = strings.Trim(tok, ".,;:!?\"'()[]")
		if len(tok) > 2 {
			set[tok] = struct{}{}
		}
	}
	return set
}
