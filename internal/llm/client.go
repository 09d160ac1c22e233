package llm

import (
	"context"
)

// LLMClient is a minimal text-generation client. Stance classification
// backends are built on top of this.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// EmbedderClient produces a vector for a piece of text. The relevance
// filter uses it as its semantic-similarity scorer.
type EmbedderClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
