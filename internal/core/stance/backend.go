package stance

import (
	"context"
	"fmt"

	"github.com/truthcheck/truthcheck/internal/core/common"
	"github.com/truthcheck/truthcheck/internal/llm"
)

// RawResult is a backend's native judgment: whatever label vocabulary
// it speaks, plus a score in [0,1].
type RawResult struct {
	Label string  `json:"label"`
	Score float64 `json:"confidence"`
}

// Backend is one natural-language-inference engine. Premise is the
// evidence text, hypothesis the claim.
type Backend interface {
	Name() string
	Classify(ctx context.Context, premise, hypothesis string) (RawResult, error)
}

const nliPrompt = `You are a natural language inference classifier.

Premise (evidence):
%s

Hypothesis (claim):
%s

Does the premise entail, contradict, or say nothing about the hypothesis?
Respond with ONLY a JSON object:
{"label": "entailment" | "contradiction" | "neutral", "confidence": <float between 0 and 1>}`

// LLMBackend adapts a text-generation client into an NLI backend by
// prompting for a JSON verdict.
type LLMBackend struct {
	name   string
	client llm.LLMClient
}

func NewLLMBackend(name string, client llm.LLMClient) *LLMBackend {
	return &LLMBackend{name: name, client: client}
}

func (b *LLMBackend) Name() string { return b.name }

func (b *LLMBackend) Classify(ctx context.Context, premise, hypothesis string) (RawResult, error) {
	response, err := b.client.Generate(ctx, fmt.Sprintf(nliPrompt, premise, hypothesis))
	if err != nil {
		return RawResult{}, fmt.Errorf("backend %s: %w", b.name, err)
	}

	result, err := common.ParseJSON[RawResult](response)
	if err != nil {
		return RawResult{}, fmt.Errorf("backend %s returned unparseable verdict: %w", b.name, err)
	}
	return result, nil
}
