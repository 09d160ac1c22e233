// Package relevance discards evidence that is not semantically related
// to the claim under verification.
package relevance

import (
	"context"

	"go.uber.org/zap"

	"github.com/truthcheck/truthcheck/internal/core/model"
)

// Filter retains evidence whose similarity to the claim exceeds the
// threshold, attaching the score to surviving items. Input order is
// preserved. A scorer failure excludes the item (similarity 0) rather
// than failing the pipeline.
type Filter struct {
	Scorer    Scorer
	Threshold float64
	Log       *zap.Logger
}

func NewFilter(scorer Scorer, threshold float64, log *zap.Logger) *Filter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Filter{Scorer: scorer, Threshold: threshold, Log: log}
}

func (f *Filter) Apply(ctx context.Context, claim string, items []model.EvidenceItem) []model.EvidenceItem {
	var kept []model.EvidenceItem
	for _, item := range items {
		sim, err := f.Scorer.Similarity(ctx, claim, item.Content)
		if err != nil {
			f.Log.Warn("similarity scoring failed, excluding item",
				zap.String("source", item.Source),
				zap.Error(err))
			continue
		}
		if sim > f.Threshold {
			item.SimilarityScore = model.Clamp01(sim)
			kept = append(kept, item)
		}
	}
	return kept
}
