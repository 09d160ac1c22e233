// Package rank orders filtered evidence by a weighted combination of
// source credibility and claim similarity, and selects the top K items
// fed to stance classification.
package rank

import (
	"sort"

	"github.com/truthcheck/truthcheck/internal/core/model"
)

// Weights for the combined score. Credibility is weighted higher by
// default: it is a stable property of the source, while similarity is a
// noisier per-query signal.
type Weights struct {
	Credibility float64
	Similarity  float64
}

// DefaultWeights sum to 1.
var DefaultWeights = Weights{Credibility: 0.6, Similarity: 0.4}

// Select attaches combined scores, sorts descending and returns the top
// k items. The sort is stable, so ties keep their insertion order and
// re-running on identical input yields an identical result. If fewer
// than k items survive, all of them are returned.
func Select(items []model.EvidenceItem, w Weights, k int) []model.EvidenceItem {
	ranked := make([]model.EvidenceItem, len(items))
	copy(ranked, items)

	for i := range ranked {
		ranked[i].CombinedScore = ranked[i].CredibilityScore*w.Credibility +
			ranked[i].SimilarityScore*w.Similarity
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CombinedScore > ranked[j].CombinedScore
	})

	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
