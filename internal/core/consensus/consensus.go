// Package consensus turns per-evidence stance votes into the final
// verdict by credibility-and-confidence-weighted voting. A True/False
// verdict requires a supermajority share of the weighted vote, not a
// plurality, so one or two strong outliers cannot manufacture
// false certainty.
package consensus

import (
	"github.com/truthcheck/truthcheck/internal/core/model"
)

// DefaultThreshold is the weighted-vote share a non-neutral verdict
// must reach.
const DefaultThreshold = 0.6

// Vote is one evidence item's contribution: its stance, the stance
// confidence, and the item's source credibility.
type Vote struct {
	Label       model.StanceLabel
	Confidence  float64
	Credibility float64
}

// Result carries the gated verdict label plus the normalized per-label
// shares, which the orchestrator surfaces in the explanation.
type Result struct {
	Label         model.VerdictLabel
	Confidence    float64
	Entailment    float64
	Contradiction float64
	Neutral       float64
}

// Aggregate weighs each vote by credibility * confidence, normalizes
// per-label sums by the total weight, and gates the winner on the
// threshold. A NEUTRAL win, a win below threshold, or zero total weight
// all yield Low Confidence with the maximum share as confidence.
func Aggregate(votes []Vote, threshold float64) Result {
	var entailment, contradiction, neutral, total float64

	for _, v := range votes {
		weight := model.Clamp01(v.Credibility) * model.Clamp01(v.Confidence)
		total += weight

		switch v.Label {
		case model.Entailment:
			entailment += weight
		case model.Contradiction:
			contradiction += weight
		default:
			neutral += weight
		}
	}

	if total > 0 {
		entailment /= total
		contradiction /= total
		neutral /= total
	} else {
		entailment, contradiction, neutral = 0, 0, 0
	}

	maxScore := entailment
	if contradiction > maxScore {
		maxScore = contradiction
	}
	if neutral > maxScore {
		maxScore = neutral
	}

	result := Result{
		Entailment:    entailment,
		Contradiction: contradiction,
		Neutral:       neutral,
	}

	switch {
	case maxScore == entailment && entailment >= threshold:
		result.Label = model.VerdictTrue
		result.Confidence = entailment
	case maxScore == contradiction && contradiction >= threshold:
		result.Label = model.VerdictFalse
		result.Confidence = contradiction
	default:
		result.Label = model.VerdictLowConfidence
		result.Confidence = maxScore
	}

	return result
}
