package consensus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/truthcheck/truthcheck/internal/core/model"
)

func TestAggregate_UnanimousEntailment(t *testing.T) {
	votes := []Vote{
		{Label: model.Entailment, Confidence: 1.0, Credibility: 1.0},
		{Label: model.Entailment, Confidence: 1.0, Credibility: 1.0},
		{Label: model.Entailment, Confidence: 1.0, Credibility: 1.0},
	}

	res := Aggregate(votes, DefaultThreshold)

	assert.Equal(t, model.VerdictTrue, res.Label)
	assert.InDelta(t, 1.0, res.Confidence, 1e-9)
}

func TestAggregate_UnanimousContradiction(t *testing.T) {
	votes := []Vote{
		{Label: model.Contradiction, Confidence: 0.9, Credibility: 0.95},
		{Label: model.Contradiction, Confidence: 0.8, Credibility: 0.92},
	}

	res := Aggregate(votes, DefaultThreshold)

	assert.Equal(t, model.VerdictFalse, res.Label)
	assert.InDelta(t, 1.0, res.Confidence, 1e-9)
}

func TestAggregate_EvenSplitIsLowConfidence(t *testing.T) {
	// 50/50 between entailment and contradiction: neither reaches 0.6.
	votes := []Vote{
		{Label: model.Entailment, Confidence: 0.8, Credibility: 0.9},
		{Label: model.Contradiction, Confidence: 0.8, Credibility: 0.9},
	}

	res := Aggregate(votes, DefaultThreshold)

	assert.Equal(t, model.VerdictLowConfidence, res.Label)
	assert.InDelta(t, 0.5, res.Confidence, 1e-9)
	assert.InDelta(t, 0.5, res.Entailment, 1e-9)
	assert.InDelta(t, 0.5, res.Contradiction, 1e-9)
}

func TestAggregate_PluralityBelowThresholdIsLowConfidence(t *testing.T) {
	votes := []Vote{
		{Label: model.Entailment, Confidence: 1.0, Credibility: 0.5},
		{Label: model.Contradiction, Confidence: 1.0, Credibility: 0.3},
		{Label: model.Neutral, Confidence: 1.0, Credibility: 0.2},
	}

	res := Aggregate(votes, DefaultThreshold)

	// Entailment wins with 0.5 share but misses the supermajority gate.
	assert.Equal(t, model.VerdictLowConfidence, res.Label)
	assert.InDelta(t, 0.5, res.Confidence, 1e-9)
}

func TestAggregate_NeutralWinNeverTrueOrFalse(t *testing.T) {
	votes := []Vote{
		{Label: model.Neutral, Confidence: 1.0, Credibility: 1.0},
		{Label: model.Neutral, Confidence: 1.0, Credibility: 1.0},
	}

	res := Aggregate(votes, DefaultThreshold)

	assert.Equal(t, model.VerdictLowConfidence, res.Label)
	assert.InDelta(t, 1.0, res.Confidence, 1e-9)
}

func TestAggregate_CredibilityWeighsVotes(t *testing.T) {
	// One very credible contradiction outweighs two weak entailments.
	votes := []Vote{
		{Label: model.Contradiction, Confidence: 0.9, Credibility: 0.95},
		{Label: model.Entailment, Confidence: 0.4, Credibility: 0.3},
		{Label: model.Entailment, Confidence: 0.3, Credibility: 0.3},
	}

	res := Aggregate(votes, DefaultThreshold)

	assert.Equal(t, model.VerdictFalse, res.Label)
	assert.Greater(t, res.Confidence, 0.6)
}

func TestAggregate_ZeroWeightFallsThrough(t *testing.T) {
	votes := []Vote{
		{Label: model.Entailment, Confidence: 0, Credibility: 1.0},
	}

	res := Aggregate(votes, DefaultThreshold)

	assert.Equal(t, model.VerdictLowConfidence, res.Label)
	assert.Equal(t, 0.0, res.Confidence)
}

func TestAggregate_NoVotes(t *testing.T) {
	res := Aggregate(nil, DefaultThreshold)

	assert.Equal(t, model.VerdictLowConfidence, res.Label)
	assert.Equal(t, 0.0, res.Confidence)
}
