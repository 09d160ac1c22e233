// Package stance classifies the logical relationship between a claim
// and one evidence item, normalizing heterogeneous backend outputs and
// ensembling them when more than one backend is configured.
package stance

import (
	"context"

	"go.uber.org/zap"

	"github.com/truthcheck/truthcheck/internal/core/model"
)

type weightedBackend struct {
	backend Backend
	weight  float64
}

// Classifier fans a (claim, evidence) pair out to its backends and
// folds the answers into one StanceResult. A backend that errors is
// excluded from that call; when all backends are unavailable the result
// is NEUTRAL at confidence 0.5 with an empty vote record. That is a
// defined fallback, not a fault.
type Classifier struct {
	backends []weightedBackend
	log      *zap.Logger
}

// NewClassifier builds a classifier over the given backends. Weights
// must align with backends; entries <= 0 receive an equal share of the
// remaining mass. Weights are normalized to sum to 1.
func NewClassifier(backends []Backend, weights []float64, log *zap.Logger) *Classifier {
	if log == nil {
		log = zap.NewNop()
	}

	wb := make([]weightedBackend, 0, len(backends))
	var explicit float64
	unweighted := 0
	for i, b := range backends {
		w := 0.0
		if i < len(weights) {
			w = weights[i]
		}
		if w <= 0 {
			unweighted++
		} else {
			explicit += w
		}
		wb = append(wb, weightedBackend{backend: b, weight: w})
	}

	// Distribute leftover mass equally, then normalize.
	if unweighted > 0 && explicit < 1 {
		share := (1 - explicit) / float64(unweighted)
		for i := range wb {
			if wb[i].weight <= 0 {
				wb[i].weight = share
			}
		}
	}
	var total float64
	for _, b := range wb {
		total += b.weight
	}
	if total > 0 {
		for i := range wb {
			wb[i].weight /= total
		}
	}

	return &Classifier{backends: wb, log: log}
}

type backendVote struct {
	name       string
	label      model.StanceLabel
	confidence float64
	weight     float64
}

// Classify runs every available backend on the pair and returns the
// combined stance.
func (c *Classifier) Classify(ctx context.Context, claim, evidence string) model.StanceResult {
	var votes []backendVote
	for _, wb := range c.backends {
		raw, err := wb.backend.Classify(ctx, evidence, claim)
		if err != nil {
			c.log.Warn("stance backend unavailable, excluding from ensemble",
				zap.String("backend", wb.backend.Name()),
				zap.Error(err))
			continue
		}
		votes = append(votes, backendVote{
			name:       wb.backend.Name(),
			label:      Normalize(raw.Label),
			confidence: model.Clamp01(raw.Score),
			weight:     wb.weight,
		})
	}

	if len(votes) == 0 {
		return model.StanceResult{Label: model.Neutral, Confidence: 0.5}
	}

	record := make(map[string]model.StanceLabel, len(votes))
	for _, v := range votes {
		record[v.name] = v.label
	}

	// A lone vote is passed through directly; normalizing one vote
	// against itself would always yield confidence 1.
	if len(votes) == 1 {
		return model.StanceResult{
			Label:      votes[0].label,
			Confidence: votes[0].confidence,
			ModelVotes: record,
		}
	}

	scores := map[model.StanceLabel]float64{}
	var mass float64
	for _, v := range votes {
		scores[v.label] += v.weight * v.confidence
		mass += v.weight * v.confidence
	}

	// Every backend answered at confidence 0: no label carries any
	// signal, so no winner can be crowned from the score map.
	if mass == 0 {
		return model.StanceResult{Label: model.Neutral, Confidence: 0.5, ModelVotes: record}
	}

	winner := model.Neutral
	best := -1.0
	for _, label := range []model.StanceLabel{model.Entailment, model.Contradiction, model.Neutral} {
		if scores[label] > best {
			best = scores[label]
			winner = label
		}
	}

	return model.StanceResult{
		Label:      winner,
		Confidence: model.Clamp01(best / mass),
		ModelVotes: record,
	}
}
