package model

// StanceLabel is the canonical three-way relationship between a claim
// and one evidence item. Backend-native vocabularies are normalized to
// this set before any aggregation happens.
type StanceLabel string

const (
	Entailment    StanceLabel = "ENTAILMENT"
	Contradiction StanceLabel = "CONTRADICTION"
	Neutral       StanceLabel = "NEUTRAL"
)

// StanceResult is the classification of one (claim, evidence) pair.
// Immutable once produced.
type StanceResult struct {
	Label      StanceLabel `json:"label"`
	Confidence float64     `json:"confidence"`

	// Evidence points at the item that was classified, so the verdict
	// explanation can cite source, credibility and excerpt.
	Evidence *EvidenceItem `json:"-"`

	// ModelVotes records each backend's normalized label when an
	// ensemble is configured. Empty when every backend was unavailable.
	ModelVotes map[string]StanceLabel `json:"model_votes,omitempty"`
}
