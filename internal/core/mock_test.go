package core

import (
	"context"
	"sync/atomic"

	"github.com/truthcheck/truthcheck/internal/core/model"
)

type MockClaimExtractor struct {
	Claims []string
	Calls  int64
}

func (m *MockClaimExtractor) Extract(text string) []string {
	atomic.AddInt64(&m.Calls, 1)
	return m.Claims
}

type MockKeywordExtractor struct {
	Keywords []string
}

func (m *MockKeywordExtractor) Extract(claim string) []string {
	return m.Keywords
}

type MockRetriever struct {
	Items []model.EvidenceItem
	Err   error
	Calls int64
}

func (m *MockRetriever) Retrieve(ctx context.Context, keywords []string) ([]model.EvidenceItem, error) {
	atomic.AddInt64(&m.Calls, 1)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Items, nil
}

// MockScorer returns a fixed similarity for every pair.
type MockScorer struct {
	Score float64
	Err   error
}

func (m *MockScorer) Similarity(ctx context.Context, a, b string) (float64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Score, nil
}

// MockClassifier returns stances keyed by evidence content, counting
// invocations so cache tests can prove nothing ran twice.
type MockClassifier struct {
	ByContent map[string]model.StanceResult
	Default   model.StanceResult
	Calls     int64
	Panic     bool
}

func (m *MockClassifier) Classify(ctx context.Context, claim, evidence string) model.StanceResult {
	atomic.AddInt64(&m.Calls, 1)
	if m.Panic {
		panic("classifier exploded")
	}
	if res, ok := m.ByContent[evidence]; ok {
		return res
	}
	return m.Default
}
