// Package retrieval gathers candidate evidence for a keyword set from
// Wikipedia and a web metasearch, attaching source credibility to each
// snippet. Individual source failures are logged and skipped; retrieval
// as a whole only errors when the context is cancelled.
package retrieval

import (
	"context"
	"sort"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/truthcheck/truthcheck/internal/config"
	"github.com/truthcheck/truthcheck/internal/core/model"
)

// Retriever is the evidence-retrieval collaborator contract.
type Retriever interface {
	Retrieve(ctx context.Context, keywords []string) ([]model.EvidenceItem, error)
}

// WebRetriever combines the Wikipedia API and DuckDuckGo Lite scraping,
// capping each source and the overall pool.
type WebRetriever struct {
	wiki      *wikipediaSource
	web       *duckduckgoSource
	cfg       config.RetrievalConfig
	log       *zap.Logger
	sanitizer *bluemonday.Policy
}

func NewWebRetriever(cfg config.RetrievalConfig, log *zap.Logger) *WebRetriever {
	if log == nil {
		log = zap.NewNop()
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	sanitizer := bluemonday.StrictPolicy()

	return &WebRetriever{
		wiki:      newWikipediaSource(timeout, sanitizer),
		web:       newDuckDuckGoSource(timeout, sanitizer),
		cfg:       cfg,
		log:       log,
		sanitizer: sanitizer,
	}
}

func (r *WebRetriever) Retrieve(ctx context.Context, keywords []string) ([]model.EvidenceItem, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	var evidence []model.EvidenceItem

	wiki, err := r.wiki.search(ctx, keywords, r.cfg.WikipediaMax)
	if err != nil {
		r.log.Warn("wikipedia retrieval failed", zap.Error(err))
	}
	evidence = append(evidence, wiki...)

	web, err := r.web.search(ctx, keywords, r.cfg.WebMax)
	if err != nil {
		r.log.Warn("web retrieval failed", zap.Error(err))
	}
	evidence = append(evidence, web...)

	// Most credible sources first, then cap the pool.
	sort.SliceStable(evidence, func(i, j int) bool {
		return evidence[i].CredibilityScore > evidence[j].CredibilityScore
	})
	if max := r.cfg.MaxSources; max > 0 && len(evidence) > max {
		evidence = evidence[:max]
	}

	if ctx.Err() != nil {
		return evidence, ctx.Err()
	}
	return evidence, nil
}
