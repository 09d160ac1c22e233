// Package core wires the verification pipeline: claim extraction,
// evidence retrieval, relevance filtering, ranking, stance
// classification and weighted consensus, fronted by a verdict cache.
package core

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/truthcheck/truthcheck/internal/claims"
	"github.com/truthcheck/truthcheck/internal/config"
	"github.com/truthcheck/truthcheck/internal/core/cache"
	"github.com/truthcheck/truthcheck/internal/core/consensus"
	"github.com/truthcheck/truthcheck/internal/core/model"
	"github.com/truthcheck/truthcheck/internal/core/rank"
	"github.com/truthcheck/truthcheck/internal/core/relevance"
	"github.com/truthcheck/truthcheck/internal/retrieval"
)

// StanceClassifier is the per-(claim, evidence) classification
// collaborator. *stance.Classifier satisfies it.
type StanceClassifier interface {
	Classify(ctx context.Context, claim, evidence string) model.StanceResult
}

// Verifier runs one claim through the pipeline. All collaborators are
// injected at construction; the zero value is not usable.
type Verifier struct {
	Claims     claims.Extractor
	Keywords   claims.KeywordExtractor
	Retriever  retrieval.Retriever
	Filter     *relevance.Filter
	Classifier StanceClassifier
	Cache      *cache.VerdictCache
	Config     config.VerifyConfig
	Log        *zap.Logger
}

func NewVerifier(
	claimExtractor claims.Extractor,
	keywordExtractor claims.KeywordExtractor,
	retriever retrieval.Retriever,
	filter *relevance.Filter,
	classifier StanceClassifier,
	verdictCache *cache.VerdictCache,
	cfg config.VerifyConfig,
	log *zap.Logger,
) *Verifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Verifier{
		Claims:     claimExtractor,
		Keywords:   keywordExtractor,
		Retriever:  retriever,
		Filter:     filter,
		Classifier: classifier,
		Cache:      verdictCache,
		Config:     cfg,
		Log:        log,
	}
}

// Verify checks the cache and runs the pipeline on a miss. It always
// returns a well-formed Verdict: expected empty-result outcomes are Low
// Confidence verdicts, and any fault anywhere in the pipeline becomes
// an Error verdict with confidence 0. Error verdicts are not cached.
func (v *Verifier) Verify(ctx context.Context, text string) model.Verdict {
	key := cache.Key(text)

	verdict, hit, err := v.Cache.GetOrCompute(key, func() (model.Verdict, error) {
		return v.verify(ctx, text)
	})
	if err != nil {
		v.Log.Error("verification failed", zap.Error(err))
		return model.Verdict{
			Label:       model.VerdictError,
			Confidence:  0.0,
			Explanation: fmt.Sprintf("An internal error occurred: %v", err),
		}
	}
	if hit {
		v.Log.Debug("returning cached verdict", zap.String("key", key))
	}
	return verdict
}

// verify is the uncached pipeline. It returns an error only for
// unexpected faults; panics in any stage are recovered into the same
// error path so a raw fault never escapes to the caller.
func (v *Verifier) verify(ctx context.Context, text string) (verdict model.Verdict, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pipeline panic: %v", r)
		}
	}()

	extracted := v.Claims.Extract(text)
	if len(extracted) == 0 {
		return model.Verdict{
			Label:       model.VerdictLowConfidence,
			Confidence:  v.Config.NoClaimConfidence,
			Explanation: "No valid claims found. Please provide a clear factual statement.",
		}, nil
	}
	claim := extracted[0]

	keywords := v.Keywords.Extract(claim)

	pool, retErr := v.Retriever.Retrieve(ctx, keywords)
	if retErr != nil {
		return model.Verdict{}, fmt.Errorf("evidence retrieval failed: %w", retErr)
	}
	if len(pool) == 0 {
		return model.Verdict{
			Label:       model.VerdictLowConfidence,
			Confidence:  v.Config.NoEvidenceConfidence,
			Explanation: "Not enough reliable evidence found.",
		}, nil
	}

	relevant := v.Filter.Apply(ctx, claim, pool)
	if len(relevant) == 0 {
		return model.Verdict{
			Label:       model.VerdictLowConfidence,
			Confidence:  v.Config.NoRelevantConfidence,
			Explanation: "No semantically relevant evidence found.",
		}, nil
	}

	weights := rank.Weights{
		Credibility: v.Config.CredibilityWeight,
		Similarity:  v.Config.SimilarityWeight,
	}
	top := rank.Select(relevant, weights, v.Config.TopK)

	stances := v.classifyAll(ctx, claim, top)

	votes := make([]consensus.Vote, len(stances))
	for i, s := range stances {
		votes[i] = consensus.Vote{
			Label:       s.Label,
			Confidence:  s.Confidence,
			Credibility: s.Evidence.CredibilityScore,
		}
	}
	result := consensus.Aggregate(votes, v.Config.ConsensusThreshold)

	v.Log.Info("claim verified",
		zap.String("label", string(result.Label)),
		zap.Float64("confidence", result.Confidence),
		zap.Int("evidence_pool", len(pool)),
		zap.Int("evidence_used", len(top)))

	return model.Verdict{
		Label:       result.Label,
		Confidence:  model.Clamp01(result.Confidence),
		Explanation: formatSummary(stances),
	}, nil
}

// classifyAll classifies each top-K item, concurrently when configured.
// Each call is independent and side-effect-free on shared state, so the
// fan-out needs no coordination beyond the slot-per-item slice.
func (v *Verifier) classifyAll(ctx context.Context, claim string, items []model.EvidenceItem) []model.StanceResult {
	results := make([]model.StanceResult, len(items))

	if !v.Config.ParallelClassify {
		for i := range items {
			results[i] = v.Classifier.Classify(ctx, claim, items[i].Content)
			results[i].Evidence = &items[i]
		}
		return results
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range items {
		g.Go(func() error {
			results[i] = v.Classifier.Classify(gctx, claim, items[i].Content)
			results[i].Evidence = &items[i]
			return nil
		})
	}
	_ = g.Wait() // classifiers degrade instead of erroring
	return results
}

const excerptLen = 300

// formatSummary renders the contributing evidence in the order it was
// ranked, with each source's verdict, confidence and credibility.
func formatSummary(stances []model.StanceResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Analyzed %d sources:**\n", len(stances))

	for i, s := range stances {
		excerpt := s.Evidence.Content
		if len(excerpt) > excerptLen {
			// Back off to a rune boundary so the cut never leaves an
			// invalid UTF-8 tail in the summary.
			cut := excerptLen
			for cut > 0 && !utf8.RuneStart(excerpt[cut]) {
				cut--
			}
			excerpt = excerpt[:cut]
		}
		fmt.Fprintf(&b,
			"\n**Source %d: %s**\nVerdict: %s (Confidence: %.2f%%)\nCredibility Score: %.2f\nExcerpt: %s...\nURL: %s\n",
			i+1,
			s.Evidence.Source,
			s.Label,
			s.Confidence*100,
			s.Evidence.CredibilityScore,
			excerpt,
			s.Evidence.URL,
		)
	}
	return b.String()
}
