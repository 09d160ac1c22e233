package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truthcheck/truthcheck/internal/config"
	"github.com/truthcheck/truthcheck/internal/core"
	"github.com/truthcheck/truthcheck/internal/core/cache"
	"github.com/truthcheck/truthcheck/internal/core/model"
	"github.com/truthcheck/truthcheck/internal/core/relevance"
	"github.com/truthcheck/truthcheck/internal/history"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixedClaims struct{ claims []string }

func (f fixedClaims) Extract(string) []string { return f.claims }

type fixedKeywords struct{}

func (fixedKeywords) Extract(string) []string { return []string{"kw"} }

type fixedRetriever struct{ items []model.EvidenceItem }

func (f fixedRetriever) Retrieve(context.Context, []string) ([]model.EvidenceItem, error) {
	return f.items, nil
}

type fixedScorer struct{ score float64 }

func (f fixedScorer) Similarity(context.Context, string, string) (float64, error) {
	return f.score, nil
}

type fixedClassifier struct{ result model.StanceResult }

func (f fixedClassifier) Classify(context.Context, string, string) model.StanceResult {
	return f.result
}

type panicClassifier struct{}

func (panicClassifier) Classify(context.Context, string, string) model.StanceResult {
	panic("backend blew up")
}

func newTestServer(t *testing.T, classifier core.StanceClassifier) *Server {
	t.Helper()
	cfg := config.Default()

	store, err := history.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	verifier := core.NewVerifier(
		fixedClaims{claims: []string{"the moon orbits the earth"}},
		fixedKeywords{},
		fixedRetriever{items: []model.EvidenceItem{
			{Content: "ev", Source: "Wikipedia - Moon", URL: "https://en.wikipedia.org/wiki/Moon", CredibilityScore: 0.95},
		}},
		relevance.NewFilter(fixedScorer{score: 0.9}, cfg.Verify.SimilarityThreshold, nil),
		classifier,
		cache.New(16),
		cfg.Verify,
		nil,
	)
	return &Server{Verifier: verifier, History: store}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestVerifyEndpoint(t *testing.T) {
	s := newTestServer(t, fixedClassifier{result: model.StanceResult{Label: model.Entailment, Confidence: 0.95}})
	r := s.SetupRouter()

	w := doRequest(r, http.MethodPost, "/api/verify", `{"claim": "The moon orbits the earth."}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp VerifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "True", resp.Label)
	assert.Equal(t, "The moon orbits the earth.", resp.Claim)
	assert.Contains(t, resp.Evidence, "Wikipedia - Moon")

	// Confidence rounded to three decimals.
	assert.Equal(t, resp.Confidence, float64(int(resp.Confidence*1000))/1000)
}

func TestVerifyEndpoint_MissingClaim(t *testing.T) {
	s := newTestServer(t, fixedClassifier{})
	r := s.SetupRouter()

	assert.Equal(t, http.StatusBadRequest, doRequest(r, http.MethodPost, "/api/verify", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(r, http.MethodPost, "/api/verify", `not json`).Code)
}

func TestVerifyEndpoint_InternalFaultIs500(t *testing.T) {
	s := newTestServer(t, panicClassifier{})
	r := s.SetupRouter()

	w := doRequest(r, http.MethodPost, "/api/verify", `{"claim": "The moon orbits the earth."}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp VerifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Error", resp.Label)
	assert.Equal(t, 0.0, resp.Confidence)
	assert.Contains(t, resp.Evidence, "backend blew up")
}

func TestHistoryEndpoint(t *testing.T) {
	s := newTestServer(t, fixedClassifier{result: model.StanceResult{Label: model.Entailment, Confidence: 0.95}})
	r := s.SetupRouter()

	doRequest(r, http.MethodPost, "/api/verify", `{"claim": "The moon orbits the earth."}`)

	w := doRequest(r, http.MethodGet, "/api/history", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var records []history.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "The moon orbits the earth.", records[0].Claim)
	assert.Equal(t, "True", records[0].Label)
}

func TestHistoryEndpoint_NoStore(t *testing.T) {
	s := newTestServer(t, fixedClassifier{})
	s.History = nil
	r := s.SetupRouter()

	w := doRequest(r, http.MethodGet, "/api/history", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, fixedClassifier{})
	r := s.SetupRouter()

	w := doRequest(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
