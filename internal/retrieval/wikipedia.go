package retrieval

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/microcosm-cc/bluemonday"
	"github.com/tidwall/gjson"

	"github.com/truthcheck/truthcheck/internal/core/credibility"
	"github.com/truthcheck/truthcheck/internal/core/model"
)

const wikipediaAPI = "https://en.wikipedia.org/w/api.php"

type wikipediaSource struct {
	client    *http.Client
	sanitizer *bluemonday.Policy
	apiURL    string
}

func newWikipediaSource(timeout time.Duration, sanitizer *bluemonday.Policy) *wikipediaSource {
	return &wikipediaSource{
		client:    &http.Client{Timeout: timeout},
		sanitizer: sanitizer,
		apiURL:    wikipediaAPI,
	}
}

// search runs a full-text title search over the first few keywords,
// then pulls the intro extract for each hit.
func (s *wikipediaSource) search(ctx context.Context, keywords []string, max int) ([]model.EvidenceItem, error) {
	if max <= 0 {
		return nil, nil
	}
	terms := keywords
	if len(terms) > 4 {
		terms = terms[:4]
	}
	query := strings.Join(terms, " ")

	body, err := s.get(ctx, url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {"5"},
		"format":   {"json"},
	})
	if err != nil {
		return nil, fmt.Errorf("wikipedia search: %w", err)
	}

	var evidence []model.EvidenceItem
	for _, hit := range gjson.GetBytes(body, "query.search").Array() {
		title := hit.Get("title").String()
		if title == "" {
			continue
		}

		extract, err := s.extract(ctx, title)
		if err != nil || extract == "" {
			continue
		}

		pageURL := "https://en.wikipedia.org/wiki/" + strings.ReplaceAll(title, " ", "_")
		evidence = append(evidence, model.EvidenceItem{
			Content:          extract,
			Source:           "Wikipedia - " + title,
			URL:              pageURL,
			SourceType:       model.SourceWikipedia,
			CredibilityScore: credibility.Score(model.SourceWikipedia, pageURL),
		})

		if len(evidence) >= max {
			break
		}
	}
	return evidence, nil
}

// extract fetches the plain-text intro of a page.
func (s *wikipediaSource) extract(ctx context.Context, title string) (string, error) {
	body, err := s.get(ctx, url.Values{
		"action":      {"query"},
		"prop":        {"extracts"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"titles":      {title},
		"format":      {"json"},
		"redirects":   {"1"},
	})
	if err != nil {
		return "", err
	}

	var extract string
	gjson.GetBytes(body, "query.pages").ForEach(func(_, page gjson.Result) bool {
		extract = page.Get("extract").String()
		return false
	})
	return strings.TrimSpace(s.sanitizer.Sanitize(extract)), nil
}

func (s *wikipediaSource) get(ctx context.Context, params url.Values) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+"?"+params.Encode(), nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("User-Agent", userAgent)

			resp, err := s.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("wikipedia returned status %d", resp.StatusCode)
			}
			body, err = io.ReadAll(resp.Body)
			return err
		},
		retry.Attempts(3),
		retry.Delay(300*time.Millisecond),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	return body, err
}
