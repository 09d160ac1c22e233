package retrieval

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/truthcheck/truthcheck/internal/core/credibility"
	"github.com/truthcheck/truthcheck/internal/core/model"
)

const (
	duckduckgoLite = "https://lite.duckduckgo.com/lite/"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// duckduckgoSource scrapes the DuckDuckGo Lite HTML endpoint, which is
// a plain table of result links and snippets.
type duckduckgoSource struct {
	client    *http.Client
	sanitizer *bluemonday.Policy
	endpoint  string
}

func newDuckDuckGoSource(timeout time.Duration, sanitizer *bluemonday.Policy) *duckduckgoSource {
	return &duckduckgoSource{
		client:    &http.Client{Timeout: timeout},
		sanitizer: sanitizer,
		endpoint:  duckduckgoLite,
	}
}

func (s *duckduckgoSource) search(ctx context.Context, keywords []string, max int) ([]model.EvidenceItem, error) {
	if max <= 0 {
		return nil, nil
	}
	terms := keywords
	if len(terms) > 5 {
		terms = terms[:5]
	}
	form := url.Values{"q": {strings.Join(terms, " ")}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo lite: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo lite returned status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse duckduckgo response: %w", err)
	}

	results := parseLiteResults(doc)
	var evidence []model.EvidenceItem
	for _, r := range results {
		snippet := strings.TrimSpace(s.sanitizer.Sanitize(r.snippet))
		if r.url == "" || snippet == "" {
			continue
		}
		evidence = append(evidence, model.EvidenceItem{
			Content:          snippet,
			Source:           "Web - " + r.title,
			URL:              r.url,
			SourceType:       model.SourceWeb,
			CredibilityScore: credibility.Score(model.SourceWeb, r.url),
		})
		if len(evidence) >= max {
			break
		}
	}
	return evidence, nil
}

type liteResult struct {
	title   string
	url     string
	snippet string
}

// parseLiteResults walks the document pairing each result-link anchor
// with the result-snippet cell that follows it.
func parseLiteResults(doc *html.Node) []liteResult {
	var results []liteResult
	var current *liteResult

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "a" && hasClass(n, "result-link"):
				if current != nil && current.url != "" {
					results = append(results, *current)
				}
				current = &liteResult{
					url:   attr(n, "href"),
					title: textOf(n),
				}
			case n.Data == "td" && hasClass(n, "result-snippet"):
				if current != nil {
					current.snippet = textOf(n)
					results = append(results, *current)
					current = nil
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if current != nil && current.url != "" && current.snippet != "" {
		results = append(results, *current)
	}
	return results
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
