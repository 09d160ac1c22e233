// Package credibility assigns static trust scores to evidence sources.
// Scoring is a pure function of the source type and URL; it never fails.
package credibility

import (
	"net/url"
	"strings"

	"github.com/truthcheck/truthcheck/internal/core/model"
)

// Tier constants, highest first. Domain-level matches are considered
// more specific than the category a retriever happened to label the
// source with, so they always win.
const (
	wikipediaScore   = 0.95
	governmentScore  = 0.92
	scienceScore     = 0.90
	academicScore    = 0.88
	trustedNewsScore = 0.85
	newsTypeScore    = 0.80
	defaultScore     = 0.60
)

var trustedNewsDomains = []string{"reuters.com", "apnews.com", "bbc.com"}

var scienceDomains = []string{"nature.com", "science.org", "ncbi.nlm.nih.gov"}

// Score returns a trust weight in [0,1] for an evidence source.
// Priority order: exact domain knowledge from the URL, then the coarse
// source type, then the lowest tier. Unknown or malformed inputs yield
// the default rather than an error.
func Score(sourceType model.SourceType, rawURL string) float64 {
	host := hostOf(rawURL)

	// Named science domains outrank the TLD suffixes: ncbi.nlm.nih.gov
	// would otherwise be swallowed by the .gov case.
	switch {
	case host == "wikipedia.org" || strings.HasSuffix(host, ".wikipedia.org"):
		return wikipediaScore
	case matchesAny(host, scienceDomains):
		return scienceScore
	case strings.HasSuffix(host, ".gov"):
		return governmentScore
	case strings.HasSuffix(host, ".edu"):
		return academicScore
	case matchesAny(host, trustedNewsDomains):
		return trustedNewsScore
	}

	switch sourceType {
	case model.SourceWikipedia:
		return wikipediaScore
	case model.SourceGovernment:
		return governmentScore
	case model.SourceAcademic:
		return academicScore
	case model.SourceNewsTrusted:
		return newsTypeScore
	default:
		return defaultScore
	}
}

func matchesAny(host string, domains []string) bool {
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// hostOf extracts the lowercased hostname, tolerating anything the
// retriever hands us. A URL that does not parse contributes no domain
// signal and falls through to the source-type tiers.
func hostOf(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
