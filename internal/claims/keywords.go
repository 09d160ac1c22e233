package claims

import (
	"sort"
	"strings"
	"unicode"
)

const maxKeywords = 10

var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "of": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "with": {}, "by": {},
	"from": {}, "as": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {},
	"been": {}, "being": {}, "has": {}, "have": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "can": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "not": {}, "no": {}, "it": {},
	"its": {}, "this": {}, "that": {}, "these": {}, "those": {}, "there": {},
	"their": {}, "they": {}, "he": {}, "she": {}, "his": {}, "her": {},
	"we": {}, "you": {}, "i": {}, "than": {}, "then": {}, "also": {},
	"more": {}, "most": {}, "about": {}, "into": {}, "over": {}, "after": {},
	"before": {}, "between": {}, "during": {}, "which": {}, "who": {},
	"whom": {}, "what": {}, "when": {}, "where": {}, "why": {}, "how": {},
	"all": {}, "any": {}, "both": {}, "each": {}, "other": {}, "some": {},
	"such": {}, "only": {}, "own": {}, "same": {}, "so": {}, "very": {},
}

// FrequencyKeywordExtractor ranks content words by frequency, counting
// capitalized mid-sentence tokens twice since they behave like named
// entities. Ties resolve by first occurrence, keeping output
// deterministic for a given claim.
type FrequencyKeywordExtractor struct{}

func NewFrequencyKeywordExtractor() *FrequencyKeywordExtractor {
	return &FrequencyKeywordExtractor{}
}

type keywordCount struct {
	word  string
	count int
	first int
}

func (e *FrequencyKeywordExtractor) Extract(claim string) []string {
	counts := make(map[string]*keywordCount)
	order := 0

	fields := strings.Fields(claim)
	for i, raw := range fields {
		token := strings.TrimFunc(raw, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len(token) <= 2 {
			continue
		}
		lower := strings.ToLower(token)
		if _, stop := stopwords[lower]; stop {
			continue
		}

		kc, ok := counts[lower]
		if !ok {
			kc = &keywordCount{word: token, first: order}
			counts[lower] = kc
			order++
		}
		kc.count++
		// Proper-noun boost: capitalized and not sentence-initial.
		if i > 0 && unicode.IsUpper([]rune(token)[0]) {
			kc.count++
		}
	}

	ranked := make([]*keywordCount, 0, len(counts))
	for _, kc := range counts {
		ranked = append(ranked, kc)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].first < ranked[j].first
	})

	if len(ranked) > maxKeywords {
		ranked = ranked[:maxKeywords]
	}
	keywords := make([]string, len(ranked))
	for i, kc := range ranked {
		keywords[i] = kc.word
	}
	return keywords
}
