// Package claims holds the collaborator contracts for claim and
// keyword extraction plus heuristic default implementations, so the
// pipeline runs without an external NLP service.
package claims

import (
	"strings"
	"unicode"
)

// Extractor produces candidate factual claims from free text. An empty
// result means nothing verifiable was found.
type Extractor interface {
	Extract(text string) []string
}

// KeywordExtractor produces an ordered keyword/entity list for a claim.
// The pipeline passes it opaquely to retrieval.
type KeywordExtractor interface {
	Extract(claim string) []string
}

// questionStarts disqualify a sentence as a factual claim.
var questionStarts = []string{"how", "what", "when", "where", "why", "who", "please", "let", "can you"}

// HeuristicExtractor segments text into sentences and keeps the ones
// shaped like declarative statements: at least six words, not a
// question, not an instruction.
type HeuristicExtractor struct{}

func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{}
}

func (e *HeuristicExtractor) Extract(text string) []string {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 10 {
		return nil
	}

	var claims []string
	for _, sentence := range splitSentences(trimmed) {
		if isClaim(sentence) {
			claims = append(claims, sentence)
		}
	}

	// A single statement without terminal punctuation is still a claim.
	if len(claims) == 0 {
		return []string{trimmed}
	}
	return claims
}

func isClaim(sentence string) bool {
	if len(strings.Fields(sentence)) <= 5 {
		return false
	}
	if strings.HasSuffix(sentence, "?") {
		return false
	}
	lower := strings.ToLower(sentence)
	for _, prefix := range questionStarts {
		if strings.HasPrefix(lower, prefix+" ") || strings.HasPrefix(lower, prefix+",") {
			return false
		}
	}
	return true
}

func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			// Terminal only if followed by whitespace-then-uppercase or
			// end of text; keeps "U.S. economy" in one piece.
			if i == len(runes)-1 || isBoundary(runes, i) {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isBoundary(runes []rune, i int) bool {
	j := i + 1
	if j >= len(runes) || !unicode.IsSpace(runes[j]) {
		return false
	}
	for j < len(runes) && unicode.IsSpace(runes[j]) {
		j++
	}
	return j >= len(runes) || unicode.IsUpper(runes[j]) || unicode.IsDigit(runes[j])
}
