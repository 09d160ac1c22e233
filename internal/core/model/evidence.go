package model

// SourceType is the coarse category of an evidence source, used as the
// fallback tier for credibility scoring when the URL tells us nothing.
type SourceType string

const (
	SourceWikipedia   SourceType = "wikipedia"
	SourceGovernment  SourceType = "government"
	SourceAcademic    SourceType = "academic"
	SourceNewsTrusted SourceType = "news_trusted"
	SourceWeb         SourceType = "web"
	SourceOther       SourceType = "other"
)

// EvidenceItem is one retrieved snippet plus its source metadata.
// Retrieval fills Content/Source/URL/SourceType/CredibilityScore; the
// relevance filter attaches SimilarityScore and the ranker attaches
// CombinedScore. After ranking the item is read-only.
type EvidenceItem struct {
	Content          string     `json:"content"`
	Source           string     `json:"source"`
	URL              string     `json:"url,omitempty"`
	CredibilityScore float64    `json:"credibility_score"`
	SourceType       SourceType `json:"source_type"`
	SimilarityScore  float64    `json:"similarity_score,omitempty"`
	CombinedScore    float64    `json:"combined_score,omitempty"`
}
