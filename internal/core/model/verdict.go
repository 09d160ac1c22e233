package model

// VerdictLabel is the terminal outcome of one verification.
type VerdictLabel string

const (
	VerdictTrue          VerdictLabel = "True"
	VerdictFalse         VerdictLabel = "False"
	VerdictLowConfidence VerdictLabel = "Low Confidence"
	VerdictError         VerdictLabel = "Error"
)

// Verdict is the final output of the pipeline: a label, a calibrated
// confidence in [0,1] and a human-readable explanation of the
// contributing evidence.
type Verdict struct {
	Label       VerdictLabel `json:"label"`
	Confidence  float64      `json:"confidence"`
	Explanation string       `json:"evidence"`
}

// Clamp01 bounds a score to [0,1]. Scores coming back from models and
// cosine math can drift slightly outside the range.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
