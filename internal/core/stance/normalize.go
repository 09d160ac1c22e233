package stance

import (
	"strings"

	"github.com/truthcheck/truthcheck/internal/core/model"
)

// labelTable maps backend-native label vocabularies to the canonical
// three-way set. Covers the common cases:
//   - three-way entailment names in any casing,
//   - zero-shot / fact-verification vocabularies (supports, refutes),
//   - positional codes emitted by MNLI-style classifiers, where
//     label_0=contradiction, label_1=neutral, label_2=entailment,
//   - bare yes/no answers some instruction-tuned models produce.
//
// Anything not in the table maps to NEUTRAL; an unknown label must
// never fail the pipeline.
var labelTable = map[string]model.StanceLabel{
	"entailment":      model.Entailment,
	"entails":         model.Entailment,
	"supports":        model.Entailment,
	"support":         model.Entailment,
	"supported":       model.Entailment,
	"true":            model.Entailment,
	"yes":             model.Entailment,
	"label_2":         model.Entailment,
	"contradiction":   model.Contradiction,
	"contradicts":     model.Contradiction,
	"refutes":         model.Contradiction,
	"refuted":         model.Contradiction,
	"false":           model.Contradiction,
	"no":              model.Contradiction,
	"label_0":         model.Contradiction,
	"neutral":         model.Neutral,
	"not enough info": model.Neutral,
	"label_1":         model.Neutral,
}

// Normalize maps a backend-native label to the canonical set.
func Normalize(label string) model.StanceLabel {
	if canonical, ok := labelTable[strings.ToLower(strings.TrimSpace(label))]; ok {
		return canonical
	}
	return model.Neutral
}
