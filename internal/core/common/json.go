package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSON unmarshals the first JSON object found in an LLM response
// into T. Models routinely wrap their output in markdown fences or
// prose, so everything before the first '{' and after the last '}' is
// discarded before decoding.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return zero, fmt.Errorf("no JSON object found in response")
	}

	var result T
	if err := json.Unmarshal([]byte(response[start:end+1]), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, response[start:end+1])
	}

	return result, nil
}
