package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON pulls the first {...} span out of raw model output and
// parses it. Models routinely wrap JSON in prose or markdown fences; the
// span from the first '{' to the last '}' is parsed and everything
// around it is ignored.
func ExtractJSON(raw string) (map[string]json.RawMessage, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, &ErrMalformedResponse{Raw: raw, Err: fmt.Errorf("no JSON object found")}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw[start:end+1]), &fields); err != nil {
		return nil, &ErrMalformedResponse{Raw: raw, Err: err}
	}
	return fields, nil
}
