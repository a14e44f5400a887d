package reconcile

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/tomastro/sortify/internal/model"
)

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// parseMapping attempts a strict JSON unmarshal of the completion first,
// then a repaired parse after stripping non-structural artifacts. The
// returned outcome tags which path succeeded.
func parseMapping(raw string) (map[string]string, model.ParseOutcome) {
	var mapping map[string]string

	if err := json.Unmarshal([]byte(raw), &mapping); err == nil {
		return mapping, model.OutcomeStrict
	}

	cleaned := stripArtifacts(raw)
	if err := json.Unmarshal([]byte(cleaned), &mapping); err == nil {
		return mapping, model.OutcomeRepaired
	}

	return nil, model.OutcomeFailed
}

// stripArtifacts removes the decoration models wrap around JSON output:
// surrounding commentary, markdown code fences, and trailing commas.
func stripArtifacts(raw string) string {
	s := strings.TrimSpace(raw)
	s = stripCodeFences(s)
	s = extractObject(s)
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	return s
}

// stripCodeFences removes leading/trailing markdown fence markers.
func stripCodeFences(s string) string {
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// extractObject narrows the text to the outermost {...} span, dropping any
// commentary before or after it. Returns the input unchanged when no object
// braces are present so the caller's unmarshal reports the failure.
func extractObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return s
	}
	return s[start : end+1]
}
