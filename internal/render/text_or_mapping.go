package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/at-ishikawa/lessoner/internal/lessonplan"
)

// TextOrMapping returns the display lines of a value.
// Absent values have no line, text is returned as is, and each mapping entry
// becomes "key: value" where a non-text value is written as compact JSON.
// Nested values are not expanded further.
func TextOrMapping(value *lessonplan.TextOrMapping) []string {
	if !value.IsPresent() {
		return nil
	}
	if !value.IsMapping() {
		return []string{value.Text()}
	}

	entries := value.Entries()
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, fmt.Sprintf("%s: %s", entry.Key, stringifyValue(entry.Value)))
	}
	return lines
}

func stringifyValue(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "null"
	}
	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err == nil {
			return text
		}
	}

	var compacted bytes.Buffer
	if err := json.Compact(&compacted, trimmed); err != nil {
		return string(trimmed)
	}
	return compacted.String()
}
