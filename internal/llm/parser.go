package llm

import (
	"encoding/json"
	"strings"
)

// ParseJSONObject decodes the first balanced span of s that is a valid JSON
// object. Spans that fail to decode are skipped. It never fails: the result is
// an empty map when nothing decodes.
func ParseJSONObject(s string) map[string]any {
	for offset := 0; offset < len(s); {
		idx := strings.IndexByte(s[offset:], '{')
		if idx < 0 {
			break
		}
		start := offset + idx
		if end, ok := matchBrace(s, start); ok {
			var obj map[string]any
			if err := json.Unmarshal([]byte(s[start:end+1]), &obj); err == nil && obj != nil {
				return obj
			}
		}
		offset = start + 1
	}
	return map[string]any{}
}

// matchBrace returns the index of the brace closing the one at s[start].
func matchBrace(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		ch := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
