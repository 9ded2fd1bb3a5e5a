package docx

import (
	"regexp"
	"strings"
)

// tokenPattern matches a delimiter pair and its inner text. The (?s) flag is
// load-bearing: word processors routinely split a token across runs and
// paragraph breaks, so the span between {{ and }} can contain newlines.
var tokenPattern = regexp.MustCompile(`(?s)\{\{(.*?)\}\}`)

// tagPattern strips the inline formatting tags a word processor may have
// injected inside a token.
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// CleanToken reduces the raw inner text of a {{...}} occurrence to the
// placeholder it spells: embedded markup tags removed, surrounding whitespace
// trimmed. The rewriter relies on this being the exact reduction the
// extractor applies.
func CleanToken(inner string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(inner, ""))
}

// ExtractPlaceholders opens the packaged document at path and returns the
// distinct placeholders found in its markup payload. The result is a set:
// deduplicated and in no particular order. Callers sort before display.
func ExtractPlaceholders(path string) ([]string, error) {
	reader, _, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	xmlContent, err := reader.DocumentXML()
	if err != nil {
		return nil, err
	}
	return extractFromXML(xmlContent), nil
}

func extractFromXML(xmlContent string) []string {
	matches := tokenPattern.FindAllStringSubmatch(xmlContent, -1)
	seen := make(map[string]struct{}, len(matches))
	var placeholders []string
	for _, match := range matches {
		cleaned := CleanToken(match[1])
		if cleaned == "" {
			continue
		}
		if _, ok := seen[cleaned]; ok {
			continue
		}
		seen[cleaned] = struct{}{}
		placeholders = append(placeholders, cleaned)
	}
	return placeholders
}
