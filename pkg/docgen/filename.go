package docgen

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-docforge/pkg/config"
	"github.com/goliatone/go-docforge/pkg/model"
)

// unsafeFilenameChars covers path separators, reserved filesystem characters
// and control bytes. A client-supplied value must not be able to redirect the
// output path.
var unsafeFilenameChars = regexp.MustCompile(`[\x00-\x1f/\\:*?"<>|]+`)

// DeriveFilename builds the output filename from the raw field values. Each
// configured field is located case-insensitively with trimmed keys; a missing
// or blank value falls back to the field default. Components are scrubbed of
// filesystem-unsafe characters before joining.
func DeriveFilename(prefix string, fields []config.FilenameField, raw model.RawValues) string {
	parts := []string{prefix}
	for _, field := range fields {
		parts = append(parts, scrubComponent(lookupFold(raw, field.Name, field.Default)))
	}
	return strings.Join(parts, "_") + ".docx"
}

// lookupFold retrieves a raw value by case-insensitive, whitespace-trimmed
// key match, substituting def for missing or blank values.
func lookupFold(raw model.RawValues, target, def string) string {
	want := strings.ToLower(strings.TrimSpace(target))
	for key, value := range raw {
		if strings.ToLower(strings.TrimSpace(key)) != want {
			continue
		}
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
		return def
	}
	return def
}

func scrubComponent(component string) string {
	scrubbed := unsafeFilenameChars.ReplaceAllString(component, "_")
	scrubbed = strings.Trim(scrubbed, "_")
	if scrubbed == "" {
		return "_"
	}
	return scrubbed
}
