package model

import (
	"errors"
	"fmt"
)

// ErrKeyCollision marks a template whose placeholders are ambiguous: two
// distinct placeholders sanitize to the same key.
var ErrKeyCollision = errors.New("model: sanitized key collision")

// Mapping associates each raw placeholder with its sanitized key. It is built
// fresh per generation request and never persisted.
type Mapping map[string]Key

// NewMapping sanitizes every placeholder and returns the resulting mapping.
// Two distinct placeholders that sanitize to the same key make the template
// ambiguous, so the whole mapping is rejected with an error naming both. A
// placeholder with no alphanumeric content sanitizes to an empty key and is
// rejected the same way.
func NewMapping(placeholders []string) (Mapping, error) {
	mapping := make(Mapping, len(placeholders))
	owners := make(map[Key]string, len(placeholders))
	for _, placeholder := range placeholders {
		key := Sanitize(placeholder)
		if key == "" {
			return nil, fmt.Errorf("model: placeholder %q sanitizes to an empty key", placeholder)
		}
		if prior, ok := owners[key]; ok && prior != placeholder {
			return nil, fmt.Errorf("%w: placeholders %q and %q collide on key %q", ErrKeyCollision, prior, placeholder, key)
		}
		owners[key] = placeholder
		mapping[placeholder] = key
	}
	return mapping, nil
}

// Strings converts the mapping to the plain string form the archive rewriter
// consumes.
func (m Mapping) Strings() map[string]string {
	out := make(map[string]string, len(m))
	for placeholder, key := range m {
		out[placeholder] = string(key)
	}
	return out
}
