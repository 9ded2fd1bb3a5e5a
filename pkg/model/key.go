package model

import (
	"fmt"
	"regexp"
	"strings"
)

var nonIdentifierRuns = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// Key is a sanitized, substitution-engine-safe identifier. Values are only
// produced by Sanitize or validated by NewKey, so holding a Key implies it is
// safe to use as a template variable name.
type Key string

// Sanitize maps an arbitrary placeholder string to a Key: every maximal run
// of characters outside [A-Za-z0-9_] becomes a single underscore, then
// leading and trailing underscores are trimmed. Deterministic and idempotent;
// sanitizing an already sanitized key returns it unchanged.
func Sanitize(placeholder string) Key {
	sanitized := nonIdentifierRuns.ReplaceAllString(placeholder, "_")
	return Key(strings.Trim(sanitized, "_"))
}

// NewKey validates that raw is already in sanitized form. It returns an error
// when Sanitize would alter raw value or when raw is empty.
func NewKey(raw string) (Key, error) {
	if raw == "" {
		return "", fmt.Errorf("model: key is empty")
	}
	if sanitized := Sanitize(raw); string(sanitized) != raw {
		return "", fmt.Errorf("model: %q is not a sanitized identifier", raw)
	}
	return Key(raw), nil
}

func (k Key) String() string {
	return string(k)
}
