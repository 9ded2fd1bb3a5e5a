package model

import "fmt"

// RenderContext is the ordered key-to-value record consumed by the
// substitution engine. Keys are validated, so a malformed identifier cannot
// reach rendering. Insertion order is preserved; setting an existing key
// updates the value in place.
type RenderContext struct {
	keys   []Key
	values map[Key]string
}

// NewRenderContext returns an empty context.
func NewRenderContext() *RenderContext {
	return &RenderContext{values: make(map[Key]string)}
}

// Set stores value under key.
func (c *RenderContext) Set(key Key, value string) {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

// SetRaw validates raw as a sanitized identifier before storing. Used for
// injected auxiliary values whose keys bypass sanitization by contract.
func (c *RenderContext) SetRaw(raw, value string) error {
	key, err := NewKey(raw)
	if err != nil {
		return fmt.Errorf("model: inject %q: %w", raw, err)
	}
	c.Set(key, value)
	return nil
}

// Get returns the value for key and whether it is present.
func (c *RenderContext) Get(key Key) (string, bool) {
	value, ok := c.values[key]
	return value, ok
}

// Keys returns keys in insertion order.
func (c *RenderContext) Keys() []Key {
	out := make([]Key, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len reports the number of entries.
func (c *RenderContext) Len() int {
	return len(c.keys)
}

// Strings converts the context to the plain map the substitution engine
// consumes.
func (c *RenderContext) Strings() map[string]string {
	out := make(map[string]string, len(c.keys))
	for key, value := range c.values {
		out[string(key)] = value
	}
	return out
}

// RawValues records the exact user input keyed by the original, unsanitized
// placeholder. It exists solely for filename derivation, which matches field
// names case-insensitively against the raw form.
type RawValues map[string]string
