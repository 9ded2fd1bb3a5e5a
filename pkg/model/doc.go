// Package model defines the typed field model the rest of the pipeline
// consumes: validated sanitized identifiers, the placeholder-to-identifier
// mapping, the ordered render context fed to the substitution engine, and the
// form model renderers turn into field-entry markup. Validation happens at
// construction so an invalid key cannot enter a RenderContext, and a mapping
// whose sanitized keys collide is rejected rather than silently overwritten.
package model
