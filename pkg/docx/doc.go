// Package docx handles the packaged document format: a ZIP container whose
// word/document.xml payload carries {{ placeholder }} tokens, possibly
// interrupted by inline formatting tags. It covers the four archive-facing
// stages of the generation pipeline: placeholder extraction, sanitized
// template rewriting, context-driven rendering, and serialization. Identifier
// sanitization and the typed render context live in pkg/model; docx operates
// on plain strings so it stays usable on its own.
package docx
