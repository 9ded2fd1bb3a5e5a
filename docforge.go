// Package docforge generates documents from DOCX templates: placeholders are
// extracted from a template's markup, collected from a user as field values,
// and substituted into a sanitized copy of the template. This root package
// re-exports the common entry points; the pipeline lives in pkg/docgen and
// the archive handling in pkg/docx.
package docforge

import (
	"io/fs"

	"github.com/goliatone/go-docforge/pkg/docgen"
	"github.com/goliatone/go-docforge/pkg/renderers/vanilla"
)

// Request aliases the orchestrator request for convenience.
type Request = docgen.Request

// Result aliases the orchestrator result for convenience.
type Result = docgen.Result

// New constructs a generation orchestrator, mirroring docgen.New.
func New(options ...docgen.Option) *docgen.Orchestrator {
	return docgen.New(options...)
}

// EmbeddedTemplates exposes the built-in vanilla renderer templates so
// callers can reuse or extend them without importing the renderer package
// directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
