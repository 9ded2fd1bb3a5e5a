// Package render defines the renderer contract and registry for turning a
// form model into field-entry markup. Renderers are pluggable; the vanilla
// HTML renderer ships in pkg/renderers/vanilla.
package render

import (
	"context"

	"github.com/goliatone/go-docforge/pkg/model"
)

// Renderer converts a FormModel into a byte representation (HTML by default).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options Options) ([]byte, error)
}

// Options describe per-request data renderers can use to customise output
// without mutating the form model pipeline.
type Options struct {
	// Action is the submission target of the rendered form.
	Action string
	// Method overrides the HTTP method, POST when empty.
	Method string
	// Values pre-populates controls keyed by sanitized key.
	Values map[string]string
	// Errors surfaces server-side feedback keyed by sanitized key.
	Errors map[string][]string
	// ContactNames lists selectable auxiliary records. Empty hides the
	// selection control.
	ContactNames []string
	// Hidden adds hidden inputs carried through submission, such as the
	// selected template path.
	Hidden map[string]string
}
