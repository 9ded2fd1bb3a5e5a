// Package vanilla renders field-entry forms as dependency-free HTML using the
// embedded template bundle.
package vanilla

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-docforge/pkg/model"
	"github.com/goliatone/go-docforge/pkg/render"
)

// Option configures the renderer before construction.
type Option func(*config)

type config struct {
	templateFS fs.FS
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// Renderer implements render.Renderer with server-rendered HTML.
type Renderer struct {
	form   *pongo2.Template
	policy *bluemonday.Policy
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	set := pongo2.NewSet("docforge-vanilla", pongo2.NewFSLoader(cfg.templateFS))
	form, err := set.FromFile("templates/form.tmpl")
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: load form template: %w", err)
	}

	return &Renderer{
		form: form,
		// Labels and prefill values originate in user-authored documents, so
		// any markup they carry is stripped before templating.
		policy: bluemonday.StrictPolicy(),
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the field-entry form for one template.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.Options) ([]byte, error) {
	if ctx == nil {
		return nil, fmt.Errorf("vanilla renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	method := options.Method
	if method == "" {
		method = "POST"
	}

	// Policy output is already entity-escaped; the template interpolates
	// label and value as safe so they are not escaped a second time.
	fields := make([]map[string]any, 0, len(form.Fields))
	for _, field := range form.Fields {
		key := string(field.Key)
		value := field.Value
		if v, ok := options.Values[key]; ok {
			value = v
		}
		fields = append(fields, map[string]any{
			"key":    key,
			"label":  r.policy.Sanitize(field.Label),
			"value":  r.policy.Sanitize(value),
			"errors": options.Errors[key],
		})
	}

	hidden := make([]map[string]string, 0, len(options.Hidden))
	for _, name := range sortedKeys(options.Hidden) {
		hidden = append(hidden, map[string]string{"name": name, "value": options.Hidden[name]})
	}

	var buf bytes.Buffer
	err := r.form.ExecuteWriter(pongo2.Context{
		"action":   options.Action,
		"method":   method,
		"fields":   fields,
		"hidden":   hidden,
		"contacts": options.ContactNames,
	}, &buf)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render form: %w", err)
	}
	return buf.Bytes(), nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
