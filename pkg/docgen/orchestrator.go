// Package docgen coordinates the full generation pipeline: placeholder
// extraction, mapping construction, sanitized rewriting, context building,
// rendering and serialization. It applies sensible defaults while remaining
// open to dependency injection, and converts every stage failure into a typed
// error the boundary layer can turn into a user notice.
package docgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-docforge/pkg/config"
	"github.com/goliatone/go-docforge/pkg/contacts"
	"github.com/goliatone/go-docforge/pkg/docx"
	"github.com/goliatone/go-docforge/pkg/model"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithTemplatesDir sets the directory scanned for original templates.
func WithTemplatesDir(dir string) Option {
	return func(o *Orchestrator) {
		o.templatesDir = dir
	}
}

// WithSanitizedDir sets the directory receiving sanitized template copies.
func WithSanitizedDir(dir string) Option {
	return func(o *Orchestrator) {
		o.sanitizedDir = dir
	}
}

// WithOutputDir sets the directory receiving generated documents.
func WithOutputDir(dir string) Option {
	return func(o *Orchestrator) {
		o.outputDir = dir
	}
}

// WithExclusions maps reserved placeholders to the contact column injected
// under them.
func WithExclusions(exclusions map[string]string) Option {
	return func(o *Orchestrator) {
		o.exclusions = exclusions
	}
}

// WithContacts injects the auxiliary record store.
func WithContacts(store *contacts.Store) Option {
	return func(o *Orchestrator) {
		o.contacts = store
	}
}

// WithFilenameFields overrides the two raw fields filenames derive from.
func WithFilenameFields(prefix string, fields []config.FilenameField) Option {
	return func(o *Orchestrator) {
		o.filenamePrefix = prefix
		o.filenameFields = fields
	}
}

// WithLogger injects a structured logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator runs document generation requests start to finish. Each
// request is synchronous; the only shared mutable resources are the final
// artifact paths, which are serialized with per-name locks.
type Orchestrator struct {
	templatesDir   string
	sanitizedDir   string
	outputDir      string
	exclusions     map[string]string
	contacts       *contacts.Store
	filenamePrefix string
	filenameFields []config.FilenameField
	logger         *slog.Logger

	sanitizedLocks *nameLocks
	outputLocks    *nameLocks
}

// New constructs an Orchestrator applying any provided options. Missing
// settings fall back to the package defaults from config.Default.
func New(options ...Option) *Orchestrator {
	defaults := config.Default()
	o := &Orchestrator{
		templatesDir:   defaults.TemplatesDir,
		sanitizedDir:   defaults.SanitizedDir,
		outputDir:      defaults.OutputDir,
		exclusions:     defaults.ExcludedPlaceholders,
		filenamePrefix: defaults.FilenamePrefix,
		filenameFields: defaults.FilenameFields,
		sanitizedLocks: newNameLocks(),
		outputLocks:    newNameLocks(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// FromConfig builds an Orchestrator from a deployment configuration, opening
// the contact store named there.
func FromConfig(cfg config.Config, logger *slog.Logger) (*Orchestrator, error) {
	store, err := contacts.NewStore(cfg.ContactsFile)
	if err != nil {
		return nil, err
	}
	return New(
		WithTemplatesDir(cfg.TemplatesDir),
		WithSanitizedDir(cfg.SanitizedDir),
		WithOutputDir(cfg.OutputDir),
		WithExclusions(cfg.ExcludedPlaceholders),
		WithContacts(store),
		WithFilenameFields(cfg.FilenamePrefix, cfg.FilenameFields),
		WithLogger(logger),
	), nil
}

// OutputDir reports where generated documents are written.
func (o *Orchestrator) OutputDir() string {
	return o.outputDir
}

// Contacts exposes the auxiliary record store, which may be nil.
func (o *Orchestrator) Contacts() *contacts.Store {
	return o.contacts
}

// ListTemplates returns the original template paths under the templates
// directory, sorted. Discovery matches basenames containing "Template" with a
// .docx extension and skips sanitized copies.
func (o *Orchestrator) ListTemplates() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(o.templatesDir, "*Template*.docx"))
	if err != nil {
		return nil, fmt.Errorf("docgen: scan templates dir: %w", err)
	}
	var out []string
	for _, path := range matches {
		if strings.HasPrefix(filepath.Base(path), docx.SanitizedPrefix) {
			continue
		}
		out = append(out, path)
	}
	sort.Strings(out)
	return out, nil
}

// Fields extracts template placeholders and returns the sorted manual-entry
// form model. Excluded placeholders never reach the form.
func (o *Orchestrator) Fields(ctx context.Context, templatePath string) (model.FormModel, error) {
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}
	if templatePath == "" {
		return model.FormModel{}, ErrNoTemplate
	}

	placeholders, err := docx.ExtractPlaceholders(templatePath)
	if err != nil {
		o.logger.Error("placeholder extraction failed", "template", templatePath, "error", err)
		return model.FormModel{}, stageErr(StageExtract, err)
	}
	if len(placeholders) == 0 {
		return model.FormModel{}, ErrNoPlaceholders
	}
	return model.BuildFields(templatePath, placeholders, o.excludedSet()), nil
}

// Request describes one document-generation invocation.
type Request struct {
	// TemplatePath locates the original template.
	TemplatePath string
	// Values holds user input keyed by sanitized key (the form control names).
	Values map[string]string
	// ContactName optionally selects an auxiliary record whose fields are
	// injected under the excluded placeholders. Empty means none selected.
	ContactName string
}

// Result reports where a generated document landed.
type Result struct {
	// Filename is the derived basename of the output artifact.
	Filename string
	// OutputPath is the full path of the output artifact.
	OutputPath string
	// SanitizedPath is the sanitized template copy used for rendering.
	SanitizedPath string
}

// Generate runs the pipeline for one request. A repeat request deriving the
// same filename overwrites the prior artifact. Failures carry their pipeline
// stage; none are retried.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if req.TemplatePath == "" {
		return Result{}, ErrNoTemplate
	}

	placeholders, err := docx.ExtractPlaceholders(req.TemplatePath)
	if err != nil {
		o.logger.Error("placeholder extraction failed", "template", req.TemplatePath, "error", err)
		return Result{}, stageErr(StageExtract, err)
	}
	if len(placeholders) == 0 {
		return Result{}, ErrNoPlaceholders
	}

	mapping, err := model.NewMapping(placeholders)
	if err != nil {
		return Result{}, stageErr(StageExtract, err)
	}

	sanitizedPath, err := o.rewrite(req.TemplatePath, mapping)
	if err != nil {
		o.logger.Error("template rewrite failed", "template", req.TemplatePath, "error", err)
		return Result{}, stageErr(StageRewrite, err)
	}

	renderContext, raw, err := o.buildContext(placeholders, req)
	if err != nil {
		return Result{}, stageErr(StageRender, err)
	}

	rendered, err := docx.Render(sanitizedPath, renderContext.Strings())
	if err != nil {
		o.logger.Error("document render failed", "template", req.TemplatePath, "error", err)
		return Result{}, stageErr(StageRender, err)
	}

	filename := DeriveFilename(o.filenamePrefix, o.filenameFields, raw)
	outputPath := filepath.Join(o.outputDir, filename)
	if err := o.save(outputPath, rendered); err != nil {
		o.logger.Error("document save failed", "output", outputPath, "error", err)
		return Result{}, stageErr(StageSave, err)
	}

	o.logger.Info("document generated", "template", req.TemplatePath, "output", outputPath)
	return Result{Filename: filename, OutputPath: outputPath, SanitizedPath: sanitizedPath}, nil
}

func (o *Orchestrator) rewrite(templatePath string, mapping model.Mapping) (string, error) {
	base := docx.SanitizedPrefix + filepath.Base(templatePath)
	unlock := o.sanitizedLocks.lock(base)
	defer unlock()
	return docx.Rewrite(templatePath, mapping.Strings(), o.sanitizedDir)
}

func (o *Orchestrator) buildContext(placeholders []string, req Request) (*model.RenderContext, model.RawValues, error) {
	injected, err := o.injectedValues(req.ContactName)
	if err != nil {
		return nil, nil, err
	}
	return model.BuildContext(model.ContextInput{
		Placeholders: placeholders,
		Excluded:     o.excludedSet(),
		Values:       req.Values,
		Injected:     injected,
	})
}

func (o *Orchestrator) injectedValues(contactName string) (map[string]string, error) {
	if contactName == "" || o.contacts == nil || len(o.exclusions) == 0 {
		return nil, nil
	}
	contact, found, err := o.contacts.Get(contactName)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("docgen: contact %q not found", contactName)
	}
	injected := make(map[string]string, len(o.exclusions))
	for placeholder, column := range o.exclusions {
		injected[placeholder] = contact.Field(column)
	}
	return injected, nil
}

func (o *Orchestrator) save(outputPath string, rendered []byte) error {
	unlock := o.outputLocks.lock(filepath.Base(outputPath))
	defer unlock()

	if err := os.MkdirAll(o.outputDir, 0o755); err != nil {
		return fmt.Errorf("docgen: create output dir: %w", err)
	}
	if err := os.WriteFile(outputPath, rendered, 0o644); err != nil {
		return fmt.Errorf("docgen: write output: %w", err)
	}
	return nil
}

func (o *Orchestrator) excludedSet() map[string]bool {
	set := make(map[string]bool, len(o.exclusions))
	for placeholder := range o.exclusions {
		set[placeholder] = true
	}
	return set
}

// IsMissingInput reports whether err is one of the short-circuit conditions
// surfaced as a notice rather than a stage failure.
func IsMissingInput(err error) bool {
	return errors.Is(err, ErrNoTemplate) || errors.Is(err, ErrNoPlaceholders)
}
