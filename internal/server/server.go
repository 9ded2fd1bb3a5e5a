// Package server exposes the four collaborator-facing HTTP operations:
// template listing, field-entry form, document generation, and artifact
// download. Failures become a flash notice plus a redirect to the start page;
// no structured error codes leave this boundary.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-docforge/pkg/config"
	"github.com/goliatone/go-docforge/pkg/docgen"
	"github.com/goliatone/go-docforge/pkg/model"
	"github.com/goliatone/go-docforge/pkg/render"
)

const (
	templateField = "template_file"
	contactField  = "contact_name"
)

// Server wires the orchestrator and a renderer registry behind an HTTP mux.
type Server struct {
	cfg      config.Config
	orch     *docgen.Orchestrator
	registry *render.Registry
	renderer string
	flash    *flashCodec
	logger   *slog.Logger
	pages    *pongo2.TemplateSet
}

// Option customises the server.
type Option func(*Server)

// WithRenderer selects which registered renderer produces the field-entry
// form. Defaults to "vanilla".
func WithRenderer(name string) Option {
	return func(s *Server) {
		s.renderer = name
	}
}

// WithLogger injects a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New constructs a Server. The registry must hold the renderer named by
// WithRenderer (or "vanilla" when unset).
func New(cfg config.Config, orch *docgen.Orchestrator, registry *render.Registry, options ...Option) (*Server, error) {
	if orch == nil {
		return nil, errors.New("server: orchestrator is required")
	}
	if registry == nil {
		return nil, errors.New("server: renderer registry is required")
	}

	s := &Server{
		cfg:      cfg,
		orch:     orch,
		registry: registry,
		renderer: "vanilla",
		flash:    newFlashCodec(cfg.FlashSecret),
		pages:    pongo2.NewSet("docforge-pages", pongo2.NewFSLoader(PagesFS())),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if !registry.Has(s.renderer) {
		return nil, fmt.Errorf("server: renderer %q not registered (available: %v)", s.renderer, registry.List())
	}
	return s, nil
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /select", s.handleSelect)
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("GET /download/{name}", s.handleDownload)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	templates, err := s.orch.ListTemplates()
	if err != nil {
		s.logger.Error("template listing failed", "error", err)
		templates = nil
	}

	entries := make([]map[string]string, 0, len(templates))
	for _, path := range templates {
		entries = append(entries, map[string]string{
			"path": path,
			"name": filepath.Base(path),
		})
	}

	s.renderPage(w, r, "index.tmpl", pongo2.Context{
		"templates": entries,
		"contacts":  s.contactNames(),
	})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	templatePath := strings.TrimSpace(r.FormValue(templateField))
	if templatePath == "" {
		s.redirectNotice(w, r, "No template selected.")
		return
	}
	if !s.knownTemplate(templatePath) {
		s.redirectNotice(w, r, "No template selected.")
		return
	}

	form, err := s.orch.Fields(r.Context(), templatePath)
	if err != nil {
		s.redirectNotice(w, r, noticeFor(err))
		return
	}

	renderer, err := s.registry.Get(s.renderer)
	if err != nil {
		s.redirectNotice(w, r, "Error preparing the form.")
		return
	}

	formHTML, err := renderer.Render(r.Context(), form, render.Options{
		Action:       "/generate",
		ContactNames: s.contactNames(),
		Hidden:       map[string]string{templateField: templatePath},
	})
	if err != nil {
		s.logger.Error("form render failed", "template", templatePath, "error", err)
		s.redirectNotice(w, r, "Error preparing the form.")
		return
	}

	s.renderPage(w, r, "fill.tmpl", pongo2.Context{
		"templateName": filepath.Base(templatePath),
		"formHTML":     string(formHTML),
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.redirectNotice(w, r, "No template selected.")
		return
	}
	templatePath := strings.TrimSpace(r.PostForm.Get(templateField))
	if templatePath == "" {
		s.redirectNotice(w, r, "Template file missing.")
		return
	}
	if !s.knownTemplate(templatePath) {
		s.redirectNotice(w, r, "Template file missing.")
		return
	}

	values := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		if key == templateField || key == contactField {
			continue
		}
		values[key] = r.PostForm.Get(key)
	}

	result, err := s.orch.Generate(r.Context(), docgen.Request{
		TemplatePath: templatePath,
		Values:       values,
		ContactName:  strings.TrimSpace(r.PostForm.Get(contactField)),
	})
	if err != nil {
		s.redirectNotice(w, r, noticeFor(err))
		return
	}

	s.renderPage(w, r, "result.tmpl", pongo2.Context{
		"filename":    result.Filename,
		"downloadURL": "/download/" + result.Filename,
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFile(w, r, filepath.Join(s.orch.OutputDir(), name))
}

// knownTemplate guards against form-submitted paths outside the templates
// directory. The selection form only offers listed templates, so anything
// else is a forged request.
func (s *Server) knownTemplate(templatePath string) bool {
	templates, err := s.orch.ListTemplates()
	if err != nil {
		return false
	}
	for _, known := range templates {
		if known == templatePath {
			return true
		}
	}
	return false
}

func (s *Server) contactNames() []string {
	store := s.orch.Contacts()
	if store == nil {
		return nil
	}
	all, err := store.List()
	if err != nil {
		s.logger.Error("contact listing failed", "error", err)
		return nil
	}
	names := make([]string, 0, len(all))
	for _, c := range all {
		names = append(names, c.Name)
	}
	return names
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, name string, data pongo2.Context) {
	tmpl, err := s.pages.FromFile("templates/" + name)
	if err != nil {
		s.logger.Error("page template missing", "page", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		data = pongo2.Context{}
	}
	data["notice"] = s.flash.take(w, r)

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(data, &buf); err != nil {
		s.logger.Error("page render failed", "page", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) redirectNotice(w http.ResponseWriter, r *http.Request, notice string) {
	s.flash.set(w, notice)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// noticeFor maps pipeline failures onto the user-visible messages. Stages are
// distinguished; causes are not exposed.
func noticeFor(err error) string {
	switch {
	case errors.Is(err, docgen.ErrNoTemplate):
		return "No template selected."
	case errors.Is(err, docgen.ErrNoPlaceholders):
		return "No placeholders found in the selected template."
	case errors.Is(err, model.ErrKeyCollision):
		return "Conflicting placeholders found in the selected template."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "The request was interrupted."
	}
	if stage, ok := docgen.StageOf(err); ok {
		switch stage {
		case docgen.StageExtract:
			return "No placeholders found in the selected template."
		case docgen.StageRewrite:
			return "Error sanitizing the template."
		case docgen.StageRender:
			return "Error rendering the document."
		case docgen.StageSave:
			return "Error saving the generated document."
		}
	}
	return "Something went wrong generating the document."
}
