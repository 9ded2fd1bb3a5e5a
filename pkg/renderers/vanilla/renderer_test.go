package vanilla

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-docforge/pkg/model"
	"github.com/goliatone/go-docforge/pkg/render"
)

func testForm() model.FormModel {
	return model.FormModel{
		TemplateFile: "Proposal Template.docx",
		Fields: []model.Field{
			{Name: "Client Company Name", Key: "Client_Company_Name", Label: "Client Company Name"},
			{Name: "Proposal date", Key: "Proposal_date", Label: "Proposal date"},
		},
	}
}

func TestRenderForm(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if renderer.Name() != "vanilla" {
		t.Fatalf("Name = %q", renderer.Name())
	}

	out, err := renderer.Render(context.Background(), testForm(), render.Options{
		Action: "/generate",
		Values: map[string]string{"Proposal_date": "2024-01-01"},
		Hidden: map[string]string{"template_file": "templates/Proposal Template.docx"},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	html := string(out)
	for _, want := range []string{
		`action="/generate"`,
		`method="POST"`,
		`name="Client_Company_Name"`,
		`name="Proposal_date"`,
		`value="2024-01-01"`,
		`<label for="Client_Company_Name">Client Company Name</label>`,
		`<input type="hidden" name="template_file" value="templates/Proposal Template.docx">`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("form output missing %q\n%s", want, html)
		}
	}
	if strings.Contains(html, `name="contact_name"`) {
		t.Error("contact select should be absent without contact names")
	}
}

func TestRenderFormContacts(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := renderer.Render(context.Background(), testForm(), render.Options{
		Action:       "/generate",
		ContactNames: []string{"Jo", "Sam"},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	html := string(out)
	for _, want := range []string{
		`name="contact_name"`,
		`<option value="">(none)</option>`,
		`<option value="Jo">Jo</option>`,
		`<option value="Sam">Sam</option>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("form output missing %q\n%s", want, html)
		}
	}
}

func TestRenderStripsMarkup(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	form := model.FormModel{
		TemplateFile: "Proposal Template.docx",
		Fields: []model.Field{
			{Name: "Summary", Key: "Summary", Label: `<script>alert("x")</script>Summary`},
		},
	}
	out, err := renderer.Render(context.Background(), form, render.Options{
		Action: "/generate",
		Values: map[string]string{"Summary": `<b>bold</b> text`},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	html := string(out)
	if strings.Contains(html, "<script>") || strings.Contains(html, "<b>") {
		t.Fatalf("markup should be stripped from labels and values\n%s", html)
	}
	if !strings.Contains(html, "bold text") {
		t.Errorf("text content should survive stripping\n%s", html)
	}
}

func TestRenderEscapesOnce(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	form := model.FormModel{
		TemplateFile: "Proposal Template.docx",
		Fields: []model.Field{
			{Name: "R&D Budget", Key: "R_D_Budget", Label: "R&D Budget"},
		},
	}
	out, err := renderer.Render(context.Background(), form, render.Options{
		Action: "/generate",
		Values: map[string]string{"R_D_Budget": "R&D"},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, `<label for="R_D_Budget">R&amp;D Budget</label>`) {
		t.Errorf("label should be escaped exactly once\n%s", html)
	}
	if !strings.Contains(html, `value="R&amp;D"`) {
		t.Errorf("value should be escaped exactly once\n%s", html)
	}
	if strings.Contains(html, "&amp;amp;") {
		t.Errorf("output should not be escaped twice\n%s", html)
	}
}

func TestRenderCancelledContext(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := renderer.Render(ctx, testForm(), render.Options{Action: "/generate"}); err == nil {
		t.Fatal("cancelled context should fail")
	}
}
