package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewMapping(t *testing.T) {
	mapping, err := NewMapping([]string{"Client Company Name", "Proposal date"})
	if err != nil {
		t.Fatalf("NewMapping: %v", err)
	}
	want := Mapping{
		"Client Company Name": "Client_Company_Name",
		"Proposal date":       "Proposal_date",
	}
	if diff := cmp.Diff(want, mapping); diff != "" {
		t.Fatalf("mapping mismatch (-want +got):\n%s", diff)
	}
}

func TestNewMappingCollision(t *testing.T) {
	// Distinct placeholders sanitizing to the same key make the template
	// ambiguous and are rejected outright.
	_, err := NewMapping([]string{"Client Name", "Client-Name"})
	if err == nil {
		t.Fatal("expected collision error")
	}
	if !errors.Is(err, ErrKeyCollision) {
		t.Fatalf("collision should be typed, got %v", err)
	}
}

func TestNewMappingEmptyKey(t *testing.T) {
	if _, err := NewMapping([]string{"!!??"}); err == nil {
		t.Fatal("expected error for placeholder with no alphanumerics")
	}
}

func TestBuildFields(t *testing.T) {
	form := BuildFields(
		"ProposalTemplate.docx",
		[]string{"Proposal date", "Client Company Name", "Salesperson_Name"},
		map[string]bool{"Salesperson_Name": true},
	)

	want := FormModel{
		TemplateFile: "ProposalTemplate.docx",
		Fields: []Field{
			{Name: "Client Company Name", Key: "Client_Company_Name", Label: "Client Company Name"},
			{Name: "Proposal date", Key: "Proposal_date", Label: "Proposal date"},
		},
	}
	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("form model mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildContext(t *testing.T) {
	context, raw, err := BuildContext(ContextInput{
		Placeholders: []string{"Client Company Name", "Proposal date", "Salesperson_Name"},
		Excluded:     map[string]bool{"Salesperson_Name": true},
		Values: map[string]string{
			"Client_Company_Name": "Acme",
			// Proposal_date intentionally missing: absent input is empty, not
			// an error.
		},
		Injected: map[string]string{"Salesperson_Name": "Jo"},
	})
	if err != nil {
		t.Fatalf("BuildContext: %v", err)
	}

	wantRaw := RawValues{
		"Client Company Name": "Acme",
		"Proposal date":       "",
	}
	if diff := cmp.Diff(wantRaw, raw); diff != "" {
		t.Fatalf("raw values mismatch (-want +got):\n%s", diff)
	}

	wantContext := map[string]string{
		"Client_Company_Name": "Acme",
		"Proposal_date":       "",
		"Salesperson_Name":    "Jo",
	}
	if diff := cmp.Diff(wantContext, context.Strings()); diff != "" {
		t.Fatalf("render context mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildContextNoContactSelected(t *testing.T) {
	context, raw, err := BuildContext(ContextInput{
		Placeholders: []string{"Client Company Name", "Salesperson_Name"},
		Excluded:     map[string]bool{"Salesperson_Name": true},
		Values:       map[string]string{"Client_Company_Name": "Acme"},
	})
	if err != nil {
		t.Fatalf("BuildContext: %v", err)
	}

	if _, ok := context.Get("Salesperson_Name"); ok {
		t.Fatal("excluded placeholder should be absent without an injected value")
	}
	if _, ok := raw["Salesperson_Name"]; ok {
		t.Fatal("excluded placeholder should not enter raw values")
	}
}

func TestRenderContextOrderAndValidation(t *testing.T) {
	c := NewRenderContext()
	c.Set("b", "2")
	c.Set("a", "1")
	c.Set("b", "3")

	wantKeys := []Key{"b", "a"}
	if diff := cmp.Diff(wantKeys, c.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
	if v, _ := c.Get("b"); v != "3" {
		t.Fatalf("Set should update in place, got %q", v)
	}

	if err := c.SetRaw("not a key", "x"); err == nil {
		t.Fatal("SetRaw should reject unsanitized names")
	}
	if err := c.SetRaw("Salesperson_Name", "Jo"); err != nil {
		t.Fatalf("SetRaw rejected valid key: %v", err)
	}
}
