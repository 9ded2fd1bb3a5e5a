package render

import (
	"context"
	"testing"

	"github.com/goliatone/go-docforge/pkg/model"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, model.FormModel, Options) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(stubRenderer{name: "vanilla"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := registry.Register(stubRenderer{name: "vanilla"}); err == nil {
		t.Fatal("duplicate registration should fail")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatal("empty name should fail")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatal("nil renderer should fail")
	}

	if !registry.Has("vanilla") {
		t.Fatal("Has should report registered renderer")
	}
	if _, err := registry.Get("missing"); err == nil {
		t.Fatal("Get should fail for unknown renderer")
	}

	registry.MustRegister(stubRenderer{name: "text"})
	got := registry.List()
	want := []string{"text", "vanilla"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("List = %v, want %v", got, want)
	}
}
