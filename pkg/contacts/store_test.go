package contacts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewStoreCreatesHeaderOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.csv")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read store file: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "Name,Email,Phone" {
		t.Fatalf("auto-created file = %q, want header only", got)
	}

	all, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("fresh store should be empty, got %v", all)
	}
}

func TestNewStoreKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.csv")
	content := "Name,Email,Phone\nJo,jo@example.com,555-0100\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	all, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []Contact{{Name: "Jo", Email: "jo@example.com", Phone: "555-0100"}}
	if diff := cmp.Diff(want, all); diff != "" {
		t.Fatalf("contact list mismatch (-want +got):\n%s", diff)
	}
}

func TestAddAndGet(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "contacts.csv"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if err := store.Add(Contact{Name: "Jo", Email: "jo@example.com", Phone: "555-0100"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Add(Contact{Name: "Sam"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	contact, found, err := store.Get("Jo")
	if err != nil || !found {
		t.Fatalf("Get(Jo) = %v, found=%v", err, found)
	}
	if contact.Email != "jo@example.com" {
		t.Fatalf("contact email = %q", contact.Email)
	}

	if _, found, _ := store.Get("Nobody"); found {
		t.Fatal("Get should report missing contacts")
	}

	if err := store.Add(Contact{Name: "Jo"}); err == nil {
		t.Fatal("duplicate name should be rejected")
	}
	if err := store.Add(Contact{Name: "  "}); err == nil {
		t.Fatal("blank name should be rejected")
	}
}

func TestContactField(t *testing.T) {
	c := Contact{Name: "Jo", Email: "jo@example.com", Phone: "555-0100"}
	cases := map[string]string{
		"name":    "Jo",
		"Name":    "Jo",
		" EMAIL ": "jo@example.com",
		"phone":   "555-0100",
		"unknown": "",
	}
	for in, want := range cases {
		if got := c.Field(in); got != want {
			t.Fatalf("Field(%q) = %q, want %q", in, got, want)
		}
	}
}
