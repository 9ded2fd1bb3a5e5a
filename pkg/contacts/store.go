// Package contacts implements the auxiliary record store: a small CSV file
// of contact rows whose fields are injected into the render context when a
// deployment reserves placeholders for them.
package contacts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var header = []string{"Name", "Email", "Phone"}

// Contact is one auxiliary record. Read-only from the engine's perspective.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// Store reads and appends contact rows in a CSV file with a fixed one-row
// header. The file is created header-only when absent.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore opens the store at path, creating the file with a header-only
// payload when it does not exist yet.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("contacts: store path is required")
	}
	s := &Store{path: path}
	if err := s.ensureFile(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("contacts: stat store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("contacts: create store dir: %w", err)
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("contacts: create store: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("contacts: write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("contacts: write header: %w", err)
	}
	return nil
}

// List returns every contact row in file order.
func (s *Store) List() ([]Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("contacts: open store: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("contacts: read store: %w", err)
	}

	var out []Contact
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		out = append(out, contactFromRow(row))
	}
	return out, nil
}

// Get finds a contact by exact name match. The second return reports whether
// the contact exists.
func (s *Store) Get(name string) (Contact, bool, error) {
	all, err := s.List()
	if err != nil {
		return Contact{}, false, err
	}
	for _, c := range all {
		if c.Name == name {
			return c, true, nil
		}
	}
	return Contact{}, false, nil
}

// Add appends a contact row. Name is required; a duplicate name is rejected
// so Get stays unambiguous.
func (s *Store) Add(c Contact) error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("contacts: contact name is required")
	}
	if _, exists, err := s.Get(c.Name); err != nil {
		return err
	} else if exists {
		return fmt.Errorf("contacts: contact %q already exists", c.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("contacts: open store for append: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{c.Name, c.Email, c.Phone}); err != nil {
		return fmt.Errorf("contacts: append contact: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("contacts: append contact: %w", err)
	}
	return nil
}

// Field returns the contact attribute matching the given column name
// (case-insensitive). Unknown names return an empty string.
func (c Contact) Field(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "name":
		return c.Name
	case "email":
		return c.Email
	case "phone":
		return c.Phone
	}
	return ""
}

func contactFromRow(row []string) Contact {
	var c Contact
	if len(row) > 0 {
		c.Name = row[0]
	}
	if len(row) > 1 {
		c.Email = row[1]
	}
	if len(row) > 2 {
		c.Phone = row[2]
	}
	return c
}
