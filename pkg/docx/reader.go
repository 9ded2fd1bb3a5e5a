package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
)

// DocumentPath is the archive member holding the markup payload every valid
// template must carry.
const DocumentPath = "word/document.xml"

// Reader wraps a ZIP archive and indexes its parts by name so pipeline stages
// can address the markup payload and pass every other member through
// untouched.
type Reader struct {
	parts []*zip.File
	index map[string]*zip.File
}

// NewReader parses the archive held by r and verifies the markup payload is
// present.
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("docx: read archive: %w", err)
	}

	dr := &Reader{
		parts: zr.File,
		index: make(map[string]*zip.File, len(zr.File)),
	}
	for _, file := range zr.File {
		dr.index[file.Name] = file
	}

	if _, ok := dr.index[DocumentPath]; !ok {
		return nil, fmt.Errorf("docx: not a valid document: missing %s", DocumentPath)
	}
	return dr, nil
}

// OpenFile opens path and parses it as a packaged document. The file contents
// are read fully into memory; templates are small and request-scoped.
func OpenFile(path string) (*Reader, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("docx: open %s: %w", path, err)
	}
	r, err := NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, nil, err
	}
	return r, data, nil
}

// Parts returns every archive member in original order.
func (r *Reader) Parts() []*zip.File {
	return r.parts
}

// Part reads a named member fully.
func (r *Reader) Part(name string) ([]byte, error) {
	file, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("docx: part %s not found", name)
	}
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("docx: open part %s: %w", name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("docx: read part %s: %w", name, err)
	}
	return content, nil
}

// DocumentXML reads the markup payload.
func (r *Reader) DocumentXML() (string, error) {
	content, err := r.Part(DocumentPath)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
