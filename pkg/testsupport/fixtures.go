// Package testsupport holds fixture helpers shared by the package test
// suites: minimal in-memory packaged documents and temp-dir scaffolding.
package testsupport

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// DocumentXML wraps body paragraphs in the minimal markup payload a packaged
// document carries. Each entry in paragraphs becomes one text run.
func DocumentXML(paragraphs ...string) string {
	xml := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>`
	for _, p := range paragraphs {
		xml += `
    <w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`
	}
	return xml + `
  </w:body>
</w:document>`
}

// BuildDocx assembles a packaged document in memory. parts maps member names
// to content; a word/document.xml entry is required by readers, so most
// callers pass DocumentXML output for it.
func BuildDocx(t *testing.T, parts map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range parts {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("create part %s: %v", name, err)
		}
		if _, err := io.WriteString(fw, content); err != nil {
			t.Fatalf("write part %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return buf.Bytes()
}

// SimpleDocx builds a packaged document whose payload is DocumentXML(body)
// plus the boilerplate members a real document carries.
func SimpleDocx(t *testing.T, body ...string) []byte {
	t.Helper()
	return BuildDocx(t, map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`,
		"_rels/.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`,
		"word/document.xml": DocumentXML(body...),
	})
}

// WriteDocx writes a packaged document into dir under name and returns its
// path.
func WriteDocx(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// ReadPart extracts one member from a packaged document on disk.
func ReadPart(t *testing.T, path, part string) string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open archive %s: %v", path, err)
	}
	defer zr.Close()

	for _, file := range zr.File {
		if file.Name != part {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			t.Fatalf("open part %s: %v", part, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read part %s: %v", part, err)
		}
		return string(content)
	}
	t.Fatalf("part %s not found in %s", part, path)
	return ""
}
