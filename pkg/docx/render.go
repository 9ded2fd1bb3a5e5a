package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/flosch/pongo2/v6"
)

// Render loads the sanitized template at path, substitutes context into its
// markup payload, and returns the bytes of the rendered archive. Keys missing
// from context render as empty strings; any other failure from the
// substitution engine surfaces as a single error, not inspected further.
// All parts other than the markup payload are copied byte-for-byte.
func Render(path string, context map[string]string) ([]byte, error) {
	reader, _, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	xmlContent, err := reader.DocumentXML()
	if err != nil {
		return nil, err
	}

	rendered, err := renderXML(xmlContent, context)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for _, file := range reader.Parts() {
		fw, err := w.Create(file.Name)
		if err != nil {
			return nil, fmt.Errorf("docx: create part %s: %w", file.Name, err)
		}
		if file.Name == DocumentPath {
			if _, err := fw.Write(rendered); err != nil {
				return nil, fmt.Errorf("docx: write rendered payload: %w", err)
			}
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("docx: open part %s: %w", file.Name, err)
		}
		_, err = io.Copy(fw, rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("docx: copy part %s: %w", file.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("docx: finalize rendered archive: %w", err)
	}
	return buf.Bytes(), nil
}

func renderXML(xmlContent string, context map[string]string) ([]byte, error) {
	tmpl, err := pongo2.FromString(xmlContent)
	if err != nil {
		return nil, fmt.Errorf("docx: parse markup payload: %w", err)
	}

	// pongo2 autoescaping covers the XML special characters, so user values
	// cannot break the payload structure.
	viewContext := make(pongo2.Context, len(context))
	for key, value := range context {
		viewContext[key] = value
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(viewContext, &buf); err != nil {
		return nil, fmt.Errorf("docx: substitute context: %w", err)
	}
	return buf.Bytes(), nil
}
