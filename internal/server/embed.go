package server

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedPages embed.FS

// PagesFS exposes the embedded page templates.
func PagesFS() fs.FS {
	return embeddedPages
}
