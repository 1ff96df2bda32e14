package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Page is the data for a full page render
type Page struct {
	Title       string
	Cards       []Descriptor
	ShufflePath string
	GesturePath string
}

// WriteGrid writes the grid fragments, one element per descriptor, in order
func WriteGrid(w io.Writer, ds []Descriptor) error {
	if err := templates.ExecuteTemplate(w, "grid", ds); err != nil {
		return fmt.Errorf("error rendering grid: %w", err)
	}
	return nil
}

// GridHTML renders the grid fragments to a string
func GridHTML(ds []Descriptor) (string, error) {
	var buf bytes.Buffer
	if err := WriteGrid(&buf, ds); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WritePage writes a complete HTML document around the grid
func WritePage(w io.Writer, p Page) error {
	if err := templates.ExecuteTemplate(w, "page", p); err != nil {
		return fmt.Errorf("error rendering page: %w", err)
	}
	return nil
}
