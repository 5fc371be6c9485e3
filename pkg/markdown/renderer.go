// Package markdown renders resolved services as markdown documentation pages.
package markdown

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"
)

//go:embed page.md.tmpl
var defaultTemplate string

// Renderer executes a page template. The zero value is not usable; construct
// one with NewRenderer or NewRendererFromFile.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer returns a renderer using the built-in page template.
func NewRenderer() (*Renderer, error) {
	return newRenderer(defaultTemplate)
}

// NewRendererFromFile returns a renderer using a custom page template read
// from path. The template sees the same Page model and helper functions as
// the built-in one.
func NewRendererFromFile(path string) (*Renderer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	return newRenderer(string(raw))
}

func newRenderer(text string) (*Renderer, error) {
	tmpl, err := template.New("page").Funcs(funcMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// RenderPage renders one page to markdown.
func (r *Renderer) RenderPage(page *Page) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("rendering %s: %w", page.Source, err)
	}
	return buf.String(), nil
}
