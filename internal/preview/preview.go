// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preview renders converted Markdown as a standalone HTML page so
// tables, headings and math can be checked in a browser.
package preview

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	treeblood "github.com/wyatt915/goldmark-treeblood"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { max-width: 50rem; margin: 2rem auto; padding: 0 1rem; font-family: system-ui, sans-serif; line-height: 1.5; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.5rem; }
pre { background: #f6f8fa; padding: 0.75rem; overflow-x: auto; }
blockquote { color: #8a4b00; border-left: 4px solid #e0a040; margin-left: 0; padding-left: 1rem; }
hr { border: 0; border-top: 1px solid #ddd; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// Renderer converts Markdown to HTML with GitHub-flavored tables and
// MathML output for $...$ and $$...$$ spans.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a Renderer.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, treeblood.MathML()),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// Body renders source to an HTML fragment.
func (r *Renderer) Body(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// Page renders source to a complete HTML document titled title.
func (r *Renderer) Page(source []byte, title string) ([]byte, error) {
	body, err := r.Body(source)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = page.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: template.HTML(body)})
	if err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	return buf.Bytes(), nil
}

// HTMLName maps a Markdown file name to its preview name.
func HTMLName(mdPath string) string {
	ext := filepath.Ext(mdPath)
	if strings.EqualFold(ext, ".md") || strings.EqualFold(ext, ".markdown") {
		return strings.TrimSuffix(mdPath, ext) + ".html"
	}
	return mdPath + ".html"
}

// WriteFile renders the Markdown file at mdPath into outPath, or next to
// it when outPath is empty. It returns the path written.
func (r *Renderer) WriteFile(mdPath, outPath string) (string, error) {
	source, err := os.ReadFile(mdPath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", mdPath, err)
	}
	if outPath == "" {
		outPath = HTMLName(mdPath)
	}
	html, err := r.Page(source, filepath.Base(mdPath))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(outPath, html, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", outPath, err)
	}
	return outPath, nil
}
