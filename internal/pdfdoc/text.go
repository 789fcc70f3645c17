// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfdoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextLoader opens documents with a pure-Go parser. It reads the embedded
// text layer only: Render always fails with ErrRender, so scanned pages are
// reported as placeholders instead of being recognized.
type TextLoader struct{}

// NewTextLoader returns a loader that needs no native libraries.
func NewTextLoader() *TextLoader {
	return &TextLoader{}
}

// Load parses data. The parser panics on some malformed inputs; those are
// reported as ErrLoad.
func (l *TextLoader) Load(ctx context.Context, data []byte) (doc Document, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrLoad)
	}

	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("%w: %v", ErrLoad, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return nil, ErrEncrypted
		}
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	n := r.NumPage()
	if n <= 0 {
		return nil, fmt.Errorf("%w: document has no pages", ErrLoad)
	}
	return &textDocument{r: r, pages: n}, nil
}

type textDocument struct {
	r     *pdf.Reader
	pages int
}

func (d *textDocument) PageCount() int { return d.pages }

func (d *textDocument) Text(page int) (text string, err error) {
	if err := checkPage(page, d.pages); err != nil {
		return "", err
	}

	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("extracting text from page %d: %v", page, r)
		}
	}()

	p := d.r.Page(page)
	if p.V.IsNull() {
		return "", nil
	}
	rows, err := p.GetTextByRow()
	if err != nil {
		return "", fmt.Errorf("extracting text from page %d: %w", page, err)
	}

	runs := make([]string, 0, len(rows))
	for _, row := range rows {
		runs = append(runs, rowText(row.Content))
	}
	return JoinRuns(runs), nil
}

// rowText rebuilds one row from its glyphs. The parser emits an empty
// string between glyphs where the content stream moved the pen, which is
// the only word-boundary signal available.
func rowText(glyphs pdf.TextHorizontal) string {
	var b strings.Builder
	gap := false
	for _, g := range glyphs {
		if g.S == "" {
			gap = true
			continue
		}
		if gap && b.Len() > 0 && !strings.HasSuffix(b.String(), " ") {
			b.WriteByte(' ')
		}
		b.WriteString(g.S)
		gap = false
	}
	return strings.TrimSpace(b.String())
}

func (d *textDocument) Render(page int, scale float64) (*image.RGBA, error) {
	if err := checkPage(page, d.pages); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w %d: text backend cannot rasterize", ErrRender, page)
}

func (d *textDocument) Close() error { return nil }
