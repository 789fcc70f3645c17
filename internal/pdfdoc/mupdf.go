// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfdoc

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// pointsPerInch is the PDF user-space unit; scale 1.0 renders at 72 DPI.
const pointsPerInch = 72.0

// MuPDFLoader opens documents through MuPDF. It supports both text
// extraction and rasterization.
type MuPDFLoader struct{}

// NewMuPDFLoader returns the default loader.
func NewMuPDFLoader() *MuPDFLoader {
	return &MuPDFLoader{}
}

// Load parses data with MuPDF.
func (l *MuPDFLoader) Load(ctx context.Context, data []byte) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrLoad)
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		if errors.Is(err, fitz.ErrNeedsPassword) {
			return nil, ErrEncrypted
		}
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	n := doc.NumPage()
	if n <= 0 {
		doc.Close()
		return nil, fmt.Errorf("%w: document has no pages", ErrLoad)
	}
	return &mupdfDocument{doc: doc, pages: n}, nil
}

type mupdfDocument struct {
	doc   *fitz.Document
	pages int
}

func (d *mupdfDocument) PageCount() int { return d.pages }

// Text splits MuPDF's line-oriented output back into runs so the result
// matches the single-space joining used by every backend.
func (d *mupdfDocument) Text(page int) (string, error) {
	if err := checkPage(page, d.pages); err != nil {
		return "", err
	}
	text, err := d.doc.Text(page - 1)
	if err != nil {
		return "", fmt.Errorf("extracting text from page %d: %w", page, err)
	}
	return JoinRuns(strings.Split(strings.TrimRight(text, "\n"), "\n")), nil
}

func (d *mupdfDocument) Render(page int, scale float64) (*image.RGBA, error) {
	if err := checkPage(page, d.pages); err != nil {
		return nil, err
	}
	if scale <= 0 {
		return nil, fmt.Errorf("invalid render scale %v", scale)
	}
	img, err := d.doc.ImageDPI(page-1, pointsPerInch*scale)
	if err != nil {
		// Only surface allocation failures are recoverable; a page whose
		// content cannot be run is as broken as the document.
		if errors.Is(err, fitz.ErrCreatePixmap) || errors.Is(err, fitz.ErrPixmapSamples) {
			return nil, fmt.Errorf("%w %d: %v", ErrRender, page, err)
		}
		return nil, fmt.Errorf("rendering page %d: %w", page, err)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w %d: empty surface", ErrRender, page)
	}
	return img, nil
}

func (d *mupdfDocument) Close() error {
	return d.doc.Close()
}
