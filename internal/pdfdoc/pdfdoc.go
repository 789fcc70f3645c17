// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfdoc opens PDF payloads and exposes a random-access page
// collection: per-page text extraction and rasterization. Backends are
// selected at construction time; callers depend only on Loader and Document.
package pdfdoc

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/pdf2md/pkg/types"
)

var (
	// ErrLoad reports that the payload is not a usable PDF: malformed,
	// truncated, encrypted, or without pages.
	ErrLoad = errors.New("loading PDF")

	// ErrEncrypted reports a password-protected document. It wraps ErrLoad.
	ErrEncrypted = fmt.Errorf("%w: document is password protected", ErrLoad)

	// ErrRender reports that no drawable surface could be allocated for a page.
	ErrRender = errors.New("rendering page")

	// ErrPageRange reports a page index outside 1..PageCount.
	ErrPageRange = errors.New("page out of range")
)

// Loader opens a PDF held in memory.
type Loader interface {
	// Load parses data and returns the page collection. Failures wrap ErrLoad.
	Load(ctx context.Context, data []byte) (Document, error)
}

// Document is a loaded PDF. Page numbers are 1-based.
type Document interface {
	// PageCount returns the number of pages (always positive).
	PageCount() int

	// Text returns the page's text runs in content-stream order, joined by
	// single spaces. No line or paragraph structure is reconstructed.
	Text(page int) (string, error)

	// Render rasterizes the page at scale (1.0 = 72 DPI). Surface
	// allocation failures wrap ErrRender.
	Render(page int, scale float64) (*image.RGBA, error)

	// Close releases parser state. It is called once per loaded document.
	Close() error
}

// NewLoader returns the loader for the configured backend.
func NewLoader(cfg types.LoaderConfig) (Loader, error) {
	switch cfg.Backend {
	case types.BackendMuPDF, "":
		return NewMuPDFLoader(), nil
	case types.BackendText:
		return NewTextLoader(), nil
	default:
		return nil, fmt.Errorf("unsupported loader backend %q: use %s or %s",
			cfg.Backend, types.BackendMuPDF, types.BackendText)
	}
}

// JoinRuns concatenates text runs with single spaces. Runs are
// NFC-normalized so that decomposed accents from font encodings compare
// equal to their composed form; empty runs are kept so the output mirrors
// the content stream one-to-one.
func JoinRuns(runs []string) string {
	for i, r := range runs {
		runs[i] = norm.NFC.String(r)
	}
	return strings.Join(runs, " ")
}

func checkPage(page, count int) error {
	if page < 1 || page > count {
		return fmt.Errorf("%w: page %d of %d", ErrPageRange, page, count)
	}
	return nil
}
