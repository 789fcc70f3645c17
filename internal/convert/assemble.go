// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"
)

// Fragment is the Markdown produced for one page.
type Fragment struct {
	// Page is the 1-based page number.
	Page int
	// OCR marks text that came from recognition rather than extraction.
	OCR bool
	// Placeholder marks a page that could not be rendered. Its Body is the
	// notice line and it gets no heading.
	Placeholder bool
	// Body is the page text.
	Body string
}

// Placeholder returns the fragment emitted when a scanned page cannot be
// rasterized.
func Placeholder(page int) Fragment {
	return Fragment{
		Page:        page,
		Placeholder: true,
		Body:        fmt.Sprintf("> [OCR Error: Could not generate image for page %d]", page),
	}
}

// Heading returns the level-2 heading for f, or "" when the document has a
// single page or f is a placeholder.
func (f Fragment) Heading(pageCount int) string {
	if pageCount <= 1 || f.Placeholder {
		return ""
	}
	if f.OCR {
		return fmt.Sprintf("## Page %d (OCR)", f.Page)
	}
	return fmt.Sprintf("## Page %d", f.Page)
}

// Assemble joins fragments, in page order, into the final document:
//
//	# <sourceName>
//
//	## Page N            (only when pageCount > 1, " (OCR)" for recognized pages)
//
//	<body>
//
//	---                  (between pages, not after the last)
//
// Downstream consumers parse this layout, so it must not change.
func Assemble(sourceName string, pageCount int, fragments []Fragment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", sourceName)
	for _, f := range fragments {
		if h := f.Heading(pageCount); h != "" {
			b.WriteString(h)
			b.WriteString("\n\n")
		}
		b.WriteString(f.Body)
		b.WriteString("\n\n")
		if f.Page < pageCount {
			b.WriteString("---\n\n")
		}
	}
	return b.String()
}
