// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"strings"
	"unicode/utf8"
)

// ScannedThreshold is the minimum number of trimmed characters a page's
// embedded text needs to be trusted. Pages below it are presumed to be
// images and are sent to OCR.
const ScannedThreshold = 50

// Classification tells the orchestrator how to obtain a page's text.
type Classification int

const (
	// Textual pages carry enough embedded text to use it verbatim.
	Textual Classification = iota
	// Scanned pages are rasterized and recognized.
	Scanned
)

func (c Classification) String() string {
	switch c {
	case Textual:
		return "textual"
	case Scanned:
		return "scanned"
	default:
		return "unknown"
	}
}

// Classify returns Scanned when rawText has fewer than ScannedThreshold
// characters after trimming surrounding whitespace, Textual otherwise.
func Classify(rawText string) Classification {
	if utf8.RuneCountInString(strings.TrimSpace(rawText)) < ScannedThreshold {
		return Scanned
	}
	return Textual
}
