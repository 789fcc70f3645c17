// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocr defines the recognition engine contract used by the local
// conversion path. Engines are stateful and expensive to start, so callers
// create one through a Factory only when a page needs it and Close it
// exactly once. Concrete engines live in subpackages so this package builds
// without native libraries.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
)

// DefaultLanguage is the trained-data name used when none is configured.
const DefaultLanguage = "eng"

// Engine recognizes text in rendered page images. An Engine is not safe
// for concurrent use; recognitions are serialized by the caller.
type Engine interface {
	// Recognize returns the text found in img, possibly empty.
	Recognize(ctx context.Context, img image.Image) (string, error)

	// Close terminates the engine. It must be called exactly once.
	Close() error
}

// Factory starts an engine for language. It blocks until the engine is
// ready to recognize.
type Factory func(ctx context.Context, language string) (Engine, error)

// EncodePNG serializes img for engines that accept encoded images.
// Compression is disabled: the buffer lives only for one recognition call.
func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("encoding page image: empty image")
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.NoCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding page image: %w", err)
	}
	return buf.Bytes(), nil
}
