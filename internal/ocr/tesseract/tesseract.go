// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tesseract implements ocr.Engine with the Tesseract library via
// gosseract. Building it requires libtesseract and leptonica headers.
package tesseract

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/pdiddy/pdf2md/internal/ocr"
	"github.com/pdiddy/pdf2md/pkg/types"
)

// warmupSize is the edge of the blank image recognized during start-up.
const warmupSize = 32

// Engine wraps one gosseract client. The client keeps the loaded model
// between calls, which is why one Engine serves a whole document.
type Engine struct {
	client *gosseract.Client
}

// NewFactory returns an ocr.Factory that starts Tesseract engines with the
// configured page segmentation mode.
func NewFactory(cfg types.OCRConfig) ocr.Factory {
	return func(ctx context.Context, language string) (ocr.Engine, error) {
		return New(ctx, language, cfg.PageSegMode)
	}
}

// New starts a Tesseract engine. gosseract initializes the native API
// lazily on the first recognition, so New recognizes a blank image to
// surface missing trained data here instead of on the first page.
func New(ctx context.Context, language string, psm int) (*Engine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if language == "" {
		language = ocr.DefaultLanguage
	}

	c := gosseract.NewClient()
	if err := c.SetLanguage(strings.Split(language, "+")...); err != nil {
		c.Close()
		return nil, fmt.Errorf("setting language %q: %w", language, err)
	}
	if psm > 0 {
		if err := c.SetPageSegMode(gosseract.PageSegMode(psm)); err != nil {
			c.Close()
			return nil, fmt.Errorf("setting page segmentation mode %d: %w", psm, err)
		}
	}

	e := &Engine{client: c}
	if _, err := e.Recognize(ctx, blank(warmupSize)); err != nil {
		c.Close()
		return nil, fmt.Errorf("starting tesseract (%s): %w", language, err)
	}
	return e, nil
}

// Recognize returns the text Tesseract finds in img.
func (e *Engine) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := ocr.EncodePNG(img)
	if err != nil {
		return "", err
	}
	if err := e.client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Close releases the native Tesseract API.
func (e *Engine) Close() error {
	return e.client.Close()
}

func blank(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return img
}
