// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tesseract

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/pdiddy/pdf2md/pkg/types"
)

// ensureTesseractAvailable skips the test when the tesseract binary (and
// so, in practice, its trained data) is not installed.
func ensureTesseractAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("tesseract not installed in PATH")
	}
}

func textImage(s string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 240, 80))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(10, 50),
	}
	d.DrawString(s)
	return img
}

func TestEngineRecognize(t *testing.T) {
	ensureTesseractAvailable(t)

	factory := NewFactory(types.OCRConfig{PageSegMode: 6})
	e, err := factory(context.Background(), "eng")
	require.NoError(t, err)
	defer e.Close()

	text, err := e.Recognize(context.Background(), textImage("Hello PDF"))
	require.NoError(t, err)
	got := strings.ToLower(text)
	assert.Contains(t, got, "hello")
	assert.Contains(t, got, "pdf")

	text, err = e.Recognize(context.Background(), blank(64))
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestNewUnknownLanguage(t *testing.T) {
	ensureTesseractAvailable(t)

	_, err := New(context.Background(), "zzz-not-a-language", 0)
	assert.Error(t, err)
}

func TestNewCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(ctx, "eng", 0)
	assert.ErrorIs(t, err, context.Canceled)
}
