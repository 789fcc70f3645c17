// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfdoc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf2md/internal/pdfdoc/pdftest"
	"github.com/pdiddy/pdf2md/pkg/types"
)

func TestJoinRuns(t *testing.T) {
	tests := []struct {
		name string
		runs []string
		want string
	}{
		{name: "nil", runs: nil, want: ""},
		{name: "single run", runs: []string{"abc"}, want: "abc"},
		{name: "joined by single spaces", runs: []string{"Hello", "World", "!"}, want: "Hello World !"},
		{name: "empty runs kept", runs: []string{"a", "", "b"}, want: "a  b"},
		{name: "decomposed accents composed", runs: []string{"Cafe\u0301"}, want: "Caf\u00e9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinRuns(tt.runs))
		})
	}
}

func TestNewLoader(t *testing.T) {
	l, err := NewLoader(types.LoaderConfig{})
	require.NoError(t, err)
	assert.IsType(t, &MuPDFLoader{}, l)

	l, err = NewLoader(types.LoaderConfig{Backend: types.BackendText})
	require.NoError(t, err)
	assert.IsType(t, &TextLoader{}, l)

	_, err = NewLoader(types.LoaderConfig{Backend: "poppler"})
	assert.ErrorContains(t, err, "unsupported loader backend")
}

func TestErrEncryptedWrapsErrLoad(t *testing.T) {
	assert.ErrorIs(t, ErrEncrypted, ErrLoad)
}

func TestLoadRejectsBadInput(t *testing.T) {
	valid := pdftest.Build("Hello World")
	tests := []struct {
		name   string
		loader Loader
		data   []byte
	}{
		{name: "mupdf/empty", loader: NewMuPDFLoader(), data: nil},
		{name: "mupdf/not a pdf", loader: NewMuPDFLoader(), data: []byte("this is plainly not a PDF document")},
		{name: "text/empty", loader: NewTextLoader(), data: nil},
		{name: "text/not a pdf", loader: NewTextLoader(), data: []byte("this is plainly not a PDF document")},
		// MuPDF repairs truncated files, so only the strict parser is checked.
		{name: "text/truncated", loader: NewTextLoader(), data: valid[:len(valid)/3]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := tt.loader.Load(context.Background(), tt.data)
			if doc != nil {
				doc.Close()
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrLoad)
		})
	}
}

func TestLoadHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTextLoader().Load(ctx, pdftest.Build("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTextLoader(t *testing.T) {
	data := pdftest.Build("Hello World", "")

	doc, err := NewTextLoader().Load(context.Background(), data)
	require.NoError(t, err)
	defer doc.Close()

	assert.Equal(t, 2, doc.PageCount())

	text, err := doc.Text(1)
	require.NoError(t, err)
	assert.Contains(t, text, "Hello")

	text, err = doc.Text(2)
	require.NoError(t, err)
	assert.Empty(t, text)

	_, err = doc.Text(3)
	assert.ErrorIs(t, err, ErrPageRange)

	_, err = doc.Render(1, 2.0)
	assert.ErrorIs(t, err, ErrRender)
}

func TestMuPDFLoader(t *testing.T) {
	data := pdftest.Build("Hello World", "")

	doc, err := NewMuPDFLoader().Load(context.Background(), data)
	require.NoError(t, err)
	defer doc.Close()

	require.Equal(t, 2, doc.PageCount())

	text, err := doc.Text(1)
	require.NoError(t, err)
	assert.Contains(t, text, "Hello World")

	img, err := doc.Render(1, 2.0)
	require.NoError(t, err)
	assert.InDelta(t, 1224, img.Bounds().Dx(), 2)
	assert.InDelta(t, 1584, img.Bounds().Dy(), 2)

	_, err = doc.Render(0, 2.0)
	assert.ErrorIs(t, err, ErrPageRange)

	_, err = doc.Render(1, 0)
	assert.Error(t, err)
}
