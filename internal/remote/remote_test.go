// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package remote

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/pdiddy/pdf2md/pkg/types"
)

type fakeGenerator struct {
	text  string
	err   error
	nilOK bool

	calls    int
	model    string
	contents []*genai.Content
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.contents = contents
	if f.err != nil {
		return nil, f.err
	}
	if f.nilOK {
		return nil, nil
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(f.text, genai.RoleModel),
		}},
	}, nil
}

func TestConvertRemote_SendsDocumentAndPrompt(t *testing.T) {
	gen := &fakeGenerator{text: "# Title\n\nBody"}
	c := newConverter(gen, "", nil)

	out, err := c.ConvertRemote(context.Background(), []byte("%PDF-1.7"), PDFMimeType)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nBody", out)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, types.DefaultRemoteModel, gen.model)
	require.Len(t, gen.contents, 1)
	assert.Equal(t, string(genai.RoleUser), gen.contents[0].Role)

	parts := gen.contents[0].Parts
	require.Len(t, parts, 2)
	require.NotNil(t, parts[0].InlineData)
	assert.Equal(t, PDFMimeType, parts[0].InlineData.MIMEType)
	assert.Equal(t, []byte("%PDF-1.7"), parts[0].InlineData.Data)
	assert.Equal(t, Prompt, parts[1].Text)
}

func TestConvertRemote_Errors(t *testing.T) {
	apiErr := errors.New("quota exceeded")
	tests := []struct {
		name    string
		gen     *fakeGenerator
		wantErr error
	}{
		{"empty text", &fakeGenerator{text: ""}, ErrEmptyResponse},
		{"whitespace text", &fakeGenerator{text: "  \n"}, ErrEmptyResponse},
		{"nil response", &fakeGenerator{nilOK: true}, ErrEmptyResponse},
		{"api failure", &fakeGenerator{err: apiErr}, apiErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newConverter(tt.gen, "gemini-test", nil)
			out, err := c.ConvertRemote(context.Background(), []byte("pdf"), PDFMimeType)
			assert.Empty(t, out)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 1, tt.gen.calls, "no retries")
		})
	}
}

func TestConvert_UsesPDFMimeType(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	c := newConverter(gen, "gemini-test", nil)

	out, err := c.Convert(context.Background(), []byte("pdf"), "doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, "gemini-test", gen.model)
	assert.Equal(t, PDFMimeType, gen.contents[0].Parts[0].InlineData.MIMEType)
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), types.RemoteConfig{}, nil)
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestPromptRules(t *testing.T) {
	for _, want := range []string{"Markdown", "headers", "footers", "code blocks", "```markdown", "LaTeX"} {
		assert.Contains(t, Prompt, want)
	}
}
