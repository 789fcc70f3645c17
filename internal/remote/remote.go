// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package remote converts documents by sending them to a hosted Gemini
// model together with a transcription prompt.
package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/pdiddy/pdf2md/pkg/types"
)

// PDFMimeType is the media type sent with PDF documents.
const PDFMimeType = "application/pdf"

// Prompt instructs the model how to transcribe the attached document.
const Prompt = `Convert the attached document into clean, well-structured Markdown.

Rules:
1. Preserve the document structure: use Markdown headers (#, ##, ###) for titles and sections, and keep lists and tables as Markdown lists and tables.
2. Ignore repetitive page headers, footers and page numbers.
3. Put code in fenced code blocks.
4. Return only the Markdown content. Do not wrap the output in a ` + "```markdown" + ` block.
5. Preserve mathematical notation using LaTeX ($...$ for inline, $$...$$ for blocks).`

var (
	// ErrEmptyResponse is returned when the model answers without text.
	ErrEmptyResponse = errors.New("no text response generated from the model")
	// ErrNoAPIKey is returned by New when no API key is configured.
	ErrNoAPIKey = errors.New("no Gemini API key configured")
)

// generator is the subset of *genai.Models the converter calls.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Converter transcribes documents with a Gemini model.
type Converter struct {
	models generator
	model  string
	logger *zap.Logger
}

// New creates a Converter backed by the Gemini API.
func New(ctx context.Context, cfg types.RemoteConfig, logger *zap.Logger) (*Converter, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return newConverter(client.Models, cfg.Model, logger), nil
}

func newConverter(models generator, model string, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if model == "" {
		model = types.DefaultRemoteModel
	}
	return &Converter{models: models, model: model, logger: logger}
}

// Convert sends a PDF. The name is only used for logging; the model sees
// the bytes and the prompt.
func (c *Converter) Convert(ctx context.Context, data []byte, name string) (string, error) {
	c.logger.Debug("sending document to model", zap.String("document", name), zap.Int("bytes", len(data)))
	return c.ConvertRemote(ctx, data, PDFMimeType)
}

// ConvertRemote makes one GenerateContent call with data attached inline
// and returns the response text. There are no retries.
func (c *Converter) ConvertRemote(ctx context.Context, data []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = PDFMimeType
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mimeType),
			genai.NewPartFromText(Prompt),
		}, genai.RoleUser),
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generating content with %s: %w", c.model, err)
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}

	c.logger.Info("model transcription complete",
		zap.String("model", c.model),
		zap.Int("chars", len(text)),
		zap.Duration("elapsed", time.Since(start)))
	return text, nil
}
