// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/pdf2md/internal/ocr"
	"github.com/pdiddy/pdf2md/internal/pdfdoc"
)

// RenderScale is the rasterization factor for scanned pages (144 DPI).
const RenderScale = 2.0

// LocalConverter converts PDFs in-process. Pages with embedded text are
// extracted; the rest are rendered and recognized by an OCR engine that is
// started on the first scanned page and closed before ConvertLocal returns.
type LocalConverter struct {
	loader   pdfdoc.Loader
	engines  ocr.Factory
	language string
	logger   *zap.Logger
}

// LocalOption configures a LocalConverter.
type LocalOption func(*LocalConverter)

// WithLanguage sets the OCR language (default "eng").
func WithLanguage(lang string) LocalOption {
	return func(c *LocalConverter) {
		if lang != "" {
			c.language = lang
		}
	}
}

// WithLogger sets the logger (default no-op).
func WithLogger(l *zap.Logger) LocalOption {
	return func(c *LocalConverter) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewLocalConverter returns a converter that loads documents with loader
// and starts recognition engines with engines.
func NewLocalConverter(loader pdfdoc.Loader, engines ocr.Factory, opts ...LocalOption) *LocalConverter {
	c := &LocalConverter{
		loader:   loader,
		engines:  engines,
		language: ocr.DefaultLanguage,
		logger:   zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Convert implements Strategy.
func (c *LocalConverter) Convert(ctx context.Context, data []byte, name string) (string, error) {
	return c.ConvertLocal(ctx, data, name)
}

// ConvertLocal converts the PDF in data to Markdown titled name. Pages are
// processed strictly in order. Any returned error is an *Error carrying
// LocalFailureMessage. A page that cannot be rendered becomes a
// placeholder and does not fail the document.
func (c *LocalConverter) ConvertLocal(ctx context.Context, data []byte, name string) (string, error) {
	log := c.logger.With(zap.String("document", name))
	start := time.Now()

	scope := &engineScope{factory: c.engines, language: c.language, logger: log}
	defer scope.release()

	doc, err := c.loader.Load(ctx, data)
	if err != nil {
		log.Warn("load failed", zap.Error(err))
		return "", documentError(err)
	}
	defer func() {
		if err := doc.Close(); err != nil {
			log.Warn("closing document", zap.Error(err))
		}
	}()

	pages := doc.PageCount()
	fragments := make([]Fragment, 0, pages)
	var scanned int
	for page := 1; page <= pages; page++ {
		if err := ctx.Err(); err != nil {
			return "", documentError(err)
		}
		f, err := c.convertPage(ctx, doc, page, scope, log)
		if err != nil {
			log.Warn("conversion failed", zap.Int("page", page), zap.Error(err))
			return "", documentError(err)
		}
		if f.OCR || f.Placeholder {
			scanned++
		}
		fragments = append(fragments, f)
	}

	log.Info("converted locally",
		zap.Int("pages", pages),
		zap.Int("scanned", scanned),
		zap.Duration("elapsed", time.Since(start)))
	return Assemble(name, pages, fragments), nil
}

func (c *LocalConverter) convertPage(ctx context.Context, doc pdfdoc.Document, page int, scope *engineScope, log *zap.Logger) (Fragment, error) {
	raw, err := doc.Text(page)
	if err != nil {
		return Fragment{}, err
	}
	if Classify(raw) == Textual {
		return Fragment{Page: page, Body: raw}, nil
	}

	log.Debug("page appears to be scanned, starting OCR", zap.Int("page", page))
	engine, err := scope.acquire(ctx)
	if err != nil {
		return Fragment{}, err
	}

	img, err := doc.Render(page, RenderScale)
	if err != nil {
		if errors.Is(err, pdfdoc.ErrRender) {
			log.Warn("could not render page, emitting placeholder", zap.Int("page", page), zap.Error(err))
			return Placeholder(page), nil
		}
		return Fragment{}, err
	}

	text, err := engine.Recognize(ctx, img)
	if err != nil {
		return Fragment{}, fmt.Errorf("%w %d: %w", ErrRecognition, page, err)
	}
	return Fragment{Page: page, OCR: true, Body: text}, nil
}

type engineState int

const (
	engineUninitialized engineState = iota
	engineReady
	engineTerminated
)

// engineScope owns the recognition engine for one conversion. The engine
// is started on the first acquire and closed by release, which the
// orchestrator defers so it runs on every exit path.
type engineScope struct {
	factory  ocr.Factory
	language string
	logger   *zap.Logger

	engine ocr.Engine
	state  engineState
}

func (s *engineScope) acquire(ctx context.Context) (ocr.Engine, error) {
	switch s.state {
	case engineReady:
		return s.engine, nil
	case engineTerminated:
		return nil, fmt.Errorf("%w: engine already terminated", ErrEngineInit)
	}
	if s.factory == nil {
		return nil, fmt.Errorf("%w: no OCR engine configured", ErrEngineInit)
	}

	s.logger.Info("starting OCR engine", zap.String("language", s.language))
	e, err := s.factory(ctx, s.language)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEngineInit, err)
	}
	s.engine, s.state = e, engineReady
	return e, nil
}

func (s *engineScope) release() {
	if s.state != engineReady {
		return
	}
	s.state = engineTerminated
	if err := s.engine.Close(); err != nil {
		s.logger.Warn("terminating OCR engine", zap.Error(err))
	}
	s.engine = nil
}
