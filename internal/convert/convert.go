// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements PDF-to-Markdown conversion. Two strategies
// share one contract: the remote path hands the document to a generative
// model, the local path extracts embedded text and recognizes scanned
// pages. The batch layer feeds files through a single-flight queue and
// writes one Markdown file per input.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf2md/internal/queue"
	"github.com/pdiddy/pdf2md/pkg/types"
)

// Strategy converts one PDF to Markdown. name is the file name shown as
// the document title.
type Strategy interface {
	Convert(ctx context.Context, data []byte, name string) (string, error)
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc func(ctx context.Context, data []byte, name string) (string, error)

// Convert calls f.
func (f StrategyFunc) Convert(ctx context.Context, data []byte, name string) (string, error) {
	return f(ctx, data, name)
}

var pdfExt = regexp.MustCompile(`(?i)\.pdf$`)

// OutputName maps an input file name to its Markdown name by replacing a
// trailing ".pdf" (any case) with ".md". Names without that extension get
// ".md" appended so the output never overwrites the input.
func OutputName(name string) string {
	if pdfExt.MatchString(name) {
		return pdfExt.ReplaceAllString(name, ".md")
	}
	return name + ".md"
}

// BatchOptions controls where and how a batch is written.
type BatchOptions struct {
	Mode types.ConversionMode
	// OutDir receives the Markdown files.
	OutDir string
	// Force overwrites existing outputs instead of skipping them.
	Force bool
	// Frontmatter prepends a YAML header with provenance fields.
	Frontmatter bool
	// Timeout bounds each document. Zero means no limit.
	Timeout time.Duration
}

// ConvertBatch converts pdfPaths one at a time through a queue, printing
// per-file status to w and returning a report. Inputs whose output already
// exists are skipped unless opts.Force is set. Failures are recorded in
// the report; the returned error covers only setup problems.
func ConvertBatch(ctx context.Context, s Strategy, pdfPaths []string, opts BatchOptions, logger *zap.Logger, w io.Writer) (types.BatchReport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	report := types.BatchReport{Mode: opts.Mode, StartedAt: time.Now().UTC()}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return report, fmt.Errorf("creating output directory: %w", err)
	}

	results := make([]types.FileResult, len(pdfPaths))
	index := make(map[string]int, len(pdfPaths))
	claimed := make(map[string]string, len(pdfPaths))
	var toQueue []int
	for i, p := range pdfPaths {
		out := filepath.Join(opts.OutDir, OutputName(filepath.Base(p)))
		results[i] = types.FileResult{Source: p, Output: out, Status: types.StatusIdle}
		if _, ok := index[p]; !ok {
			index[p] = i
		}

		if prev, ok := claimed[out]; ok {
			results[i].Status = types.StatusError
			results[i].Output = ""
			results[i].Error = fmt.Sprintf("output %s is already produced by %s", out, prev)
			fmt.Fprintf(w, "failed:  %s (%s)\n", filepath.Base(p), results[i].Error)
			continue
		}
		claimed[out] = p

		if !opts.Force {
			if _, err := os.Stat(out); err == nil {
				results[i].Skipped = true
				results[i].Status = types.StatusCompleted
				fmt.Fprintf(w, "skipped: %s (already exists)\n", filepath.Base(p))
				continue
			}
		}
		toQueue = append(toQueue, i)
	}

	handler := func(ctx context.Context, job queue.Job) (string, error) {
		data, err := os.ReadFile(job.Source)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", job.Source, err)
		}
		return s.Convert(ctx, data, job.Name)
	}
	observer := func(it queue.Item) {
		if !it.Status.Terminal() {
			return
		}
		r := &results[index[it.Source]]
		r.Status = it.Status
		r.Duration = it.FinishedAt.Sub(it.StartedAt)
		if it.Err == nil {
			it.Err = writeMarkdown(r.Output, it, opts)
			if it.Err != nil {
				r.Status = types.StatusError
			}
		}
		if it.Err != nil {
			r.Error = it.Err.Error()
			r.Output = ""
			logFailure(logger, it)
			fmt.Fprintf(w, "failed:  %s (%s)\n", it.Name, r.Error)
			return
		}
		fmt.Fprintf(w, "converted: %s -> %s\n", it.Name, r.Output)
	}

	q := queue.New(ctx, handler, logger, queue.WithObserver(observer), queue.WithTimeout(opts.Timeout))
	for _, i := range toQueue {
		p := pdfPaths[i]
		if _, err := q.Enqueue(queue.Job{Name: filepath.Base(p), Source: p}); err != nil {
			results[i].Status = types.StatusError
			results[i].Error = err.Error()
		}
	}
	if err := q.Shutdown(context.WithoutCancel(ctx)); err != nil {
		return report, err
	}

	for _, r := range results {
		switch {
		case r.Skipped:
			report.Skipped++
		case r.Status == types.StatusCompleted:
			report.Converted++
		default:
			report.Failed++
		}
	}
	report.Files = results

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		report.Converted, report.Skipped, report.Failed, report.Total())
	return report, nil
}

func logFailure(logger *zap.Logger, it queue.Item) {
	fields := []zap.Field{zap.String("name", it.Name), zap.Error(it.Err)}
	var docErr *Error
	if errors.As(it.Err, &docErr) {
		fields = append(fields, zap.String("cause", docErr.Detail()))
	}
	logger.Warn("file failed", fields...)
}

func writeMarkdown(path string, it queue.Item, opts BatchOptions) error {
	content := it.Markdown
	if opts.Frontmatter {
		fm, err := frontmatter(it, opts.Mode)
		if err != nil {
			return err
		}
		content = fm + content
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

type frontmatterFields struct {
	Source      string `yaml:"source"`
	Mode        string `yaml:"mode"`
	ConvertedAt string `yaml:"converted_at"`
}

// frontmatter renders the optional YAML header placed before the document.
func frontmatter(it queue.Item, mode types.ConversionMode) (string, error) {
	data, err := yaml.Marshal(frontmatterFields{
		Source:      it.Name,
		Mode:        string(mode),
		ConvertedAt: it.FinishedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}
	var b strings.Builder
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n\n")
	return b.String(), nil
}

// WriteReport writes r to path as YAML.
func WriteReport(path string, r types.BatchReport) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
