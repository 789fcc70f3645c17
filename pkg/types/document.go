// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pdf2md conversion pipeline.
package types

import "time"

// ProcessingStatus indicates where a queued document is in its lifecycle.
type ProcessingStatus string

const (
	StatusIdle       ProcessingStatus = "IDLE"
	StatusPending    ProcessingStatus = "PENDING"
	StatusProcessing ProcessingStatus = "PROCESSING"
	StatusCompleted  ProcessingStatus = "COMPLETED"
	StatusError      ProcessingStatus = "ERROR"
)

// Terminal reports whether no further transitions can happen from s.
func (s ProcessingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// FileResult records the outcome of converting one input file.
type FileResult struct {
	// Source is the input PDF path.
	Source string `json:"source" yaml:"source"`

	// Output is the Markdown path written, empty when nothing was written.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Status is the final processing status.
	Status ProcessingStatus `json:"status" yaml:"status"`

	// Skipped is true when the output already existed and was left untouched.
	Skipped bool `json:"skipped,omitempty" yaml:"skipped,omitempty"`

	// Error is the user-facing failure message, if any.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Duration is the wall time spent converting.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// BatchReport summarizes a conversion run. It is written to disk as YAML
// when the caller asks for a report.
type BatchReport struct {
	Mode      ConversionMode `json:"mode" yaml:"mode"`
	StartedAt time.Time      `json:"started_at" yaml:"started_at"`
	Converted int            `json:"converted" yaml:"converted"`
	Skipped   int            `json:"skipped" yaml:"skipped"`
	Failed    int            `json:"failed" yaml:"failed"`
	Files     []FileResult   `json:"files" yaml:"files"`
}

// Total returns the number of files processed.
func (r BatchReport) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchReport) HasFailures() bool {
	return r.Failed > 0
}
