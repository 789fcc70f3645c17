//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert groups targets that run the CLI over pdfs/ into markdown/.
type Convert mg.Namespace

// Local converts pdfs/ in-process, with OCR for scanned pages.
func (Convert) Local() error {
	mg.Deps(Build, Init)
	return runConvert("local")
}

// AI converts pdfs/ with the Gemini model. Needs GEMINI_API_KEY or
// .secrets/gemini-api-key.
func (Convert) AI() error {
	mg.Deps(Build, Init)
	return runConvert("ai")
}

// Preview renders every Markdown file in markdown/ to HTML.
func Preview() error {
	mg.Deps(Build)
	files, err := filepath.Glob(filepath.Join("markdown", "*.md"))
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := sh.RunV(filepath.Join(binDir, binName), "preview", f); err != nil {
			return err
		}
	}
	return nil
}

func runConvert(mode string) error {
	return sh.RunV(filepath.Join(binDir, binName), "convert", "pdfs",
		"--mode", mode,
		"--out-dir", "markdown",
		"--report", filepath.Join("markdown", "report.yaml"))
}
