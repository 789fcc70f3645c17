// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// IsPDF reports whether name has a ".pdf" extension, in any case.
func IsPDF(name string) bool {
	return pdfExt.MatchString(name)
}

// CollectPDFs expands paths into the PDF files to convert. Files are taken
// as given when they have a .pdf extension and reported in ignored
// otherwise; directories are walked recursively, skipping hidden entries
// and non-PDF files. Duplicates are dropped, first occurrence wins.
func CollectPDFs(paths []string) (found, ignored []string, err error) {
	seen := make(map[string]bool)
	add := func(p string) {
		clean := filepath.Clean(p)
		if !seen[clean] {
			seen[clean] = true
			found = append(found, clean)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", root, err)
		}
		if !info.IsDir() {
			if IsPDF(root) {
				add(root)
			} else {
				ignored = append(ignored, root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if path != root && isHidden(path) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() && IsPDF(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}
	return found, ignored, nil
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
