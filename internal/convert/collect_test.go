// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF("a.pdf"))
	assert.True(t, IsPDF("dir/B.PDF"))
	assert.False(t, IsPDF("a.pdf.txt"))
	assert.False(t, IsPDF("pdf"))
	assert.False(t, IsPDF("notes.md"))
}

func TestCollectPDFs(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "docs", "a.pdf"))
	touch(t, filepath.Join(root, "docs", "b.PDF"))
	touch(t, filepath.Join(root, "docs", "notes.txt"))
	touch(t, filepath.Join(root, "docs", "nested", "c.pdf"))
	touch(t, filepath.Join(root, "docs", ".cache", "hidden.pdf"))
	touch(t, filepath.Join(root, "docs", ".draft.pdf"))
	touch(t, filepath.Join(root, "single.pdf"))
	touch(t, filepath.Join(root, "readme.md"))

	found, ignored, err := CollectPDFs([]string{
		filepath.Join(root, "docs"),
		filepath.Join(root, "single.pdf"),
		filepath.Join(root, "readme.md"),
		filepath.Join(root, "docs", "a.pdf"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "docs", "a.pdf"),
		filepath.Join(root, "docs", "b.PDF"),
		filepath.Join(root, "docs", "nested", "c.pdf"),
		filepath.Join(root, "single.pdf"),
	}, found)
	assert.Equal(t, []string{filepath.Join(root, "readme.md")}, ignored)
}

func TestCollectPDFs_MissingPath(t *testing.T) {
	_, _, err := CollectPDFs([]string{filepath.Join(t.TempDir(), "nope.pdf")})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCollectPDFs_HiddenRootIsWalked(t *testing.T) {
	root := filepath.Join(t.TempDir(), ".inbox")
	touch(t, filepath.Join(root, "scan.pdf"))

	found, _, err := CollectPDFs([]string{root})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "scan.pdf")}, found)
}
