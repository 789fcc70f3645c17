// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssemble(t *testing.T) {
	tests := []struct {
		name      string
		pageCount int
		fragments []Fragment
		want      string
	}{
		{
			name:      "single textual page",
			pageCount: 1,
			fragments: []Fragment{{Page: 1, Body: "Only page."}},
			want:      "# doc.pdf\n\nOnly page.\n\n",
		},
		{
			name:      "single scanned page has no heading",
			pageCount: 1,
			fragments: []Fragment{{Page: 1, OCR: true, Body: "Recognized."}},
			want:      "# doc.pdf\n\nRecognized.\n\n",
		},
		{
			name:      "two pages, second recognized",
			pageCount: 2,
			fragments: []Fragment{
				{Page: 1, Body: "First."},
				{Page: 2, OCR: true, Body: "Second."},
			},
			want: "# doc.pdf\n\n## Page 1\n\nFirst.\n\n---\n\n## Page 2 (OCR)\n\nSecond.\n\n",
		},
		{
			name:      "placeholder has no heading",
			pageCount: 2,
			fragments: []Fragment{
				Placeholder(1),
				{Page: 2, Body: "Text."},
			},
			want: "# doc.pdf\n\n> [OCR Error: Could not generate image for page 1]\n\n---\n\n## Page 2\n\nText.\n\n",
		},
		{
			name:      "empty recognized body keeps layout",
			pageCount: 2,
			fragments: []Fragment{
				{Page: 1, OCR: true},
				{Page: 2, Body: "Text."},
			},
			want: "# doc.pdf\n\n## Page 1 (OCR)\n\n\n\n---\n\n## Page 2\n\nText.\n\n",
		},
		{
			name:      "no pages",
			pageCount: 0,
			want:      "# doc.pdf\n\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Assemble("doc.pdf", tt.pageCount, tt.fragments))
		})
	}
}

func TestAssembleSeparators(t *testing.T) {
	var fragments []Fragment
	for p := 1; p <= 5; p++ {
		fragments = append(fragments, Fragment{Page: p, Body: "body"})
	}
	out := Assemble("five.pdf", 5, fragments)

	assert.Equal(t, 4, strings.Count(out, "---\n\n"))
	assert.False(t, strings.HasSuffix(out, "---\n\n"))
	assert.True(t, strings.HasPrefix(out, "# five.pdf\n\n## Page 1\n\n"))
	last := -1
	for p := 1; p <= 5; p++ {
		i := strings.Index(out, fmt.Sprintf("## Page %d\n", p))
		assert.Greater(t, i, last, "page %d out of order", p)
		last = i
	}
}

func TestFragmentHeading(t *testing.T) {
	assert.Equal(t, "", Fragment{Page: 1}.Heading(1))
	assert.Equal(t, "## Page 3", Fragment{Page: 3}.Heading(4))
	assert.Equal(t, "## Page 3 (OCR)", Fragment{Page: 3, OCR: true}.Heading(4))
	assert.Equal(t, "", Placeholder(3).Heading(4))
}
