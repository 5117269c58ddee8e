package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name     string
		in       string
		contains []string
		excludes []string
	}{
		{
			name:     "heading and emphasis",
			in:       "# Hello\n\nSome **bold** text",
			contains: []string{"<h1", "Hello</h1>", "<strong>bold</strong>"},
		},
		{
			name:     "script removed",
			in:       "Hi <script>alert(1)</script> there",
			excludes: []string{"<script", "alert(1)</script>"},
		},
		{
			name:     "inline handler stripped",
			in:       `<a href="https://example.com" onclick="x()">link</a>`,
			contains: []string{`href="https://example.com"`},
			excludes: []string{"onclick"},
		},
		{
			name:     "gfm table",
			in:       "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "disallowed tag dropped",
			in:       "<iframe src=\"https://evil.example\"></iframe>text",
			excludes: []string{"<iframe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render(tt.in)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRender_Empty(t *testing.T) {
	out, err := NewRenderer().Render("   ")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestExtractExcerpt(t *testing.T) {
	assert.Equal(t, "", ExtractExcerpt("", 200))
	assert.Equal(t, "Title bold and link", ExtractExcerpt("## Title **bold** and [link](http://x.y)", 200))
	assert.Equal(t, "first second", ExtractExcerpt("first\n\nsecond", 200))
	assert.Equal(t, "before after", ExtractExcerpt("before ![pic](a.png)after", 200))

	long := strings.Repeat("word ", 100)
	got := ExtractExcerpt(long, 200)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len(got), 203)
}
