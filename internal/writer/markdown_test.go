package writer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeLink(t *testing.T) {
	tests := []struct {
		dir, dest, root string
		want            string
		ok              bool
	}{
		{".", "docs/guide.md", "../../", "../../.gitin/files/docs/guide.md.html", true},
		{"docs", "../README.md#intro", "../../../", "../../../.gitin/files/README.md.html#intro", true},
		{".", ".github/CONTRIBUTING.md", "", ".gitin/files/-github/CONTRIBUTING.md.html", true},
		{".", "my notes.txt", "", ".gitin/files/my%20notes.txt.html", true},
		{".", "https://example.org/a", "", "", false},
		{".", "/absolute", "", "", false},
		{".", "#section", "", "", false},
		{".", "..", "", "", false},
	}
	for _, tt := range tests {
		got, ok := treeLink(tt.dir, tt.dest, tt.root)
		assert.Equal(t, tt.ok, ok, tt.dest)
		assert.Equal(t, tt.want, got, tt.dest)
	}
}

func TestRenderMarkdown(t *testing.T) {
	src := []byte("# Tïtle\n\n[up](../x.md) [web](https://example.org)\n\n<iframe src=\"x\"></iframe>\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	out, err := renderMarkdown(newMarkdown(), "docs/README.md", src, "../../../")
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "T&#239;tle")
	assert.Contains(t, html, `href="../../../.gitin/files/x.md.html"`)
	assert.Contains(t, html, `href="https://example.org"`)
	assert.Contains(t, html, "<table>")
	assert.NotContains(t, html, "<iframe")
	for _, b := range out {
		require.Less(t, b, byte(0x80))
	}
}

func TestIsMarkdown(t *testing.T) {
	assert.True(t, isMarkdown("README.md"))
	assert.True(t, isMarkdown("docs/Guide.MARKDOWN"))
	assert.False(t, isMarkdown("README"))
	assert.False(t, isMarkdown("md"))
}
