package repo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/gitin/internal/confparse"
)

func TestApplyOverlay(t *testing.T) {
	input := `# repository settings
description = Tools for "things" & <stuff>
url = https://example.com/a.git
owner = someone
not a pair
cloneurl = git://example.com/b.git
`
	var d Descriptor
	var warnings []error
	err := d.ApplyOverlay(strings.NewReader(input), func(err error) { warnings = append(warnings, err) })
	require.NoError(t, err)

	assert.Equal(t, `Tools for "things" & <stuff>`, d.Description)
	assert.Equal(t, "git://example.com/b.git", d.CloneURL, "the later synonym wins")

	require.Len(t, warnings, 2)
	var unknown *confparse.UnknownKeyError
	require.ErrorAs(t, warnings[0], &unknown)
	assert.Equal(t, "owner", unknown.Key)
	var syn *confparse.SyntaxError
	require.ErrorAs(t, warnings[1], &syn)
	assert.Equal(t, 5, syn.Line)
}

func TestApplyOverlay_EmptyKeepsDefaults(t *testing.T) {
	d := Descriptor{Description: "kept"}
	require.NoError(t, d.ApplyOverlay(strings.NewReader(""), nil))
	assert.Equal(t, "kept", d.Description)
	assert.Empty(t, d.CloneURL)
}

func TestApplyOverlay_Truncates(t *testing.T) {
	var d Descriptor
	long := strings.Repeat("x", 300)
	require.NoError(t, d.ApplyOverlay(strings.NewReader("description = "+long+"\nurl = "+long+"\n"), nil))
	assert.Len(t, d.Description, MaxFieldLen)
	assert.Len(t, d.CloneURL, MaxFieldLen)
}

func TestApplyOverlay_LongLineKeepsLaterKeys(t *testing.T) {
	input := "description = " + strings.Repeat("x", 70000) + "\nurl = git://example/r\n"
	var d Descriptor
	var warnings []error
	require.NoError(t, d.ApplyOverlay(strings.NewReader(input), func(err error) { warnings = append(warnings, err) }))

	assert.Empty(t, warnings)
	assert.Equal(t, strings.Repeat("x", MaxFieldLen), d.Description)
	assert.Equal(t, "git://example/r", d.CloneURL)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "abc", 5, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"ascii", "abcdef", 5, "abcde"},
		{"boundary before multibyte", "abcdé", 5, "abcd"},
		{"three byte rune", "ab€de", 4, "ab"},
		{"invalid bytes", "ab\x80\x80\x80", 3, "ab\x80"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.in, tt.n))
		})
	}
}
