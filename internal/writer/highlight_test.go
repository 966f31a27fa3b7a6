package writer

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerFor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"main.go", "go"},
		{"src/lib.C", "c"},
		{"Makefile", "makefile"},
		{".bashrc", "bashrc"},
		{"x.;rm -rf ~", "text"},
		{"notes.$(id)", "text"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, lexerFor(tt.name), tt.name)
	}
}

func TestHighlighter_Command(t *testing.T) {
	h := &Highlighter{cmdline: "chroma --style=$scheme --lexer=${type} --x=$other", scheme: "pastie"}
	assert.Equal(t, "chroma --style=pastie --lexer=go --x=$other", h.Command("cmd/main.go"))
}

func TestHighlighter_Disabled(t *testing.T) {
	assert.False(t, NewHighlighter("", "pastie").Enabled())
	assert.False(t, NewHighlighter("gitin-no-such-highlighter --html", "pastie").Enabled())

	var h *Highlighter
	out, ok := h.Highlight(context.Background(), "a.go", []byte("x"))
	assert.False(t, ok)
	assert.Nil(t, out)
}

func TestHighlighter_Run(t *testing.T) {
	if _, err := exec.LookPath("sed"); err != nil {
		t.Skip("sed not available")
	}
	h := NewHighlighter(`sed "s/^/$type:/"`, "")
	require.True(t, h.Enabled())

	out, ok := h.Highlight(context.Background(), "main.go", []byte("package é\n"))
	require.True(t, ok)
	assert.Equal(t, "go:package &#233;\n", string(out))

	fail := NewHighlighter("sed --no-such-flag", "")
	_, ok = fail.Highlight(context.Background(), "main.go", []byte("x"))
	assert.False(t, ok)
}

func TestPlainLines(t *testing.T) {
	out := string(plainLines([]byte("a<b\n\tc\n")))
	assert.Contains(t, out, `id="l1">1</a> a&lt;b`)
	assert.Contains(t, out, `id="l2">2</a> `+"\tc\n")
	assert.NotContains(t, out, `id="l3"`)
}
