package writer

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path"
	"regexp"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/gitin/internal/logfields"
	"git.home.luguber.info/inful/gitin/internal/markup"
)

// lexerName matches file extensions that are safe to hand to the shell.
var lexerName = regexp.MustCompile(`^[A-Za-z0-9_+#-]{1,32}$`)

// Highlighter runs an external command that turns file content on stdin
// into HTML on stdout. In the command line $scheme is replaced by the
// configured color scheme and $type by the file's lexer name.
type Highlighter struct {
	cmdline string
	scheme  string
	enabled bool
}

// NewHighlighter checks once that the command exists. A missing command
// disables highlighting for the whole run.
func NewHighlighter(cmdline, scheme string) *Highlighter {
	h := &Highlighter{cmdline: cmdline, scheme: scheme}
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return h
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		slog.Warn("Highlighter not available, files are shown as plain text",
			logfields.Key("highlightcmd"), logfields.Error(err))
		return h
	}
	h.enabled = true
	return h
}

// Enabled reports whether Highlight will run the command.
func (h *Highlighter) Enabled() bool { return h != nil && h.enabled }

// Command returns the command line for the file name with the variables
// expanded.
func (h *Highlighter) Command(name string) string {
	return os.Expand(h.cmdline, func(key string) string {
		switch key {
		case "scheme":
			return h.scheme
		case "type":
			return lexerFor(name)
		}
		return "$" + key
	})
}

// Highlight returns the command's output forced to ASCII. ok is false when
// the highlighter is disabled or the command failed; the caller then falls
// back to plain text.
func (h *Highlighter) Highlight(ctx context.Context, name string, data []byte) (out []byte, ok bool) {
	if !h.Enabled() {
		return nil, false
	}
	// #nosec G204 -- the command line is site configuration; $type is restricted to lexerName.
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", h.Command(name))
	cmd.Stdin = bytes.NewReader(data)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		slog.Warn("Highlighter failed",
			logfields.File(name),
			logfields.Error(err),
			slog.String("stderr", strings.TrimSpace(stderr.String())))
		return nil, false
	}
	return markup.AppendASCII(make([]byte, 0, stdout.Len()), stdout.Bytes()), true
}

// lexerFor derives the lexer name from the extension, or from the whole
// base name for files such as Makefile. Anything unusual becomes "text".
func lexerFor(name string) string {
	base := path.Base(name)
	ext := strings.TrimPrefix(path.Ext(base), ".")
	if ext == "" {
		ext = base
	}
	if !lexerName.MatchString(ext) {
		return "text"
	}
	return strings.ToLower(ext)
}

// plainLines renders data as numbered, encoded lines.
func plainLines(data []byte) []byte {
	out := make([]byte, 0, len(data)+len(data)/2)
	out = append(out, "<pre id=\"blob\">\n"...)
	lines := bytes.SplitAfter(data, []byte("\n"))
	if n := len(lines); n > 0 && len(lines[n-1]) == 0 {
		lines = lines[:n-1]
	}
	for i, line := range lines {
		num := strconv.Itoa(i + 1)
		out = append(out, `<a href="#l`...)
		out = append(out, num...)
		out = append(out, `" class="line" id="l`...)
		out = append(out, num...)
		out = append(out, `">`...)
		out = append(out, num...)
		out = append(out, "</a> "...)
		out = markup.AppendEncoded(out, line, -1)
		out = append(out, '\n')
	}
	return append(out, "</pre>\n"...)
}
