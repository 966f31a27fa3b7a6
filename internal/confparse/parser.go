package confparse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// SyntaxError reports a line that is neither blank, a comment, a section
// header nor a key/value pair. The parser stays usable after returning it.
type SyntaxError struct {
	Line int
	Text string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: expected 'key = value', got %q", e.Line, e.Text)
}

// MaxLineLen bounds the bytes kept from a single line. The rest of a longer
// line is read and discarded.
const MaxLineLen = 64 * 1024

// Parser reads "key = value" lines one pair at a time.
//
//	# comment
//	name = My Repositories
//	[limit]
//	commits = 100      -> key "limit/commits"
//
// Section headers only prefix the keys that follow; no structure is built.
type Parser struct {
	r       *bufio.Reader
	line    int
	section string
}

// NewParser returns a parser reading from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{r: bufio.NewReader(r)}
}

// Next returns the next key and value. At the end of the stream it returns
// io.EOF; read errors from the underlying reader are returned as is.
func (p *Parser) Next() (key, value string, err error) {
	for {
		raw, err := p.readLine()
		if err != nil {
			return "", "", err
		}
		p.line++
		text := strings.TrimSpace(raw)
		if text == "" || text[0] == '#' || text[0] == ';' {
			continue
		}
		if text[0] == '[' && text[len(text)-1] == ']' {
			p.section = strings.TrimSpace(text[1 : len(text)-1])
			continue
		}
		k, v, ok := strings.Cut(text, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return "", "", &SyntaxError{Line: p.line, Text: text}
		}
		if p.section != "" {
			k = p.section + "/" + k
		}
		return k, unquote(strings.TrimSpace(v)), nil
	}
}

// readLine returns the next line without its terminator, cut to
// MaxLineLen bytes. It returns io.EOF once the input is exhausted.
func (p *Parser) readLine() (string, error) {
	var buf []byte
	for {
		chunk, more, err := p.r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && buf != nil {
				return string(buf), nil
			}
			return "", err
		}
		if room := MaxLineLen - len(buf); room > 0 {
			buf = append(buf, chunk[:min(room, len(chunk))]...)
		}
		if !more {
			return string(buf), nil
		}
	}
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}
