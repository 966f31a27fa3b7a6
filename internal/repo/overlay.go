package repo

import (
	"io"
	"unicode/utf8"

	"git.home.luguber.info/inful/gitin/internal/confparse"
)

// MaxFieldLen bounds the overlay strings in bytes.
const MaxFieldLen = 255

// overlaySchema lists the keys a repository may set about itself. url and
// cloneurl are synonyms.
var overlaySchema = confparse.Schema[Descriptor]{
	confparse.StringField("description", func(d *Descriptor) *string { return &d.Description }),
	confparse.StringField("url", func(d *Descriptor) *string { return &d.CloneURL }),
	confparse.StringField("cloneurl", func(d *Descriptor) *string { return &d.CloneURL }),
}

// ApplyOverlay reads "key = value" lines from r into the descriptor.
// Values longer than MaxFieldLen are cut silently. Unknown keys and
// malformed lines go to warn; only read errors are returned.
func (d *Descriptor) ApplyOverlay(r io.Reader, warn func(error)) error {
	err := overlaySchema.Apply(d, confparse.NewParser(r), warn)
	d.Description = truncate(d.Description, MaxFieldLen)
	d.CloneURL = truncate(d.CloneURL, MaxFieldLen)
	return err
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
// Bytes that are not part of a valid sequence are cut like ASCII.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for j := n - 1; j >= 0 && j > n-utf8.UTFMax; j-- {
		if s[j] < utf8.RuneSelf {
			break
		}
		if utf8.RuneStart(s[j]) {
			if !utf8.FullRuneInString(s[j:n]) {
				return s[:j]
			}
			break
		}
	}
	return s[:n]
}
