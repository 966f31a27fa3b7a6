package markup

import (
	"io"
	"strconv"
)

// AppendEncoded appends the markup encoding of at most max bytes of s to
// dst. A negative max encodes all of s. NUL is an ordinary control byte.
func AppendEncoded(dst, s []byte, max int) []byte {
	if max >= 0 && max < len(s) {
		s = s[:max]
	}
	for i := 0; i < len(s); {
		var n int
		dst, n, _ = appendUnit(dst, s[i:], true, true)
		i += n
	}
	return dst
}

// Encode writes the markup encoding of at most max bytes of s to w.
func Encode(w io.Writer, s []byte, max int) error {
	_, err := w.Write(AppendEncoded(make([]byte, 0, len(s)+len(s)/4), s, max))
	return err
}

// EncodeString encodes all of s.
func EncodeString(s string) string {
	return string(AppendEncoded(make([]byte, 0, len(s)+len(s)/4), []byte(s), -1))
}

// AppendASCII copies s to dst unchanged except that every byte >= 0x80 is
// replaced by character references using the same recovery rules as
// AppendEncoded. It is meant for markup that is already well formed, such
// as rendered Markdown, which must still reach the output as pure ASCII.
func AppendASCII(dst, s []byte) []byte {
	for i := 0; i < len(s); {
		var n int
		dst, n, _ = appendUnit(dst, s[i:], false, true)
		i += n
	}
	return dst
}

// appendUnit encodes the unit starting at s[0] and reports how many bytes of
// s it consumed. When final is false and s ends inside a multi-byte sequence
// that is still valid so far, nothing is appended and short is true.
func appendUnit(dst, s []byte, escape, final bool) (out []byte, n int, short bool) {
	c := s[0]
	if c < 0x80 {
		if escape {
			return appendASCIIByte(dst, c), 1, false
		}
		return append(dst, c), 1, false
	}

	r, n, ok, truncated := decode(s)
	if truncated && !final {
		return dst, 0, true
	}
	if ok {
		return appendRef(dst, r), n, false
	}
	for _, b := range s[:n] {
		dst = appendRef(dst, uint32(b))
	}
	return dst, n, false
}

func appendASCIIByte(dst []byte, c byte) []byte {
	switch c {
	case '<':
		return append(dst, "&lt;"...)
	case '>':
		return append(dst, "&gt;"...)
	case '\'':
		return append(dst, "&#39;"...)
	case '&':
		return append(dst, "&amp;"...)
	case '"':
		return append(dst, "&quot;"...)
	case '\r', '\n', '\v', '\f':
		return dst
	}
	if c == ' ' || c == '\t' || (c > 0x20 && c < 0x7f) {
		return append(dst, c)
	}
	return appendRef(dst, uint32(c))
}

func appendRef(dst []byte, v uint32) []byte {
	dst = append(dst, '&', '#')
	dst = strconv.AppendUint(dst, uint64(v), 10)
	return append(dst, ';')
}

// decode interprets s[0] as the lead byte of a multi-byte sequence.
//
// On success it returns the scalar value and the sequence length. Otherwise
// n is the number of bytes consumed by the failed attempt: 1 for a stray
// continuation or an impossible lead byte, up to and including the first bad
// continuation byte, or all of s when s ends early (truncated is then set).
func decode(s []byte) (r uint32, n int, ok, truncated bool) {
	c := s[0]
	var need int
	switch {
	case c < 0xC0:
		return 0, 1, false, false
	case c < 0xE0:
		need, r = 1, uint32(c&0x1F)
	case c < 0xF0:
		need, r = 2, uint32(c&0x0F)
	case c < 0xF8:
		need, r = 3, uint32(c&0x07)
	default:
		return 0, 1, false, false
	}
	for i := 1; i <= need; i++ {
		if i >= len(s) {
			return 0, i, false, true
		}
		b := s[i]
		if b&0xC0 != 0x80 {
			return 0, i + 1, false, false
		}
		r = r<<6 | uint32(b&0x3F)
	}
	return r, need + 1, true, false
}
