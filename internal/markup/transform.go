package markup

import (
	"golang.org/x/text/transform"
)

// maxUnit is the longest encoding of a single unit: four invalid bytes,
// each written as "&#255;".
const maxUnit = 4 * len("&#255;")

// Transformer applies the line encoding to a byte stream. Line breaks are
// dropped just as in AppendEncoded, so callers that want to keep lines
// split their input first.
type Transformer struct {
	transform.NopResetter
	scratch [maxUnit]byte
}

// NewTransformer returns a Transformer ready for use with transform.NewReader
// or transform.NewWriter.
func NewTransformer() *Transformer { return &Transformer{} }

// Transform implements transform.Transformer.
func (t *Transformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		out, n, short := appendUnit(t.scratch[:0], src[nSrc:], true, atEOF)
		if short {
			return nDst, nSrc, transform.ErrShortSrc
		}
		if len(dst)-nDst < len(out) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], out)
		nSrc += n
	}
	return nDst, nSrc, nil
}

// String runs s through a fresh Transformer.
func String(s string) string {
	out, _, err := transform.String(NewTransformer(), s)
	if err != nil {
		return EncodeString(s)
	}
	return out
}
