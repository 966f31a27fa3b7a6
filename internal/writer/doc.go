// Package writer renders the static pages of a repository and of the site
// index.
//
// Pages are produced with text/template. Every string that comes from a
// repository (names, messages, paths, overlay values) passes through the
// enc helper, which applies the markup encoding, so the output is pure
// ASCII and cannot carry injected markup. Pre-rendered fragments such as
// highlighter or Markdown output are forced to ASCII with markup.AppendASCII
// before they are inserted.
package writer
