// Package markup turns untrusted bytes (commit messages, author names, file
// names, file contents) into text that is safe inside HTML and XML element
// content and quoted attribute values.
//
// The output is always pure ASCII: every non-ASCII scalar is written as a
// decimal character reference, and bytes that do not form valid UTF-8 are
// written one reference per byte instead of being dropped. Line breaks are
// removed because every encoded field is rendered on a single line.
package markup
