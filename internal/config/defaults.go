package config

import (
	"fmt"
	"strings"
)

// RepoConfigFile is the repository-local configuration, read from the
// repository directory given on the command line (the git directory of a
// bare repository). It is never read from a revision.
const RepoConfigFile = "gitin.conf"

// Default values.
const (
	DefaultName         = "My Repositories"
	DefaultFooter       = "Generated by <i><code>gitin</code></i>!"
	DefaultHighlightCmd = "chroma --html --html-only --html-lines --html-inline-styles --style=$scheme --lexer=$type"
	DefaultPinFiles     = "LICENSE LICENSE.md COPYING README README.md"
	DefaultMaxPins      = 8
	DefaultMaxFileSize  = 1_000_000
)

// Default returns a configuration populated with the built-in defaults.
func Default() *Config {
	return &Config{
		Name:           DefaultName,
		Footer:         DefaultFooter,
		Favicon:        "favicon.svg",
		FaviconType:    "image/svg+xml",
		LogoIcon:       "logo.svg",
		Stylesheet:     "style.css",
		HighlightCmd:   DefaultHighlightCmd,
		ColorScheme:    "pastie",
		PinFiles:       DefaultPinFiles,
		LimitCommits:   -1,
		LimitFileSize:  DefaultMaxFileSize,
		LimitPins:      DefaultMaxPins,
		FileIndex:      "index.html",
		FileLog:        "log.html",
		FileTree:       "tree.html",
		FileJSON:       "commits.json",
		FileCommitAtom: "atom.xml",
		FileTagAtom:    "tags.xml",
	}
}

// Validate rejects settings the writers cannot work with.
func (c *Config) Validate() error {
	if c.LimitPins < 0 {
		return fmt.Errorf("limit/pins must not be negative, got %d", c.LimitPins)
	}
	if c.LimitFileSize < 0 {
		return fmt.Errorf("limit/filesize must not be negative, got %d", c.LimitFileSize)
	}
	outputs := []struct{ key, name string }{
		{"files/index", c.FileIndex},
		{"files/log", c.FileLog},
		{"files/files", c.FileTree},
		{"files/json", c.FileJSON},
		{"files/commit-atom", c.FileCommitAtom},
		{"files/tag-atom", c.FileTagAtom},
	}
	for _, o := range outputs {
		if o.name == "" || o.name == "." || o.name == ".." || strings.ContainsRune(o.name, '/') {
			return fmt.Errorf("%s must be a plain file name, got %q", o.key, o.name)
		}
	}
	return nil
}
