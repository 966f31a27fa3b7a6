package config

import (
	"strings"

	"git.home.luguber.info/inful/gitin/internal/confparse"
)

// Config holds the process-wide settings. It is loaded once before the
// first repository and never changed afterwards.
type Config struct {
	// Site information
	Name        string
	Description string
	Footer      string

	// Assets referenced from every page, relative to the site root.
	Favicon     string
	FaviconType string
	LogoIcon    string
	Stylesheet  string

	// External syntax highlighter. $scheme and $type are substituted.
	HighlightCmd string
	ColorScheme  string

	// Space separated candidates for pinned files.
	PinFiles string

	LimitCommits  int64 // -1 means no limit
	LimitFileSize int64
	LimitPins     int64

	// Output file names inside each repository directory.
	FileIndex      string
	FileLog        string
	FileTree       string
	FileJSON       string
	FileCommitAtom string
	FileTagAtom    string

	// Files copied into the destination root when set.
	CopyStylesheet string
	CopyFavicon    string
	CopyLogoIcon   string
}

// Schema declares every recognized key of the site configuration.
var Schema = confparse.Schema[Config]{
	confparse.StringField("name", func(c *Config) *string { return &c.Name }),
	confparse.StringField("description", func(c *Config) *string { return &c.Description }),
	confparse.StringField("footer", func(c *Config) *string { return &c.Footer }),
	confparse.StringField("favicon", func(c *Config) *string { return &c.Favicon }),
	confparse.StringField("favicontype", func(c *Config) *string { return &c.FaviconType }),
	confparse.StringField("logoicon", func(c *Config) *string { return &c.LogoIcon }),
	confparse.StringField("stylesheet", func(c *Config) *string { return &c.Stylesheet }),
	confparse.StringField("highlightcmd", func(c *Config) *string { return &c.HighlightCmd }),
	confparse.StringField("colorscheme", func(c *Config) *string { return &c.ColorScheme }),
	confparse.StringField("pinfiles", func(c *Config) *string { return &c.PinFiles }),
	confparse.IntField("limit/commits", func(c *Config) *int64 { return &c.LimitCommits }),
	confparse.IntField("limit/filesize", func(c *Config) *int64 { return &c.LimitFileSize }),
	confparse.IntField("limit/pins", func(c *Config) *int64 { return &c.LimitPins }),
	confparse.StringField("files/index", func(c *Config) *string { return &c.FileIndex }),
	confparse.StringField("files/log", func(c *Config) *string { return &c.FileLog }),
	confparse.StringField("files/files", func(c *Config) *string { return &c.FileTree }),
	confparse.StringField("files/json", func(c *Config) *string { return &c.FileJSON }),
	confparse.StringField("files/commit-atom", func(c *Config) *string { return &c.FileCommitAtom }),
	confparse.StringField("files/tag-atom", func(c *Config) *string { return &c.FileTagAtom }),
	confparse.StringField("copy/stylesheet", func(c *Config) *string { return &c.CopyStylesheet }),
	confparse.StringField("copy/favicon", func(c *Config) *string { return &c.CopyFavicon }),
	confparse.StringField("copy/logoicon", func(c *Config) *string { return &c.CopyLogoIcon }),
}

// PinCandidates splits PinFiles into the ordered candidate list.
func (c *Config) PinCandidates() []string {
	return strings.Fields(c.PinFiles)
}

// Set assigns a single key, as if it had been read from a file.
func (c *Config) Set(key, value string) error {
	return Schema.Set(c, key, value)
}
