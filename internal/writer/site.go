package writer

import (
	"io"
	"os"
	"time"

	"git.home.luguber.info/inful/gitin/internal/config"
	ferrors "git.home.luguber.info/inful/gitin/internal/foundation/errors"
	"git.home.luguber.info/inful/gitin/internal/metrics"
	"git.home.luguber.info/inful/gitin/internal/repo"
)

// SiteEntry is one line of the site index.
type SiteEntry struct {
	Name        string
	Description string
	RepoPath    string
	LastCommit  time.Time
}

type sitePage struct {
	Header
	Entries []SiteEntry
}

// SiteIndex collects the repositories of a run and writes the top-level
// index page listing them in the order they were added.
type SiteIndex struct {
	cfg      *config.Config
	recorder metrics.Recorder
	entries  []SiteEntry
}

// NewSiteIndex returns an empty index.
func NewSiteIndex(cfg *config.Config, recorder metrics.Recorder) *SiteIndex {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &SiteIndex{cfg: cfg, recorder: recorder}
}

// Add records a repository whose pages were written.
func (s *SiteIndex) Add(d *repo.Descriptor) {
	s.entries = append(s.entries, SiteEntry{
		Name:        d.Name,
		Description: d.Description,
		RepoPath:    d.RepoPath,
		LastCommit:  d.LastCommit,
	})
}

// Entries returns the recorded repositories.
func (s *SiteIndex) Entries() []SiteEntry { return s.entries }

// Write writes the index page to destRoot.
func (s *SiteIndex) Write(destRoot string) error {
	data := sitePage{
		Header:  Header{Title: s.cfg.Name, Site: s.cfg},
		Entries: s.entries,
	}
	if err := writeFile(destRoot, s.cfg.FileIndex, func(out io.Writer) error {
		return render(out, "site", data)
	}); err != nil {
		return err
	}
	s.recorder.AddPagesWritten(KindSite, 1)
	return nil
}

// CopyAssets copies the configured stylesheet, favicon and logo into
// destRoot under the names the pages link to. Unset sources are skipped.
func CopyAssets(cfg *config.Config, destRoot string) error {
	assets := []struct{ src, name string }{
		{cfg.CopyStylesheet, cfg.Stylesheet},
		{cfg.CopyFavicon, cfg.Favicon},
		{cfg.CopyLogoIcon, cfg.LogoIcon},
	}
	for _, a := range assets {
		if a.src == "" || a.name == "" {
			continue
		}
		if err := copyAsset(a.src, destRoot, a.name); err != nil {
			return err
		}
	}
	return nil
}

func copyAsset(src, destRoot, name string) error {
	// #nosec G304 -- src is site configuration.
	in, err := os.Open(src)
	if err != nil {
		return ferrors.SetupError("unable to open asset").WithCause(err).WithPath(src).Build()
	}
	defer func() { _ = in.Close() }()
	return writeFile(destRoot, name, func(out io.Writer) error {
		_, err := io.Copy(out, in)
		return err
	})
}
