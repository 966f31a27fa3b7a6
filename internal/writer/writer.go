package writer

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"git.home.luguber.info/inful/gitin/internal/config"
	ferrors "git.home.luguber.info/inful/gitin/internal/foundation/errors"
	"git.home.luguber.info/inful/gitin/internal/gitstore"
	"git.home.luguber.info/inful/gitin/internal/logfields"
	"git.home.luguber.info/inful/gitin/internal/metrics"
	"git.home.luguber.info/inful/gitin/internal/repo"
)

// Page kinds reported to the metrics recorder.
const (
	KindLog     = "log"
	KindRefs    = "refs"
	KindTree    = "tree"
	KindFile    = "file"
	KindCommit  = "commit"
	KindFeed    = "feed"
	KindJSON    = "json"
	KindArchive = "archive"
	KindSite    = "site"
)

// Header is the part of every page the layout templates read.
type Header struct {
	Title    string
	Site     *config.Config
	Repo     *repo.Descriptor
	SiteRoot string // leads back to the site root
	RepoRoot string // leads back to the repository directory
	Archive  string // archive link relative to the repository directory
}

// Writer emits all pages of one repository. It implements
// pipeline.Emitter.
type Writer struct {
	cfg      *config.Config
	recorder metrics.Recorder
	hl       *Highlighter
	md       goldmark.Markdown
}

// New returns a Writer for the site configuration. A nil recorder disables
// metrics.
func New(cfg *config.Config, recorder metrics.Recorder) *Writer {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Writer{
		cfg:      cfg,
		recorder: recorder,
		hl:       NewHighlighter(cfg.HighlightCmd, cfg.ColorScheme),
		md:       newMarkdown(),
	}
}

// emission carries what is read from the store once and shared by the
// pages of one repository.
type emission struct {
	d       *repo.Descriptor
	store   *gitstore.Store
	commits []*gitstore.Commit
	refs    []gitstore.Ref
	archive string
}

// Emit writes the log, refs, tree, file, commit, feed and JSON pages and the
// source archive of d. An empty repository gets its pages with empty
// listings and no archive.
func (w *Writer) Emit(ctx context.Context, d *repo.Descriptor) error {
	store := d.Store()
	if store == nil {
		return ferrors.InternalError("repository store is not open").WithPath(d.SourcePath).Build()
	}
	e := &emission{d: d, store: store}

	if d.Head != nil {
		commits, err := store.Commits(*d.Head, int(w.cfg.LimitCommits))
		if err != nil {
			return ferrors.GitError("unable to read commit log").WithCause(err).WithPath(d.SourcePath).Build()
		}
		e.commits = commits
		e.archive = archiveName(d)
		d.LastCommit = lastCommit(commits)
	}
	refs, err := store.Refs()
	if err != nil {
		return ferrors.GitError("unable to read refs").WithCause(err).WithPath(d.SourcePath).Build()
	}
	e.refs = refs

	steps := []func(context.Context, *emission) error{
		w.writeLog,
		w.writeRefs,
		w.writeTree,
		w.writeFiles,
		w.writeCommits,
		w.writeFeeds,
		w.writeJSON,
		w.writeArchive,
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step(ctx, e); err != nil {
			return err
		}
	}
	slog.Debug("Repository pages written",
		logfields.Repository(d.RepoPath),
		logfields.Count(len(e.commits)),
		logfields.Destination(d.DestinationPath))
	return nil
}

// header returns the layout data for a page at rel, relative to the
// repository directory.
func (w *Writer) header(d *repo.Descriptor, title, rel, archive string) Header {
	up := strings.Repeat("../", strings.Count(rel, "/"))
	return Header{
		Title:    title,
		Site:     w.cfg,
		Repo:     d,
		SiteRoot: up + d.RootPrefix(),
		RepoRoot: up,
		Archive:  archive,
	}
}

func (w *Writer) wrote(kind string, n int) {
	if n > 0 {
		w.recorder.AddPagesWritten(kind, n)
	}
}

// lastCommit returns the author date of the newest commit, or the zero time.
func lastCommit(commits []*gitstore.Commit) time.Time {
	if len(commits) == 0 {
		return time.Time{}
	}
	return commits[0].Author.When
}
