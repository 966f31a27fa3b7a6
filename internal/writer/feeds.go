package writer

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/gitin/internal/gitstore"
	"git.home.luguber.info/inful/gitin/internal/repo"
)

type feed struct {
	Repo    *repo.Descriptor
	Kind    string
	ID      uuid.UUID
	Updated time.Time
	Entries []feedEntry
}

type feedEntry struct {
	ID        uuid.UUID
	Hash      plumbing.Hash
	Title     string
	Content   string
	Author    object.Signature
	Published time.Time
	Updated   time.Time
}

// feedID is stable across runs for the same repository.
func feedID(d *repo.Descriptor, kind string) uuid.UUID {
	base := d.CloneURL
	if base == "" {
		base = "gitin:" + d.RepoPath
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(base+"#"+kind))
}

func (w *Writer) writeFeeds(_ context.Context, e *emission) error {
	commits := feed{Repo: e.d, Kind: "commits", ID: feedID(e.d, "commits")}
	for _, c := range e.commits {
		commits.Entries = append(commits.Entries, feedEntry{
			ID:        uuid.NewSHA1(commits.ID, c.Hash[:]),
			Hash:      c.Hash,
			Title:     c.Summary(),
			Content:   commitContent(c),
			Author:    c.Author,
			Published: c.Author.When,
			Updated:   c.Committer.When,
		})
	}
	if len(e.commits) > 0 {
		commits.Updated = e.commits[0].Committer.When
	}

	tags := feed{Repo: e.d, Kind: "tags", ID: feedID(e.d, "tags")}
	for _, r := range e.refs {
		if r.Kind != gitstore.RefTag {
			continue
		}
		content := r.Message
		if content == "" {
			content = r.Name + " " + r.Target.String()
		}
		tags.Entries = append(tags.Entries, feedEntry{
			ID:        uuid.NewSHA1(tags.ID, []byte(r.Name+"@"+r.Target.String())),
			Hash:      r.Target,
			Title:     r.Name,
			Content:   content,
			Author:    r.Author,
			Published: r.When,
			Updated:   r.When,
		})
		if r.When.After(tags.Updated) {
			tags.Updated = r.When
		}
	}

	for _, f := range []struct {
		name string
		data feed
	}{{w.cfg.FileCommitAtom, commits}, {w.cfg.FileTagAtom, tags}} {
		if err := writeFile(e.d.DestinationPath, f.name, func(out io.Writer) error {
			return render(out, "atom", f.data)
		}); err != nil {
			return err
		}
	}
	w.wrote(KindFeed, 2)
	return nil
}

func commitContent(c *gitstore.Commit) string {
	var b strings.Builder
	b.WriteString("commit " + c.Hash.String() + "\n")
	for _, p := range c.Parents {
		b.WriteString("parent " + p.String() + "\n")
	}
	b.WriteString("Author: " + c.Author.Name + " <" + c.Author.Email + ">\n")
	b.WriteString("Date:   " + c.Author.When.UTC().Format(feedFormat) + "\n\n")
	b.WriteString(c.Message)
	return b.String()
}

type jsonSignature struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

type jsonFile struct {
	Name    string `json:"name"`
	Added   int    `json:"added"`
	Deleted int    `json:"deleted"`
}

type jsonCommit struct {
	Hash      string        `json:"hash"`
	Parents   []string      `json:"parents"`
	Author    jsonSignature `json:"author"`
	Committer jsonSignature `json:"committer"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Files     []jsonFile    `json:"files"`
	Added     int           `json:"added"`
	Deleted   int           `json:"deleted"`
}

func signature(s object.Signature) jsonSignature {
	return jsonSignature{Name: s.Name, Email: s.Email, Date: s.When.UTC()}
}

// writeJSON writes the commit log as a JSON array, newest first.
func (w *Writer) writeJSON(_ context.Context, e *emission) error {
	out := make([]jsonCommit, 0, len(e.commits))
	for _, c := range e.commits {
		jc := jsonCommit{
			Hash:      c.Hash.String(),
			Parents:   make([]string, 0, len(c.Parents)),
			Author:    signature(c.Author),
			Committer: signature(c.Committer),
			Subject:   c.Summary(),
			Message:   c.Message,
			Files:     make([]jsonFile, 0, len(c.Stats)),
			Added:     c.Added,
			Deleted:   c.Deleted,
		}
		for _, p := range c.Parents {
			jc.Parents = append(jc.Parents, p.String())
		}
		for _, st := range c.Stats {
			jc.Files = append(jc.Files, jsonFile(st))
		}
		out = append(out, jc)
	}
	if err := writeFile(e.d.DestinationPath, w.cfg.FileJSON, func(wr io.Writer) error {
		enc := json.NewEncoder(wr)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}); err != nil {
		return err
	}
	w.wrote(KindJSON, 1)
	return nil
}

// archiveName is the tarball of the head tree, relative to the repository
// directory.
func archiveName(d *repo.Descriptor) string {
	return repo.ArchiveDir + "/" + archivePrefix(d) + ".tar.gz"
}

func archivePrefix(d *repo.Descriptor) string {
	return d.Name + "-" + d.HeadShort()
}

func (w *Writer) writeArchive(_ context.Context, e *emission) error {
	if e.d.Head == nil {
		return nil
	}
	if err := writeFile(e.d.DestinationPath, e.archive, func(out io.Writer) error {
		return e.store.Archive(*e.d.Head, archivePrefix(e.d)+"/", out)
	}); err != nil {
		return err
	}
	w.wrote(KindArchive, 1)
	return nil
}
