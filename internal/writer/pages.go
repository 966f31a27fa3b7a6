package writer

import (
	"context"
	"io"
	"log/slog"
	"strings"

	ferrors "git.home.luguber.info/inful/gitin/internal/foundation/errors"
	"git.home.luguber.info/inful/gitin/internal/gitstore"
	"git.home.luguber.info/inful/gitin/internal/logfields"
	"git.home.luguber.info/inful/gitin/internal/repo"
)

type logPage struct {
	Header
	Commits []*gitstore.Commit
}

type refsPage struct {
	Header
	Branches []gitstore.Ref
	Tags     []gitstore.Ref
}

type treePage struct {
	Header
	Files []gitstore.FileEntry
}

type blobPage struct {
	Header
	Blob  *gitstore.Blob
	Body  string
	Limit int64
}

type commitPage struct {
	Header
	Commit       *gitstore.Commit
	Diff         []diffLine
	DiffTooLarge bool
}

// diffLine is one line of a unified diff with its CSS class.
type diffLine struct {
	Class string
	Text  string
}

func (w *Writer) writeLog(_ context.Context, e *emission) error {
	data := logPage{Header: w.header(e.d, "Log", w.cfg.FileIndex, e.archive), Commits: e.commits}
	if err := writeFile(e.d.DestinationPath, w.cfg.FileIndex, func(out io.Writer) error {
		return render(out, "log", data)
	}); err != nil {
		return err
	}
	w.wrote(KindLog, 1)
	return nil
}

func (w *Writer) writeRefs(_ context.Context, e *emission) error {
	data := refsPage{Header: w.header(e.d, "Refs", w.cfg.FileLog, e.archive)}
	for _, r := range e.refs {
		if r.Kind == gitstore.RefTag {
			data.Tags = append(data.Tags, r)
		} else {
			data.Branches = append(data.Branches, r)
		}
	}
	if err := writeFile(e.d.DestinationPath, w.cfg.FileLog, func(out io.Writer) error {
		return render(out, "refs", data)
	}); err != nil {
		return err
	}
	w.wrote(KindRefs, 1)
	return nil
}

func (w *Writer) writeTree(_ context.Context, e *emission) error {
	files, err := e.d.Files()
	if err != nil {
		return ferrors.GitError("unable to list files").WithCause(err).WithPath(e.d.SourcePath).Build()
	}
	data := treePage{Header: w.header(e.d, "Files", w.cfg.FileTree, e.archive), Files: files}
	if err := writeFile(e.d.DestinationPath, w.cfg.FileTree, func(out io.Writer) error {
		return render(out, "tree", data)
	}); err != nil {
		return err
	}
	w.wrote(KindTree, 1)
	return nil
}

// writeFiles writes one page per file of the head tree.
func (w *Writer) writeFiles(ctx context.Context, e *emission) error {
	if e.d.Head == nil {
		return nil
	}
	files, err := e.d.Files()
	if err != nil {
		return ferrors.GitError("unable to list files").WithCause(err).WithPath(e.d.SourcePath).Build()
	}
	n := 0
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.writeBlob(ctx, e, f.Path); err != nil {
			return err
		}
		n++
	}
	w.wrote(KindFile, n)
	return nil
}

func (w *Writer) writeBlob(ctx context.Context, e *emission, name string) error {
	blob, err := e.store.ReadBlob(*e.d.Head, name, w.cfg.LimitFileSize)
	if err != nil {
		return ferrors.GitError("unable to read file").WithCause(err).WithPath(name).Build()
	}
	rel := filePage(name)
	data := blobPage{
		Header: w.header(e.d, name, rel, e.archive),
		Blob:   blob,
		Limit:  w.cfg.LimitFileSize,
	}
	if !blob.Binary && !blob.Truncated {
		data.Body = string(w.blobBody(ctx, name, blob.Data, data.RepoRoot))
	}
	return writeFile(e.d.DestinationPath, rel, func(out io.Writer) error {
		return render(out, "blob", data)
	})
}

// blobBody renders Markdown, then tries the highlighter and finally falls
// back to numbered plain lines.
func (w *Writer) blobBody(ctx context.Context, name string, data []byte, repoRoot string) []byte {
	if isMarkdown(name) {
		out, err := renderMarkdown(w.md, name, data, repoRoot)
		if err == nil {
			return append(append([]byte(`<div id="readme">`+"\n"), out...), "</div>\n"...)
		}
		slog.Warn("Markdown rendering failed", logfields.File(name), logfields.Error(err))
	}
	if out, ok := w.hl.Highlight(ctx, name, data); ok {
		return out
	}
	return plainLines(data)
}

// writeCommits writes a page for every commit of the log.
func (w *Writer) writeCommits(ctx context.Context, e *emission) error {
	n := 0
	for _, c := range e.commits {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.writeCommit(e, c); err != nil {
			return err
		}
		n++
	}
	w.wrote(KindCommit, n)
	return nil
}

func (w *Writer) writeCommit(e *emission, c *gitstore.Commit) error {
	rel := repo.CommitDir + "/" + c.Hash.String() + ".html"
	data := commitPage{
		Header: w.header(e.d, c.Summary(), rel, e.archive),
		Commit: c,
	}
	diff, err := e.store.Diff(c.Hash)
	if err != nil {
		return ferrors.GitError("unable to compute diff").WithCause(err).WithContext("revision", c.Hash.String()).Build()
	}
	if w.cfg.LimitFileSize >= 0 && int64(len(diff)) > w.cfg.LimitFileSize {
		data.DiffTooLarge = true
	} else {
		data.Diff = diffLines(diff)
	}
	return writeFile(e.d.DestinationPath, rel, func(out io.Writer) error {
		return render(out, "commit", data)
	})
}

// diffLines splits a unified diff and classifies every line.
func diffLines(diff string) []diffLine {
	if diff == "" {
		return nil
	}
	raw := strings.Split(strings.TrimSuffix(diff, "\n"), "\n")
	lines := make([]diffLine, len(raw))
	for i, l := range raw {
		lines[i] = diffLine{Class: diffClass(l), Text: l}
	}
	return lines
}

func diffClass(line string) string {
	switch {
	case strings.HasPrefix(line, "diff --git"),
		strings.HasPrefix(line, "+++ "),
		strings.HasPrefix(line, "--- "):
		return "b"
	case strings.HasPrefix(line, "@@"):
		return "h"
	case strings.HasPrefix(line, "+"):
		return "i"
	case strings.HasPrefix(line, "-"):
		return "d"
	}
	return ""
}
