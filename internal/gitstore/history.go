package gitstore

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// FileStat is the line delta of one file in a commit.
type FileStat struct {
	Name    string
	Added   int
	Deleted int
}

// Commit is the subset of a commit object the pages show.
type Commit struct {
	Hash      plumbing.Hash
	Parents   []plumbing.Hash
	Author    object.Signature
	Committer object.Signature
	Message   string
	Stats     []FileStat
	Added     int
	Deleted   int
}

// Short returns the abbreviated hash.
func (c *Commit) Short() string { return c.Hash.String()[:7] }

// Summary returns the first line of the message.
func (c *Commit) Summary() string {
	line, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimSpace(line)
}

func newCommit(c *object.Commit) (*Commit, error) {
	out := &Commit{
		Hash:      c.Hash,
		Parents:   slices.Clone(c.ParentHashes),
		Author:    c.Author,
		Committer: c.Committer,
		Message:   c.Message,
	}
	stats, err := c.Stats()
	if err != nil {
		return nil, fmt.Errorf("stats of %s: %w", c.Hash, err)
	}
	for _, st := range stats {
		out.Stats = append(out.Stats, FileStat{Name: st.Name, Added: st.Addition, Deleted: st.Deletion})
		out.Added += st.Addition
		out.Deleted += st.Deletion
	}
	return out, nil
}

// Commits walks the history from rev, newest first. A negative limit
// walks everything.
func (s *Store) Commits(rev plumbing.Hash, limit int) ([]*Commit, error) {
	iter, err := s.repo.Log(&git.LogOptions{From: rev})
	if err != nil {
		return nil, fmt.Errorf("log %s: %w", rev, err)
	}
	defer iter.Close()

	var out []*Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if limit >= 0 && len(out) >= limit {
			return storer.ErrStop
		}
		commit, err := newCommit(c)
		if err != nil {
			return err
		}
		out = append(out, commit)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Diff returns the unified diff of rev against its first parent, or
// against the empty tree for a root commit.
func (s *Store) Diff(rev plumbing.Hash) (string, error) {
	c, err := s.repo.CommitObject(rev)
	if err != nil {
		return "", fmt.Errorf("commit %s: %w", rev, err)
	}
	to, err := c.Tree()
	if err != nil {
		return "", err
	}
	from := &object.Tree{}
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return "", fmt.Errorf("parent of %s: %w", rev, err)
		}
		if from, err = parent.Tree(); err != nil {
			return "", err
		}
	}
	patch, err := from.Patch(to)
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", rev, err)
	}
	return patch.String(), nil
}

// RefKind separates branches from tags.
type RefKind int

const (
	RefBranch RefKind = iota
	RefTag
)

// Ref is a branch or tag resolved to the commit it points at.
type Ref struct {
	Name    string
	Kind    RefKind
	Target  plumbing.Hash
	Author  object.Signature
	When    time.Time
	Message string // tag annotation, empty for branches and lightweight tags
}

// Refs lists branches then tags, each newest first.
func (s *Store) Refs() ([]Ref, error) {
	var branches, tags []Ref

	biter, err := s.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	err = biter.ForEach(func(ref *plumbing.Reference) error {
		c, err := s.repo.CommitObject(ref.Hash())
		if err != nil {
			return fmt.Errorf("branch %s: %w", ref.Name().Short(), err)
		}
		branches = append(branches, Ref{
			Name:   ref.Name().Short(),
			Kind:   RefBranch,
			Target: c.Hash,
			Author: c.Author,
			When:   c.Committer.When,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	titer, err := s.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	err = titer.ForEach(func(ref *plumbing.Reference) error {
		r, ok, err := s.tagRef(ref)
		if err != nil {
			return err
		}
		if ok {
			tags = append(tags, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	newestFirst := func(a, b Ref) int {
		if c := b.When.Compare(a.When); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	}
	slices.SortFunc(branches, newestFirst)
	slices.SortFunc(tags, newestFirst)
	return append(branches, tags...), nil
}

// tagRef resolves annotated and lightweight tags. Tags that do not point
// at a commit are skipped.
func (s *Store) tagRef(ref *plumbing.Reference) (Ref, bool, error) {
	r := Ref{Name: ref.Name().Short(), Kind: RefTag}

	tag, err := s.repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		c, err := tag.Commit()
		if errors.Is(err, object.ErrUnsupportedObject) {
			return r, false, nil
		}
		if err != nil {
			return r, false, fmt.Errorf("tag %s: %w", r.Name, err)
		}
		r.Target = c.Hash
		r.Author = tag.Tagger
		r.When = tag.Tagger.When
		r.Message = strings.TrimSpace(tag.Message)
		return r, true, nil
	case !errors.Is(err, plumbing.ErrObjectNotFound):
		return r, false, fmt.Errorf("tag %s: %w", r.Name, err)
	}

	c, err := s.repo.CommitObject(ref.Hash())
	if errors.Is(err, plumbing.ErrObjectNotFound) {
		return r, false, nil
	}
	if err != nil {
		return r, false, fmt.Errorf("tag %s: %w", r.Name, err)
	}
	r.Target = c.Hash
	r.Author = c.Author
	r.When = c.Committer.When
	return r, true, nil
}
