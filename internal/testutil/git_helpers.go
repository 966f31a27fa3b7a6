// Package testutil builds fixture repositories and checks generated output.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Epoch is the author time of the first fixture commit. Each following
// commit is one hour later so that ordering by time is stable.
var Epoch = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// RepoFixture is a non-bare repository in a temporary directory.
type RepoFixture struct {
	t        *testing.T
	Repo     *git.Repository
	Worktree *git.Worktree
	Dir      string
	commits  int
}

// NewRepo initializes an empty repository below t.TempDir(). name becomes
// the last path segment of Dir.
func NewRepo(t *testing.T, name string) *RepoFixture {
	t.Helper()

	dir := filepath.Join(t.TempDir(), name)
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to initialize git repo: %v", err)
	}
	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("failed to get worktree: %v", err)
	}
	return &RepoFixture{t: t, Repo: repo, Worktree: w, Dir: dir}
}

// Write creates or replaces a file in the worktree and stages it.
func (f *RepoFixture) Write(path, content string) *RepoFixture {
	f.t.Helper()
	full := filepath.Join(f.Dir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		f.t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		f.t.Fatalf("write %s: %v", path, err)
	}
	if _, err := f.Worktree.Add(path); err != nil {
		f.t.Fatalf("add %s: %v", path, err)
	}
	return f
}

// Remove deletes a file from the worktree and the index.
func (f *RepoFixture) Remove(path string) *RepoFixture {
	f.t.Helper()
	if _, err := f.Worktree.Remove(path); err != nil {
		f.t.Fatalf("remove %s: %v", path, err)
	}
	return f
}

// Submodule stages a gitlink at path pointing at target. The target commit
// is not present in the repository, just as for an uninitialized submodule.
func (f *RepoFixture) Submodule(path string, target plumbing.Hash) *RepoFixture {
	f.t.Helper()
	idx, err := f.Repo.Storer.Index()
	if err != nil {
		f.t.Fatalf("read index: %v", err)
	}
	e := idx.Add(path)
	e.Hash = target
	e.Mode = filemode.Submodule
	if err := f.Repo.Storer.SetIndex(idx); err != nil {
		f.t.Fatalf("write index: %v", err)
	}
	return f
}

// Signature returns the fixture identity at the time of the next commit.
func (f *RepoFixture) Signature() *object.Signature {
	return &object.Signature{
		Name:  "Test User",
		Email: "test@example.com",
		When:  Epoch.Add(time.Duration(f.commits) * time.Hour),
	}
}

// Commit records the staged changes.
func (f *RepoFixture) Commit(message string) plumbing.Hash {
	f.t.Helper()
	sig := f.Signature()
	h, err := f.Worktree.Commit(message, &git.CommitOptions{Author: sig, Committer: sig, AllowEmptyCommits: true})
	if err != nil {
		f.t.Fatalf("commit %q: %v", message, err)
	}
	f.commits++
	return h
}

// Tag creates a tag at HEAD, annotated when message is not empty.
func (f *RepoFixture) Tag(name, message string) {
	f.t.Helper()
	head, err := f.Repo.Head()
	if err != nil {
		f.t.Fatalf("tag %s: %v", name, err)
	}
	var opts *git.CreateTagOptions
	if message != "" {
		opts = &git.CreateTagOptions{Tagger: f.Signature(), Message: message}
	}
	if _, err := f.Repo.CreateTag(name, head.Hash(), opts); err != nil {
		f.t.Fatalf("tag %s: %v", name, err)
	}
}

// Branch creates a branch at HEAD without checking it out.
func (f *RepoFixture) Branch(name string) {
	f.t.Helper()
	head, err := f.Repo.Head()
	if err != nil {
		f.t.Fatalf("branch %s: %v", name, err)
	}
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), head.Hash())
	if err := f.Repo.Storer.SetReference(ref); err != nil {
		f.t.Fatalf("branch %s: %v", name, err)
	}
}

// SetConfig sets an option in the repository's own git config.
func (f *RepoFixture) SetConfig(section, option, value string) {
	f.t.Helper()
	cfg, err := f.Repo.Config()
	if err != nil {
		f.t.Fatalf("read config: %v", err)
	}
	cfg.Raw.Section(section).SetOption(option, value)
	if err := f.Repo.SetConfig(cfg); err != nil {
		f.t.Fatalf("write config: %v", err)
	}
}

// NewBareRepo initializes a bare repository without commits.
func NewBareRepo(t *testing.T, name string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	if _, err := git.PlainInit(dir, true); err != nil {
		t.Fatalf("failed to initialize bare repo: %v", err)
	}
	return dir
}
