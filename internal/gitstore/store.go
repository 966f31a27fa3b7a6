package gitstore

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrNotFound is returned when a path does not exist at a revision.
var ErrNotFound = errors.New("object not found")

// Kind classifies the object a path names at a revision.
type Kind int

const (
	KindMissing Kind = iota
	KindBlob
	KindTree
	KindSubmodule
)

func (k Kind) String() string {
	switch k {
	case KindBlob:
		return "blob"
	case KindTree:
		return "tree"
	case KindSubmodule:
		return "submodule"
	default:
		return "missing"
	}
}

const (
	treeCacheSize = 64
	kindCacheSize = 1024
)

type lookupKey struct {
	rev  plumbing.Hash
	path string
}

// Store wraps an opened repository.
type Store struct {
	path  string
	repo  *git.Repository
	trees *lru.Cache[plumbing.Hash, *object.Tree]
	kinds *lru.Cache[lookupKey, Kind]
}

// Open opens the repository at path. Parent directories are not searched.
func Open(path string) (*Store, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: false})
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}
	trees, err := lru.New[plumbing.Hash, *object.Tree](treeCacheSize)
	if err != nil {
		return nil, err
	}
	kinds, err := lru.New[lookupKey, Kind](kindCacheSize)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, repo: repo, trees: trees, kinds: kinds}, nil
}

// Path returns the path the store was opened from.
func (s *Store) Path() string { return s.path }

// Close releases the object store. The Store must not be used afterwards.
func (s *Store) Close() error {
	if s == nil || s.repo == nil {
		return nil
	}
	s.trees.Purge()
	s.kinds.Purge()
	var err error
	if c, ok := s.repo.Storer.(io.Closer); ok {
		err = c.Close()
	}
	s.repo = nil
	return err
}

// Head resolves HEAD to a commit. ok is false for a repository without
// commits or with a dangling HEAD; that is not an error.
func (s *Store) Head() (hash plumbing.Hash, ok bool, err error) {
	ref, err := s.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return plumbing.ZeroHash, false, nil
	}
	if err != nil {
		return plumbing.ZeroHash, false, fmt.Errorf("resolve HEAD: %w", err)
	}
	return ref.Hash(), true, nil
}

func (s *Store) tree(rev plumbing.Hash) (*object.Tree, error) {
	if t, ok := s.trees.Get(rev); ok {
		return t, nil
	}
	commit, err := s.repo.CommitObject(rev)
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", rev, err)
	}
	t, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("tree of %s: %w", rev, err)
	}
	s.trees.Add(rev, t)
	return t, nil
}

// Kind reports what path names in the tree of rev. A path that runs
// through a blob or a submodule names nothing.
func (s *Store) Kind(rev plumbing.Hash, path string) (Kind, error) {
	key := lookupKey{rev: rev, path: path}
	if k, ok := s.kinds.Get(key); ok {
		return k, nil
	}
	t, err := s.tree(rev)
	if err != nil {
		return KindMissing, err
	}
	k := KindMissing
	entry, err := t.FindEntry(path)
	switch {
	case errors.Is(err, object.ErrEntryNotFound),
		errors.Is(err, object.ErrDirectoryNotFound),
		errors.Is(err, plumbing.ErrObjectNotFound):
	case err != nil:
		return KindMissing, fmt.Errorf("lookup %s:%s: %w", rev, path, err)
	case entry.Mode == filemode.Submodule:
		k = KindSubmodule
	case entry.Mode == filemode.Dir:
		k = KindTree
	case entry.Mode.IsFile():
		k = KindBlob
	}
	s.kinds.Add(key, k)
	return k, nil
}

// ExtraPins returns the space separated gitin.pinfiles option from the
// repository's own git config, or "" when unset.
func (s *Store) ExtraPins() (string, error) {
	cfg, err := s.repo.Config()
	if err != nil {
		return "", fmt.Errorf("read repository config: %w", err)
	}
	if cfg.Raw == nil || !cfg.Raw.HasSection("gitin") {
		return "", nil
	}
	return cfg.Raw.Section("gitin").Option("pinfiles"), nil
}
