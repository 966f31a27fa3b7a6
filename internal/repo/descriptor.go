package repo

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/gitin/internal/gitstore"
	"git.home.luguber.info/inful/gitin/internal/paths"
)

// Descriptor describes one repository for the duration of one run.
type Descriptor struct {
	SourcePath      string
	RepoPath        string // canonical, relative, never escapes
	DestinationPath string
	Name            string
	RelativeDepth   int

	Description string
	CloneURL    string

	Head          *plumbing.Hash
	PinnedFiles   []string
	HasSubmodules bool
	LastCommit    time.Time // author date of the newest commit, set once pages are written

	store *gitstore.Store
	files []gitstore.FileEntry
}

// NewDescriptor derives the identifying path, display name, link depth and
// destination of the repository at sourcePath. The destination is always
// inside destRoot.
func NewDescriptor(sourcePath, destRoot string) (*Descriptor, error) {
	absRoot, err := filepath.Abs(destRoot)
	if err != nil {
		return nil, fmt.Errorf("destination %s: %w", destRoot, err)
	}
	root, err := paths.Canonicalize(filepath.ToSlash(absRoot))
	if err != nil {
		return nil, fmt.Errorf("destination %s: %w", destRoot, err)
	}

	repoPath, err := identifyingPath(sourcePath)
	if err != nil {
		return nil, err
	}
	dest, err := paths.Join(root, repoPath)
	if err != nil {
		return nil, fmt.Errorf("destination for %s: %w", sourcePath, err)
	}
	if !paths.Within(root, dest) {
		return nil, fmt.Errorf("destination %s escapes %s", dest, root)
	}

	return &Descriptor{
		SourcePath:      sourcePath,
		RepoPath:        repoPath,
		DestinationPath: dest,
		Name:            repoPath[strings.LastIndexByte(repoPath, '/')+1:],
		RelativeDepth:   strings.Count(repoPath, "/") + 1,
	}, nil
}

// identifyingPath anchors sourcePath so that leading ".." segments are
// consumed. Paths that reduce to nothing ("." or "/") fall back to the
// base name of the absolute source directory.
func identifyingPath(sourcePath string) (string, error) {
	anchored, err := paths.Canonicalize("/" + filepath.ToSlash(sourcePath))
	if err != nil {
		return "", fmt.Errorf("repository path %s: %w", sourcePath, err)
	}
	rel := strings.Trim(anchored, "/")
	if rel != "" {
		return rel, nil
	}
	abs, err := filepath.Abs(sourcePath)
	if err != nil {
		return "", fmt.Errorf("repository path %s: %w", sourcePath, err)
	}
	base := filepath.Base(abs)
	if base == string(filepath.Separator) || base == "." {
		return "", errors.New("cannot derive a repository name from " + sourcePath)
	}
	return base, nil
}

// RootPrefix is the relative link from the repository's pages back to the
// site root, one "../" per segment of RepoPath.
func (d *Descriptor) RootPrefix() string {
	return strings.Repeat("../", d.RelativeDepth)
}

// HeadShort returns the abbreviated head revision, or "" for an empty
// repository.
func (d *Descriptor) HeadShort() string {
	if d.Head == nil {
		return ""
	}
	return d.Head.String()[:7]
}

// Attach hands the opened store to the descriptor. Release closes it.
func (d *Descriptor) Attach(s *gitstore.Store) { d.store = s }

// Store returns the attached store, nil before Attach or after Release.
func (d *Descriptor) Store() *gitstore.Store { return d.store }

// Files lists the head tree once and caches the result for the rest of the
// run. An empty repository has no files.
func (d *Descriptor) Files() ([]gitstore.FileEntry, error) {
	if d.files != nil || d.Head == nil {
		return d.files, nil
	}
	if d.store == nil {
		return nil, errors.New("repository store is not open")
	}
	files, err := d.store.Files(*d.Head)
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []gitstore.FileEntry{}
	}
	d.files = files
	return d.files, nil
}

// Release closes the store and drops cached listings. It is safe to call
// more than once.
func (d *Descriptor) Release() error {
	d.files = nil
	if d.store == nil {
		return nil
	}
	err := d.store.Close()
	d.store = nil
	return err
}
