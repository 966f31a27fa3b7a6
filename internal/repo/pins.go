package repo

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/gitin/internal/gitstore"
)

// SubmodulesFile marks a repository with submodules.
const SubmodulesFile = ".gitmodules"

// Lookuper answers what a path names at a revision. *gitstore.Store
// satisfies it.
type Lookuper interface {
	Kind(rev plumbing.Hash, path string) (gitstore.Kind, error)
}

// PinCandidates is the ordered list of notable file names searched for at
// the head revision.
type PinCandidates []string

// NewPinCandidates returns the global list followed by the space separated
// names of extra.
func NewPinCandidates(global []string, extra string) PinCandidates {
	out := make(PinCandidates, 0, len(global))
	out = append(out, global...)
	return append(out, strings.Fields(extra)...)
}

// ResolvePins keeps, in candidate order, the names that are regular files
// at head. Duplicates are skipped and checking stops once max names are
// kept.
func ResolvePins(lookup Lookuper, head plumbing.Hash, candidates PinCandidates, max int) ([]string, error) {
	if max <= 0 {
		return nil, nil
	}
	pinned := make([]string, 0, min(max, len(candidates)))
	seen := make(map[string]bool, len(candidates))
	for _, name := range candidates {
		if len(pinned) >= max {
			break
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		kind, err := lookup.Kind(head, name)
		if err != nil {
			return nil, err
		}
		if kind == gitstore.KindBlob {
			pinned = append(pinned, name)
		}
	}
	return pinned, nil
}

// HasSubmodules reports whether .gitmodules is a regular file at head.
func HasSubmodules(lookup Lookuper, head plumbing.Hash) (bool, error) {
	kind, err := lookup.Kind(head, SubmodulesFile)
	if err != nil {
		return false, err
	}
	return kind == gitstore.KindBlob, nil
}
