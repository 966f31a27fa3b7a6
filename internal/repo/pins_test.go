package repo

import (
	"errors"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/gitin/internal/gitstore"
	"git.home.luguber.info/inful/gitin/internal/testutil"
)

// fakeTree answers lookups from a fixed map and records what was asked.
type fakeTree struct {
	kinds map[string]gitstore.Kind
	asked []string
	err   error
}

func (f *fakeTree) Kind(_ plumbing.Hash, path string) (gitstore.Kind, error) {
	f.asked = append(f.asked, path)
	if f.err != nil {
		return gitstore.KindMissing, f.err
	}
	return f.kinds[path], nil
}

func TestResolvePins_KeepsCandidateOrder(t *testing.T) {
	tree := &fakeTree{kinds: map[string]gitstore.Kind{"README": gitstore.KindBlob}}

	pins, err := ResolvePins(tree, plumbing.ZeroHash, PinCandidates{"LICENSE", "README"}, 8)
	require.NoError(t, err)
	assert.Equal(t, []string{"README"}, pins)
}

func TestResolvePins(t *testing.T) {
	tree := &fakeTree{kinds: map[string]gitstore.Kind{
		"LICENSE":   gitstore.KindBlob,
		"README.md": gitstore.KindBlob,
		"COPYING":   gitstore.KindTree,
		"NOTICE":    gitstore.KindBlob,
		"vendor":    gitstore.KindSubmodule,
	}}
	candidates := NewPinCandidates([]string{"README.md", "COPYING", "LICENSE", "README.md"}, " NOTICE  vendor ")
	assert.Equal(t, PinCandidates{"README.md", "COPYING", "LICENSE", "README.md", "NOTICE", "vendor"}, candidates)

	pins, err := ResolvePins(tree, plumbing.ZeroHash, candidates, 8)
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "LICENSE", "NOTICE"}, pins)
	assert.Equal(t, []string{"README.md", "COPYING", "LICENSE", "NOTICE", "vendor"}, tree.asked, "duplicates are not looked up again")
}

func TestResolvePins_StopsAtCapacity(t *testing.T) {
	tree := &fakeTree{kinds: map[string]gitstore.Kind{
		"a": gitstore.KindBlob, "b": gitstore.KindBlob, "c": gitstore.KindBlob,
	}}

	pins, err := ResolvePins(tree, plumbing.ZeroHash, PinCandidates{"a", "b", "c"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, pins)
	assert.Equal(t, []string{"a", "b"}, tree.asked)

	pins, err = ResolvePins(tree, plumbing.ZeroHash, PinCandidates{"a"}, 0)
	require.NoError(t, err)
	assert.Empty(t, pins)
}

func TestResolvePins_LookupError(t *testing.T) {
	boom := errors.New("corrupt object")
	_, err := ResolvePins(&fakeTree{err: boom}, plumbing.ZeroHash, PinCandidates{"README"}, 8)
	require.ErrorIs(t, err, boom)

	_, err = HasSubmodules(&fakeTree{err: boom}, plumbing.ZeroHash)
	require.ErrorIs(t, err, boom)
}

func TestResolvePins_AgainstRepository(t *testing.T) {
	f := testutil.NewRepo(t, "pinned")
	head := f.Write("README", "read me\n").
		Write("LICENSE.md/notes", "a directory named like a pin\n").
		Write(".gitmodules", "").
		Commit("initial")

	s, err := gitstore.Open(f.Dir)
	require.NoError(t, err)
	defer s.Close()

	pins, err := ResolvePins(s, head, NewPinCandidates([]string{"LICENSE", "LICENSE.md", "COPYING", "README", "README.md"}, ""), 8)
	require.NoError(t, err)
	assert.Equal(t, []string{"README"}, pins)

	sub, err := HasSubmodules(s, head)
	require.NoError(t, err)
	assert.True(t, sub)
}
