package gitstore

import (
	"archive/tar"
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/gitin/internal/testutil"
)

func openFixture(t *testing.T, f *testutil.RepoFixture) *Store {
	t.Helper()
	s, err := Open(f.Dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_DoesNotSearchParents(t *testing.T) {
	f := testutil.NewRepo(t, "parent")
	f.Write("sub/file.txt", "x").Commit("initial")

	_, err := Open(filepath.Join(f.Dir, "sub"))
	require.Error(t, err)

	_, err = Open(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestHead_EmptyRepository(t *testing.T) {
	for name, dir := range map[string]string{
		"non-bare": testutil.NewRepo(t, "empty").Dir,
		"bare":     testutil.NewBareRepo(t, "empty.git"),
	} {
		t.Run(name, func(t *testing.T) {
			s, err := Open(dir)
			require.NoError(t, err)
			defer s.Close()

			_, ok, err := s.Head()
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestKind(t *testing.T) {
	f := testutil.NewRepo(t, "kinds")
	f.Write("README", "hello\n").
		Write("docs/guide.md", "# Guide\n").
		Write(".gitmodules", "[submodule \"x\"]\n")
	head := f.Commit("initial")

	s := openFixture(t, f)
	h, ok, err := s.Head()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, head, h)

	tests := []struct {
		path string
		want Kind
	}{
		{"README", KindBlob},
		{"docs", KindTree},
		{"docs/guide.md", KindBlob},
		{".gitmodules", KindBlob},
		{"LICENSE", KindMissing},
		{"docs/missing.md", KindMissing},
		{"nodir/file", KindMissing},
		{"README/x", KindMissing},
		{"docs/guide.md/x", KindMissing},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := s.Kind(head, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			cached, err := s.Kind(head, tt.path)
			require.NoError(t, err)
			assert.Equal(t, got, cached)
		})
	}
}

func TestKind_Submodule(t *testing.T) {
	f := testutil.NewRepo(t, "super")
	f.Write("README", "hello\n").
		Submodule("vendor/lib", plumbing.NewHash("1111111111111111111111111111111111111111"))
	head := f.Commit("add submodule")
	s := openFixture(t, f)

	got, err := s.Kind(head, "vendor/lib")
	require.NoError(t, err)
	assert.Equal(t, KindSubmodule, got)

	got, err = s.Kind(head, "vendor/lib/README")
	require.NoError(t, err)
	assert.Equal(t, KindMissing, got)
}

func TestFilesAndReadBlob(t *testing.T) {
	f := testutil.NewRepo(t, "files")
	f.Write("a.txt", "0123456789").
		Write("bin.dat", "\x00\x01\x02binary").
		Write("dir/b.txt", "b")
	head := f.Commit("initial")
	s := openFixture(t, f)

	files, err := s.Files(head)
	require.NoError(t, err)
	var names []string
	for _, fe := range files {
		names = append(names, fe.Path)
	}
	assert.ElementsMatch(t, []string{"a.txt", "bin.dat", "dir/b.txt"}, names)
	assert.Equal(t, "-rw-r--r--", files[0].ModeString())

	b, err := s.ReadBlob(head, "a.txt", 4)
	require.NoError(t, err)
	assert.Equal(t, "0123", string(b.Data))
	assert.True(t, b.Truncated)
	assert.Equal(t, int64(10), b.Size)

	b, err = s.ReadBlob(head, "a.txt", -1)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(b.Data))
	assert.False(t, b.Truncated)

	b, err = s.ReadBlob(head, "bin.dat", -1)
	require.NoError(t, err)
	assert.True(t, b.Binary)
	assert.Empty(t, b.Data)

	_, err = s.ReadBlob(head, "nope", -1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCommitsAndDiff(t *testing.T) {
	f := testutil.NewRepo(t, "history")
	first := f.Write("a.txt", "one\ntwo\n").Commit("first\n\nbody text")
	f.Write("a.txt", "one\nthree\n").Write("b.txt", "new\n").Commit("second")
	third := f.Commit("third")

	s := openFixture(t, f)

	all, err := s.Commits(third, -1)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Summary())
	assert.Equal(t, first, all[2].Hash)
	assert.Equal(t, "first", all[2].Summary())
	assert.Len(t, all[2].Short(), 7)

	second := all[1]
	assert.Equal(t, 2, second.Added)
	assert.Equal(t, 1, second.Deleted)
	assert.Len(t, second.Stats, 2)
	assert.Equal(t, []FileStat{{Name: "a.txt", Added: 2}}, all[2].Stats)

	limited, err := s.Commits(third, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	diff, err := s.Diff(second.Hash)
	require.NoError(t, err)
	assert.Contains(t, diff, "-two")
	assert.Contains(t, diff, "+three")
	assert.Contains(t, diff, "+new")

	root, err := s.Diff(first)
	require.NoError(t, err)
	assert.Contains(t, root, "+one")
}

func TestRefs(t *testing.T) {
	f := testutil.NewRepo(t, "refs")
	f.Write("a", "a").Commit("first")
	f.Tag("v0.1", "")
	f.Write("a", "b").Commit("second")
	f.Branch("feature")
	f.Tag("v0.2", "release 0.2\n")

	s := openFixture(t, f)
	refs, err := s.Refs()
	require.NoError(t, err)

	var names []string
	for _, r := range refs {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"feature", "master", "v0.2", "v0.1"}, names)
	assert.Equal(t, RefTag, refs[2].Kind)
	assert.Equal(t, "release 0.2", refs[2].Message)
	assert.Empty(t, refs[3].Message)
}

func TestExtraPins(t *testing.T) {
	f := testutil.NewRepo(t, "pins")
	s := openFixture(t, f)
	extra, err := s.ExtraPins()
	require.NoError(t, err)
	assert.Empty(t, extra)

	f.SetConfig("gitin", "pinfiles", "NOTICE CHANGES")
	s2 := openFixture(t, f)
	extra, err = s2.ExtraPins()
	require.NoError(t, err)
	assert.Equal(t, "NOTICE CHANGES", extra)
}

func TestArchive(t *testing.T) {
	f := testutil.NewRepo(t, "arch")
	head := f.Write("README", "hello\n").Write("src/main.c", "int main;\n").Commit("initial")
	s := openFixture(t, f)

	var buf bytes.Buffer
	require.NoError(t, s.Archive(head, "arch-1234567/", &buf))

	zr, err := gzip.NewReader(&buf)
	require.NoError(t, err)
	tr := tar.NewReader(zr)
	contents := map[string]string{}
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(tr)
		require.NoError(t, err)
		contents[hdr.Name] = string(data)
	}
	assert.Equal(t, map[string]string{
		"arch-1234567/README":     "hello\n",
		"arch-1234567/src/main.c": "int main;\n",
	}, contents)
}

func TestClose_Idempotent(t *testing.T) {
	f := testutil.NewRepo(t, "close")
	s, err := Open(f.Dir)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}
