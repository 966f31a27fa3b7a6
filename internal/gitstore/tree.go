package gitstore

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/klauspost/compress/gzip"
)

// FileEntry is one blob of a tree listing.
type FileEntry struct {
	Path string
	Mode filemode.FileMode
	Size int64
	Hash plumbing.Hash
}

// ModeString returns a ls -l style permission string for the entry.
func (e FileEntry) ModeString() string {
	m, err := e.Mode.ToOSFileMode()
	if err != nil {
		return "?---------"
	}
	return m.String()
}

// Files lists every blob reachable from the tree of rev, in tree order.
func (s *Store) Files(rev plumbing.Hash) ([]FileEntry, error) {
	t, err := s.tree(rev)
	if err != nil {
		return nil, err
	}
	var files []FileEntry
	err = t.Files().ForEach(func(f *object.File) error {
		files = append(files, FileEntry{Path: f.Name, Mode: f.Mode, Size: f.Size, Hash: f.Hash})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list files of %s: %w", rev, err)
	}
	return files, nil
}

// Blob is the content of one file, possibly cut short.
type Blob struct {
	Path      string
	Size      int64
	Binary    bool
	Truncated bool
	Data      []byte
}

// ReadBlob reads the file at path in rev. At most max bytes are returned;
// a negative max reads everything.
func (s *Store) ReadBlob(rev plumbing.Hash, path string, max int64) (*Blob, error) {
	t, err := s.tree(rev)
	if err != nil {
		return nil, err
	}
	f, err := t.File(path)
	if errors.Is(err, object.ErrFileNotFound) {
		return nil, fmt.Errorf("%s:%s: %w", rev, path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s:%s: %w", rev, path, err)
	}
	binary, err := f.IsBinary()
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", path, err)
	}
	b := &Blob{Path: path, Size: f.Size, Binary: binary}
	if binary {
		return b, nil
	}

	r, err := f.Reader()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer r.Close()

	var src io.Reader = r
	if max >= 0 && f.Size > max {
		src = io.LimitReader(r, max)
		b.Truncated = true
	}
	if b.Data, err = io.ReadAll(src); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}

// Archive writes a gzip compressed tarball of the tree of rev to w. Every
// entry is placed below prefix.
func (s *Store) Archive(rev plumbing.Hash, prefix string, w io.Writer) error {
	commit, err := s.repo.CommitObject(rev)
	if err != nil {
		return fmt.Errorf("commit %s: %w", rev, err)
	}
	t, err := s.tree(rev)
	if err != nil {
		return err
	}

	zw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return err
	}
	zw.ModTime = commit.Committer.When
	tw := tar.NewWriter(zw)

	err = t.Files().ForEach(func(f *object.File) error {
		return writeTarEntry(tw, prefix+f.Name, f, commit.Committer.When)
	})
	if err != nil {
		return fmt.Errorf("archive %s: %w", rev, err)
	}
	if err := tw.Close(); err != nil {
		return err
	}
	return zw.Close()
}

func writeTarEntry(tw *tar.Writer, name string, f *object.File, mtime time.Time) error {
	hdr := &tar.Header{
		Name:    name,
		ModTime: mtime,
		Mode:    0o644,
		Format:  tar.FormatPAX,
	}
	if f.Mode == filemode.Executable {
		hdr.Mode = 0o755
	}

	if f.Mode == filemode.Symlink {
		target, err := f.Contents()
		if err != nil {
			return err
		}
		hdr.Typeflag = tar.TypeSymlink
		hdr.Linkname = target
		hdr.Mode = int64(os.ModePerm)
		return tw.WriteHeader(hdr)
	}

	hdr.Typeflag = tar.TypeReg
	hdr.Size = f.Size
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	r, err := f.Reader()
	if err != nil {
		return err
	}
	defer r.Close()
	_, err = io.Copy(tw, r)
	return err
}
