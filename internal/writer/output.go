package writer

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/gitin/internal/foundation/errors"
	"git.home.luguber.info/inful/gitin/internal/logfields"
	"git.home.luguber.info/inful/gitin/internal/paths"
)

// FilePerm is the mode published files are created with, before umask.
const FilePerm os.FileMode = 0o644

// outputPath resolves rel below root and refuses anything that would land
// outside of it.
func outputPath(root, rel string) (string, error) {
	full, err := paths.Join(root, rel)
	if err != nil {
		return "", ferrors.FileSystemError("invalid output path").
			WithCause(err).
			WithPath(rel).
			Build()
	}
	if !paths.Within(root, full) || full == root {
		return "", ferrors.FileSystemError("output path escapes destination").
			WithPath(rel).
			Build()
	}
	return full, nil
}

// writeFile creates root/rel, truncating an existing file, and streams fn's
// output into it. Failing to open the file is a setup error; a failed write
// or close is a filesystem error.
func writeFile(root, rel string, fn func(w io.Writer) error) (err error) {
	full, err := outputPath(root, rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), paths.DirPerm); err != nil {
		return ferrors.SetupError("unable to create directory").
			WithCause(err).
			WithPath(filepath.Dir(full)).
			Build()
	}

	// #nosec G304 -- full is validated to stay under root.
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FilePerm)
	if err != nil {
		return ferrors.SetupError("unable to open file").
			WithCause(err).
			WithPath(full).
			Build()
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = writeError(full, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := fn(bw); err != nil {
		if ferrors.IsClassified(err) {
			return err
		}
		return writeError(full, err)
	}
	if err := bw.Flush(); err != nil {
		return writeError(full, err)
	}
	slog.Debug("Wrote file", logfields.File(full))
	return nil
}

func writeError(path string, err error) error {
	return ferrors.FileSystemError("write error").
		WithCause(err).
		WithPath(path).
		Build()
}

// render executes the named template into w.
func render(w io.Writer, name string, data any) error {
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}
