package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// FileAssertions checks the state of a generated output tree.
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

// NewFileAssertions creates a new file assertions helper.
func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{t: t, baseDir: baseDir}
}

// Read returns the content of a file below the base directory, failing the
// test when it cannot be read.
func (fa *FileAssertions) Read(relativePath string) string {
	fa.t.Helper()
	// #nosec G304 - test helper, paths are controlled by test code
	content, err := os.ReadFile(filepath.Join(fa.baseDir, filepath.FromSlash(relativePath)))
	if err != nil {
		fa.t.Fatalf("Failed to read file %s: %v", relativePath, err)
	}
	return string(content)
}

// AssertFileExists validates that a regular file exists.
func (fa *FileAssertions) AssertFileExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, filepath.FromSlash(relativePath))
	if stat, err := os.Stat(fullPath); err != nil {
		fa.t.Errorf("Expected file to exist: %s", fullPath)
	} else if stat.IsDir() {
		fa.t.Errorf("Expected %s to be a file, but it's a directory", fullPath)
	}
	return fa
}

// AssertNotExists validates that nothing exists at the path.
func (fa *FileAssertions) AssertNotExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, filepath.FromSlash(relativePath))
	if _, err := os.Lstat(fullPath); err == nil {
		fa.t.Errorf("Expected %s not to exist", fullPath)
	}
	return fa
}

// AssertDirExists validates that a directory exists.
func (fa *FileAssertions) AssertDirExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, filepath.FromSlash(relativePath))
	if stat, err := os.Stat(fullPath); err != nil {
		fa.t.Errorf("Expected directory to exist: %s", fullPath)
	} else if !stat.IsDir() {
		fa.t.Errorf("Expected %s to be a directory, but it's a file", fullPath)
	}
	return fa
}

// AssertFileContains validates that a file contains expected content.
func (fa *FileAssertions) AssertFileContains(relativePath, expectedContent string) *FileAssertions {
	fa.t.Helper()
	if content := fa.Read(relativePath); !strings.Contains(content, expectedContent) {
		fa.t.Errorf("Expected file %s to contain %q\nActual content:\n%s", relativePath, expectedContent, content)
	}
	return fa
}

// AssertFileNotContains validates that a file lacks the given content.
func (fa *FileAssertions) AssertFileNotContains(relativePath, content string) *FileAssertions {
	fa.t.Helper()
	if strings.Contains(fa.Read(relativePath), content) {
		fa.t.Errorf("Expected file %s not to contain %q", relativePath, content)
	}
	return fa
}

// AssertASCII validates that every byte of a generated page is below 0x80.
func (fa *FileAssertions) AssertASCII(relativePath string) *FileAssertions {
	fa.t.Helper()
	for i, b := range []byte(fa.Read(relativePath)) {
		if b >= 0x80 {
			fa.t.Errorf("Expected %s to be ASCII, found byte 0x%02x at offset %d", relativePath, b, i)
			break
		}
	}
	return fa
}

// AssertFileCount validates the number of regular files in a directory.
func (fa *FileAssertions) AssertFileCount(relativePath string, want int) *FileAssertions {
	fa.t.Helper()
	entries, err := os.ReadDir(filepath.Join(fa.baseDir, filepath.FromSlash(relativePath)))
	if err != nil {
		fa.t.Errorf("Failed to read directory %s: %v", relativePath, err)
		return fa
	}
	got := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			got++
		}
	}
	if got != want {
		fa.t.Errorf("Expected %d files in %s, found %d", want, relativePath, got)
	}
	return fa
}
