package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirPerm is the mode new output directories are created with, before umask.
const DirPerm os.FileMode = 0o777

// ProvisionTree ensures root and every root/subpath exist as directories,
// creating missing intermediate components. Existing directories are left
// alone, so calling it repeatedly is harmless. The first failure is
// returned with the offending path; nothing is retried.
func ProvisionTree(root string, subpaths ...string) error {
	targets := make([]string, 0, len(subpaths)+1)
	targets = append(targets, root)
	for _, sub := range subpaths {
		targets = append(targets, filepath.Join(root, sub))
	}
	for _, dir := range targets {
		if err := os.MkdirAll(dir, DirPerm); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
