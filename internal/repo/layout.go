package repo

import "git.home.luguber.info/inful/gitin/internal/paths"

// Subdirectories every repository destination has before any page is
// written.
const (
	FilesDir   = ".gitin/files"
	ArchiveDir = ".gitin/archive"
	CommitDir  = "commit"
)

// ProvisionLayout creates dest and its fixed subdirectories.
func ProvisionLayout(dest string) error {
	return paths.ProvisionTree(dest, FilesDir, ArchiveDir, CommitDir)
}
