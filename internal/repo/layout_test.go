package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/gitin/internal/testutil"
)

func TestProvisionLayout(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "group", "project")

	require.NoError(t, ProvisionLayout(dest))
	require.NoError(t, ProvisionLayout(dest))

	testutil.NewFileAssertions(t, dest).
		AssertDirExists(".").
		AssertDirExists(FilesDir).
		AssertDirExists(ArchiveDir).
		AssertDirExists(CommitDir)
}

func TestProvisionLayout_Blocked(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(root, "project")
	require.NoError(t, os.WriteFile(dest, []byte("not a directory"), 0o600))

	require.Error(t, ProvisionLayout(dest))
}
