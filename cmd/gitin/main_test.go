package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/gitin/internal/foundation/errors"
	"git.home.luguber.info/inful/gitin/internal/testutil"
)

// cliResult captures one invocation of the command line.
type cliResult struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func (r cliResult) assertExitCode(t *testing.T, want int) {
	t.Helper()
	assert.Equal(t, want, r.code, "stdout:\n%s\nstderr:\n%s", r.stdout, r.stderr)
}

func fixture(t *testing.T, name string) string {
	t.Helper()
	f := testutil.NewRepo(t, name)
	f.Write("README", "hello from "+name+"\n")
	f.Commit("Add README")
	return f.Dir
}

// relRepo returns dir relative to the working directory so that the
// repository keeps a short identifying path.
func relRepo(t *testing.T, dir string) string {
	t.Helper()
	testChdir(t, filepath.Dir(dir))
	return filepath.Base(dir)
}

func TestBuild_WritesSite(t *testing.T) {
	repoDir := fixture(t, "alpha")
	dest := t.TempDir()
	metricsFile := filepath.Join(t.TempDir(), "gitin.prom")
	src := relRepo(t, repoDir)

	res := runCLI(t, "-d", dest, "--metrics-file", metricsFile, src)
	res.assertExitCode(t, ferrors.ExitOK)
	assert.Contains(t, res.stdout, "1 of 1 repositories published")

	fa := testutil.NewFileAssertions(t, dest)
	fa.AssertFileExists("index.html").
		AssertFileContains("index.html", `href="alpha/index.html"`).
		AssertFileExists("alpha/index.html").
		AssertFileContains("alpha/index.html", "Add README").
		AssertFileExists("alpha/.gitin/files/README.html").
		AssertASCII("alpha/index.html")

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `gitin_repository_outcomes_total{outcome="success"} 1`)
}

func TestBuild_ExplicitSubcommandAndConfig(t *testing.T) {
	repoDir := fixture(t, "beta")
	dest := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "site.conf")
	require.NoError(t, os.WriteFile(cfgPath, []byte("name = Team Code\n[files]\nlog = refs.html\n"), 0o600))

	res := runCLI(t, "--config", cfgPath, "build", "--dest", dest, relRepo(t, repoDir))
	res.assertExitCode(t, ferrors.ExitOK)

	testutil.NewFileAssertions(t, dest).
		AssertFileContains("index.html", "Team Code").
		AssertFileExists("beta/refs.html").
		AssertNotExists("beta/log.html")
}

func TestBuild_NoRepositories(t *testing.T) {
	res := runCLI(t, "-d", t.TempDir())
	res.assertExitCode(t, ferrors.ExitUsage)
	assert.Contains(t, res.stderr, "no repositories given")
}

func TestBuild_UnknownFlag(t *testing.T) {
	res := runCLI(t, "--no-such-flag")
	res.assertExitCode(t, ferrors.ExitUsage)
	assert.Contains(t, res.stderr, "gitin: error:")
}

func TestBuild_BadConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "site.conf")
	require.NoError(t, os.WriteFile(cfgPath, []byte("limit/pins = -1\n"), 0o600))

	res := runCLI(t, "-c", cfgPath, "-d", t.TempDir(), "whatever")
	res.assertExitCode(t, ferrors.ExitConfig)
	assert.Contains(t, res.stderr, "unable to load configuration")
}

func TestBuild_SetupFailureAborts(t *testing.T) {
	good := fixture(t, "good")
	dest := t.TempDir()
	missing := filepath.Join(t.TempDir(), "missing")

	res := runCLI(t, "-d", dest, missing, good)
	res.assertExitCode(t, ferrors.ExitSetup)
	assert.Contains(t, res.stderr, "unable to open git repository")
	testutil.NewFileAssertions(t, dest).AssertNotExists("index.html")
}

func TestBuild_KeepGoingSkipsFailures(t *testing.T) {
	good := fixture(t, "good")
	dest := t.TempDir()
	missing := filepath.Join(filepath.Dir(good), "missing")
	testChdir(t, filepath.Dir(good))

	res := runCLI(t, "-d", dest, "--keep-going", "missing", "good")
	res.assertExitCode(t, ferrors.ExitSetup)
	assert.Contains(t, res.stdout, "1 of 2 repositories published")
	assert.NoDirExists(t, missing)

	fa := testutil.NewFileAssertions(t, dest)
	fa.AssertFileExists("good/index.html")
	index := fa.Read("index.html")
	assert.Contains(t, index, `href="good/index.html"`)
	assert.False(t, strings.Contains(index, `href="missing/index.html"`))
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gitin.yaml")

	res := runCLI(t, "-c", path, "init")
	res.assertExitCode(t, ferrors.ExitOK)
	assert.Contains(t, res.stdout, "Configuration initialized")
	testutil.NewFileAssertions(t, filepath.Dir(path)).AssertFileContains("gitin.yaml", "name: My Repositories")

	res = runCLI(t, "-c", path, "init")
	res.assertExitCode(t, ferrors.ExitConfig)
	assert.Contains(t, res.stderr, "already exists")

	runCLI(t, "-c", path, "init", "--force").assertExitCode(t, ferrors.ExitOK)
}

func TestVersionFlag(t *testing.T) {
	res := runCLI(t, "--version")
	res.assertExitCode(t, ferrors.ExitOK)
	assert.Contains(t, res.stdout, "gitin ")
}
