package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/gitin/internal/config"
	"git.home.luguber.info/inful/gitin/internal/metrics"
	"git.home.luguber.info/inful/gitin/internal/pipeline"
	"git.home.luguber.info/inful/gitin/internal/testutil"
)

func TestRunBuild_LogsRepositorySummaries(t *testing.T) {
	f := testutil.NewRepo(t, "alpha")
	f.Write("README", "hello\n").Commit("initial")
	parent := filepath.Dir(f.Dir)
	require.NoError(t, os.Mkdir(filepath.Join(parent, "plain"), 0o755))
	testChdir(t, parent)

	var logs bytes.Buffer
	err := RunBuild(context.Background(), io.Discard, config.Default(), []string{"alpha", "plain"}, BuildOptions{
		Dest:      t.TempDir(),
		KeepGoing: true,
		Logger:    slog.New(slog.NewTextHandler(&logs, nil)),
	})
	require.Error(t, err)

	out := logs.String()
	assert.Contains(t, out, `msg="Repository finished" repository=alpha result=success warnings=0`)
	assert.Contains(t, out, `msg="Repository finished" repository=plain result=failed`)
}

func TestSummaryObserver_FallsBackToSource(t *testing.T) {
	var logs bytes.Buffer
	obs := summaryObserver{logger: slog.New(slog.NewTextHandler(&logs, nil))}

	obs.OnRepositoryComplete(&pipeline.Report{Source: "../broken", Outcome: metrics.OutcomeCanceled})

	assert.Contains(t, logs.String(), "repository=../broken result=canceled")
}
