package pipeline

import (
	"context"
	stdErrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/gitin/internal/config"
	"git.home.luguber.info/inful/gitin/internal/foundation/errors"
	"git.home.luguber.info/inful/gitin/internal/logfields"
)

// stageOverlayConfig applies the repository's own gitin.conf. A missing
// file keeps the defaults; an unreadable one is a warning.
func stageOverlayConfig(_ context.Context, st *State) error {
	path := filepath.Join(st.Source, config.RepoConfigFile)
	f, err := os.Open(path)
	if stdErrors.Is(err, fs.ErrNotExist) {
		return ErrStageSkipped
	}
	if err != nil {
		return NewWarnStageError(StageOverlayConfig,
			errors.ContentError("unable to read repository config").WithPath(path).WithCause(err).Build())
	}
	defer f.Close()

	warn := func(err error) {
		slog.Warn("Ignoring repository config entry",
			logfields.Repository(st.Desc.Name),
			logfields.File(path),
			logfields.Error(err))
		st.recorder.IncConfigWarning()
		st.Report.AddWarning(err)
	}
	if err := st.Desc.ApplyOverlay(f, warn); err != nil {
		return NewWarnStageError(StageOverlayConfig,
			errors.ContentError("unable to read repository config").WithPath(path).WithCause(err).Build())
	}
	return nil
}
