package pipeline

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/gitin/internal/foundation/errors"
	"git.home.luguber.info/inful/gitin/internal/logfields"
	"git.home.luguber.info/inful/gitin/internal/repo"
)

// stageResolvePins fills PinnedFiles and HasSubmodules. Without a head
// revision both stay empty.
func stageResolvePins(_ context.Context, st *State) error {
	d := st.Desc
	if d.Head == nil {
		return ErrStageSkipped
	}
	store := d.Store()

	extra, err := store.ExtraPins()
	if err != nil {
		slog.Warn("Ignoring repository pin list", logfields.Repository(d.Name), logfields.Error(err))
		st.Report.AddWarning(err)
		extra = ""
	}

	candidates := repo.NewPinCandidates(st.Config.PinCandidates(), extra)
	pins, err := repo.ResolvePins(store, *d.Head, candidates, int(st.Config.LimitPins))
	if err != nil {
		return errors.GitError("unable to resolve pinned files").WithPath(st.Source).WithCause(err).Build()
	}
	d.PinnedFiles = pins
	st.recorder.AddPinnedFiles(len(pins))

	if d.HasSubmodules, err = repo.HasSubmodules(store, *d.Head); err != nil {
		return errors.GitError("unable to look up submodules").WithPath(st.Source).WithCause(err).Build()
	}

	slog.Debug("Resolved pinned files", logfields.Repository(d.Name), logfields.Count(len(pins)))
	return nil
}

func stageEmit(ctx context.Context, st *State) error {
	return st.emitter.Emit(ctx, st.Desc)
}
