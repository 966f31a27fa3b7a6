package pipeline

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/gitin/internal/foundation/errors"
	"git.home.luguber.info/inful/gitin/internal/gitstore"
	"git.home.luguber.info/inful/gitin/internal/logfields"
	"git.home.luguber.info/inful/gitin/internal/repo"
)

func stageInit(_ context.Context, st *State) error {
	d, err := repo.NewDescriptor(st.Source, st.DestRoot)
	if err != nil {
		return errors.SetupError("unable to compute destination path").
			WithPath(st.Source).
			WithCause(err).
			Build()
	}
	st.Desc = d
	st.Report.Name = d.Name
	st.Report.Destination = d.DestinationPath

	slog.Info("Updating repository", logfields.Repository(d.Name), logfields.Destination(d.DestinationPath))
	return nil
}

func stageProvision(_ context.Context, st *State) error {
	if err := repo.ProvisionLayout(st.Desc.DestinationPath); err != nil {
		return errors.SetupError("unable to create destination directory").
			WithPath(st.Desc.DestinationPath).
			WithCause(err).
			Build()
	}
	return nil
}

func stageOpenStore(_ context.Context, st *State) error {
	s, err := gitstore.Open(st.Source)
	if err != nil {
		return errors.SetupError("unable to open git repository").
			WithPath(st.Source).
			WithCause(err).
			Build()
	}
	st.Desc.Attach(s)
	return nil
}

// stageResolveHead records the head revision. A repository without commits
// is valid and simply has no head.
func stageResolveHead(_ context.Context, st *State) error {
	h, ok, err := st.Desc.Store().Head()
	if err != nil {
		return errors.GitError("unable to resolve HEAD").
			WithPath(st.Source).
			WithCause(err).
			Build()
	}
	if !ok {
		slog.Info("Repository has no commits", logfields.Repository(st.Desc.Name))
		return nil
	}
	st.Desc.Head = &h
	slog.Debug("Resolved HEAD", logfields.Repository(st.Desc.Name), logfields.Revision(h.String()))
	return nil
}

func stageRelease(_ context.Context, st *State) error {
	if st.Desc == nil {
		return ErrStageSkipped
	}
	if err := st.Desc.Release(); err != nil {
		return NewWarnStageError(StageRelease, err)
	}
	return nil
}
