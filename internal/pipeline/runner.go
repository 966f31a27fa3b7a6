package pipeline

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/gitin/internal/logfields"
)

// RunStages executes stages in order, recording timing and stopping on the
// first fatal or canceled stage.
func RunStages(ctx context.Context, st *State, stages []StageDef) error {
	for _, def := range stages {
		select {
		case <-ctx.Done():
			se := NewCanceledStageError(def.Name, ctx.Err())
			st.Report.RecordStageResult(def.Name, StageResultCanceled, st.recorder)
			st.observer.OnStageComplete(def.Name, 0, StageResultCanceled)
			return se
		default:
		}

		if err := runStage(ctx, st, def); err != nil {
			return err
		}
	}
	return nil
}

// runStage executes a single stage and returns its error only when the run
// must stop.
func runStage(ctx context.Context, st *State, def StageDef) error {
	st.observer.OnStageStart(def.Name)

	t0 := time.Now()
	err := def.Fn(ctx, st)
	dur := time.Since(t0)

	st.Report.StageDurations[def.Name] = dur
	out := ClassifyStageResult(def.Name, err)

	if out.Result == StageResultWarning {
		st.Report.AddWarning(out.Error)
		slog.Warn("Stage completed with warnings",
			logfields.Repository(st.Report.Name),
			logfields.Stage(string(def.Name)),
			logfields.Error(out.Error.Err))
	}

	st.Report.RecordStageResult(def.Name, out.Result, st.recorder)
	st.observer.OnStageComplete(def.Name, dur, out.Result)

	slog.Debug("Stage finished",
		logfields.Repository(st.Report.Name),
		logfields.Stage(string(def.Name)),
		logfields.Result(string(out.Result)),
		logfields.DurationMS(float64(dur.Microseconds())/1000))

	if out.Abort {
		return out.Error
	}
	return nil
}
