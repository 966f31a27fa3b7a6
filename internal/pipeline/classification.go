package pipeline

import (
	"context"
	"errors"
)

// ErrStageSkipped is returned by a stage that had nothing to do, such as
// pin resolution in a repository without a head revision.
var ErrStageSkipped = errors.New("stage skipped")

// StageOutcome is the normalized result of stage execution.
type StageOutcome struct {
	Stage  StageName
	Error  *StageError
	Result StageResult
	Abort  bool
}

// resultFromStageErrorKind maps a StageErrorKind to a StageResult.
func resultFromStageErrorKind(k StageErrorKind) StageResult {
	switch k {
	case StageErrorWarning:
		return StageResultWarning
	case StageErrorCanceled:
		return StageResultCanceled
	default:
		return StageResultFatal
	}
}

// ClassifyStageResult converts a raw error from a stage into a StageOutcome.
// Plain errors are fatal.
func ClassifyStageResult(stage StageName, err error) StageOutcome {
	if err == nil {
		return StageOutcome{Stage: stage, Result: StageResultSuccess}
	}
	if errors.Is(err, ErrStageSkipped) {
		return StageOutcome{Stage: stage, Result: StageResultSkipped}
	}

	var se *StageError
	if !errors.As(err, &se) {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			se = NewCanceledStageError(stage, err)
		} else {
			se = NewFatalStageError(stage, err)
		}
	}

	return StageOutcome{
		Stage:  stage,
		Error:  se,
		Result: resultFromStageErrorKind(se.Kind),
		Abort:  se.Kind != StageErrorWarning,
	}
}

func isCanceled(err error) bool {
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind == StageErrorCanceled
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
