package pipeline

import (
	"time"

	"git.home.luguber.info/inful/gitin/internal/metrics"
	"git.home.luguber.info/inful/gitin/internal/repo"
)

// Report summarizes one repository run.
type Report struct {
	Source      string
	Name        string
	Destination string
	Start       time.Time
	End         time.Time

	StageDurations map[StageName]time.Duration
	StageResults   map[StageName]StageResult
	Warnings       []error
	Outcome        metrics.OutcomeLabel

	// Desc is the repository as resolved by the run, nil when init failed.
	// Its store is already released.
	Desc *repo.Descriptor
}

func newReport(source string) *Report {
	return &Report{
		Source:         source,
		Start:          time.Now(),
		StageDurations: make(map[StageName]time.Duration),
		StageResults:   make(map[StageName]StageResult),
	}
}

// RecordStageResult stores the result and forwards it to the recorder.
func (r *Report) RecordStageResult(stage StageName, res StageResult, recorder metrics.Recorder) {
	r.StageResults[stage] = res
	if recorder == nil {
		return
	}
	switch res {
	case StageResultSuccess:
		recorder.IncStageResult(string(stage), metrics.ResultSuccess)
	case StageResultWarning:
		recorder.IncStageResult(string(stage), metrics.ResultWarning)
	case StageResultFatal:
		recorder.IncStageResult(string(stage), metrics.ResultFatal)
	case StageResultCanceled:
		recorder.IncStageResult(string(stage), metrics.ResultCanceled)
	case StageResultSkipped:
	}
}

// AddWarning records a recoverable problem.
func (r *Report) AddWarning(err error) { r.Warnings = append(r.Warnings, err) }

// Duration is the wall time of the run so far.
func (r *Report) Duration() time.Duration {
	if r.End.IsZero() {
		return time.Since(r.Start)
	}
	return r.End.Sub(r.Start)
}

func (r *Report) finish(err error) {
	r.End = time.Now()
	switch {
	case err == nil:
		r.Outcome = metrics.OutcomeSuccess
	case isCanceled(err):
		r.Outcome = metrics.OutcomeCanceled
	default:
		r.Outcome = metrics.OutcomeFailed
	}
}
