package pipeline

import (
	"time"

	"git.home.luguber.info/inful/gitin/internal/metrics"
)

// Observer receives callbacks around stage execution and the end of each
// repository run.
type Observer interface {
	OnStageStart(stage StageName)
	OnStageComplete(stage StageName, duration time.Duration, result StageResult)
	OnRepositoryComplete(report *Report)
}

// NoopObserver is a no-op implementation.
type NoopObserver struct{}

func (NoopObserver) OnStageStart(_ StageName)                                    {}
func (NoopObserver) OnStageComplete(_ StageName, _ time.Duration, _ StageResult) {}
func (NoopObserver) OnRepositoryComplete(_ *Report)                              {}

// RecorderObserver adapts metrics.Recorder into an Observer.
type RecorderObserver struct{ Recorder metrics.Recorder }

func (r RecorderObserver) OnStageStart(_ StageName) {}

func (r RecorderObserver) OnStageComplete(stage StageName, d time.Duration, _ StageResult) {
	if r.Recorder != nil {
		r.Recorder.ObserveStageDuration(string(stage), d)
	}
}

func (r RecorderObserver) OnRepositoryComplete(report *Report) {
	if r.Recorder != nil {
		r.Recorder.ObserveRepositoryDuration(report.Duration())
		r.Recorder.IncRepositoryOutcome(report.Outcome)
	}
}
