package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// OutcomeLabel is the final status of one repository run.
type OutcomeLabel string

const (
	OutcomeSuccess  OutcomeLabel = "success"
	OutcomeFailed   OutcomeLabel = "failed"
	OutcomeSkipped  OutcomeLabel = "skipped"
	OutcomeCanceled OutcomeLabel = "canceled"
)

// Recorder defines observability hooks for repository runs. Implementations
// may forward to Prometheus or keep counts in memory for tests.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	ObserveRepositoryDuration(d time.Duration)
	IncRepositoryOutcome(outcome OutcomeLabel)
	AddPinnedFiles(n int)
	AddPagesWritten(kind string, n int)
	IncConfigWarning()
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) ObserveRepositoryDuration(time.Duration)    {}
func (NoopRecorder) IncRepositoryOutcome(OutcomeLabel)          {}
func (NoopRecorder) AddPinnedFiles(int)                         {}
func (NoopRecorder) AddPagesWritten(string, int)                {}
func (NoopRecorder) IncConfigWarning()                          {}
