package metrics

import (
	"testing"
	"time"
)

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("init", time.Millisecond)
	r.IncStageResult("init", ResultSuccess)
	r.ObserveRepositoryDuration(time.Second)
	r.IncRepositoryOutcome(OutcomeSkipped)
	r.AddPinnedFiles(3)
	r.AddPagesWritten("tree", 1)
	r.IncConfigWarning()
}
