package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "gitin"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once           sync.Once
	reg            *prom.Registry
	stageDuration  *prom.HistogramVec
	stageResults   *prom.CounterVec
	repoDuration   prom.Histogram
	repoOutcome    *prom.CounterVec
	pinnedFiles    prom.Counter
	pagesWritten   *prom.CounterVec
	configWarnings prom.Counter
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual repository stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"})
		pr.repoDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "repository_duration_seconds",
			Help:      "Total time spent generating one repository",
			Buckets:   prom.DefBuckets,
		})
		pr.repoOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "repository_outcomes_total",
			Help:      "Repository runs by final status",
		}, []string{"outcome"})
		pr.pinnedFiles = prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pinned_files_total",
			Help:      "Pinned files resolved across all repositories",
		})
		pr.pagesWritten = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pages_written_total",
			Help:      "Output files written by kind",
		}, []string{"kind"})
		pr.configWarnings = prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "config_warnings_total",
			Help:      "Configuration lines or keys that were ignored",
		})
		reg.MustRegister(pr.stageDuration, pr.stageResults, pr.repoDuration, pr.repoOutcome,
			pr.pinnedFiles, pr.pagesWritten, pr.configWarnings)
	})
	return pr
}

// Registry returns the registry the metrics were registered with.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

// WriteTextfile writes the current values in the text exposition format,
// suitable for the node exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveRepositoryDuration(d time.Duration) {
	if p == nil || p.repoDuration == nil {
		return
	}
	p.repoDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRepositoryOutcome(outcome OutcomeLabel) {
	if p == nil || p.repoOutcome == nil {
		return
	}
	p.repoOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddPinnedFiles(n int) {
	if p == nil || p.pinnedFiles == nil || n <= 0 {
		return
	}
	p.pinnedFiles.Add(float64(n))
}

func (p *PrometheusRecorder) AddPagesWritten(kind string, n int) {
	if p == nil || p.pagesWritten == nil || n <= 0 {
		return
	}
	p.pagesWritten.WithLabelValues(kind).Add(float64(n))
}

func (p *PrometheusRecorder) IncConfigWarning() {
	if p == nil || p.configWarnings == nil {
		return
	}
	p.configWarnings.Inc()
}
