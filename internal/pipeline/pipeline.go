package pipeline

import (
	"context"
	"time"

	"git.home.luguber.info/inful/gitin/internal/config"
	"git.home.luguber.info/inful/gitin/internal/metrics"
	"git.home.luguber.info/inful/gitin/internal/repo"
)

// Emitter writes the pages of a fully resolved repository.
type Emitter interface {
	Emit(ctx context.Context, d *repo.Descriptor) error
}

// Runner processes repositories one at a time against a fixed site
// configuration and destination root.
type Runner struct {
	cfg       *config.Config
	destRoot  string
	emitter   Emitter
	recorder  metrics.Recorder
	observers []Observer
}

// Option configures a Runner.
type Option func(*Runner)

// WithEmitter sets the page writer. Without one the emit stage is skipped.
func WithEmitter(e Emitter) Option { return func(r *Runner) { r.emitter = e } }

// WithRecorder sets the metrics recorder.
func WithRecorder(rec metrics.Recorder) Option { return func(r *Runner) { r.recorder = rec } }

// WithObserver adds an observer notified around every stage.
func WithObserver(o Observer) Option {
	return func(r *Runner) { r.observers = append(r.observers, o) }
}

// NewRunner returns a Runner writing below destRoot.
func NewRunner(cfg *config.Config, destRoot string, opts ...Option) *Runner {
	r := &Runner{cfg: cfg, destRoot: destRoot, recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Stages returns the ordered stage list of a repository run. Release is
// not part of it; Run always executes it last.
func (r *Runner) Stages() []StageDef {
	return NewPipeline().
		Add(StageInit, stageInit).
		Add(StageProvision, stageProvision).
		Add(StageOpenStore, stageOpenStore).
		Add(StageResolveHead, stageResolveHead).
		Add(StageOverlayConfig, stageOverlayConfig).
		Add(StageResolvePins, stageResolvePins).
		AddIf(r.emitter != nil, StageEmit, stageEmit).
		Build()
}

// Run generates the pages of the repository at source. The returned report
// is never nil; its Desc field is set once the init stage succeeded. All
// repository resources are released before Run returns.
func (r *Runner) Run(ctx context.Context, source string) (report *Report, err error) {
	obs := append([]Observer{RecorderObserver{Recorder: r.recorder}}, r.observers...)
	st := &State{
		Config:   r.cfg,
		DestRoot: r.destRoot,
		Source:   source,
		Report:   newReport(source),
		emitter:  r.emitter,
		recorder: r.recorder,
		observer: multiObserver(obs),
	}

	defer func() {
		relErr := runStage(context.WithoutCancel(ctx), st, StageDef{Name: StageRelease, Fn: stageRelease})
		if err == nil {
			err = relErr
		}
		st.Report.Desc = st.Desc
		st.Report.finish(err)
		st.observer.OnRepositoryComplete(st.Report)
	}()

	return st.Report, RunStages(ctx, st, r.Stages())
}

type multiObserver []Observer

func (m multiObserver) OnStageStart(stage StageName) {
	for _, o := range m {
		o.OnStageStart(stage)
	}
}

func (m multiObserver) OnStageComplete(stage StageName, d time.Duration, res StageResult) {
	for _, o := range m {
		o.OnStageComplete(stage, d, res)
	}
}

func (m multiObserver) OnRepositoryComplete(report *Report) {
	for _, o := range m {
		o.OnRepositoryComplete(report)
	}
}
