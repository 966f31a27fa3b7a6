package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"git.home.luguber.info/inful/gitin/internal/config"
	ferrors "git.home.luguber.info/inful/gitin/internal/foundation/errors"
	"git.home.luguber.info/inful/gitin/internal/logfields"
	"git.home.luguber.info/inful/gitin/internal/metrics"
	"git.home.luguber.info/inful/gitin/internal/pipeline"
	"git.home.luguber.info/inful/gitin/internal/writer"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Repos       []string `arg:"" optional:"" name:"repository" help:"Repository directories to publish"`
	Dest        string   `short:"d" name:"dest" help:"Destination directory for the site" default:"." env:"GITIN_DEST"`
	KeepGoing   bool     `name:"keep-going" help:"Skip repositories that fail instead of aborting the run"`
	MetricsFile string   `name:"metrics-file" help:"Write Prometheus metrics in textfile collector format"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	if len(b.Repos) == 0 {
		return ferrors.ValidationError("no repositories given").Build()
	}
	cfg, err := config.Load(root.Config, func(err error) {
		slog.Warn("Ignoring configuration entry", logfields.File(root.Config), logfields.Error(err))
	})
	if err != nil {
		return ferrors.ConfigError("unable to load configuration").
			WithCause(err).
			WithPath(root.Config).
			Build()
	}
	return RunBuild(g.ctx(), g.out(), cfg, b.Repos, BuildOptions{
		Dest:        b.Dest,
		KeepGoing:   b.KeepGoing,
		MetricsFile: b.MetricsFile,
	})
}

// BuildOptions are the per-invocation settings of a build.
type BuildOptions struct {
	Dest        string
	KeepGoing   bool
	MetricsFile string
	Logger      *slog.Logger // per-repository summaries, slog.Default() when nil
}

// RunBuild processes the repositories in order and then writes the site
// index and the configured assets. The first failing repository aborts the
// run unless KeepGoing is set, in which case failures are logged, skipped
// and the first one is returned at the end.
func RunBuild(ctx context.Context, out io.Writer, cfg *config.Config, repos []string, opts BuildOptions) (err error) {
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if opts.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
		defer func() {
			if werr := prom.WriteTextfile(opts.MetricsFile); werr != nil {
				slog.Error("Failed to write metrics", logfields.File(opts.MetricsFile), logfields.Error(werr))
				if err == nil {
					err = ferrors.FileSystemError("unable to write metrics").WithCause(werr).WithPath(opts.MetricsFile).Build()
				}
			}
		}()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	runner := pipeline.NewRunner(cfg, opts.Dest,
		pipeline.WithEmitter(writer.New(cfg, recorder)),
		pipeline.WithRecorder(recorder),
		pipeline.WithObserver(summaryObserver{logger: logger}))
	site := writer.NewSiteIndex(cfg, recorder)

	var failed []error
	for _, src := range repos {
		report, runErr := runner.Run(ctx, src)
		if runErr != nil {
			if !opts.KeepGoing || errors.Is(runErr, context.Canceled) {
				return runErr
			}
			slog.Error("Skipping repository", logfields.Repository(src), logfields.Error(runErr))
			failed = append(failed, runErr)
			continue
		}
		for _, w := range report.Warnings {
			slog.Debug("Repository warning", logfields.Repository(report.Name), logfields.Error(w))
		}
		site.Add(report.Desc)
	}

	if err := site.Write(opts.Dest); err != nil {
		return err
	}
	if err := writer.CopyAssets(cfg, opts.Dest); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "%d of %d repositories published to %s\n", len(site.Entries()), len(repos), opts.Dest)
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d repositories failed: %w", len(failed), len(repos), failed[0])
	}
	return nil
}

// summaryObserver logs one line for every finished repository run.
type summaryObserver struct {
	pipeline.NoopObserver
	logger *slog.Logger
}

func (o summaryObserver) OnRepositoryComplete(report *pipeline.Report) {
	name := report.Name
	if name == "" {
		name = report.Source
	}
	o.logger.Info("Repository finished",
		logfields.Repository(name),
		logfields.Result(string(report.Outcome)),
		logfields.Warnings(len(report.Warnings)),
		logfields.DurationMS(float64(report.Duration().Microseconds())/1000))
}
