package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/gitin/cmd/gitin/commands"
	"git.home.luguber.info/inful/gitin/internal/config"
	ferrors "git.home.luguber.info/inful/gitin/internal/foundation/errors"
	"git.home.luguber.info/inful/gitin/internal/version"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "gitin: %v\n", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses args, executes the selected command and maps its error to an
// exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cli := &commands.CLI{}
	exitCode := -1
	parser, err := kong.New(cli,
		kong.Name("gitin"),
		kong.Description("Generate static HTML pages for git repositories."),
		kong.Vars{"version": version.String()},
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
	)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "gitin: %v\n", err)
		return ferrors.ExitInternal
	}

	kctx, err := parser.Parse(args)
	if exitCode >= 0 {
		return exitCode
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "gitin: error: %v\n", err)
		return ferrors.ExitUsage
	}

	err = kctx.Run(&commands.Global{Logger: slog.Default(), Context: ctx, Out: stdout}, cli)
	return ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).WithOutput(stderr).Report(err)
}
