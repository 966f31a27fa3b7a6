package commands

import (
	"fmt"
	"io"

	"git.home.luguber.info/inful/gitin/internal/config"
	ferrors "git.home.luguber.info/inful/gitin/internal/foundation/errors"
)

// DefaultConfigPath is used by init when no --config is given.
const DefaultConfigPath = "gitin-site.conf"

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	path := root.Config
	if path == "" {
		path = DefaultConfigPath
	}
	return RunInit(g.out(), path, i.Force)
}

// RunInit writes the default configuration to path. The format follows the
// file extension.
func RunInit(out io.Writer, path string, force bool) error {
	_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", path)
	if err := config.Init(path, config.Default(), force); err != nil {
		return ferrors.ConfigError("unable to write configuration").
			WithCause(err).
			WithPath(path).
			Build()
	}
	_, _ = fmt.Fprintln(out, "Configuration initialized")
	return nil
}
