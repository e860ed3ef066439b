package commands

import (
	"fmt"

	"git.home.luguber.info/inful/chainset/internal/config"
	cerrors "git.home.luguber.info/inful/chainset/internal/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	path := root.Config
	if path == "" {
		path = DefaultConfigPath
	}
	return RunInit(g, path, i.Force)
}

func RunInit(g *Global, configPath string, force bool) error {
	out := g.out()
	fmt.Fprintf(out, "Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, force); err != nil {
		return cerrors.FileError("init", configPath, err)
	}
	fmt.Fprintln(out, "initialized successfully")
	return nil
}
