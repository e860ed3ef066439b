package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/chainset/cmd/chainset/commands"
	cerrors "git.home.luguber.info/inful/chainset/internal/errors"
	"git.home.luguber.info/inful/chainset/internal/version"
)

func main() {
	var cli commands.CLI
	parser := kong.Parse(&cli,
		kong.Name("chainset"),
		kong.Description("Separate-chaining hash set: scripts, inspection, benchmarks, and an HTTP API."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := parser.Run(&commands.Global{Out: os.Stdout, Ctx: ctx}, &cli)
	cancel()

	cerrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
