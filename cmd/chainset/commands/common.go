package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/chainset/internal/config"
	cerrors "git.home.luguber.info/inful/chainset/internal/errors"
)

// DefaultConfigPath is where init writes when no --config is given.
const DefaultConfigPath = "chainset.yaml"

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
	// Ctx is cancelled on interrupt; long-running commands stop when it is done.
	Ctx context.Context
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func (g *Global) context() context.Context {
	if g == nil || g.Ctx == nil {
		return context.Background()
	}
	return g.Ctx
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (built-in defaults when empty)" env:"CHAINSET_CONFIG" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
	Run      RunCmd      `cmd:"" help:"Execute an operation script against a fresh set"`
	Describe DescribeCmd `cmd:"" help:"Build a set from values and print its bucket layout"`
	Bench    BenchCmd    `cmd:"" help:"Run the load generator and report latency and bucket stats"`
	Serve    ServeCmd    `cmd:"" help:"Serve sets over the HTTP API"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig loads --config, or the defaults when none is given, and reapplies
// logging from the config's logging section. --verbose keeps debug level.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	var cfg *config.Config
	if c.Config == "" {
		cfg = config.Default()
	} else {
		if _, err := os.Stat(c.Config); os.IsNotExist(err) {
			return nil, cerrors.ConfigNotFound(c.Config)
		}
		loaded, err := config.Load(c.Config)
		if err != nil {
			return nil, cerrors.ConfigInvalid(c.Config, err)
		}
		cfg = loaded
	}
	if g != nil && g.Logger == nil {
		g.Logger = newLogger(cfg.Logging, c.Verbose)
	}
	return cfg, nil
}

func newLogger(lc config.LoggingConfig, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch config.NormalizeLogLevel(string(lc.Level)) {
	case config.LogLevelDebug:
		level = slog.LevelDebug
	case config.LogLevelWarn:
		level = slog.LevelWarn
	case config.LogLevelError:
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if config.NormalizeLogFormat(string(lc.Format)) == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
