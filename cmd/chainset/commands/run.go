package commands

import (
	"fmt"

	cerrors "git.home.luguber.info/inful/chainset/internal/errors"
	"git.home.luguber.info/inful/chainset/internal/logfields"
	"git.home.luguber.info/inful/chainset/internal/script"
	"git.home.luguber.info/inful/chainset/internal/watch"
)

// RunCmd implements the 'run' command.
type RunCmd struct {
	Script string `arg:"" help:"Operation script (YAML)" type:"path"`
	Watch  bool   `short:"w" help:"Rerun the script whenever it changes, until interrupted"`
}

func (r *RunCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	runner := script.NewRunner(g.logger(), cfg.SetOptions()...)

	if !r.Watch {
		return r.once(g, runner)
	}

	logger := g.logger()
	if err := r.once(g, runner); err != nil {
		logger.Error("Script run failed", logfields.Path(r.Script), logfields.Error(err))
	}
	w, err := watch.New(r.Script, func() {
		fmt.Fprintf(g.out(), "--- %s changed, rerunning\n", r.Script)
		if err := r.once(g, runner); err != nil {
			logger.Error("Script run failed", logfields.Path(r.Script), logfields.Error(err))
		}
	}, watch.WithLogger(logger))
	if err != nil {
		return cerrors.FileError("watch", r.Script, err)
	}
	return w.Run(g.context())
}

// once parses and runs the script, printing its transcript.
func (r *RunCmd) once(g *Global, runner *script.Runner) error {
	sc, err := script.ParseFile(r.Script)
	if err != nil {
		return cerrors.ScriptInvalid(r.Script, err)
	}
	tr, err := runner.Run(sc)
	if tr != nil {
		if werr := tr.Write(g.out()); werr != nil {
			return cerrors.FileError("write", "stdout", werr)
		}
	}
	if err != nil {
		return err
	}
	return tr.Err()
}
