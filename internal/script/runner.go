package script

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"

	"git.home.luguber.info/inful/chainset/internal/errors"
	"git.home.luguber.info/inful/chainset/internal/hashset"
	"git.home.luguber.info/inful/chainset/internal/logfields"
)

// Step records one executed operation.
type Step struct {
	Index  int
	Line   int
	Op     OpName
	Arg    string
	Result string
	Err    error
}

// Transcript is the outcome of a script run.
type Transcript struct {
	Steps      []Step
	Final      string
	Size       int
	Buckets    int
	LoadFactor float64
}

// Err returns the first step error, classified, or nil.
func (t *Transcript) Err() error {
	for _, s := range t.Steps {
		if s.Err != nil {
			return errors.ScriptFailed(s.Index+1, s.Err).WithContext("op", string(s.Op))
		}
	}
	return nil
}

// Write renders the transcript one step per line followed by the final set.
func (t *Transcript) Write(w io.Writer) error {
	for _, s := range t.Steps {
		result := s.Result
		if s.Err != nil {
			result = "error: " + s.Err.Error()
		}
		if _, err := fmt.Fprintf(w, "%3d  %-8s %-12s %s\n", s.Index+1, s.Op, s.Arg, result); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "final: %s\n", t.Final)
	return err
}

// Runner executes scripts with a base set configuration.
type Runner struct {
	// Base options apply to every set; script overrides are applied after them.
	Base   []hashset.Option
	Logger *slog.Logger
}

// NewRunner creates a runner. A nil logger uses slog.Default().
func NewRunner(logger *slog.Logger, base ...hashset.Option) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{Base: base, Logger: logger}
}

// Run executes sc against a fresh set. Operation errors are recorded on their step
// and execution continues; a failed expect stops the run and is returned together
// with the partial transcript.
func (r *Runner) Run(sc *Script) (*Transcript, error) {
	opts := append(slices.Clone(r.Base), sc.Set.options()...)
	switch sc.Elements {
	case KindInt:
		return run(r.Logger, sc, opts, func(arg string) hashset.Int {
			n, _ := strconv.Atoi(arg)
			return hashset.Int(n)
		})
	default:
		return run(r.Logger, sc, opts, func(arg string) hashset.String { return hashset.String(arg) })
	}
}

func (o SetOverrides) options() []hashset.Option {
	var opts []hashset.Option
	if o.BucketCount > 0 {
		opts = append(opts, hashset.WithBucketCount(o.BucketCount))
	}
	if o.LoadFactorLimit > 0 {
		opts = append(opts, hashset.WithLoadFactorLimit(o.LoadFactorLimit))
	}
	if o.PreserveOrderOnRehash != nil {
		opts = append(opts, hashset.WithOrderPreservingRehash(*o.PreserveOrderOnRehash))
	}
	return opts
}

func run[T hashset.Element[T]](logger *slog.Logger, sc *Script, opts []hashset.Option, parse func(string) T) (*Transcript, error) {
	set, err := hashset.New[T](opts...)
	if err != nil {
		return nil, errors.FromSet(err)
	}

	t := &Transcript{}
	finish := func() {
		t.Final = set.Describe()
		t.Size = set.Len()
		t.Buckets = set.Buckets()
		t.LoadFactor = set.LoadFactor()
	}

	for i, op := range sc.Ops {
		step := Step{Index: i, Line: op.Line, Op: op.Name, Arg: op.Arg}
		switch op.Name {
		case OpAdd:
			ok, err := set.Add(parse(op.Arg))
			step.Result, step.Err = strconv.FormatBool(ok), err
		case OpRemove:
			ok, err := set.Remove(parse(op.Arg))
			step.Result, step.Err = strconv.FormatBool(ok), err
		case OpContains:
			ok, err := set.Contains(parse(op.Arg))
			step.Result, step.Err = strconv.FormatBool(ok), err
		case OpRehash:
			n, _ := strconv.Atoi(op.Arg)
			step.Err = set.Rehash(n)
			step.Result = strconv.Itoa(set.Buckets())
		case OpSize:
			step.Arg = ""
			step.Result = strconv.Itoa(set.Len())
		case OpDescribe:
			step.Arg = ""
			step.Result = set.Describe()
		case OpExpect:
			step.Result = set.Describe()
			if step.Result != op.Arg {
				t.Steps = append(t.Steps, step)
				finish()
				return t, errors.ScriptFailed(i+1, fmt.Errorf("line %d: expected %q, got %q", op.Line, op.Arg, step.Result)).
					WithContext("op", string(op.Name))
			}
		}

		if step.Err != nil {
			logger.Warn("Script step failed",
				logfields.Step(i+1),
				logfields.Op(string(op.Name)),
				logfields.Error(step.Err))
		} else {
			logger.Debug("Script step",
				logfields.Step(i+1),
				logfields.Op(string(op.Name)),
				slog.String("result", step.Result))
		}
		t.Steps = append(t.Steps, step)
	}

	finish()
	logger.Info("Script finished",
		logfields.Elements(t.Size),
		logfields.Buckets(t.Buckets),
		logfields.LoadFactor(t.LoadFactor))
	return t, nil
}
