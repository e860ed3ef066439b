package commands

import (
	"fmt"
	"strconv"

	cerrors "git.home.luguber.info/inful/chainset/internal/errors"
	"git.home.luguber.info/inful/chainset/internal/hashset"
)

// DescribeCmd implements the 'describe' command.
type DescribeCmd struct {
	Values []string `arg:"" optional:"" help:"Elements to add, in order"`
	Int    bool     `help:"Treat values as integers"`
	Chains bool     `help:"Also print every non-empty bucket's chain on its own line"`
}

func (d *DescribeCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	opts := append(cfg.SetOptions(), hashset.WithLogger(g.logger()))
	if d.Int {
		return describeValues(g, opts, d.Values, d.Chains, func(raw string) (hashset.Int, error) {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return 0, cerrors.InvalidArgument(fmt.Sprintf("not an integer: %q", raw), err)
			}
			return hashset.Int(n), nil
		})
	}
	return describeValues(g, opts, d.Values, d.Chains, func(raw string) (hashset.String, error) {
		return hashset.String(raw), nil
	})
}

func describeValues[T hashset.Element[T]](g *Global, opts []hashset.Option, values []string, chains bool, parse func(string) (T, error)) error {
	set, err := hashset.New[T](opts...)
	if err != nil {
		return cerrors.FromSet(err)
	}
	for _, raw := range values {
		v, err := parse(raw)
		if err != nil {
			return err
		}
		if _, err := set.Add(v); err != nil {
			return cerrors.FromSet(err)
		}
	}

	out := g.out()
	fmt.Fprintln(out, set.Describe())
	if chains {
		for i, chain := range set.Chains() {
			if len(chain) == 0 {
				continue
			}
			fmt.Fprintf(out, "b%d:", i)
			for _, v := range chain {
				fmt.Fprintf(out, " %v", v)
			}
			fmt.Fprintf(out, " (%d)\n", len(chain))
		}
	}
	return nil
}
