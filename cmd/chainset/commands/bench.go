package commands

import (
	"fmt"

	"git.home.luguber.info/inful/chainset/internal/bench"
	"git.home.luguber.info/inful/chainset/internal/hashset"
)

// BenchCmd implements the 'bench' command. Zero or negative flags keep the
// configured values.
type BenchCmd struct {
	Elements    int     `short:"n" help:"Inserts and lookups to perform"`
	RemoveRatio float64 `name:"remove-ratio" help:"Removes as a fraction of elements" default:"-1"`
	Seed        uint64  `help:"Random seed"`
	KeySpace    int     `name:"key-space" help:"Draw values from [0, key-space); twice the element count when zero"`
}

func (b *BenchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	w := bench.Workload{
		Name:        "cli",
		Elements:    cfg.Bench.Elements,
		RemoveRatio: cfg.Bench.RemoveRatio,
		Seed:        cfg.Bench.Seed,
		KeySpace:    b.KeySpace,
	}
	if b.Elements > 0 {
		w.Elements = b.Elements
	}
	if b.RemoveRatio >= 0 {
		w.RemoveRatio = b.RemoveRatio
	}
	if b.Seed > 0 {
		w.Seed = b.Seed
	}

	logger := g.logger()
	result, err := bench.Run(g.context(), w,
		bench.WithSetOptions(append(cfg.SetOptions(), hashset.WithLogger(logger))...),
		bench.WithLogger(logger))
	if result != nil {
		fmt.Fprint(g.out(), result.Summary())
	}
	return err
}
