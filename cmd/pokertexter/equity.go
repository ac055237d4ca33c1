package main

import (
	"context"
	"fmt"

	"github.com/lox/pokertexter/cmd/pokertexter/shared"
	"github.com/lox/pokertexter/internal/equity"
	"github.com/lox/pokertexter/internal/handclass"
	"github.com/lox/pokertexter/internal/oracle"
	"github.com/lox/pokertexter/internal/randutil"
	"github.com/lox/pokertexter/internal/tui"
)

// EquityCmd simulates a single starting hand and prints the result.
type EquityCmd struct {
	Class     string `arg:"" help:"Starting hand, e.g. AKs, T9o or 77"`
	Opponents int    `short:"n" default:"1" help:"Number of other players at the table"`
	Trials    int    `short:"t" help:"Simulated deals (default from config)"`
	Seed      *int64 `help:"Deterministic RNG seed (optional)"`
	Workers   int    `short:"w" help:"Worker goroutines (default: one per CPU)"`
	Oracle    string `help:"Hand evaluator: native or paulhankin (overrides config)"`
}

func (c *EquityCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	class, err := handclass.Parse(c.Class)
	if err != nil {
		return err
	}

	trials := cfg.Generate.Trials
	if c.Trials != 0 {
		trials = c.Trials
	}
	name := cfg.Generate.Oracle
	if c.Oracle != "" {
		name = c.Oracle
	}
	ev, err := oracle.ByName(name)
	if err != nil {
		return err
	}

	opts := []equity.Option{equity.WithTrials(trials)}
	if c.Workers != 0 {
		opts = append(opts, equity.WithWorkers(c.Workers))
	} else if cfg.Generate.Workers != 0 {
		opts = append(opts, equity.WithWorkers(cfg.Generate.Workers))
	}
	agg, err := equity.NewAggregator(ev, opts...)
	if err != nil {
		return err
	}

	seed := cfg.Generate.Seed
	if c.Seed != nil {
		seed = *c.Seed
	}
	if seed == 0 {
		seed = randutil.Seed()
	}
	logger.Debug("Simulating", "class", class, "opponents", c.Opponents, "trials", trials, "seed", seed, "oracle", name)

	ctx, cancel := shared.SetupSignalHandler(context.Background(), logger)
	defer cancel()

	stats, err := agg.Run(ctx, class.Hole(), c.Opponents, seed)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(g.out(), tui.RenderStats(class, c.Opponents, stats))
	return err
}
