package main

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/pokertexter/cmd/pokertexter/shared"
	"github.com/lox/pokertexter/internal/equity"
	"github.com/lox/pokertexter/internal/lookuptable"
	"github.com/lox/pokertexter/internal/oracle"
	"github.com/lox/pokertexter/internal/randutil"
	"github.com/lox/pokertexter/internal/tui"
)

// GenerateCmd writes lookup-table-N for one opponent count.
type GenerateCmd struct {
	Opponents int    `arg:"" help:"Number of other players at the table (1-22)"`
	Trials    int    `arg:"" optional:"" help:"Simulated deals per starting hand (default from config)"`
	OutputDir string `short:"o" help:"Directory to write the table into (overrides config)"`
	Seed      *int64 `help:"Deterministic RNG seed (optional)"`
	Workers   int    `short:"w" help:"Worker goroutines (default: one per CPU)"`
	Oracle    string `help:"Hand evaluator: native or paulhankin (overrides config)"`
	Progress  string `default:"log" enum:"log,tui,plain,none" help:"Progress display: log, tui, plain or none"`
}

func (c *GenerateCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}
	if err := equity.ValidateOpponents(c.Opponents); err != nil {
		return err
	}

	settings := *cfg.Generate
	if c.Trials != 0 {
		settings.Trials = c.Trials
	}
	if c.OutputDir != "" {
		settings.OutputDir = c.OutputDir
	}
	if c.Workers != 0 {
		settings.Workers = c.Workers
	}
	if c.Oracle != "" {
		settings.Oracle = c.Oracle
	}
	if c.Seed != nil {
		settings.Seed = *c.Seed
	}
	if settings.Seed == 0 {
		settings.Seed = randutil.Seed()
		logger.Info("Using random seed", "seed", settings.Seed)
	} else {
		logger.Info("Using deterministic seed", "seed", settings.Seed)
	}

	ev, err := oracle.ByName(settings.Oracle)
	if err != nil {
		return err
	}

	ctx, cancel := shared.SetupSignalHandler(context.Background(), logger)
	defer cancel()

	generate := func(ctx context.Context, onProgress lookuptable.ProgressFunc) (string, error) {
		gen, err := lookuptable.NewGenerator(lookuptable.Config{
			Oracle:     ev,
			Trials:     settings.Trials,
			Workers:    settings.Workers,
			Seed:       settings.Seed,
			Logger:     logger,
			OnProgress: onProgress,
		})
		if err != nil {
			return "", err
		}
		return gen.GenerateFile(ctx, settings.OutputDir, c.Opponents)
	}

	var path string
	switch c.Progress {
	case "tui":
		// The progress bar owns the terminal; only problems get logged.
		if logger.GetLevel() < log.WarnLevel {
			logger.SetLevel(log.WarnLevel)
		}
		path, err = tui.RunGenerate(ctx, c.Opponents, g.out(), generate)
	case "plain":
		path, err = generate(ctx, tui.PrintProgress(g.out()))
	case "log":
		path, err = generate(ctx, tui.LogProgress(logger))
	default:
		path, err = generate(ctx, nil)
	}
	if err != nil {
		return err
	}

	logger.Info("Wrote lookup table",
		"path", path,
		"opponents", c.Opponents,
		"trials", settings.Trials,
		"oracle", settings.Oracle)
	return nil
}
