package lookuptable

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokertexter/internal/equity"
	"github.com/lox/pokertexter/internal/handclass"
	"github.com/lox/pokertexter/internal/randutil"
)

// Progress describes the generator's position after finishing a class.
type Progress struct {
	Opponents int
	Done      int
	Total     int
	Class     handclass.Class
	Elapsed   time.Duration
}

// ProgressFunc receives a Progress after every class. It runs on the
// generating goroutine and should return quickly.
type ProgressFunc func(Progress)

// Config holds what a Generator needs. Zero values get defaults: the package
// default trial and worker counts, a wall-clock seed, log.Default and a real
// clock.
type Config struct {
	Oracle     equity.Oracle
	Trials     int
	Workers    int
	Seed       int64
	Logger     *log.Logger
	Clock      quartz.Clock
	OnProgress ProgressFunc
}

// Generator builds complete tables, one class at a time.
type Generator struct {
	agg        *equity.Aggregator
	seed       int64
	logger     *log.Logger
	clock      quartz.Clock
	onProgress ProgressFunc
}

// NewGenerator validates cfg and builds the aggregator shared by all classes.
func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.Trials == 0 {
		cfg.Trials = equity.DefaultTrials
	}
	if cfg.Workers == 0 {
		cfg.Workers = equity.DefaultWorkers()
	}
	if cfg.Seed == 0 {
		cfg.Seed = randutil.Seed()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}

	agg, err := equity.NewAggregator(cfg.Oracle, equity.WithTrials(cfg.Trials), equity.WithWorkers(cfg.Workers))
	if err != nil {
		return nil, err
	}
	return &Generator{
		agg:        agg,
		seed:       cfg.Seed,
		logger:     cfg.Logger.WithPrefix("generator"),
		clock:      cfg.Clock,
		onProgress: cfg.OnProgress,
	}, nil
}

// Seed returns the base seed every class seed is derived from.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Generate simulates every class against opponents and returns the rows in
// table order. Class i is seeded from the base seed, i and opponents, so a
// single row can be reproduced without regenerating the table. Cancellation is
// honoured between classes and within a running class.
func (g *Generator) Generate(ctx context.Context, opponents int) ([]Row, error) {
	if err := equity.ValidateOpponents(opponents); err != nil {
		return nil, err
	}

	classes := handclass.All()
	rows := make([]Row, 0, len(classes))
	start := g.clock.Now()

	g.logger.Info("Generating table",
		"opponents", opponents,
		"trials", g.agg.Trials(),
		"workers", g.agg.Workers(),
		"seed", g.seed)

	for i, class := range classes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stats, err := g.agg.Run(ctx, class.Hole(), opponents, g.ClassSeed(i, opponents))
		if err != nil {
			return nil, fmt.Errorf("simulate %s: %w", class, err)
		}
		rows = append(rows, Row{
			Class: class,
			Win:   stats.WinProbability(),
			Tie:   stats.TieProbability(),
			Gain:  stats.ExpectedGain(opponents),
		})

		g.logger.Debug("Simulated class", "class", class, "win", stats.WinProbability(), "tie", stats.TieProbability())
		if g.onProgress != nil {
			g.onProgress(Progress{
				Opponents: opponents,
				Done:      i + 1,
				Total:     len(classes),
				Class:     class,
				Elapsed:   g.clock.Since(start),
			})
		}
	}

	g.logger.Info("Table complete", "opponents", opponents, "elapsed", g.clock.Since(start))
	return rows, nil
}

// ClassSeed returns the seed used for the class at index in table order.
func (g *Generator) ClassSeed(index, opponents int) int64 {
	return randutil.Derive(g.seed, uint64(index), uint64(opponents))
}

// GenerateFile generates the table for opponents and writes it into dir,
// creating dir if needed. Nothing is written unless every class succeeded.
func (g *Generator) GenerateFile(ctx context.Context, dir string, opponents int) (string, error) {
	rows, err := g.Generate(ctx, opponents)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path, err := WriteFile(dir, opponents, rows)
	if err != nil {
		return "", err
	}
	g.logger.Info("Wrote table", "path", path, "rows", len(rows))
	return path, nil
}
