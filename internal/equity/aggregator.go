// Package equity estimates preflop win and tie probabilities by Monte Carlo
// simulation against a field of random opponent hands.
package equity

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/pokertexter/internal/randutil"
	"github.com/lox/pokertexter/poker"
)

// ctxCheckInterval is how many trials a worker runs between cancellation checks.
const ctxCheckInterval = 1024

// Aggregator runs the trials for one starting hand and opponent count.
type Aggregator struct {
	oracle  Oracle
	trials  int
	workers int
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithTrials sets the number of trials per Run.
func WithTrials(n int) Option {
	return func(a *Aggregator) {
		a.trials = n
	}
}

// WithWorkers sets how many goroutines share the trials of one Run.
func WithWorkers(n int) Option {
	return func(a *Aggregator) {
		a.workers = n
	}
}

// DefaultWorkers returns the CPU count capped at 8.
func DefaultWorkers() int {
	return min(runtime.NumCPU(), 8)
}

// NewAggregator creates an aggregator scoring hands with oracle.
func NewAggregator(oracle Oracle, opts ...Option) (*Aggregator, error) {
	if oracle == nil {
		return nil, errors.New("equity: nil oracle")
	}
	a := &Aggregator{
		oracle:  oracle,
		trials:  DefaultTrials,
		workers: DefaultWorkers(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if err := ValidateTrials(a.trials); err != nil {
		return nil, err
	}
	if a.workers < 1 {
		return nil, &ValidationError{Field: "worker count", Value: a.workers, Reason: "must be positive"}
	}
	return a, nil
}

// Trials returns the configured trial count.
func (a *Aggregator) Trials() int {
	return a.trials
}

// Workers returns the configured worker count.
func (a *Aggregator) Workers() int {
	return a.workers
}

// Run simulates the configured number of trials for the hero's hole cards
// against opponents random hands and returns the merged counts. Each worker
// owns its deck and a generator derived from seed and its index, so the
// result depends only on seed, trials and workers. A cancelled context
// discards the partial counts.
func (a *Aggregator) Run(ctx context.Context, hole [HoleSize]poker.Card, opponents int, seed int64) (Stats, error) {
	if err := ValidateOpponents(opponents); err != nil {
		return Stats{}, err
	}

	base := poker.NewDeck(nil)
	for _, c := range hole {
		if err := base.Remove(c); err != nil {
			return Stats{}, err
		}
	}
	// Validates deck size before any worker starts.
	if _, err := NewSampler(base, opponents); err != nil {
		return Stats{}, err
	}

	workers := min(a.workers, a.trials)
	per, extra := a.trials/workers, a.trials%workers
	results := make([]Stats, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		n := per
		if w < extra {
			n++
		}
		g.Go(func() error {
			rng := randutil.New(randutil.Derive(seed, uint64(w)))
			sampler, err := NewSampler(base.Clone(rng), opponents)
			if err != nil {
				return err
			}
			var s Stats
			for i := range n {
				if i%ctxCheckInterval == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				s.Add(Classify(a.oracle, hole, sampler.Draw()))
			}
			results[w] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	var total Stats
	for _, r := range results {
		total.Merge(r)
	}
	return total, nil
}
