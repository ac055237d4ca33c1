package equity

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertexter/internal/randutil"
	"github.com/lox/pokertexter/poker"
)

var aces = [HoleSize]poker.Card{poker.MustParseCard("As"), poker.MustParseCard("Ah")}

// dominant makes hero the strict best hand in every trial.
func dominant(hero [HoleSize]poker.Card) Oracle {
	return OracleFunc(func(_ [BoardSize]poker.Card, hole [HoleSize]poker.Card) int {
		if hole == hero {
			return 0
		}
		return 1
	})
}

// uniform gives every (board, hole) a pseudo-random but deterministic score,
// so no seat is favoured.
var uniform = OracleFunc(func(board [BoardSize]poker.Card, hole [HoleSize]poker.Card) int {
	b := uint64(poker.NewHand(board[:]...))
	h := uint64(poker.NewHand(hole[:]...))
	return int(randutil.Derive(int64(b), h) >> 1)
})

// constant ties everyone.
var constant = OracleFunc(func([BoardSize]poker.Card, [HoleSize]poker.Card) int { return 7 })

func deckWithout(t *testing.T, cards ...poker.Card) *poker.Deck {
	t.Helper()
	d := poker.NewDeck(randutil.New(1))
	for _, c := range cards {
		require.NoError(t, d.Remove(c))
	}
	return d
}

func TestSamplerDealsDistinctCards(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 4, MaxOpponents} {
		s, err := NewSampler(deckWithout(t, aces[:]...), n)
		require.NoError(t, err)
		assert.Equal(t, n, s.Opponents())

		for range 500 {
			trial := s.Draw()
			require.Len(t, trial.Opponents, n)

			var seen poker.Hand
			seen.AddCard(aces[0])
			seen.AddCard(aces[1])
			for _, c := range trial.Board {
				require.False(t, seen.HasCard(c), "board card %s repeated", c)
				seen.AddCard(c)
			}
			for _, hole := range trial.Opponents {
				for _, c := range hole {
					require.False(t, seen.HasCard(c), "hole card %s repeated", c)
					seen.AddCard(c)
				}
			}
			require.Equal(t, HoleSize+CardsNeeded(n), seen.CountCards())
		}
	}
}

func TestSamplerValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		opponents int
		deckSize  int
	}{
		{"zero opponents", 0, 50},
		{"negative opponents", -3, 50},
		{"too many opponents", MaxOpponents + 1, 50},
		{"deck too small", 3, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := poker.NewDeck(nil)
			for _, c := range d.Cards()[tt.deckSize:] {
				require.NoError(t, d.Remove(c))
			}
			require.Equal(t, tt.deckSize, d.Len())

			_, err := NewSampler(d, tt.opponents)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.opponents, verr.Value)
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	// Scores are taken from the first hole card's rank, higher rank stronger.
	byRank := OracleFunc(func(_ [BoardSize]poker.Card, hole [HoleSize]poker.Card) int {
		return -int(hole[0].Rank())
	})
	hole := func(s string) [HoleSize]poker.Card {
		return [HoleSize]poker.Card{poker.MustParseCard(s), poker.MustParseCard("2c")}
	}
	hero := hole("Ks")

	tests := []struct {
		name      string
		opponents []string
		want      Outcome
	}{
		{"beats single opponent", []string{"Qh"}, Win},
		{"loses to single opponent", []string{"Ah"}, Lose},
		{"ties single opponent", []string{"Kh"}, Tie},
		{"beats everyone", []string{"Qh", "Jd", "9c"}, Win},
		{"ties best of field", []string{"Qh", "Kd", "9c"}, Tie},
		{"any stronger opponent loses", []string{"Kh", "Ad", "9c"}, Lose},
		{"stronger opponent after a tie", []string{"Kh", "Kd", "Ac"}, Lose},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			trial := Trial{}
			for _, o := range tt.opponents {
				trial.Opponents = append(trial.Opponents, hole(o))
			}
			assert.Equal(t, tt.want, Classify(byRank, hero, trial))
		})
	}
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "win", Win.String())
	assert.Equal(t, "tie", Tie.String())
	assert.Equal(t, "lose", Lose.String())
	assert.Equal(t, "unknown", Outcome(9).String())
}

func TestStats(t *testing.T) {
	t.Parallel()

	var s Stats
	for range 6 {
		s.Add(Win)
	}
	for range 2 {
		s.Add(Tie)
	}
	s.Add(Lose)
	s.Add(Lose)

	assert.Equal(t, 10, s.Trials)
	assert.Equal(t, 2, s.Losses())
	assert.InDelta(t, 0.6, s.WinProbability(), 1e-12)
	assert.InDelta(t, 0.2, s.TieProbability(), 1e-12)
	assert.InDelta(t, 0.2, s.LossProbability(), 1e-12)
	assert.InDelta(t, 0.7, s.Equity(), 1e-12)
	assert.InDelta(t, 0.6*3-0.2, s.ExpectedGain(3), 1e-12)

	lo, hi := s.ConfidenceInterval()
	assert.Less(t, lo, 0.6)
	assert.Greater(t, hi, 0.6)
	assert.GreaterOrEqual(t, lo, 0.0)
	assert.LessOrEqual(t, hi, 1.0)

	var other Stats
	other.Add(Win)
	s.Merge(other)
	assert.Equal(t, Stats{Trials: 11, Wins: 7, Ties: 2}, s)

	var empty Stats
	assert.Zero(t, empty.WinProbability())
	assert.Zero(t, empty.Equity())
	lo, hi = empty.ConfidenceInterval()
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}

func TestExpectedGain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		win, tie  float64
		opponents int
		want      float64
	}{
		{1, 0, 1, 1},
		{1, 0, 9, 9},
		{0, 0, 5, -1},
		{0, 1, 5, 0},
		{0.5, 0, 1, 0},
		{0.25, 0.5, 2, 0.25},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ExpectedGain(tt.win, tt.tie, tt.opponents), 1e-12)
	}
}

func TestNewAggregatorValidation(t *testing.T) {
	t.Parallel()

	_, err := NewAggregator(nil)
	assert.Error(t, err)

	var verr *ValidationError
	_, err = NewAggregator(constant, WithTrials(0))
	assert.ErrorAs(t, err, &verr)
	_, err = NewAggregator(constant, WithWorkers(0))
	assert.ErrorAs(t, err, &verr)

	a, err := NewAggregator(constant)
	require.NoError(t, err)
	assert.Equal(t, DefaultTrials, a.Trials())
	assert.Equal(t, DefaultWorkers(), a.Workers())
}

func TestAggregatorDominantOracle(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 5, MaxOpponents} {
		a, err := NewAggregator(dominant(aces), WithTrials(2000), WithWorkers(4))
		require.NoError(t, err)

		stats, err := a.Run(context.Background(), aces, n, 42)
		require.NoError(t, err)
		assert.Equal(t, Stats{Trials: 2000, Wins: 2000}, stats)
		assert.InDelta(t, float64(n), stats.ExpectedGain(n), 1e-12)
	}
}

func TestAggregatorConstantOracleAlwaysTies(t *testing.T) {
	t.Parallel()

	a, err := NewAggregator(constant, WithTrials(500), WithWorkers(3))
	require.NoError(t, err)

	stats, err := a.Run(context.Background(), aces, 4, 1)
	require.NoError(t, err)
	assert.Equal(t, Stats{Trials: 500, Ties: 500}, stats)
	assert.InDelta(t, 0, stats.ExpectedGain(4), 1e-12)
}

func TestAggregatorUniformOracle(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 3, 9} {
		a, err := NewAggregator(uniform, WithTrials(20000), WithWorkers(4))
		require.NoError(t, err)

		stats, err := a.Run(context.Background(), aces, n, 99)
		require.NoError(t, err)
		assert.Equal(t, 20000, stats.Trials)
		assert.LessOrEqual(t, stats.Wins+stats.Ties, stats.Trials)
		assert.InDelta(t, 1/float64(n+1), stats.WinProbability(), 0.02, "opponents=%d", n)
	}
}

func TestAggregatorIsDeterministic(t *testing.T) {
	t.Parallel()

	a, err := NewAggregator(uniform, WithTrials(3000), WithWorkers(3))
	require.NoError(t, err)

	first, err := a.Run(context.Background(), aces, 2, 1234)
	require.NoError(t, err)
	second, err := a.Run(context.Background(), aces, 2, 1234)
	require.NoError(t, err)
	other, err := a.Run(context.Background(), aces, 2, 4321)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func TestAggregatorMoreWorkersThanTrials(t *testing.T) {
	t.Parallel()

	a, err := NewAggregator(constant, WithTrials(3), WithWorkers(8))
	require.NoError(t, err)

	stats, err := a.Run(context.Background(), aces, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Trials)
}

func TestAggregatorRejectsBeforeSampling(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	counting := OracleFunc(func([BoardSize]poker.Card, [HoleSize]poker.Card) int {
		calls.Add(1)
		return 0
	})
	a, err := NewAggregator(counting, WithTrials(100))
	require.NoError(t, err)

	for _, n := range []int{0, MaxOpponents + 1} {
		_, err := a.Run(context.Background(), aces, n, 0)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, "opponents=%d", n)
	}

	dup := [HoleSize]poker.Card{aces[0], aces[0]}
	_, err = a.Run(context.Background(), dup, 1, 0)
	assert.ErrorIs(t, err, poker.ErrCardNotFound)

	assert.Zero(t, calls.Load())
}

func TestAggregatorCancelled(t *testing.T) {
	t.Parallel()

	a, err := NewAggregator(uniform, WithTrials(100000), WithWorkers(2))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := a.Run(ctx, aces, 3, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, stats)
}
