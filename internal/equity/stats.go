package equity

import "math"

// Stats accumulates trial outcomes for one starting hand against one
// opponent count. Wins+Ties never exceeds Trials.
type Stats struct {
	Trials int
	Wins   int
	Ties   int
}

// Add records one trial.
func (s *Stats) Add(o Outcome) {
	s.Trials++
	switch o {
	case Win:
		s.Wins++
	case Tie:
		s.Ties++
	}
}

// Merge folds another worker's counts into s.
func (s *Stats) Merge(other Stats) {
	s.Trials += other.Trials
	s.Wins += other.Wins
	s.Ties += other.Ties
}

// Losses returns the number of lost trials.
func (s Stats) Losses() int {
	return s.Trials - s.Wins - s.Ties
}

// WinProbability returns the fraction of trials won outright.
func (s Stats) WinProbability() float64 {
	if s.Trials == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Trials)
}

// TieProbability returns the fraction of trials tied with the best opponent.
func (s Stats) TieProbability() float64 {
	if s.Trials == 0 {
		return 0
	}
	return float64(s.Ties) / float64(s.Trials)
}

// LossProbability returns the fraction of trials lost.
func (s Stats) LossProbability() float64 {
	if s.Trials == 0 {
		return 0
	}
	return float64(s.Losses()) / float64(s.Trials)
}

// Equity counts wins fully and ties as half.
func (s Stats) Equity() float64 {
	if s.Trials == 0 {
		return 0
	}
	return (float64(s.Wins) + float64(s.Ties)*0.5) / float64(s.Trials)
}

// ExpectedGain returns the expected gain for these counts against opponents.
func (s Stats) ExpectedGain(opponents int) float64 {
	return ExpectedGain(s.WinProbability(), s.TieProbability(), opponents)
}

// ConfidenceInterval returns the 95% interval for the win probability using
// the normal approximation to the binomial.
func (s Stats) ConfidenceInterval() (lower, upper float64) {
	if s.Trials == 0 {
		return 0, 0
	}
	p := s.WinProbability()
	margin := 1.96 * math.Sqrt(p*(1-p)/float64(s.Trials))
	return math.Max(0, p-margin), math.Min(1, p+margin)
}

// ExpectedGain is the per-unit payoff when every participant stakes one unit
// and nothing else is bet: a win collects one unit from each opponent, a loss
// forfeits the hero's unit and a tie returns it.
func ExpectedGain(win, tie float64, opponents int) float64 {
	return win*float64(opponents) - (1-win-tie)*1
}
