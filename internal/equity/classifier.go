package equity

import "github.com/lox/pokertexter/poker"

// Outcome is the result of one trial from the hero's point of view.
type Outcome uint8

const (
	Win Outcome = iota
	Tie
	Lose
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Tie:
		return "tie"
	case Lose:
		return "lose"
	default:
		return "unknown"
	}
}

// Oracle scores a two-card hand against a five-card board. Lower scores are
// strictly stronger. Implementations must be deterministic, return equal
// scores exactly for equal-strength hands, and be safe for concurrent use;
// classification is undefined for an oracle that is not a strict total order.
type Oracle interface {
	Score(board [BoardSize]poker.Card, hole [HoleSize]poker.Card) int
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func(board [BoardSize]poker.Card, hole [HoleSize]poker.Card) int

// Score calls f.
func (f OracleFunc) Score(board [BoardSize]poker.Card, hole [HoleSize]poker.Card) int {
	return f(board, hole)
}

// Classify decides whether the hero wins, ties or loses a trial. Any opponent
// scoring strictly better is a loss and ends the scan; otherwise the hero ties
// when the best opponent matches the hero's score and wins outright when not.
// Opponents are never ranked against each other.
func Classify(o Oracle, hero [HoleSize]poker.Card, t Trial) Outcome {
	heroScore := o.Score(t.Board, hero)
	best := 0
	for i, hole := range t.Opponents {
		score := o.Score(t.Board, hole)
		if score < heroScore {
			return Lose
		}
		if i == 0 || score < best {
			best = score
		}
	}
	if len(t.Opponents) > 0 && best == heroScore {
		return Tie
	}
	return Win
}
