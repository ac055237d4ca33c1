package equity

import "fmt"

const (
	// BoardSize is the number of community cards dealt per trial.
	BoardSize = 5
	// HoleSize is the number of private cards per participant.
	HoleSize = 2

	// MinOpponents and MaxOpponents bound the opponent count. With the hero's
	// two cards removed, 50 cards remain: 5 for the board and 2 for each of
	// at most 22 opponents.
	MinOpponents = 1
	MaxOpponents = 22

	// DefaultTrials is the number of trials per starting-hand class.
	DefaultTrials = 10000
)

// ValidationError reports an input that makes a simulation impossible. It is
// always returned before any sampling happens.
type ValidationError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %d: %s", e.Field, e.Value, e.Reason)
}

// CardsNeeded returns how many cards one trial deals for the given opponent count.
func CardsNeeded(opponents int) int {
	return BoardSize + HoleSize*opponents
}

// ValidateOpponents checks the opponent count against the supported range.
func ValidateOpponents(opponents int) error {
	if opponents < MinOpponents || opponents > MaxOpponents {
		return &ValidationError{
			Field:  "opponent count",
			Value:  opponents,
			Reason: fmt.Sprintf("must be between %d and %d", MinOpponents, MaxOpponents),
		}
	}
	return nil
}

// ValidateTrials checks that a trial count is positive.
func ValidateTrials(trials int) error {
	if trials < 1 {
		return &ValidationError{Field: "trial count", Value: trials, Reason: "must be positive"}
	}
	return nil
}
