package equity

import (
	"fmt"

	"github.com/lox/pokertexter/poker"
)

// Trial is one simulated deal: the board and every opponent's hole cards.
type Trial struct {
	Board     [BoardSize]poker.Card
	Opponents [][HoleSize]poker.Card
}

// Sampler deals trials from a deck that already lacks the hero's hole cards.
type Sampler struct {
	deck      *poker.Deck
	opponents int
	buf       []poker.Card
	trial     Trial
}

// NewSampler validates the opponent count against both the supported range
// and the cards actually left in deck.
func NewSampler(deck *poker.Deck, opponents int) (*Sampler, error) {
	if err := ValidateOpponents(opponents); err != nil {
		return nil, err
	}
	if need := CardsNeeded(opponents); deck.Len() < need {
		return nil, &ValidationError{
			Field:  "opponent count",
			Value:  opponents,
			Reason: fmt.Sprintf("needs %d cards but the deck holds %d", need, deck.Len()),
		}
	}
	return &Sampler{
		deck:      deck,
		opponents: opponents,
		buf:       make([]poker.Card, deck.Len()),
		trial:     Trial{Opponents: make([][HoleSize]poker.Card, opponents)},
	}, nil
}

// Opponents returns the number of opponent hands dealt per trial.
func (s *Sampler) Opponents() int {
	return s.opponents
}

// Draw shuffles the deck once and deals the board from the top five cards,
// then two cards per opponent in seat order. Every dealt card is distinct
// because they all come from a single permutation. The returned Trial shares
// storage with the sampler and is only valid until the next Draw.
func (s *Sampler) Draw() Trial {
	s.buf = s.deck.ShuffleInto(s.buf)
	copy(s.trial.Board[:], s.buf[:BoardSize])
	for i := range s.trial.Opponents {
		off := BoardSize + HoleSize*i
		s.trial.Opponents[i] = [HoleSize]poker.Card{s.buf[off], s.buf[off+1]}
	}
	return s.trial
}
