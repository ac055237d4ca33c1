package oracle

import (
	"fmt"

	ph "github.com/paulhankin/poker"

	"github.com/lox/pokertexter/internal/equity"
	"github.com/lox/pokertexter/poker"
)

// Hankin scores hands with github.com/paulhankin/poker. The library ranks
// higher scores as stronger, so scores are negated.
type Hankin struct {
	cards [poker.NumCards]ph.Card
}

// NewHankin builds the card translation table.
func NewHankin() (*Hankin, error) {
	suits := [poker.NumSuits]ph.Suit{ph.Club, ph.Diamond, ph.Heart, ph.Spade}
	h := &Hankin{}
	for suit := range uint8(poker.NumSuits) {
		for rank := range uint8(poker.NumRanks) {
			// Library ranks run 1..13 with the ace as 1.
			r := ph.Rank(rank + 2)
			if rank == poker.Ace {
				r = 1
			}
			c, err := ph.MakeCard(suits[suit], r)
			if err != nil {
				return nil, fmt.Errorf("paulhankin card %s: %w", poker.NewCard(rank, suit), err)
			}
			h.cards[poker.NewCard(rank, suit).Index()] = c
		}
	}
	return h, nil
}

// Score evaluates the best five of the seven cards.
func (h *Hankin) Score(board [equity.BoardSize]poker.Card, hole [equity.HoleSize]poker.Card) int {
	var seven [7]ph.Card
	for i, c := range board {
		seven[i] = h.cards[c.Index()]
	}
	for i, c := range hole {
		seven[equity.BoardSize+i] = h.cards[c.Index()]
	}
	return -int(ph.Eval7(&seven))
}
