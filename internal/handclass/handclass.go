// Package handclass enumerates the 169 strategically distinct preflop
// starting hands.
package handclass

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/pokertexter/poker"
)

// Count is the number of distinct starting-hand classes: 13 pairs plus 78
// rank pairs, each suited or offsuit.
const Count = 169

// Suiting labels as written in lookup tables.
const (
	Suited  = "suited"
	Offsuit = "offsuit"
)

// ErrSuitedPair is returned when asked for a pair that shares a suit.
var ErrSuitedPair = errors.New("a pair cannot be suited")

// Class is a starting hand reduced to its ranks and whether the two cards
// share a suit. Low <= High in table order (deuce lowest).
type Class struct {
	Low    uint8
	High   uint8
	Suited bool
}

// New builds a class from two ranks in any order.
func New(r1, r2 uint8, suited bool) (Class, error) {
	if r1 >= poker.NumRanks || r2 >= poker.NumRanks {
		return Class{}, fmt.Errorf("rank out of range: %d, %d", r1, r2)
	}
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	if r1 == r2 && suited {
		return Class{}, fmt.Errorf("%s%s: %w", poker.RankString(r1), poker.RankString(r2), ErrSuitedPair)
	}
	return Class{Low: r1, High: r2, Suited: suited}, nil
}

// FromHole classifies two concrete hole cards.
func FromHole(c1, c2 poker.Card) (Class, error) {
	return New(c1.Rank(), c2.Rank(), c1.Suit() == c2.Suit() && c1.Rank() != c2.Rank())
}

// All returns every class in table order: for each low rank ascending, each
// high rank from the low rank up; a pair once, any other rank pair offsuit
// and then suited.
func All() []Class {
	classes := make([]Class, 0, Count)
	for c1 := range uint8(poker.NumRanks) {
		for c2 := c1; c2 < poker.NumRanks; c2++ {
			classes = append(classes, Class{Low: c1, High: c2})
			if c1 != c2 {
				classes = append(classes, Class{Low: c1, High: c2, Suited: true})
			}
		}
	}
	return classes
}

// IsPair reports whether both ranks match.
func (c Class) IsPair() bool {
	return c.Low == c.High
}

// Suiting returns "suited" or "offsuit".
func (c Class) Suiting() string {
	if c.Suited {
		return Suited
	}
	return Offsuit
}

// Hole returns concrete cards for the class. All suits are symmetric, so the
// low card is always a spade and the high card a club (offsuit) or a spade
// (suited).
func (c Class) Hole() [2]poker.Card {
	highSuit := poker.Clubs
	if c.Suited {
		highSuit = poker.Spades
	}
	return [2]poker.Card{
		poker.NewCard(c.Low, poker.Spades),
		poker.NewCard(c.High, highSuit),
	}
}

// Combos returns how many concrete two-card hands map to the class.
func (c Class) Combos() int {
	switch {
	case c.IsPair():
		return 6
	case c.Suited:
		return 4
	default:
		return 12
	}
}

// String returns the conventional short form, high rank first: "AA", "AKs", "72o".
func (c Class) String() string {
	s := poker.RankString(c.High) + poker.RankString(c.Low)
	switch {
	case c.IsPair():
		return s
	case c.Suited:
		return s + "s"
	default:
		return s + "o"
	}
}

// Parse reads the short form produced by String, in either rank order.
// A bare non-pair such as "AK" is rejected as ambiguous.
func Parse(s string) (Class, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || len(s) > 3 {
		return Class{}, fmt.Errorf("invalid starting hand %q", s)
	}
	r1, err := poker.ParseRank(s[0])
	if err != nil {
		return Class{}, fmt.Errorf("invalid starting hand %q: %w", s, err)
	}
	r2, err := poker.ParseRank(s[1])
	if err != nil {
		return Class{}, fmt.Errorf("invalid starting hand %q: %w", s, err)
	}

	var suited bool
	switch {
	case len(s) == 2 && r1 == r2:
	case len(s) == 3 && (s[2] == 's' || s[2] == 'S'):
		suited = true
	case len(s) == 3 && (s[2] == 'o' || s[2] == 'O'):
	default:
		return Class{}, fmt.Errorf("invalid starting hand %q: want a pair or an s/o suffix", s)
	}
	return New(r1, r2, suited)
}
