// Package poker provides the card, deck and hand evaluation primitives used by
// the equity engine.
//
// Cards are single bits in a uint64 so that sets of cards (Hand) are plain
// bitwise unions. Layout: [13 spades][13 hearts][13 diamonds][13 clubs].
package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card is a single card encoded as one bit at position suit*13 + rank.
type Card uint64

// Hand is a set of cards, one bit per card.
type Hand uint64

// Suit constants
const (
	Clubs    uint8 = 0
	Diamonds uint8 = 1
	Hearts   uint8 = 2
	Spades   uint8 = 3
)

// Rank constants (0-12 for 2-A)
const (
	Two   uint8 = 0
	Three uint8 = 1
	Four  uint8 = 2
	Five  uint8 = 3
	Six   uint8 = 4
	Seven uint8 = 5
	Eight uint8 = 6
	Nine  uint8 = 7
	Ten   uint8 = 8
	Jack  uint8 = 9
	Queen uint8 = 10
	King  uint8 = 11
	Ace   uint8 = 12
)

const (
	// RankChars lists rank symbols in table order, deuce first.
	RankChars = "23456789TJQKA"
	// SuitChars lists suit symbols in suit order.
	SuitChars = "cdhs"

	// NumRanks and NumSuits describe the standard deck.
	NumRanks = 13
	NumSuits = 4
	NumCards = NumRanks * NumSuits

	rankMask = 0x1FFF
)

// NewCard creates a card from rank (0-12) and suit (0-3).
func NewCard(rank, suit uint8) Card {
	return Card(1) << (uint(suit)*NumRanks + uint(rank))
}

// Index returns the card's bit position (0-51), or -1 for the zero card.
func (c Card) Index() int {
	if c == 0 {
		return -1
	}
	return bits.TrailingZeros64(uint64(c))
}

// Rank returns the rank of the card (0-12).
func (c Card) Rank() uint8 {
	return uint8(c.Index() % NumRanks)
}

// Suit returns the suit of the card (0-3).
func (c Card) Suit() uint8 {
	return uint8(c.Index() / NumRanks)
}

// Valid reports whether c encodes exactly one of the 52 cards.
func (c Card) Valid() bool {
	return c != 0 && bits.OnesCount64(uint64(c)) == 1 && c.Index() < NumCards
}

// String returns the two character form, e.g. "As" or "Tc".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string(RankChars[c.Rank()]) + string(SuitChars[c.Suit()])
}

// ParseRank parses a single rank symbol such as 'A' or 't'.
func ParseRank(b byte) (uint8, error) {
	i := strings.IndexByte(RankChars, upper(b))
	if i < 0 {
		return 0, fmt.Errorf("invalid rank: %q", b)
	}
	return uint8(i), nil
}

// RankString returns the table symbol for rank r.
func RankString(r uint8) string {
	if r >= NumRanks {
		return "?"
	}
	return string(RankChars[r])
}

// ParseCard parses a string like "As" into a Card.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card string: %q", s)
	}
	rank, err := ParseRank(s[0])
	if err != nil {
		return 0, err
	}
	suit := strings.IndexByte(SuitChars, lower(s[1]))
	if suit < 0 {
		return 0, fmt.Errorf("invalid suit: %q", s[1])
	}
	return NewCard(rank, uint8(suit)), nil
}

// MustParseCard parses a card and panics on error. Intended for tests and
// fixed tables.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCards parses space separated or concatenated cards, e.g. "AsKd" or "As Kd".
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string length: %d", len(s))
	}
	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i/2+1, err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// NewHand creates a hand from multiple cards.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// AddCard adds a card to the hand.
func (h *Hand) AddCard(c Card) {
	*h |= Hand(c)
}

// HasCard checks if the hand contains a specific card.
func (h Hand) HasCard(c Card) bool {
	return h&Hand(c) != 0
}

// CountCards returns the number of cards in the hand.
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// GetSuitMask returns the ranks held in one suit as a 13-bit mask.
func (h Hand) GetSuitMask(suit uint8) uint16 {
	return uint16(uint64(h)>>(uint(suit)*NumRanks)) & rankMask
}

// Cards returns the cards of the hand in ascending bit order.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.CountCards())
	for rest := uint64(h); rest != 0; rest &= rest - 1 {
		cards = append(cards, Card(rest&-rest))
	}
	return cards
}

func (h Hand) String() string {
	parts := make([]string, 0, h.CountCards())
	for _, c := range h.Cards() {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " ")
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}
