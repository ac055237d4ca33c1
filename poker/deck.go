package poker

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// ErrCardNotFound is returned when removing a card that is not in the deck.
var ErrCardNotFound = errors.New("card not found in deck")

// Deck is the set of cards still available for dealing, plus the random source
// used to order them. A Deck is not safe for concurrent use; give each worker
// its own via Clone.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a full 52-card deck in canonical order with explicit RNG.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, NumCards),
		rng:   rng,
	}
	for suit := range uint8(NumSuits) {
		for rank := range uint8(NumRanks) {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	return d
}

// Remove takes a specific card out of the deck.
func (d *Deck) Remove(c Card) error {
	for i, card := range d.cards {
		if card == c {
			d.cards = append(d.cards[:i], d.cards[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove %s: %w", c, ErrCardNotFound)
}

// Contains reports whether the card is still in the deck.
func (d *Deck) Contains(c Card) bool {
	for _, card := range d.cards {
		if card == c {
			return true
		}
	}
	return false
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards in deck order.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Clone returns an independent deck holding the same cards, drawing its
// randomness from rng.
func (d *Deck) Clone(rng *rand.Rand) *Deck {
	return &Deck{cards: d.Cards(), rng: rng}
}

// ShuffledCopy returns a new slice holding every remaining card exactly once
// in uniformly random order. The deck itself is left untouched.
func (d *Deck) ShuffledCopy() []Card {
	return d.ShuffleInto(nil)
}

// ShuffleInto is ShuffledCopy writing into dst's storage when it is large
// enough. The returned slice always has Len() elements.
func (d *Deck) ShuffleInto(dst []Card) []Card {
	if cap(dst) < len(d.cards) {
		dst = make([]Card, len(d.cards))
	}
	dst = dst[:len(d.cards)]
	copy(dst, d.cards)

	// Fisher-Yates
	for i := len(dst) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		dst[i], dst[j] = dst[j], dst[i]
	}
	return dst
}
