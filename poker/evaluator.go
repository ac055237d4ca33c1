package poker

import (
	"fmt"
	"math/bits"
)

// HandRank represents the strength of a poker hand. Lower values are stronger,
// and two hands of equal strength always share the same value.
type HandRank uint32

// HandType enumerates the categories of poker hands ordered from weakest to strongest.
type HandType uint8

const (
	HighCard HandType = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var handTypeNames = [...]string{
	HighCard:      "High Card",
	Pair:          "Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
}

func (t HandType) String() string {
	if int(t) < len(handTypeNames) {
		return handTypeNames[t]
	}
	return "Unknown"
}

// A strength key packs the category into bits 20-23 and up to five tiebreak
// ranks into 4-bit nibbles below it, most significant first. Keys grow with
// strength; HandRank flips them so that lower is stronger.
const (
	categoryShift = 20
	worstKey      = HandRank(StraightFlush+1) << categoryShift
)

// Type returns the category of the hand.
func (hr HandRank) Type() HandType {
	return HandType((worstKey - 1 - hr) >> categoryShift)
}

// String returns a human-readable hand description.
func (hr HandRank) String() string {
	return hr.Type().String()
}

// CompareHands compares two hands and returns 1 if a wins, -1 if b wins, 0 for tie.
func CompareHands(a, b HandRank) int {
	switch {
	case a < b:
		return 1
	case a > b:
		return -1
	}
	return 0
}

// Evaluate returns the strength of the best five-card hand contained in h,
// which must hold between five and seven cards.
func Evaluate(h Hand) (HandRank, error) {
	if n := h.CountCards(); n < 5 || n > 7 {
		return 0, fmt.Errorf("evaluate: need 5-7 cards, got %d", n)
	}
	return evaluateUnchecked(h), nil
}

// Evaluate7Cards evaluates the best 5-card hand from 7 cards. It panics when h
// does not hold exactly seven distinct cards.
func Evaluate7Cards(h Hand) HandRank {
	if n := h.CountCards(); n != 7 {
		panic(fmt.Sprintf("poker: Evaluate7Cards called with %d cards", n))
	}
	return evaluateUnchecked(h)
}

func evaluateUnchecked(h Hand) HandRank {
	var suits [NumSuits]uint16
	var all uint16
	for s := range uint8(NumSuits) {
		suits[s] = h.GetSuitMask(s)
		all |= suits[s]
	}

	var counts [NumRanks]uint8
	for _, m := range suits {
		for rest := m; rest != 0; rest &= rest - 1 {
			counts[bits.TrailingZeros16(rest)]++
		}
	}
	var quads, trips, pairs uint16
	for r, n := range counts {
		switch n {
		case 4:
			quads |= 1 << r
		case 3:
			trips |= 1 << r
		case 2:
			pairs |= 1 << r
		}
	}

	// At most one suit can hold five of seven cards.
	flushSuit := -1
	for s, m := range suits {
		if bits.OnesCount16(m) >= 5 {
			flushSuit = s
		}
	}

	if flushSuit >= 0 {
		if high := straightHigh(suits[flushSuit]); high >= 0 {
			return rankOf(StraightFlush, uint8(high))
		}
	}
	if q := highest(quads); q >= 0 {
		return rankOf(FourOfAKind, append([]uint8{uint8(q)}, top(all&^(1<<q), 1)...)...)
	}
	if t := highest(trips); t >= 0 {
		if p := highest(pairs | trips&^(1<<t)); p >= 0 {
			return rankOf(FullHouse, uint8(t), uint8(p))
		}
	}
	if flushSuit >= 0 {
		return rankOf(Flush, top(suits[flushSuit], 5)...)
	}
	if high := straightHigh(all); high >= 0 {
		return rankOf(Straight, uint8(high))
	}
	if t := highest(trips); t >= 0 {
		return rankOf(ThreeOfAKind, append([]uint8{uint8(t)}, top(all&^(1<<t), 2)...)...)
	}
	if p1 := highest(pairs); p1 >= 0 {
		if p2 := highest(pairs &^ (1 << p1)); p2 >= 0 {
			kicker := top(all&^(1<<p1|1<<p2), 1)
			return rankOf(TwoPair, append([]uint8{uint8(p1), uint8(p2)}, kicker...)...)
		}
		return rankOf(Pair, append([]uint8{uint8(p1)}, top(all&^(1<<p1), 3)...)...)
	}
	return rankOf(HighCard, top(all, 5)...)
}

func rankOf(t HandType, ranks ...uint8) HandRank {
	key := HandRank(t) << categoryShift
	shift := categoryShift
	for _, r := range ranks {
		shift -= 4
		key |= HandRank(r) << shift
	}
	return worstKey - 1 - key
}

// highest returns the highest rank present in the mask (or -1 when empty).
func highest(mask uint16) int {
	return bits.Len16(mask) - 1
}

// top returns the n highest ranks of mask in descending order.
func top(mask uint16, n int) []uint8 {
	out := make([]uint8, 0, n)
	for len(out) < n && mask != 0 {
		r := highest(mask)
		out = append(out, uint8(r))
		mask &^= 1 << r
	}
	return out
}

// straightHigh returns the rank of the top card of the best straight in the
// mask, 3 (the five) for the wheel, or -1 when there is none.
func straightHigh(mask uint16) int {
	const wheel = 1<<Ace | 1<<Two | 1<<Three | 1<<Four | 1<<Five
	mask &= rankMask
	if run := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4); run != 0 {
		return highest(run) + 4
	}
	if mask&wheel == wheel {
		return int(Five)
	}
	return -1
}
