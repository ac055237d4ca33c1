// Package oracle provides hand evaluation oracles for the equity engine.
package oracle

import (
	"fmt"
	"sort"

	"github.com/lox/pokertexter/internal/equity"
	"github.com/lox/pokertexter/poker"
)

const (
	NameNative     = "native"
	NamePaulHankin = "paulhankin"
)

// Native scores hands with the bitmask evaluator from package poker.
type Native struct{}

// Score returns the poker.HandRank of the seven cards. Duplicate cards are a
// caller bug and panic.
func (Native) Score(board [equity.BoardSize]poker.Card, hole [equity.HoleSize]poker.Card) int {
	h := poker.NewHand(board[:]...) | poker.NewHand(hole[:]...)
	return int(poker.Evaluate7Cards(h))
}

var constructors = map[string]func() (equity.Oracle, error){
	NameNative: func() (equity.Oracle, error) { return Native{}, nil },
	NamePaulHankin: func() (equity.Oracle, error) {
		h, err := NewHankin()
		if err != nil {
			return nil, err
		}
		return h, nil
	},
}

// ByName returns the oracle registered under name.
func ByName(name string) (equity.Oracle, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown oracle %q (available: %v)", name, Names())
	}
	return ctor()
}

// Names lists the registered oracle names.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
