// Package texter answers free-text starting-hand queries such as
// "ace king suited 3" from loaded lookup tables.
package texter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/pokertexter/internal/handclass"
	"github.com/lox/pokertexter/poker"
)

// Error is a reply meant for the person who sent the query. It never
// indicates a server fault.
type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrUsage Error = "Error! Could not parse input. " +
		"Send text in form RANK RANK SUITING OTHER_PLAYERS. " +
		"Respond with `examples` if you need examples."
	ErrSuitedPair Error = "Error! It is impossible to have a suited pair. Did you mean offsuit?"
)

// Examples is the reply to any message mentioning "example".
const Examples = "SEVEN EIGHT SUITED one\n\n7 ace offsuit 9"

// Query is a parsed request: a starting-hand class and an opponent count.
type Query struct {
	Class     handclass.Class
	Opponents int
}

var rankWords = [poker.NumRanks][]string{
	poker.Two:   {"two", "twos", "deuce", "deuces"},
	poker.Three: {"three", "threes", "trey", "treys"},
	poker.Four:  {"four", "fours"},
	poker.Five:  {"five", "fives"},
	poker.Six:   {"six", "sixes"},
	poker.Seven: {"seven", "sevens"},
	poker.Eight: {"eight", "eights"},
	poker.Nine:  {"nine", "nines"},
	poker.Ten:   {"ten", "tens", "10"},
	poker.Jack:  {"jack", "jacks"},
	poker.Queen: {"queen", "queens"},
	poker.King:  {"king", "kings"},
	poker.Ace:   {"ace", "aces"},
}

var opponentWords = []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}

var (
	rankTokens = buildRankTokens()

	suitingTokens = map[string]bool{
		"suited":    true,
		"s":         true,
		"offsuit":   false,
		"off":       false,
		"o":         false,
		"unsuited":  false,
		"off-suit":  false,
		"offsuited": false,
	}

	opponentTokens = buildOpponentTokens()
)

func buildRankTokens() map[string]uint8 {
	tokens := make(map[string]uint8)
	for r, words := range rankWords {
		tokens[strings.ToLower(poker.RankString(uint8(r)))] = uint8(r)
		for _, w := range words {
			tokens[w] = uint8(r)
		}
	}
	return tokens
}

func buildOpponentTokens() map[string]int {
	tokens := make(map[string]int)
	for i, w := range opponentWords {
		tokens[w] = i + 1
	}
	return tokens
}

// IsExamplesRequest reports whether the message asks for examples.
func IsExamplesRequest(text string) bool {
	return strings.Contains(strings.ToLower(text), "example")
}

// Parse reads "RANK RANK SUITING OPPONENTS", case-insensitively, with any
// amount of whitespace between tokens. The opponent count is only checked
// for being a positive number here; whether a table exists for it is the
// responder's concern.
func Parse(text string) (Query, error) {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) != 4 {
		return Query{}, ErrUsage
	}

	r1, ok1 := rankTokens[fields[0]]
	r2, ok2 := rankTokens[fields[1]]
	suited, ok3 := suitingTokens[fields[2]]
	if !ok1 || !ok2 || !ok3 {
		return Query{}, ErrUsage
	}

	opponents, err := parseOpponents(fields[3])
	if err != nil {
		return Query{}, err
	}

	if r1 == r2 && suited {
		return Query{}, ErrSuitedPair
	}
	class, err := handclass.New(r1, r2, suited)
	if err != nil {
		return Query{}, fmt.Errorf("texter: %w", err)
	}
	return Query{Class: class, Opponents: opponents}, nil
}

func parseOpponents(tok string) (int, error) {
	if n, ok := opponentTokens[tok]; ok {
		return n, nil
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 1 {
		return 0, ErrUsage
	}
	return n, nil
}
