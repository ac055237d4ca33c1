package texter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/pokertexter/internal/lookuptable"
)

// Answer is a successful lookup.
type Answer struct {
	Query Query
	Row   lookuptable.Row
}

// String formats the answer the way replies are sent.
func (a Answer) String() string {
	return fmt.Sprintf("P(win): %s%%\nP(tie): %s%%\nExpected unit gain: %s",
		percent(a.Row.Win), percent(a.Row.Tie), strconv.FormatFloat(a.Row.Gain, 'f', -1, 64))
}

// Responder answers queries from a table store.
type Responder struct {
	store *lookuptable.Store
}

// NewResponder creates a responder backed by store.
func NewResponder(store *lookuptable.Store) *Responder {
	return &Responder{store: store}
}

// Answer parses text and looks it up. Errors of type Error are meant to be
// shown to the sender verbatim.
func (r *Responder) Answer(text string) (Answer, error) {
	q, err := Parse(text)
	if err != nil {
		return Answer{}, err
	}
	if !r.store.Has(q.Opponents) {
		return Answer{}, r.unsupported()
	}
	row, ok := r.store.Lookup(q.Opponents, q.Class)
	if !ok {
		return Answer{}, fmt.Errorf("table %d has no row for %s", q.Opponents, q.Class)
	}
	return Answer{Query: q, Row: row}, nil
}

// Reply returns the text to send back for any incoming message. The bool is
// false when the lookup failed for a reason other than bad input.
func (r *Responder) Reply(text string) (string, bool) {
	if IsExamplesRequest(text) {
		return Examples, true
	}
	ans, err := r.Answer(text)
	if err != nil {
		var userErr Error
		if errors.As(err, &userErr) {
			return userErr.Error(), true
		}
		return "Error! Something went wrong looking up that hand.", false
	}
	return ans.String(), true
}

func (r *Responder) unsupported() Error {
	return Error(fmt.Sprintf("Error! Only %s other players are currently supported.", describeRanges(r.store.Opponents())))
}

// describeRanges renders sorted counts compactly: [1 2 3 5 7 8] -> "1-3, 5, 7-8".
func describeRanges(ns []int) string {
	if len(ns) == 0 {
		return "no"
	}
	var parts []string
	start := ns[0]
	for i := 1; i <= len(ns); i++ {
		if i < len(ns) && ns[i] == ns[i-1]+1 {
			continue
		}
		end := ns[i-1]
		if start == end {
			parts = append(parts, strconv.Itoa(start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, end))
		}
		if i < len(ns) {
			start = ns[i]
		}
	}
	return strings.Join(parts, ", ")
}

// percent renders a probability as a percentage with at most two decimals.
func percent(p float64) string {
	s := strconv.FormatFloat(p*100, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
