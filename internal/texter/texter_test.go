package texter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertexter/internal/handclass"
	"github.com/lox/pokertexter/internal/lookuptable"
	"github.com/lox/pokertexter/poker"
)

// testStore holds tables for the given opponent counts. Every row reports
// win = opponents/100 and tie = 0.01, and the gain encodes the class index so
// tests can tell which row was returned.
func testStore(t testing.TB, counts ...int) *lookuptable.Store {
	t.Helper()
	tables := make(map[int][]lookuptable.Row)
	for _, n := range counts {
		for i, c := range handclass.All() {
			tables[n] = append(tables[n], lookuptable.Row{
				Class: c,
				Win:   float64(n) / 100,
				Tie:   0.01,
				Gain:  float64(i),
			})
		}
	}
	store, err := lookuptable.NewStore(tables)
	require.NoError(t, err)
	return store
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Query
		err   error
	}{
		{input: "A K s 1", want: Query{handclass.Class{Low: poker.King, High: poker.Ace, Suited: true}, 1}},
		{input: "ace king suited one", want: Query{handclass.Class{Low: poker.King, High: poker.Ace, Suited: true}, 1}},
		{input: "SEVEN EIGHT SUITED one", want: Query{handclass.Class{Low: poker.Seven, High: poker.Eight, Suited: true}, 1}},
		{input: "7 ace offsuit 9", want: Query{handclass.Class{Low: poker.Seven, High: poker.Ace}, 9}},
		{input: "  tens   jacks   off  3 ", want: Query{handclass.Class{Low: poker.Ten, High: poker.Jack}, 3}},
		{input: "10 t o two", want: Query{handclass.Class{Low: poker.Ten, High: poker.Ten}, 2}},
		{input: "deuce trey unsuited 22", want: Query{handclass.Class{Low: poker.Two, High: poker.Three}, 22}},
		{input: "q q off-suit 5", want: Query{handclass.Class{Low: poker.Queen, High: poker.Queen}, 5}},
		{input: "aces aces suited 1", err: ErrSuitedPair},
		{input: "ace king suited", err: ErrUsage},
		{input: "ace king suited 1 please", err: ErrUsage},
		{input: "ace kong suited 1", err: ErrUsage},
		{input: "ace king maybe 1", err: ErrUsage},
		{input: "ace king suited lots", err: ErrUsage},
		{input: "ace king suited 0", err: ErrUsage},
		{input: "", err: ErrUsage},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			q, err := Parse(tt.input)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, q)
		})
	}
}

func TestReply(t *testing.T) {
	t.Parallel()

	r := NewResponder(testStore(t, 1, 2, 3, 9))

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"examples", "Examples please", Examples},
		{"pocket deuces heads up", "2 2 offsuit 1", "P(win): 1%\nP(tie): 1%\nExpected unit gain: 0"},
		{"aces against nine", "ace ace off nine", "P(win): 9%\nP(tie): 1%\nExpected unit gain: 168"},
		{"ranks in either order", "ace two suited 3", "P(win): 3%\nP(tie): 1%\nExpected unit gain: 24"},
		{"usage", "what should I do", string(ErrUsage)},
		{"suited pair", "king king suited 2", string(ErrSuitedPair)},
		{"missing table", "ace king suited 5", "Error! Only 1-3, 9 other players are currently supported."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := r.Reply(tt.input)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnswer(t *testing.T) {
	t.Parallel()

	r := NewResponder(testStore(t, 4))
	ans, err := r.Answer("K A s 4")
	require.NoError(t, err)
	assert.Equal(t, "AKs", ans.Query.Class.String())
	assert.Equal(t, 4, ans.Query.Opponents)
	assert.Equal(t, ans.Query.Class, ans.Row.Class)

	_, err = r.Answer("K A s 5")
	var userErr Error
	assert.ErrorAs(t, err, &userErr)
}

func TestDescribeRanges(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "no", describeRanges(nil))
	assert.Equal(t, "4", describeRanges([]int{4}))
	assert.Equal(t, "1-9", describeRanges([]int{1, 2, 3, 4, 5, 6, 7, 8, 9}))
	assert.Equal(t, "1-3, 5, 7-8", describeRanges([]int{1, 2, 3, 5, 7, 8}))
}

func TestPercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0", percent(0))
	assert.Equal(t, "100", percent(1))
	assert.Equal(t, "65.43", percent(0.6543))
	assert.Equal(t, "65.4", percent(0.654))
	assert.Equal(t, "12.35", percent(0.123456))
}
