package lookuptable

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/lox/pokertexter/internal/handclass"
)

// ErrNoTables is returned by Load when a directory holds no table files.
var ErrNoTables = errors.New("no lookup tables found")

// Store holds loaded tables keyed by opponent count. It is read-only after
// construction and safe for concurrent use.
type Store struct {
	tables map[int]map[handclass.Class]Row
}

// NewStore indexes tables already in memory. Every table must hold all 169
// classes exactly once.
func NewStore(tables map[int][]Row) (*Store, error) {
	s := &Store{tables: make(map[int]map[handclass.Class]Row, len(tables))}
	for opponents, rows := range tables {
		index := make(map[handclass.Class]Row, len(rows))
		for _, r := range rows {
			if _, dup := index[r.Class]; dup {
				return nil, fmt.Errorf("table %d: duplicate row for %s", opponents, r.Class)
			}
			index[r.Class] = r
		}
		if len(index) != handclass.Count {
			return nil, fmt.Errorf("table %d: want %d rows, got %d", opponents, handclass.Count, len(index))
		}
		s.tables[opponents] = index
	}
	return s, nil
}

// Load reads every lookup-table-N file in dir.
func Load(dir string) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	tables := make(map[int][]Row)
	for _, e := range entries {
		suffix, ok := strings.CutPrefix(e.Name(), filePrefix)
		if e.IsDir() || !ok {
			continue
		}
		opponents, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		rows, err := ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		tables[opponents] = rows
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoTables)
	}
	return NewStore(tables)
}

// Lookup returns the row for a class against opponents.
func (s *Store) Lookup(opponents int, class handclass.Class) (Row, bool) {
	t, ok := s.tables[opponents]
	if !ok {
		return Row{}, false
	}
	r, ok := t[class]
	return r, ok
}

// Has reports whether a table for opponents is loaded.
func (s *Store) Has(opponents int) bool {
	_, ok := s.tables[opponents]
	return ok
}

// Opponents lists the loaded opponent counts in ascending order.
func (s *Store) Opponents() []int {
	out := make([]int, 0, len(s.tables))
	for n := range s.tables {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}
