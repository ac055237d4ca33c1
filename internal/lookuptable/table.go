// Package lookuptable generates, writes and serves the per-opponent-count
// preflop equity tables.
package lookuptable

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lox/pokertexter/internal/fileutil"
	"github.com/lox/pokertexter/internal/handclass"
	"github.com/lox/pokertexter/poker"
)

// filePrefix names table files: lookup-table-1 ... lookup-table-22.
const filePrefix = "lookup-table-"

// Row is one line of a table: a starting-hand class with its estimated
// probabilities against a fixed number of opponents.
type Row struct {
	Class handclass.Class
	Win   float64
	Tie   float64
	Gain  float64
}

// FileName returns the table file name for an opponent count.
func FileName(opponents int) string {
	return filePrefix + strconv.Itoa(opponents)
}

// FormatRow renders a row as "rank1\trank2\tsuiting\twin\ttie\tgain" with the
// lower rank first. Numbers use the shortest representation that round-trips.
func FormatRow(r Row) string {
	return strings.Join([]string{
		poker.RankString(r.Class.Low),
		poker.RankString(r.Class.High),
		r.Class.Suiting(),
		formatFloat(r.Win),
		formatFloat(r.Tie),
		formatFloat(r.Gain),
	}, "\t")
}

// ParseRow parses a line produced by FormatRow. Ranks may appear in either
// order.
func ParseRow(line string) (Row, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(fields) != 6 {
		return Row{}, fmt.Errorf("want 6 tab-separated fields, got %d", len(fields))
	}
	if len(fields[0]) != 1 || len(fields[1]) != 1 {
		return Row{}, fmt.Errorf("invalid ranks %q %q", fields[0], fields[1])
	}
	r1, err := poker.ParseRank(fields[0][0])
	if err != nil {
		return Row{}, err
	}
	r2, err := poker.ParseRank(fields[1][0])
	if err != nil {
		return Row{}, err
	}

	var suited bool
	switch fields[2] {
	case handclass.Suited:
		suited = true
	case handclass.Offsuit:
	default:
		return Row{}, fmt.Errorf("invalid suiting %q", fields[2])
	}
	class, err := handclass.New(r1, r2, suited)
	if err != nil {
		return Row{}, err
	}

	var nums [3]float64
	for i, f := range fields[3:] {
		nums[i], err = strconv.ParseFloat(f, 64)
		if err != nil {
			return Row{}, fmt.Errorf("field %d: %w", i+4, err)
		}
	}
	return Row{Class: class, Win: nums[0], Tie: nums[1], Gain: nums[2]}, nil
}

// Write writes one line per row.
func Write(w io.Writer, rows []Row) error {
	for _, r := range rows {
		if _, err := io.WriteString(w, FormatRow(r)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Read parses every non-blank line of r.
func Read(r io.Reader) ([]Row, error) {
	var rows []Row
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		row, err := ParseRow(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// WriteFile atomically writes the table for opponents into dir and returns
// its path. A failed write leaves no partial file behind.
func WriteFile(dir string, opponents int, rows []Row) (string, error) {
	path := filepath.Join(dir, FileName(opponents))
	err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return Write(w, rows)
	})
	if err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ReadFile loads a table file.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
