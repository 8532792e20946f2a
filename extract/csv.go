package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/panyam/pibench/results"
)

var (
	ErrResultsNotFound = errors.New("results file not found")
	ErrMissingColumn   = errors.New("missing required column")
	ErrEmptyResults    = errors.New("results file has no header")
)

// Column names written by the comparison program.
const (
	ColStrategy = "Estrategia"
	ColPi       = "Pi_Calculado"
	ColElapsed  = "Tiempo_s"
	ColError    = "Error"
	ColSpeedup  = "Speedup"
)

// RowError points at the cell that could not be parsed. Row is the
// 1-based data row, not counting the header.
type RowError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %s: invalid value %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// LoadCSV reads the results file at path. A missing file returns
// ErrResultsNotFound.
func LoadCSV(path string) (*results.StrategyTable, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrResultsNotFound, path)
	} else if err != nil {
		return nil, err
	}
	defer f.Close()
	table, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return table, nil
}

// ReadCSV parses results CSV data. Columns are located by header name,
// so their order does not matter; the pi column is optional. Rows keep
// their file order.
func ReadCSV(r io.Reader) (*results.StrategyTable, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyResults
	} else if err != nil {
		return nil, err
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, name := range []string{ColStrategy, ColElapsed, ColSpeedup, ColError} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	_, hasPi := cols[ColPi]

	var rows []results.RunResult
	for n := 1; ; n++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		num := func(col string) (float64, error) {
			raw := strings.TrimSpace(rec[cols[col]])
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return 0, &RowError{Row: n, Column: col, Value: raw, Err: err}
			}
			return v, nil
		}

		row := results.RunResult{Strategy: results.Strategy(strings.TrimSpace(rec[cols[ColStrategy]]))}
		if row.Elapsed, err = num(ColElapsed); err != nil {
			return nil, err
		}
		if row.Speedup, err = num(ColSpeedup); err != nil {
			return nil, err
		}
		if row.Error, err = num(ColError); err != nil {
			return nil, err
		}
		if hasPi {
			if row.Pi, err = num(ColPi); err != nil {
				return nil, err
			}
			row.HasPi = true
		}
		rows = append(rows, row)
	}
	return results.NewStrategyTable(rows...), nil
}
