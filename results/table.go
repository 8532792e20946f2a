package results

import (
	"encoding/json"
	"math"

	"github.com/montanaflynn/stats"
	gfn "github.com/panyam/goutils/fn"
	"gonum.org/v1/gonum/floats"
)

// RunResult is the measurement of one strategy in one benchmark run.
type RunResult struct {
	Strategy Strategy `json:"strategy"`
	Pi       float64  `json:"pi,omitempty"`
	HasPi    bool     `json:"-"`
	Elapsed  float64  `json:"elapsedSeconds"`
	Error    float64  `json:"error"`
	Speedup  float64  `json:"speedup"`
}

// Measure builds a RunResult from a raw approximation and elapsed time,
// deriving the error against ReferencePi and the speedup against the
// sequential baseline time. A zero elapsed time yields a zero speedup.
// A zero pi means the approximation was not reported: HasPi stays false
// and the error is zero.
func Measure(s Strategy, pi, elapsed, baseline float64) RunResult {
	r := RunResult{
		Strategy: s,
		Pi:       pi,
		HasPi:    pi != 0,
		Elapsed:  elapsed,
	}
	if r.HasPi {
		r.Error = math.Abs(pi - ReferencePi)
	}
	if elapsed > 0 {
		r.Speedup = baseline / elapsed
	}
	return r
}

// Efficiency is the speedup spread over the given worker count, as a percentage.
func (r RunResult) Efficiency(threads int) float64 {
	if threads < 1 {
		threads = DefaultThreads
	}
	return r.Speedup / float64(threads) * 100
}

// StrategyTable is an ordered, read-only collection of RunResults.
type StrategyTable struct {
	rows  []RunResult
	index map[Strategy]int
}

// NewStrategyTable keeps rows in the given order. When a strategy
// appears more than once, Get returns its first row.
func NewStrategyTable(rows ...RunResult) *StrategyTable {
	t := &StrategyTable{
		rows:  append([]RunResult(nil), rows...),
		index: make(map[Strategy]int, len(rows)),
	}
	for i, r := range t.rows {
		if _, ok := t.index[r.Strategy]; !ok {
			t.index[r.Strategy] = i
		}
	}
	return t
}

func (t *StrategyTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

func (t *StrategyTable) Empty() bool { return t.Len() == 0 }

// Rows returns a copy of the rows in table order.
func (t *StrategyTable) Rows() []RunResult {
	if t == nil {
		return nil
	}
	return append([]RunResult(nil), t.rows...)
}

func (t *StrategyTable) At(i int) RunResult { return t.rows[i] }

func (t *StrategyTable) Get(s Strategy) (RunResult, bool) {
	if t == nil {
		return RunResult{}, false
	}
	i, ok := t.index[s]
	if !ok {
		return RunResult{}, false
	}
	return t.rows[i], true
}

func (t *StrategyTable) Has(s Strategy) bool {
	_, ok := t.Get(s)
	return ok
}

func (t *StrategyTable) Names() []Strategy {
	return gfn.Map(t.Rows(), func(r RunResult) Strategy { return r.Strategy })
}

func (t *StrategyTable) Elapsed() []float64 {
	return gfn.Map(t.Rows(), func(r RunResult) float64 { return r.Elapsed })
}

func (t *StrategyTable) Speedups() []float64 {
	return gfn.Map(t.Rows(), func(r RunResult) float64 { return r.Speedup })
}

func (t *StrategyTable) Errors() []float64 {
	return gfn.Map(t.Rows(), func(r RunResult) float64 { return r.Error })
}

// Efficiency returns the per-row efficiency percentage, in table order.
func (t *StrategyTable) Efficiency(threads int) []float64 {
	return gfn.Map(t.Rows(), func(r RunResult) float64 { return r.Efficiency(threads) })
}

// Fastest returns the row with the lowest elapsed time.
func (t *StrategyTable) Fastest() (RunResult, bool) {
	return t.pick(t.Elapsed(), floats.MinIdx)
}

// BestSpeedup returns the row with the highest speedup.
func (t *StrategyTable) BestSpeedup() (RunResult, bool) {
	return t.pick(t.Speedups(), floats.MaxIdx)
}

// BestPrecision returns the row with the lowest approximation error.
func (t *StrategyTable) BestPrecision() (RunResult, bool) {
	return t.pick(t.Errors(), floats.MinIdx)
}

// BestEfficiency returns the row with the highest efficiency for the
// given worker count. It always agrees with BestSpeedup since the
// efficiency is a constant multiple of the speedup.
func (t *StrategyTable) BestEfficiency(threads int) (RunResult, bool) {
	return t.pick(t.Efficiency(threads), floats.MaxIdx)
}

func (t *StrategyTable) pick(vals []float64, idx func([]float64) int) (RunResult, bool) {
	if len(vals) == 0 {
		return RunResult{}, false
	}
	return t.rows[idx(vals)], true
}

// MaxSlowdown is the ratio between the slowest and the fastest elapsed
// time. It is zero for tables with fewer than two rows or a zero time.
func (t *StrategyTable) MaxSlowdown() float64 {
	if t.Len() < 2 {
		return 0
	}
	el := t.Elapsed()
	lo, err := stats.Min(el)
	if err != nil || lo <= 0 {
		return 0
	}
	hi, _ := stats.Max(el)
	return hi / lo
}

// Summary is a descriptive summary over all rows.
type Summary struct {
	MeanElapsed   float64
	MedianElapsed float64
	MeanSpeedup   float64
}

func (t *StrategyTable) Summary() (s Summary) {
	if t.Empty() {
		return
	}
	el := stats.Float64Data(t.Elapsed())
	s.MeanElapsed, _ = el.Mean()
	s.MedianElapsed, _ = el.Median()
	s.MeanSpeedup, _ = stats.Mean(t.Speedups())
	return
}

func (t *StrategyTable) MarshalJSON() ([]byte, error) {
	rows := t.Rows()
	if rows == nil {
		rows = []RunResult{}
	}
	return json.Marshal(rows)
}
