package results

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *StrategyTable {
	return NewStrategyTable(
		RunResult{Strategy: Sequential, Elapsed: 0.040, Error: 1e-10, Speedup: 1.0},
		RunResult{Strategy: BusyWaitInside, Elapsed: 0.800, Error: 2e-10, Speedup: 0.05},
		RunResult{Strategy: BusyWaitOutside, Elapsed: 0.012, Error: 5e-11, Speedup: 3.2},
		RunResult{Strategy: Mutex, Elapsed: 0.016, Error: 3e-10, Speedup: 2.5},
	)
}

func TestTablePreservesOrder(t *testing.T) {
	table := sampleTable()
	require.Equal(t, 4, table.Len())
	assert.Equal(t, []Strategy{Sequential, BusyWaitInside, BusyWaitOutside, Mutex}, table.Names())
	assert.Equal(t, []float64{0.040, 0.800, 0.012, 0.016}, table.Elapsed())
}

func TestTableLookups(t *testing.T) {
	table := sampleTable()

	fastest, ok := table.Fastest()
	require.True(t, ok)
	assert.Equal(t, BusyWaitOutside, fastest.Strategy)

	best, ok := table.BestSpeedup()
	require.True(t, ok)
	assert.Equal(t, BusyWaitOutside, best.Strategy)

	precise, ok := table.BestPrecision()
	require.True(t, ok)
	assert.Equal(t, BusyWaitOutside, precise.Strategy)

	eff, ok := table.BestEfficiency(4)
	require.True(t, ok)
	assert.Equal(t, best.Strategy, eff.Strategy)

	assert.InDelta(t, 0.800/0.012, table.MaxSlowdown(), 1e-9)

	mutex, ok := table.Get(Mutex)
	require.True(t, ok)
	assert.Equal(t, 2.5, mutex.Speedup)
	assert.False(t, table.Has(Strategy("SPINLOCK")))
}

func TestEfficiencyIsSpeedupOverThreads(t *testing.T) {
	table := sampleTable()
	for _, threads := range []int{1, 2, 4, 8} {
		eff := table.Efficiency(threads)
		require.Len(t, eff, table.Len())
		for i, r := range table.Rows() {
			assert.InDelta(t, r.Speedup/float64(threads)*100, eff[i], 1e-12, "row %d threads %d", i, threads)
		}
	}
	assert.Equal(t, table.Efficiency(DefaultThreads), table.Efficiency(0))
}

func TestEmptyTable(t *testing.T) {
	var table *StrategyTable
	assert.True(t, table.Empty())
	_, ok := table.Fastest()
	assert.False(t, ok)

	empty := NewStrategyTable()
	_, ok = empty.BestPrecision()
	assert.False(t, ok)
	assert.Zero(t, empty.MaxSlowdown())
	assert.Equal(t, Summary{}, empty.Summary())

	data, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestMaxSlowdownSingleRow(t *testing.T) {
	table := NewStrategyTable(RunResult{Strategy: Mutex, Elapsed: 1})
	assert.Zero(t, table.MaxSlowdown())
}

func TestSummary(t *testing.T) {
	s := sampleTable().Summary()
	assert.InDelta(t, (0.040+0.800+0.012+0.016)/4, s.MeanElapsed, 1e-12)
	assert.InDelta(t, (0.016+0.040)/2, s.MedianElapsed, 1e-12)
	assert.InDelta(t, (1.0+0.05+3.2+2.5)/4, s.MeanSpeedup, 1e-12)
}

func TestMeasure(t *testing.T) {
	r := Measure(Mutex, 3.1415926535, 0.5, 2.0)
	assert.InDelta(t, 4.0, r.Speedup, 1e-12)
	assert.InDelta(t, 0.000000000089793, r.Error, 1e-14)
	assert.True(t, r.HasPi)

	zero := Measure(Mutex, 0, 0, 2.0)
	assert.Zero(t, zero.Speedup)
	assert.False(t, zero.HasPi)
	assert.Zero(t, zero.Error)
}

func TestBusyWaitRunTableWithoutPi(t *testing.T) {
	run := BusyWaitRun{SequentialTime: 0.0004, BusyInsideTime: 0.0150, SequentialPi: 3.1415926536}
	table := run.Table()

	seq := table.At(0)
	assert.True(t, seq.HasPi)
	assert.InDelta(t, 1.0207e-11, seq.Error, 1e-14)

	busy := table.At(1)
	assert.False(t, busy.HasPi)
	assert.Zero(t, busy.Error)
	assert.InDelta(t, 0.0004/0.0150, busy.Speedup, 1e-12)
}

func TestBusyWaitRunTable(t *testing.T) {
	run := BusyWaitRun{
		SequentialTime: 0.000120,
		BusyInsideTime: 0.054000,
		SequentialPi:   3.1414926536,
		BusyInsidePi:   3.1414926536,
	}
	require.True(t, run.Valid())
	table := run.Table()
	require.Equal(t, 2, table.Len())

	seq := table.At(0)
	assert.Equal(t, Sequential, seq.Strategy)
	assert.InDelta(t, 1.0, seq.Speedup, 1e-12)

	busy := table.At(1)
	assert.Equal(t, BusyWaitInside, busy.Strategy)
	assert.InDelta(t, run.SequentialTime/run.BusyInsideTime, busy.Speedup, 1e-12)
	assert.InDelta(t, 450.0, run.Slowdown(), 1e-9)

	run.SlowdownFactor = 449.5
	assert.Equal(t, 449.5, run.Slowdown())
	assert.False(t, BusyWaitRun{}.Valid())
}

func TestVerdicts(t *testing.T) {
	assert.Equal(t, VerdictRecommended, Mutex.Verdict())
	assert.Equal(t, VerdictAvoid, BusyWaitInside.Verdict())
	assert.Equal(t, VerdictCaution, BusyWaitOutside.Verdict())
	assert.Equal(t, VerdictBaseline, Sequential.Verdict())
	assert.Equal(t, VerdictUnknown, Strategy("OTHER").Verdict())
	assert.Equal(t, "OTHER", Strategy("OTHER").Label())
}
