package report

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/panyam/pibench/results"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func sampleTable() *results.StrategyTable {
	return results.NewStrategyTable(
		results.RunResult{Strategy: results.Sequential, Pi: 3.1415926536, HasPi: true, Elapsed: 0.0412, Error: 1e-10, Speedup: 1.0},
		results.RunResult{Strategy: results.BusyWaitOutside, Elapsed: 0.0110, Error: 5e-11, Speedup: 3.8},
		results.RunResult{Strategy: results.Mutex, Elapsed: 0.0125, Error: 2e-10, Speedup: 3.296},
	)
}

func TestCompareEnglish(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "en", 4).Compare(sampleTable())
	out := buf.String()

	assert.Contains(t, out, "STATISTICAL ANALYSIS OF RESULTS")
	assert.Contains(t, out, "Fastest strategy: BUSY-WAITING_FUERA (0.0110s)")
	assert.Contains(t, out, "Best speedup: BUSY-WAITING_FUERA (3.800x)")
	assert.Contains(t, out, "Largest difference: 3.75x slower")
	assert.Contains(t, out, "Best precision: BUSY-WAITING_FUERA (Error: 5.00e-11)")
	assert.Contains(t, out, "PARALLEL EFFICIENCY (4 threads):")
	assert.Contains(t, out, "Best efficiency: BUSY-WAITING_FUERA (95.0%)")
	assert.Contains(t, out, "MUTEX: usually the best balance")
	assert.Contains(t, out, "BUSY-WAITING_FUERA: good performance")
	assert.NotContains(t, out, "BUSY-WAITING_DENTRO:")
}

func TestCompareSpanish(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "es", 4).Compare(sampleTable())
	out := buf.String()

	assert.Contains(t, out, "ANÁLISIS ESTADÍSTICO DE RESULTADOS REALES")
	assert.Contains(t, out, "Estrategia más rápida: BUSY-WAITING_FUERA")
	assert.Contains(t, out, "RECOMENDACIONES BASADAS EN DATOS REALES:")
}

func TestCompareEmpty(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "en", 4).Compare(results.NewStrategyTable())
	assert.Contains(t, buf.String(), "No data to analyze")
	assert.NotContains(t, buf.String(), "PERFORMANCE METRICS")
}

func TestCompareSingleRowSkipsDifference(t *testing.T) {
	var buf bytes.Buffer
	table := results.NewStrategyTable(results.RunResult{Strategy: results.Mutex, Elapsed: 0.5, Speedup: 1})
	New(&buf, "en", 4).Compare(table)
	assert.NotContains(t, buf.String(), "Largest difference")
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "en", 4).Table(sampleTable())
	out := buf.String()
	assert.Contains(t, out, "STRATEGY")
	assert.Contains(t, out, "3.1415926536")
	assert.Contains(t, out, "0.041200")
	assert.Contains(t, out, "25.0%")
}

func TestBusyWait(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, "en", 4)
	r.BusyWait(results.BusyWaitRun{
		SequentialTime: 0.000042,
		BusyInsideTime: 0.012346,
		SequentialPi:   3.1414926536,
		BusyInsidePi:   3.1414926536,
		SlowdownFactor: 293.95,
	})
	out := buf.String()
	assert.Contains(t, out, "TECHNICAL REPORT: BUSY-WAITING INSIDE THE LOOP")
	assert.Contains(t, out, "Sequential time: 0.000042 seconds")
	assert.Contains(t, out, "Busy-waiting inside time: 0.012346 seconds")
	assert.Contains(t, out, "Slowdown factor: 293.95x")
	assert.Contains(t, out, "Sequential π: 3.1414926536")
	assert.Contains(t, out, "10,000 terms × 4 threads = ~40,000 synchronization operations")
	assert.Contains(t, out, "✘ AVOID busy-waiting inside loops:")
}

func TestMatch(t *testing.T) {
	assert.Equal(t, language.English, Match(""))
	assert.Equal(t, language.English, Match("en-US"))
	assert.Equal(t, language.Spanish, Match("es"))
	assert.Equal(t, language.Spanish, Match("es-MX"))
	assert.Equal(t, language.English, Match("not a language"))
}

func TestSci(t *testing.T) {
	assert.Equal(t, "1.23e-05", Sci(0.0000123))
	assert.Equal(t, "0.00e+00", Sci(0))
}
