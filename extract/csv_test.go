package extract

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/fs"

	"github.com/panyam/pibench/results"
)

const resultsCSV = `Estrategia,Pi_Calculado,Tiempo_s,Error,Speedup
SECUENCIAL,3.141592553589792,0.041234,0.000000,1.000000
BUSY-WAITING_FUERA,3.141592553589800,0.011002,0.000000,3.747864
MUTEX,3.141592553589795,0.012500,0.000000,3.298720
`

func TestLoadCSV(t *testing.T) {
	dir := fs.NewDir(t, "pibench-csv", fs.WithFile("resultados_pi.csv", resultsCSV))
	defer dir.Remove()

	table, err := LoadCSV(dir.Join("resultados_pi.csv"))
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())
	assert.Equal(t, []results.Strategy{results.Sequential, results.BusyWaitOutside, results.Mutex}, table.Names())

	fuera := table.At(1)
	assert.Equal(t, 0.011002, fuera.Elapsed)
	assert.Equal(t, 3.747864, fuera.Speedup)
	assert.Equal(t, 3.1415925535898, fuera.Pi)
	assert.True(t, fuera.HasPi)
}

func TestLoadCSVMissingFile(t *testing.T) {
	dir := fs.NewDir(t, "pibench-csv")
	defer dir.Remove()

	table, err := LoadCSV(dir.Join("nope.csv"))
	assert.Nil(t, table)
	assert.True(t, errors.Is(err, ErrResultsNotFound))
}

func TestReadCSVColumnOrder(t *testing.T) {
	data := "Speedup,Error,Estrategia,Tiempo_s\n1.0,0.001,SECUENCIAL,2.0\n4.0,0.002,MUTEX,0.5\n"
	table, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	mutex, ok := table.Get(results.Mutex)
	require.True(t, ok)
	assert.Equal(t, 0.5, mutex.Elapsed)
	assert.Equal(t, 4.0, mutex.Speedup)
	assert.Equal(t, 0.002, mutex.Error)
	assert.False(t, mutex.HasPi)
}

func TestReadCSVRowCount(t *testing.T) {
	var b strings.Builder
	b.WriteString("Estrategia,Tiempo_s,Speedup,Error\n")
	names := []string{"A", "B", "C", "D", "E", "F", "G"}
	for _, n := range names {
		b.WriteString(n + ",1.0,1.0,0.0\n")
	}
	table, err := ReadCSV(strings.NewReader(b.String()))
	require.NoError(t, err)
	require.Equal(t, len(names), table.Len())
	for i, n := range names {
		assert.Equal(t, results.Strategy(n), table.At(i).Strategy)
	}
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyResults)

	_, err = ReadCSV(strings.NewReader("Estrategia,Tiempo_s,Error\nMUTEX,1.0,0.1\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "Speedup")

	_, err = ReadCSV(strings.NewReader("Estrategia,Tiempo_s,Speedup,Error\nMUTEX,fast,1.0,0.1\n"))
	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 1, rowErr.Row)
	assert.Equal(t, ColElapsed, rowErr.Column)
	assert.Equal(t, "fast", rowErr.Value)
}

func TestReadCSVHeaderOnly(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("Estrategia,Tiempo_s,Speedup,Error\n"))
	require.NoError(t, err)
	assert.True(t, table.Empty())
}
