// Package viz renders the benchmark comparison charts.
package viz

import (
	"errors"

	"github.com/panyam/pibench/results"
)

var ErrNoData = errors.New("no data to plot")

// --- Common Data Structures ---

// BarSeries is one named row of bar heights, one value per category.
type BarSeries struct {
	Name   string
	Values []float64
	Color  string // hex; empty picks from the palette
}

// RefLine is a dashed horizontal reference line.
type RefLine struct {
	Y     float64
	Label string
	Color string
}

// BarPanel describes one bar chart of a composite figure. With a single
// series each bar gets its own palette color; with several the bars are
// grouped per category.
type BarPanel struct {
	Title      string
	YLabel     string
	Categories []string
	Series     []BarSeries
	Annotate   func(float64) string
	RefLines   []RefLine
	YAxisMode  YAxisMode
	Notes      []Note
}

// Note is a free text label placed at data coordinates.
type Note struct {
	X, Y  float64
	Text  string
	Color string
}

// --- Interfaces ---

// Plotter renders the figures of both pipelines to image files.
type Plotter interface {
	PlotCompare(table *results.StrategyTable, threads int, path string) error
	PlotBusyWait(run results.BusyWaitRun, path string) error
}
