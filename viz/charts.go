package viz

import (
	"fmt"
	"strconv"

	gfn "github.com/panyam/goutils/fn"
	"github.com/panyam/pibench/results"
	"gonum.org/v1/plot/vg"
)

const (
	sequentialColor = "#27ae60"
	busyColor       = "#e74c3c"
	baselineColor   = "#ef4444"
	idealColor      = "#10b981"
)

// cpuShare is the conceptual split of CPU time per thread, in percent:
// useful work, synchronization and active waiting.
var cpuShare = struct {
	Categories []string
	Sequential []float64
	BusyInside []float64
}{
	Categories: []string{"Useful work", "Synchronization", "Active waiting"},
	Sequential: []float64{95, 5, 0},
	BusyInside: []float64{10, 5, 85},
}

// Charts renders both pipelines' figures with gonum/plot.
type Charts struct {
	Config PlotConfig
}

func NewCharts() *Charts {
	return &Charts{Config: DefaultPlotConfig()}
}

func seconds(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) + "s" }
func factor(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) + "x" }
func percent(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) + "%" }
func sci(v float64) string { return strconv.FormatFloat(v, 'e', 2, 64) }
func wholePct(v float64) string { return strconv.FormatFloat(v, 'f', 0, 64) + "%" }

// CompareFigure lays out time, speedup, error and efficiency of every
// strategy in a 2x2 grid.
func (c *Charts) CompareFigure(table *results.StrategyTable, threads int) (*Figure, error) {
	if table.Empty() {
		return nil, ErrNoData
	}
	if threads < 1 {
		threads = results.DefaultThreads
	}
	names := gfn.Map(table.Names(), func(s results.Strategy) string { return string(s) })
	single := func(vals []float64) []BarSeries { return []BarSeries{{Values: vals}} }

	return &Figure{
		Title:  "Synchronization strategy comparison: parallel π",
		Rows:   2,
		Cols:   2,
		Config: c.Config,
		Panels: []BarPanel{
			{
				Title:      "Execution time",
				YLabel:     "Time (seconds)",
				Categories: names,
				Series:     single(table.Elapsed()),
				Annotate:   seconds,
				YAxisMode:  YAxisLinear,
			},
			{
				Title:      "Speedup over sequential",
				YLabel:     "Speedup",
				Categories: names,
				Series:     single(table.Speedups()),
				Annotate:   factor,
				YAxisMode:  YAxisLinear,
				RefLines:   []RefLine{{Y: 1, Label: "Sequential baseline", Color: baselineColor}},
			},
			{
				Title:      "Precision (error vs π)",
				YLabel:     "Absolute error",
				Categories: names,
				Series:     single(table.Errors()),
				Annotate:   sci,
				YAxisMode:  YAxisAuto,
			},
			{
				Title:      fmt.Sprintf("Parallel efficiency (%d threads)", threads),
				YLabel:     "Efficiency (%)",
				Categories: names,
				Series:     single(table.Efficiency(threads)),
				Annotate:   percent,
				YAxisMode:  YAxisLinear,
				RefLines: []RefLine{{
					Y:     100 / float64(threads),
					Label: fmt.Sprintf("Single thread (%s)", percent(100/float64(threads))),
					Color: idealColor,
				}},
			},
		},
	}, nil
}

// BusyWaitFigure pairs the measured times with the conceptual CPU time
// distribution of a busy-waiting-inside run.
func (c *Charts) BusyWaitFigure(run results.BusyWaitRun) (*Figure, error) {
	if !run.Valid() {
		return nil, ErrNoData
	}
	cfg := c.Config
	cfg.Height = cfg.Width * 6 / 16

	seq := string(results.Sequential)
	inside := string(results.BusyWaitInside)
	times := BarPanel{
		Title:      "Busy-waiting inside the loop vs sequential",
		YLabel:     "Time (seconds)",
		Categories: []string{seq, inside},
		Series:     []BarSeries{{Values: []float64{run.SequentialTime, run.BusyInsideTime}}},
		Annotate:   seconds,
		YAxisMode:  YAxisLinear,
	}
	if slow := run.Slowdown(); slow > 0 {
		top := run.BusyInsideTime
		if run.SequentialTime > top {
			top = run.SequentialTime
		}
		times.Notes = []Note{{X: 0.5, Y: top * 0.6, Text: fmt.Sprintf("%.1fx slower", slow), Color: busyColor}}
	}

	return &Figure{
		Title:  "Busy-waiting inside the critical loop",
		Rows:   1,
		Cols:   2,
		Config: withColors(cfg, sequentialColor, busyColor),
		Panels: []BarPanel{
			times,
			{
				Title:      "Conceptual CPU time distribution",
				YLabel:     "CPU time (%)",
				Categories: cpuShare.Categories,
				Series: []BarSeries{
					{Name: seq, Values: cpuShare.Sequential},
					{Name: inside, Values: cpuShare.BusyInside},
				},
				Annotate:  wholePct,
				YAxisMode: YAxisLinear,
			},
		},
	}, nil
}

func withColors(cfg PlotConfig, colors ...string) PlotConfig {
	cfg.Colors = colors
	cfg.BarWidth = vg.Points(60)
	return cfg
}

func (c *Charts) PlotCompare(table *results.StrategyTable, threads int, path string) error {
	fig, err := c.CompareFigure(table, threads)
	if err != nil {
		return err
	}
	return fig.Save(path)
}

func (c *Charts) PlotBusyWait(run results.BusyWaitRun, path string) error {
	fig, err := c.BusyWaitFigure(run)
	if err != nil {
		return err
	}
	return fig.Save(path)
}
