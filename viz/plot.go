package viz

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// PlotConfig holds styling and dimension configuration.
type PlotConfig struct {
	Width      vg.Length
	Height     vg.Length
	BarWidth   vg.Length
	TitleSize  vg.Length
	GridColor  string
	TextColor  string
	Colors     []string // Palette for bars and series
	Background string
}

// DefaultPlotConfig returns sensible defaults for a 2x2 figure.
func DefaultPlotConfig() PlotConfig {
	return PlotConfig{
		Width: 16 * vg.Inch, Height: 12 * vg.Inch,
		BarWidth: vg.Points(40), TitleSize: vg.Points(20),
		GridColor: "#e5e7eb", TextColor: "#000000", Background: "#ffffff",
		Colors: []string{"#3b82f6", "#ef4444", "#10b981", "#f97316", "#8b5cf6", "#ec4899"},
	}
}

// YAxisMode selects the scaling of a panel's value axis.
type YAxisMode int

const (
	YAxisAuto YAxisMode = iota // log when the values span more than LogSpan
	YAxisLinear
	YAxisLog
)

// LogSpan is the max/min ratio above which YAxisAuto switches to a log axis.
const LogSpan = 100

// UseLog reports whether vals should be drawn on a log axis under mode.
// A log axis needs strictly positive values.
func UseLog(mode YAxisMode, vals []float64) bool {
	if mode == YAxisLinear || len(vals) == 0 {
		return false
	}
	lo, _ := stats.Min(vals)
	if lo <= 0 {
		return false
	}
	if mode == YAxisLog {
		return true
	}
	hi, _ := stats.Max(vals)
	return hi > lo*LogSpan
}

// parseHex turns "#rrggbb" into a color, falling back to black.
func parseHex(s string) color.Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.Black
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.Black
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

func (c PlotConfig) color(i int) color.Color {
	if len(c.Colors) == 0 {
		return color.Gray{Y: 128}
	}
	return parseHex(c.Colors[i%len(c.Colors)])
}

// build turns a panel description into a gonum plot.
func (bp BarPanel) build(cfg PlotConfig) (*plot.Plot, error) {
	if len(bp.Categories) == 0 || len(bp.Series) == 0 {
		return nil, ErrNoData
	}
	for _, s := range bp.Series {
		if len(s.Values) != len(bp.Categories) {
			return nil, fmt.Errorf("series %q has %d values for %d categories", s.Name, len(s.Values), len(bp.Categories))
		}
	}

	var all []float64
	for _, s := range bp.Series {
		all = append(all, s.Values...)
	}
	logAxis := UseLog(bp.YAxisMode, all)
	// bars on a log axis are drawn as decades above 10^base, one decade
	// below the smallest value so every bar stays visible
	var base float64
	height := func(v float64) float64 { return v }
	if logAxis {
		lo, _ := stats.Min(all)
		base = math.Floor(math.Log10(lo)) - 1
		height = func(v float64) float64 { return math.Log10(v) - base }
	}

	p := plot.New()
	p.Title.Text = bp.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Title.Padding = vg.Points(8)
	p.Y.Label.Text = bp.YLabel
	p.BackgroundColor = parseHex(cfg.Background)

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = parseHex(cfg.GridColor)
	p.Add(grid)

	n := len(bp.Series)
	width := cfg.BarWidth
	if n > 1 {
		width = cfg.BarWidth / vg.Length(n) * 1.5
	}

	var ymax float64
	for j, s := range bp.Series {
		offset := (vg.Length(j) - vg.Length(n-1)/2) * width
		heights := make(plotter.Values, len(s.Values))
		for i, v := range s.Values {
			heights[i] = height(v)
			ymax = math.Max(ymax, heights[i])
		}

		if n == 1 {
			// one chart per bar so each category gets its own color
			for i, h := range heights {
				bar, err := plotter.NewBarChart(plotter.Values{h}, width)
				if err != nil {
					return nil, err
				}
				bar.XMin = float64(i)
				bar.Color = cfg.color(i)
				if s.Color != "" {
					bar.Color = parseHex(s.Color)
				}
				bar.LineStyle.Color = color.Black
				p.Add(bar)
			}
		} else {
			bar, err := plotter.NewBarChart(heights, width)
			if err != nil {
				return nil, err
			}
			bar.Offset = offset
			bar.Color = cfg.color(j)
			if s.Color != "" {
				bar.Color = parseHex(s.Color)
			}
			bar.LineStyle.Color = color.Black
			p.Add(bar)
			p.Legend.Add(s.Name, bar)
		}

		if bp.Annotate == nil {
			continue
		}
		xys := make(plotter.XYs, len(heights))
		texts := make([]string, len(heights))
		for i, h := range heights {
			xys[i] = plotter.XY{X: float64(i), Y: h}
			texts[i] = bp.Annotate(s.Values[i])
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
		if err != nil {
			return nil, err
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].XAlign = text.XCenter
			labels.TextStyle[i].YAlign = text.YBottom
			labels.TextStyle[i].Font = font.From(plot.DefaultFont, vg.Points(9))
		}
		labels.Offset = vg.Point{X: offset, Y: vg.Points(3)}
		if n == 1 {
			labels.Offset.X = 0
		}
		p.Add(labels)
	}

	for _, rl := range bp.RefLines {
		y := rl.Y
		if logAxis {
			if y <= 0 {
				continue
			}
			y = height(y)
		}
		line, err := plotter.NewLine(plotter.XYs{{X: -0.5, Y: y}, {X: float64(len(bp.Categories)) - 0.5, Y: y}})
		if err != nil {
			return nil, err
		}
		line.Color = parseHex(rl.Color)
		line.Width = vg.Points(1.5)
		line.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
		p.Add(line)
		if rl.Label != "" {
			p.Legend.Add(rl.Label, line)
		}
		ymax = math.Max(ymax, y)
	}

	for _, note := range bp.Notes {
		y := note.Y
		if logAxis && y > 0 {
			y = height(y)
		}
		nl, err := plotter.NewLabels(plotter.XYLabels{XYs: plotter.XYs{{X: note.X, Y: y}}, Labels: []string{note.Text}})
		if err != nil {
			return nil, err
		}
		nl.TextStyle[0].Color = parseHex(note.Color)
		nl.TextStyle[0].XAlign = text.XCenter
		nl.TextStyle[0].Font = font.From(plot.DefaultFont, vg.Points(12))
		p.Add(nl)
		ymax = math.Max(ymax, y)
	}

	p.NominalX(bp.Categories...)
	p.X.Tick.Label.Rotation = math.Pi / 8
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	p.X.Min = -0.5
	p.X.Max = float64(len(bp.Categories)) - 0.5
	p.Y.Min = 0
	// headroom for the value labels
	p.Y.Max = ymax * 1.15
	if p.Y.Max == 0 {
		p.Y.Max = 1
	}
	if logAxis {
		p.Y.Tick.Marker = decadeTicks(base)
	}
	if n > 1 || len(bp.RefLines) > 0 {
		p.Legend.Top = true
	}
	return p, nil
}

// decadeTicks labels a log-transformed axis whose zero sits at 10^base.
func decadeTicks(base float64) plot.Ticker {
	return plot.TickerFunc(func(min, max float64) []plot.Tick {
		var ticks []plot.Tick
		for k := math.Ceil(min); k <= max; k++ {
			ticks = append(ticks, plot.Tick{Value: k, Label: "1e" + strconv.Itoa(int(base+k))})
		}
		return ticks
	})
}
