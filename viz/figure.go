package viz

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Figure is a grid of bar panels under a common title.
type Figure struct {
	Title    string
	Subtitle string
	Rows     int
	Cols     int
	Panels   []BarPanel
	Config   PlotConfig
}

// Format returns the image format implied by the file extension,
// defaulting to png.
func Format(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "":
		return "png"
	case "jpeg":
		return "jpg"
	}
	return ext
}

// Save renders every panel and writes the figure to path.
func (f *Figure) Save(path string) error {
	if len(f.Panels) == 0 {
		return ErrNoData
	}
	if f.Rows*f.Cols != len(f.Panels) {
		return fmt.Errorf("figure has %d panels for a %dx%d grid", len(f.Panels), f.Rows, f.Cols)
	}

	grid := make([][]*plot.Plot, f.Rows)
	for r := range grid {
		grid[r] = make([]*plot.Plot, f.Cols)
		for c := range grid[r] {
			p, err := f.Panels[r*f.Cols+c].build(f.Config)
			if err != nil {
				return fmt.Errorf("panel %q: %w", f.Panels[r*f.Cols+c].Title, err)
			}
			grid[r][c] = p
		}
	}

	canvas, err := draw.NewFormattedCanvas(f.Config.Width, f.Config.Height, Format(path))
	if err != nil {
		return err
	}
	dc := draw.New(canvas)
	dc.SetColor(parseHex(f.Config.Background))
	dc.Fill(dc.Rectangle.Path())

	header := f.Config.TitleSize * 2
	if f.Subtitle != "" {
		header += f.Config.TitleSize
	}
	body := draw.Crop(dc, 0, 0, 0, -header)
	tiles := draw.Tiles{
		Rows: f.Rows, Cols: f.Cols,
		PadX: vg.Points(30), PadY: vg.Points(30),
		PadTop: vg.Points(10), PadBottom: vg.Points(20),
		PadLeft: vg.Points(20), PadRight: vg.Points(20),
	}
	canvases := plot.Align(grid, tiles, body)
	for r := range grid {
		for c := range grid[r] {
			grid[r][c].Draw(canvases[r][c])
		}
	}

	sty := text.Style{
		Color:   parseHex(f.Config.TextColor),
		Font:    font.From(plot.DefaultFont, f.Config.TitleSize),
		XAlign:  text.XCenter,
		YAlign:  text.YTop,
		Handler: plot.DefaultTextHandler,
	}
	center := (dc.Min.X + dc.Max.X) / 2
	top := dc.Max.Y - f.Config.TitleSize/2
	dc.FillText(sty, vg.Point{X: center, Y: top}, f.Title)
	if f.Subtitle != "" {
		sty.Font = font.From(plot.DefaultFont, f.Config.TitleSize*0.7)
		dc.FillText(sty, vg.Point{X: center, Y: top - f.Config.TitleSize*1.4}, f.Subtitle)
	}

	w, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := canvas.WriteTo(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
