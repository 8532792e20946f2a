// Package pipeline wires build, run, extraction, reporting and charting
// into the compare and busywait flows. A failing stage stops the flow.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/panyam/pibench/config"
	"github.com/panyam/pibench/extract"
	"github.com/panyam/pibench/report"
	"github.com/panyam/pibench/results"
	"github.com/panyam/pibench/runner"
	"github.com/panyam/pibench/viz"
)

var ErrNoData = errors.New("no benchmark data")

type Builder interface {
	Build(ctx context.Context, source, binary string) error
}

type Executor interface {
	Run(ctx context.Context, binary string) (*runner.Output, error)
}

// Pipeline holds the stages shared by both flows.
type Pipeline struct {
	Builder  Builder
	Executor Executor
	Renderer viz.Plotter
	Reporter *report.Reporter

	// Console receives the benchmark's own stdout.
	Console io.Writer
	// Dir is where the CSV, chart and JSON paths are resolved.
	Dir     string
	Threads int
	Show    bool
	Open    func(path string) error
	Logger  *slog.Logger
}

// CompareJob names the files of a full strategy comparison.
type CompareJob struct {
	Source string
	Binary string
	CSV    string
	Chart  string
	JSON   string
}

// BusyWaitJob names the files of a busy-waiting probe run.
type BusyWaitJob struct {
	Source string
	Binary string
	Chart  string
	JSON   string
	Labels extract.Labels
}

// FromConfig assembles a pipeline backed by the real runner, reporter
// and gonum charts.
func FromConfig(cfg *config.Config, out io.Writer) *Pipeline {
	r := cfg.Runner()
	rep := report.New(out, cfg.Lang, cfg.Threads)
	rep.Terms = cfg.Terms
	charts := viz.NewCharts()
	return &Pipeline{
		Builder:  r,
		Executor: r,
		Renderer: charts,
		Reporter: rep,
		Console:  out,
		Dir:      cfg.WorkDir,
		Threads:  cfg.Threads,
		Show:     cfg.Show,
		Open:     viz.Open,
	}
}

// CompareJobFrom and BusyWaitJobFrom copy the configured file names.
func CompareJobFrom(cfg *config.Config) CompareJob {
	c := cfg.Compare
	return CompareJob{Source: c.Source, Binary: c.Binary, CSV: c.CSV, Chart: c.Chart, JSON: c.JSON}
}

func BusyWaitJobFrom(cfg *config.Config) BusyWaitJob {
	b := cfg.BusyWait
	return BusyWaitJob{Source: b.Source, Binary: b.Binary, Chart: b.Chart, JSON: b.JSON, Labels: b.Labels}
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

func (p *Pipeline) path(name string) string {
	if name == "" || filepath.IsAbs(name) || p.Dir == "" {
		return name
	}
	return filepath.Join(p.Dir, name)
}

// buildAndRun compiles and executes the program, echoing its stdout.
func (p *Pipeline) buildAndRun(ctx context.Context, source, binary string) (*runner.Output, error) {
	if err := p.Builder.Build(ctx, source, binary); err != nil {
		return nil, err
	}
	out, err := p.Executor.Run(ctx, binary)
	var se *runner.StageError
	if errors.As(err, &se) {
		p.echo(se.Output.Stdout)
	}
	if err != nil {
		return nil, err
	}
	p.echo(out.Stdout)
	return out, nil
}

func (p *Pipeline) echo(stdout string) {
	if p.Console != nil && stdout != "" {
		io.WriteString(p.Console, stdout)
	}
}

// busyWaitExport is the JSON form of a probe run: the raw metrics and
// the derived two-row table.
type busyWaitExport struct {
	Run        results.BusyWaitRun    `json:"run"`
	Strategies *results.StrategyTable `json:"strategies"`
}

// Compare builds and runs the comparison program, loads the CSV it
// writes, then reports and charts it.
func (p *Pipeline) Compare(ctx context.Context, job CompareJob) (*results.StrategyTable, error) {
	if _, err := p.buildAndRun(ctx, job.Source, job.Binary); err != nil {
		return nil, err
	}
	return p.Report(job.CSV, job.Chart, job.JSON)
}

// Report loads an existing results CSV, prints the analysis and renders
// the comparison chart.
func (p *Pipeline) Report(csvPath, chart, jsonPath string) (*results.StrategyTable, error) {
	table, err := extract.LoadCSV(p.path(csvPath))
	if errors.Is(err, extract.ErrEmptyResults) {
		return nil, fmt.Errorf("%w: %s", ErrNoData, csvPath)
	} else if err != nil {
		return nil, err
	}
	if table.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrNoData, csvPath)
	}
	p.logger().Debug("loaded results", "csv", csvPath, "strategies", table.Len())

	p.Reporter.Table(table)
	p.Reporter.Compare(table)
	if err := p.export(jsonPath, table); err != nil {
		return table, err
	}
	if err := p.render(chart, func(path string) error {
		return p.Renderer.PlotCompare(table, p.Threads, path)
	}); err != nil {
		return table, err
	}
	return table, nil
}

// BusyWait builds and runs the busy-waiting probe, scans its output for
// the labeled metrics, then reports and charts them.
func (p *Pipeline) BusyWait(ctx context.Context, job BusyWaitJob) (results.BusyWaitRun, error) {
	out, err := p.buildAndRun(ctx, job.Source, job.Binary)
	if err != nil {
		return results.BusyWaitRun{}, err
	}
	labels := job.Labels
	if labels == (extract.Labels{}) {
		labels = extract.DefaultLabels()
	}
	run := labels.Parse(out.Stdout)
	if !run.Valid() {
		return run, fmt.Errorf("%w: no %q line in the output", ErrNoData, labels.SequentialTime)
	}

	p.Reporter.BusyWait(run)
	if err := p.export(job.JSON, busyWaitExport{Run: run, Strategies: run.Table()}); err != nil {
		return run, err
	}
	if err := p.render(job.Chart, func(path string) error {
		return p.Renderer.PlotBusyWait(run, path)
	}); err != nil {
		return run, err
	}
	return run, nil
}

func (p *Pipeline) render(chart string, plot func(path string) error) error {
	if chart == "" {
		return nil
	}
	path := p.path(chart)
	if err := plot(path); err != nil {
		return fmt.Errorf("rendering %s: %w", chart, err)
	}
	p.logger().Info("chart saved", "path", path)
	if p.Show && p.Open != nil {
		if err := p.Open(path); err != nil {
			p.logger().Warn("could not display chart", "path", path, "error", err)
		}
	}
	return nil
}

func (p *Pipeline) export(name string, v any) error {
	if name == "" {
		return nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	path := p.path(name)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	p.logger().Info("results exported", "path", path)
	return nil
}
