// Package report prints the console summaries of both benchmark pipelines.
package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/message"

	"github.com/panyam/pibench/results"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	okColor      = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	badColor     = color.New(color.FgRed)
)

const ruleWidth = 70

// Reporter writes localized, colored reports to Out.
type Reporter struct {
	Out     io.Writer
	Printer *message.Printer
	Threads int
	Terms   int64
}

func New(out io.Writer, lang string, threads int) *Reporter {
	if threads < 1 {
		threads = results.DefaultThreads
	}
	return &Reporter{
		Out:     out,
		Printer: NewPrinter(lang),
		Threads: threads,
		Terms:   results.DefaultTermCount,
	}
}

func (r *Reporter) line(key string, args ...any) {
	r.Printer.Fprintf(r.Out, key, args...)
	io.WriteString(r.Out, "\n")
}

func (r *Reporter) blank() { io.WriteString(r.Out, "\n") }

func (r *Reporter) banner(key string) {
	rule := strings.Repeat("=", ruleWidth)
	r.blank()
	io.WriteString(r.Out, rule+"\n")
	headingColor.Fprintln(r.Out, r.Printer.Sprintf(key))
	io.WriteString(r.Out, rule+"\n")
}

func (r *Reporter) section(key string, args ...any) {
	r.blank()
	headingColor.Fprintln(r.Out, r.Printer.Sprintf(key, args...))
}

func (r *Reporter) marked(v results.Verdict, key string) {
	marker := "•"
	c := headingColor
	switch v {
	case results.VerdictRecommended:
		marker, c = "✔", okColor
	case results.VerdictCaution:
		marker, c = "⚠", warnColor
	case results.VerdictAvoid:
		marker, c = "✘", badColor
	}
	io.WriteString(r.Out, "   ")
	c.Fprint(r.Out, marker)
	io.WriteString(r.Out, " "+r.Printer.Sprintf(key)+"\n")
}

// Sci formats v in scientific notation with two decimals, e.g. 1.23e-05.
func Sci(v float64) string { return strconv.FormatFloat(v, 'e', 2, 64) }

// Table prints every row with its derived efficiency.
func (r *Reporter) Table(table *results.StrategyTable) {
	const row = "%-22s %15s %12s %12s %10s %12s"
	r.section("RESULTS")
	r.line(row, r.Printer.Sprintf("STRATEGY"), r.Printer.Sprintf("π"), r.Printer.Sprintf("TIME (s)"),
		r.Printer.Sprintf("ERROR"), r.Printer.Sprintf("SPEEDUP"), r.Printer.Sprintf("EFFICIENCY"))
	io.WriteString(r.Out, strings.Repeat("-", 88)+"\n")
	for _, res := range table.Rows() {
		pi := "-"
		if res.HasPi {
			pi = strconv.FormatFloat(res.Pi, 'f', 10, 64)
		}
		r.line(row, string(res.Strategy), pi,
			strconv.FormatFloat(res.Elapsed, 'f', 6, 64),
			Sci(res.Error),
			strconv.FormatFloat(res.Speedup, 'f', 3, 64)+"x",
			strconv.FormatFloat(res.Efficiency(r.Threads), 'f', 1, 64)+"%")
	}
}

// Compare prints the analysis of a full strategy comparison.
func (r *Reporter) Compare(table *results.StrategyTable) {
	if table.Empty() {
		badColor.Fprintln(r.Out, r.Printer.Sprintf("No data to analyze"))
		return
	}

	r.banner("STATISTICAL ANALYSIS OF RESULTS")

	r.section("PERFORMANCE METRICS:")
	fastest, _ := table.Fastest()
	r.line("   Fastest strategy: %s (%.4fs)", string(fastest.Strategy), fastest.Elapsed)
	best, _ := table.BestSpeedup()
	r.line("   Best speedup: %s (%.3fx)", string(best.Strategy), best.Speedup)
	if table.Len() > 1 {
		if slow := table.MaxSlowdown(); slow > 0 {
			r.line("   Largest difference: %.2fx slower", slow)
		}
	}
	sum := table.Summary()
	r.line("   Mean time: %.4fs, median: %.4fs", sum.MeanElapsed, sum.MedianElapsed)

	r.section("NUMERICAL PRECISION:")
	precise, _ := table.BestPrecision()
	r.line("   Best precision: %s (Error: %s)", string(precise.Strategy), Sci(precise.Error))

	r.section("PARALLEL EFFICIENCY (%d threads):", r.Threads)
	eff, _ := table.BestEfficiency(r.Threads)
	r.line("   Best efficiency: %s (%.1f%%)", string(eff.Strategy), eff.Efficiency(r.Threads))

	r.section("INTERPRETATION:")
	for _, res := range table.Rows() {
		r.line("   %s: %.4fs, Speedup: %.3fx", string(res.Strategy), res.Elapsed, res.Speedup)
	}

	r.section("RECOMMENDATIONS:")
	if table.Has(results.Mutex) {
		r.marked(results.VerdictRecommended, "MUTEX: usually the best balance between performance and ease of use")
	}
	if table.Has(results.BusyWaitOutside) {
		r.marked(results.VerdictCaution, "BUSY-WAITING_FUERA: good performance but burns CPU while waiting")
	}
	if table.Has(results.BusyWaitInside) {
		r.marked(results.VerdictAvoid, "BUSY-WAITING_DENTRO: avoid, the computation is fully serialized")
	}
}

// BusyWait prints the technical report of the busy-waiting probe.
func (r *Reporter) BusyWait(run results.BusyWaitRun) {
	r.banner("TECHNICAL REPORT: BUSY-WAITING INSIDE THE LOOP")

	r.section("DATA:")
	r.line("   • Sequential time: %.6f seconds", run.SequentialTime)
	r.line("   • Busy-waiting inside time: %.6f seconds", run.BusyInsideTime)
	r.line("   • Slowdown factor: %.2fx", run.Slowdown())
	r.line("   • Sequential π: %.10f", run.SequentialPi)
	r.line("   • Busy-waiting π: %.10f", run.BusyInsidePi)

	r.section("TECHNICAL ANALYSIS:")
	r.line("   1. SYNCHRONIZATION OVERHEAD:")
	r.line("      - %d terms × %d threads = ~%d synchronization operations", r.Terms, r.Threads, r.Terms*int64(r.Threads))
	r.line("      - Every term requires active waiting and a context switch")
	r.line("      - Synchronization cost dominates the useful computation")
	r.blank()
	r.line("   2. PROBLEMS FOUND:")
	r.line("      • SERIALIZATION: only one thread works at a time")
	r.line("      • ACTIVE WAITING: CPU time spent polling")
	r.line("      • CONTENTION: every thread competes for the same resource")
	r.line("      • INEFFICIENCY: slower than the sequential version")

	r.section("DESIGN RECOMMENDATIONS:")
	r.marked(results.VerdictRecommended, "BUSY-WAITING OUTSIDE the loop:")
	r.line("      - Independent parallel computation")
	r.line("      - A single synchronization at the end")
	r.line("      - Full use of the available parallelism")
	r.blank()
	r.marked(results.VerdictRecommended, "MUTEX for critical sections:")
	r.line("      - Synchronization handled by the OS")
	r.line("      - No CPU spent while waiting")
	r.line("      - Efficient for batched operations")
	r.blank()
	r.marked(results.VerdictAvoid, "AVOID busy-waiting inside loops:")
	r.line("      - Demonstrated anti-pattern")
	r.line("      - Complete serialization")
	r.line("      - All benefits of parallelism are lost")
}
