package commands

import (
	"github.com/panyam/pibench/pipeline"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Build and run the full strategy comparison, then report and chart it",
	Long: `Compiles the comparison program, runs it, loads the CSV it writes and
prints the analysis of every strategy. A 2x2 chart of execution time,
speedup, error and parallel efficiency is saved and opened.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		job := pipeline.CompareJobFrom(cfg)
		stringFlag(cmd, "source", &job.Source)
		stringFlag(cmd, "binary", &job.Binary)
		stringFlag(cmd, "csv", &job.CSV)
		stringFlag(cmd, "chart", &job.Chart)
		stringFlag(cmd, "json", &job.JSON)

		ctx, cancel := runContext(cmd)
		defer cancel()
		_, err := pipeline.FromConfig(cfg, cmd.OutOrStdout()).Compare(ctx, job)
		return err
	},
}

func init() {
	compareCmd.Flags().String("source", "", "C++ source of the comparison program")
	compareCmd.Flags().String("binary", "", "Name of the compiled program")
	compareCmd.Flags().String("csv", "", "Results CSV written by the program")
	compareCmd.Flags().String("chart", "", "Chart output file (.png, .svg or .pdf)")
	compareCmd.Flags().String("json", "", "Also export the results table as JSON")
	AddCommand(compareCmd)
}
