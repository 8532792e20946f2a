package commands

import (
	"github.com/panyam/pibench/pipeline"
	"github.com/spf13/cobra"
)

var busyWaitCmd = &cobra.Command{
	Use:   "busywait",
	Short: "Build and run the busy-waiting-inside probe, then report and chart it",
	Long: `Compiles the busy-waiting probe, runs it and scans its console output
for the sequential and busy-waiting-inside times and π values. Prints a
technical report and saves a chart comparing the times next to the
conceptual CPU time distribution of both versions.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		job := pipeline.BusyWaitJobFrom(cfg)
		stringFlag(cmd, "source", &job.Source)
		stringFlag(cmd, "binary", &job.Binary)
		stringFlag(cmd, "chart", &job.Chart)
		stringFlag(cmd, "json", &job.JSON)

		ctx, cancel := runContext(cmd)
		defer cancel()
		_, err := pipeline.FromConfig(cfg, cmd.OutOrStdout()).BusyWait(ctx, job)
		return err
	},
}

func init() {
	busyWaitCmd.Flags().String("source", "", "C++ source of the probe program")
	busyWaitCmd.Flags().String("binary", "", "Name of the compiled program")
	busyWaitCmd.Flags().String("chart", "", "Chart output file (.png, .svg or .pdf)")
	busyWaitCmd.Flags().String("json", "", "Also export the extracted metrics as JSON")
	AddCommand(busyWaitCmd)
}
