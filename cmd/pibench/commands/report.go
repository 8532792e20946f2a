package commands

import (
	"github.com/panyam/pibench/pipeline"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report [csv]",
	Short: "Report and chart an existing results CSV without building anything",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		job := pipeline.CompareJobFrom(cfg)
		if len(args) > 0 {
			job.CSV = args[0]
		}
		stringFlag(cmd, "chart", &job.Chart)
		stringFlag(cmd, "json", &job.JSON)
		_, err := pipeline.FromConfig(cfg, cmd.OutOrStdout()).Report(job.CSV, job.Chart, job.JSON)
		return err
	},
}

func init() {
	reportCmd.Flags().String("chart", "", "Chart output file (.png, .svg or .pdf)")
	reportCmd.Flags().String("json", "", "Also export the results table as JSON")
	AddCommand(reportCmd)
}
