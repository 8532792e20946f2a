package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/panyam/pibench/config"
	"github.com/panyam/pibench/logging"
	"github.com/spf13/cobra"
)

// Global flags shared by every subcommand
var (
	configPath string
	logLevel   string
	lang       string
	threads    int
	workDir    string
	noShow     bool
	timeout    string
)

// cfg is loaded once per invocation by the root PersistentPreRunE.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "pibench",
	Short: "pibench builds, runs and charts the parallel π synchronization benchmark",
	Long: `pibench compiles the native π benchmark, runs it, extracts its
results and prints a comparison of the synchronization strategies
(sequential, busy-waiting inside and outside the loop, mutex) along
with charts of time, speedup, precision and efficiency.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint("Error: ", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default: "+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: DEBUG, INFO, WARN, ERROR or OFF (default: PIBENCH_LOG_LEVEL or INFO)")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "", "Report language: en or es")
	rootCmd.PersistentFlags().IntVar(&threads, "threads", 0, "Thread count used for efficiency (default 4)")
	rootCmd.PersistentFlags().StringVarP(&workDir, "workdir", "C", "", "Directory holding the sources and generated files")
	rootCmd.PersistentFlags().BoolVar(&noShow, "no-show", false, "Do not open the chart after saving it")
	rootCmd.PersistentFlags().StringVar(&timeout, "timeout", "", "Abort the build and run after this long, e.g. 2m")
}

// AddCommand allows adding subcommands from other files.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// loadConfig layers .env files, the YAML file, PIBENCH_* variables and
// finally the flags the user set, then installs the logger.
func loadConfig(cmd *cobra.Command, args []string) error {
	if err := config.LoadEnvFiles(); err != nil {
		return err
	}
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if flags.Changed("lang") {
		c.Lang = lang
	}
	if flags.Changed("threads") {
		c.Threads = threads
	}
	if flags.Changed("workdir") {
		c.WorkDir = workDir
	}
	if noShow {
		c.Show = false
	}
	if flags.Changed("timeout") {
		if err := c.SetTimeout(timeout); err != nil {
			return err
		}
	}
	if err := c.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	logging.Setup(os.Stderr, level)
	cfg = c
	return nil
}

// runContext bounds the build and run by the configured timeout.
func runContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout > 0 {
		return context.WithTimeout(ctx, cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

// stringFlag copies a string flag onto dst when the user set it.
func stringFlag(cmd *cobra.Command, name string, dst *string) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetString(name)
	}
}
