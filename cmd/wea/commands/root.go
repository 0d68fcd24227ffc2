package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	envFile      string
	logLevel     string
	maxCallDepth int
	noColor      bool
)

var rootCmd = &cobra.Command{
	Use:   "wea",
	Short: "WEA-Sharp script runner",
	Long: `wea runs WEA-Sharp scripts.

Scripts are plain .wea files or markdown documents whose fenced wea blocks
are run in order.  Either may start with YAML front matter that names the
script and seeds global variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadEnv(envFile); err != nil {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
		if noColor {
			color.NoColor = true
		}
		if logLevel == "" {
			logLevel = DefaultLogLevel()
		}
		if maxCallDepth == 0 {
			maxCallDepth = DefaultMaxCallDepth()
		}
		return setupLogging(logLevel)
	},
}

// errReported marks failures whose details were already printed.
var errReported = errors.New("failed")

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "File of environment variables to load first")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (default $"+EnvLogLevel+" or warn)")
	rootCmd.PersistentFlags().IntVar(&maxCallDepth, "max-call-depth", 0, "Maximum nested calls before a script fails (default $"+EnvMaxCallDepth+" or 512)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}
