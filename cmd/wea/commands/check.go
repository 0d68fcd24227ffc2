package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/panyam/wea/loader"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Parses scripts and reports syntax errors without running them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxErrors, _ := cmd.Flags().GetInt("max-errors")
		l := loader.NewLoader(loader.NewDefaultFS())
		l.MaxErrors = maxErrors

		failed := 0
		out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
		for _, res := range l.Check(cmd.Context(), args...) {
			if res.HasErrors() {
				failed++
				color.New(color.FgRed).Fprintf(errOut, "✗ %s\n", res.Path)
				res.PrintErrors(errOut, res.Path)
				continue
			}
			color.New(color.FgGreen).Fprintf(out, "✓ %s", res.Path)
			fmt.Fprintf(out, " (%d statements)\n", len(res.Statements))
		}
		if failed > 0 {
			fmt.Fprintf(errOut, "%d of %d files failed\n", failed, len(args))
			return errReported
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().Int("max-errors", 20, "Maximum errors reported per file, 0 for all")
	AddCommand(checkCmd)
}
