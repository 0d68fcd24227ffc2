package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/panyam/wea/decl"
	"github.com/panyam/wea/loader"
	"github.com/panyam/wea/parser"
	"github.com/spf13/cobra"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Prints a script in canonical form",
	Long: `Parses a script and prints it back with one statement per line and
consistent indentation.  Comments are not kept.

With --write the file is rewritten in place.  Markdown files cannot be
rewritten since only their code blocks are parsed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		write, _ := cmd.Flags().GetBool("write")
		colored, _ := cmd.Flags().GetBool("color")
		style, _ := cmd.Flags().GetString("style")
		path := args[0]

		src, err := loadScript(path)
		if err != nil {
			return err
		}
		stmts, errs := parser.ParseSource(src.Text)
		if len(errs) > 0 {
			c := loader.ErrorCollector{}
			c.AddErrors(errs...)
			c.PrintErrors(cmd.ErrOrStderr(), path)
			return errReported
		}
		out := decl.Sprint(&decl.Program{Statements: stmts})

		switch {
		case write && loader.IsMarkdown(path):
			return errors.New("cannot rewrite a markdown file")
		case write:
			return os.WriteFile(path, []byte(out), 0o644)
		case colored:
			return highlight(cmd.OutOrStdout(), out, style)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	fmtCmd.Flags().Bool("write", false, "Rewrite the file instead of printing it")
	fmtCmd.Flags().Bool("color", false, "Highlight the output for a terminal")
	fmtCmd.Flags().String("style", "monokai", "Highlighting style used with --color")
	AddCommand(fmtCmd)
}
