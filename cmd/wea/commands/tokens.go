package commands

import (
	"fmt"

	"github.com/panyam/wea/parser"
	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Prints the tokens of a script, one per line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := loadScript(args[0])
		if err != nil {
			return err
		}
		tokens, err := parser.Tokenize(src.Text)
		for _, tok := range tokens {
			fmt.Fprintf(cmd.OutOrStdout(), "%4d  %-10s  %s\n", tok.Line, tok.Kind, tok)
		}
		return err
	},
}

func init() {
	AddCommand(tokensCmd)
}
