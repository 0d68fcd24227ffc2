package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/panyam/wea/loader"
	"github.com/panyam/wea/parser"
	"github.com/panyam/wea/runtime"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Starts an interactive session",
	Long: `Starts an interactive session.  Globals persist between inputs, and
an input with unclosed brackets continues on the next line.

  :globals  lists the globals defined so far
  :quit     leaves the session (Ctrl-D works too)

Ctrl-C discards the input being typed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		historyFile, _ := cmd.Flags().GetString("history")
		if historyFile == "" {
			historyFile = DefaultHistoryFile()
		}
		rt, err := newRuntime(cmd, loader.Meta{})
		if err != nil {
			return err
		}
		return repl(cmd.OutOrStdout(), rt, historyFile)
	},
}

func repl(out io.Writer, rt *runtime.Runtime, historyFile string) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetMultiLineMode(true)

	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	defer saveHistory(line, historyFile)

	color.New(color.FgCyan).Fprintln(out, "WEA-Sharp "+Version+"  (:quit to leave)")
	var pending strings.Builder
	for {
		prompt := "wea> "
		if pending.Len() > 0 {
			prompt = "...  "
		}
		input, err := line.Prompt(prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			pending.Reset()
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(out)
			return nil
		case err != nil:
			return err
		}

		if pending.Len() == 0 {
			switch strings.TrimSpace(input) {
			case "":
				continue
			case ":quit", ":q":
				return nil
			case ":globals":
				printGlobals(out, rt)
				continue
			}
		}
		pending.WriteString(input)
		pending.WriteString("\n")
		source := pending.String()
		if needsMore(source) {
			continue
		}
		pending.Reset()
		line.AppendHistory(strings.TrimSpace(source))
		// Errors were already reported through the output sink
		_ = rt.Run(source)
	}
}

// needsMore reports whether source stops inside an open bracket or string.
func needsMore(source string) bool {
	tokens, err := parser.Tokenize(source)
	if err != nil {
		return errors.Is(err, parser.ErrUnterminatedString)
	}
	open := 0
	for _, tok := range tokens {
		if tok.Kind != parser.Mark {
			continue
		}
		switch tok.Text {
		case "(", "[", "{":
			open++
		case ")", "]", "}":
			open--
		}
	}
	return open > 0
}

// printGlobals lists the script defined globals, leaving out natives.
func printGlobals(out io.Writer, rt *runtime.Runtime) {
	for _, name := range rt.Globals().Keys() {
		v, _ := rt.Globals().Get(name)
		if v.Type == runtime.FunctionType {
			if _, native := v.Callable().(*runtime.NativeFunc); native {
				continue
			}
		}
		fmt.Fprintf(out, "%s = %s\n", name, v)
	}
}

func saveHistory(line *liner.State, path string) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		slog.Warn("cannot save history", "path", path, "error", err)
		return
	}
	defer f.Close()
	_, _ = line.WriteHistory(f)
}

func init() {
	replCmd.Flags().String("history", "", "History file (default $"+EnvHistoryFile+" or ~/.wea_history)")
	AddCommand(replCmd)
}
