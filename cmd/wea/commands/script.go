package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/panyam/wea/loader"
	"github.com/panyam/wea/runtime"
	"github.com/panyam/wea/stdlib"
	"github.com/spf13/cobra"
)

var errorPrefixes = []string{"[RUNTIME ERROR]", "[SYNTAX ERROR]", "[SCAN ERROR]"}

func isErrorMessage(msg string) bool {
	for _, p := range errorPrefixes {
		if strings.HasPrefix(msg, p) {
			return true
		}
	}
	return false
}

// newRuntime builds a runtime with the full standard library.  Emitted
// values go to the command's stdout and error notices to its stderr.
func newRuntime(cmd *cobra.Command, meta loader.Meta) (*runtime.Runtime, error) {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	red := color.New(color.FgRed)
	depth := maxCallDepth
	if meta.MaxCallDepth > 0 {
		depth = meta.MaxCallDepth
	}
	// Only run defines --partial
	partial, _ := cmd.Flags().GetBool("partial")
	opts := []runtime.Option{runtime.WithRunPartial(partial)}
	if depth > 0 {
		opts = append(opts, runtime.WithMaxCallDepth(depth))
	}
	opts = append(opts,
		runtime.WithStdout(stdout),
		runtime.WithLogger(slog.Default()),
		runtime.WithOutput(func(msg string) {
			if isErrorMessage(msg) {
				red.Fprintln(stderr, msg)
				return
			}
			fmt.Fprintln(stdout, msg)
		}),
		runtime.WithLibraries(stdlib.All(stdlib.Options{
			FS:     loader.NewDefaultFS(),
			Stdin:  cmd.InOrStdin(),
			Stdout: stdout,
		})...),
	)
	rt := runtime.NewRuntime(opts...)
	if err := defineVars(rt, meta.Vars); err != nil {
		return nil, err
	}
	return rt, nil
}

// defineVars seeds the globals from front matter.
func defineVars(rt *runtime.Runtime, vars map[string]any) error {
	for name, raw := range vars {
		v, err := runtime.ToValue(raw)
		if err != nil {
			return fmt.Errorf("front matter var '%s': %w", name, err)
		}
		rt.Globals().Define(name, v)
	}
	return nil
}

// runSource runs src in a fresh runtime.
func runSource(cmd *cobra.Command, src *loader.Source) error {
	rt, err := newRuntime(cmd, src.Meta)
	if err != nil {
		return err
	}
	slog.Debug("running script", "path", src.Path, "name", src.Meta.Name)
	if err := rt.Run(src.Text); err != nil {
		return errReported
	}
	return nil
}

func loadScript(path string) (*loader.Source, error) {
	return loader.NewLoader(loader.NewDefaultFS()).Load(path)
}

func readAll(r io.Reader, path string) (*loader.Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return loader.Prepare(path, data)
}
