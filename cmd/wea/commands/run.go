package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/panyam/wea/loader"
	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Runs a script",
	Long: `Runs a .wea script or the wea blocks of a markdown file.

With no file the script is read from standard input when it is piped in.
Use -e to run a snippet given on the command line and --watch to rerun the
file every time it changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		expr, _ := cmd.Flags().GetString("eval")
		watch, _ := cmd.Flags().GetBool("watch")

		switch {
		case expr != "":
			return runSource(cmd, &loader.Source{Path: "<eval>", Text: expr})
		case len(args) == 1 && watch:
			return watchScript(cmd, args[0])
		case len(args) == 1:
			src, err := loadScript(args[0])
			if err != nil {
				return err
			}
			return runSource(cmd, src)
		case stdinIsPiped():
			src, err := readAll(cmd.InOrStdin(), "<stdin>")
			if err != nil {
				return err
			}
			return runSource(cmd, src)
		}
		return errors.New("a script file or -e is required")
	},
}

func stdinIsPiped() bool {
	fd := os.Stdin.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// watchScript runs path now and again after every change until interrupted.
// Failed runs are reported and watching carries on.
func watchScript(cmd *cobra.Command, path string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	rerun := func() {
		src, err := loadScript(path)
		if err == nil {
			err = runSource(cmd, src)
		}
		if err != nil && !errors.Is(err, errReported) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		}
	}

	w := watcher.New()
	w.SetMaxEvents(1)
	w.FilterOps(watcher.Write, watcher.Create, watcher.Rename)
	if err := w.Add(path); err != nil {
		return err
	}

	rerun()
	go func() {
		for {
			select {
			case event := <-w.Event:
				slog.Debug("script changed", "path", event.Path, "op", event.Op)
				fmt.Fprintf(cmd.ErrOrStderr(), "--- %s changed, rerunning\n", path)
				rerun()
			case err := <-w.Error:
				slog.Error("watch failed", "path", path, "error", err)
			case <-w.Closed:
				return
			}
		}
	}()
	go func() {
		<-ctx.Done()
		w.Close()
	}()
	return w.Start(250 * time.Millisecond)
}

func init() {
	runCmd.Flags().StringP("eval", "e", "", "Run the given source instead of a file")
	runCmd.Flags().BoolP("watch", "w", false, "Rerun the file whenever it changes")
	runCmd.Flags().Bool("partial", false, "Run the statements that parsed even when others have syntax errors")
	AddCommand(runCmd)
}

