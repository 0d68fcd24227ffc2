// Package stdlib holds the native libraries shipped with the wea engine.
package stdlib

import (
	"errors"
	"io"
	"os"

	"github.com/panyam/wea/loader"
)

var (
	ErrDomain = errors.New("argument out of domain")
	ErrEmpty  = errors.New("empty list")
	ErrParse  = errors.New("cannot parse")
	ErrIO     = errors.New("io failure")
)

// Options controls where the host facing libraries read and write.
type Options struct {
	FS     loader.FileSystem
	Stdin  io.Reader
	Stdout io.Writer
}

// All returns every library in registration order.  Earlier libraries win
// name collisions.
func All(opts Options) []Library {
	if opts.FS == nil {
		opts.FS = loader.NewLocalFS("")
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	libs := []Library{
		Core(),
		Math(),
		Lists(),
		Text(),
		Data(),
		Files(opts.FS),
		NewConsole(opts.Stdin, opts.Stdout),
	}
	return append(libs, Aliases(libs...))
}
