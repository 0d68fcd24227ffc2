package runtime

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/panyam/wea/parser"
)

// Runtime ties the lexer, parser and interpreter together.  Each Runtime
// has its own globals and native registry.
type Runtime struct {
	// OnOutput receives emitted values and error notifications.  When nil
	// they are written line by line to Stdout.
	OnOutput func(msg string)
	Stdout   io.Writer
	Logger   *slog.Logger

	// RunPartial makes Run execute the statements that parsed even when
	// others had syntax errors.
	RunPartial bool

	Interp *Interpreter
	owners map[string]string
	libs   []Library
}

type Option func(r *Runtime)

func WithOutput(fn func(msg string)) Option {
	return func(r *Runtime) { r.OnOutput = fn }
}

func WithStdout(w io.Writer) Option {
	return func(r *Runtime) { r.Stdout = w }
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) { r.Logger = logger }
}

func WithMaxCallDepth(depth int) Option {
	return func(r *Runtime) { r.Interp.MaxCallDepth = depth }
}

func WithRunPartial(partial bool) Option {
	return func(r *Runtime) { r.RunPartial = partial }
}

func WithLibraries(libs ...Library) Option {
	return func(r *Runtime) { r.libs = append(r.libs, libs...) }
}

func NewRuntime(opts ...Option) *Runtime {
	r := &Runtime{
		Stdout: os.Stdout,
		Logger: slog.Default(),
		Interp: NewInterpreter(NewScope(nil)),
		owners: map[string]string{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	// Libraries are registered once every other option is in place
	for _, lib := range r.libs {
		r.RegisterLibrary(lib)
	}
	r.libs = nil
	r.sync()
	return r
}

func (r *Runtime) Globals() *Scope {
	return r.Interp.Globals
}

func (r *Runtime) sync() {
	r.Interp.OnOutput = r.OnOutput
	r.Interp.Stdout = r.Stdout
	r.Interp.Logger = r.Logger
}

// Notify sends msg to the output sink.
func (r *Runtime) Notify(msg string) {
	r.sync()
	r.Interp.Notify(msg)
}

// Parse scans and parses source, notifying every scan and syntax error.
func (r *Runtime) Parse(source string) ([]Stmt, error) {
	start := time.Now()
	tokens, err := parser.Tokenize(source)
	if err != nil {
		r.Notify("[SCAN ERROR] " + err.Error())
		return nil, err
	}
	stmts, errs := parser.Parse(tokens)
	for _, e := range errs {
		r.Notify("[SYNTAX ERROR] " + e.Error())
	}
	r.Logger.Debug("parsed", "tokens", len(tokens), "statements", len(stmts), "errors", len(errs), "elapsed", time.Since(start))
	return stmts, errors.Join(errs...)
}

// Run parses source and, when it parsed cleanly, interprets it.  With
// RunPartial set the statements that parsed run regardless, and the syntax
// errors are joined with any runtime error.
func (r *Runtime) Run(source string) error {
	stmts, err := r.Parse(source)
	if err == nil {
		return r.Exec(stmts)
	}
	if !r.RunPartial || len(stmts) == 0 {
		return err
	}
	return errors.Join(err, r.Exec(stmts))
}

// Exec interprets already parsed statements against the globals.
func (r *Runtime) Exec(stmts []Stmt) error {
	r.sync()
	start := time.Now()
	err := r.Interp.Interpret(stmts)
	r.Logger.Debug("interpreted", "statements", len(stmts), "failed", err != nil, "elapsed", time.Since(start))
	return err
}
