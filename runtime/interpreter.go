package runtime

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

const DefaultMaxCallDepth = 512

// Interpreter walks statements against a scope chain rooted at Globals.
// It is not safe for concurrent use; separate interpreters share nothing.
type Interpreter struct {
	Globals *Scope

	// OnOutput receives one message per wea_emit and the final runtime error.
	// When nil messages are written to Stdout.
	OnOutput func(msg string)
	Stdout   io.Writer

	MaxCallDepth int
	Logger       *slog.Logger

	depth int
}

func NewInterpreter(globals *Scope) *Interpreter {
	if globals == nil {
		globals = NewScope(nil)
	}
	return &Interpreter{
		Globals:      globals,
		Stdout:       os.Stdout,
		MaxCallDepth: DefaultMaxCallDepth,
		Logger:       slog.Default(),
	}
}

// Notify sends a message to the output sink.
func (it *Interpreter) Notify(msg string) {
	if it.OnOutput != nil {
		it.OnOutput(msg)
		return
	}
	out := it.Stdout
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintln(out, msg)
}

// Interpret runs stmts in order against the global scope.  The first
// uncaught failure stops execution, is reported through Notify and returned.
func (it *Interpreter) Interpret(stmts []Stmt) error {
	it.depth = 0
	for _, stmt := range stmts {
		_, sig, err := it.Exec(stmt, it.Globals)
		if err == nil && sig != SignalNone {
			err = escapedSignal(stmt, sig)
		}
		if err != nil {
			it.Notify("[RUNTIME ERROR] " + err.Error())
			return err
		}
	}
	return nil
}

func escapedSignal(node Node, sig Signal) error {
	where := "a loop"
	if sig == SignalReturn {
		where = "a function"
	}
	return failf(node, ErrSignalEscape, "'%s' outside of %s", sig, where)
}

// Invoke calls fn with args, checking that it is callable, that the argument
// count matches and that the call depth stays bounded.  Natives use this to
// call back into user functions.
func (it *Interpreter) Invoke(fn Value, args []Value) (Value, error) {
	if fn.Type != FunctionType {
		return Null, fmt.Errorf("%w: can only call functions, got %s", ErrNotCallable, fn.Type)
	}
	callee := fn.Callable()
	if callee.Arity() != len(args) {
		return Null, fmt.Errorf("%w: %s expects %d arguments, got %d", ErrArity, callee.Name(), callee.Arity(), len(args))
	}
	if it.MaxCallDepth > 0 && it.depth >= it.MaxCallDepth {
		return Null, fmt.Errorf("%w: %d nested calls while calling %s", ErrCallDepth, it.depth, callee.Name())
	}
	it.depth++
	defer func() { it.depth-- }()

	result, err := callee.Call(it, args)
	if err != nil {
		var rtErr *RuntimeError
		if _, native := callee.(*NativeFunc); native && !errors.As(err, &rtErr) {
			err = fmt.Errorf("%w in %s: %w", ErrNative, callee.Name(), err)
		}
		return Null, err
	}
	return result, nil
}

// callBody runs a function body in a fresh child of closure with params bound.
func (it *Interpreter) callBody(name string, params []string, body []Stmt, closure *Scope, args []Value) (Value, error) {
	result, sig, err := it.ExecBlock(body, bindParams(params, closure, args))
	if err != nil {
		return Null, err
	}
	switch sig {
	case SignalReturn:
		return result, nil
	case SignalBreak, SignalContinue:
		return Null, fmt.Errorf("%w: '%s' outside of a loop in %s", ErrSignalEscape, sig, name)
	}
	return Null, nil
}

func (it *Interpreter) callExpr(expr Expr, scope *Scope) (Value, error) {
	return it.Eval(expr, scope)
}
