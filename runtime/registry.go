package runtime

import (
	"fmt"
	"maps"
	"slices"
)

// Library is a named group of native functions.
type Library interface {
	Name() string
	Functions() map[string]*NativeFunc
}

type library struct {
	name  string
	funcs map[string]*NativeFunc
}

func (l *library) Name() string                      { return l.name }
func (l *library) Functions() map[string]*NativeFunc { return l.funcs }

// NewLibrary groups natives under name, keyed by their own names.
func NewLibrary(name string, fns ...*NativeFunc) Library {
	funcs := make(map[string]*NativeFunc, len(fns))
	for _, fn := range fns {
		funcs[fn.FuncName] = fn
	}
	return &library{name: name, funcs: funcs}
}

// RegisterLibrary binds the library's functions as globals, in name order.
// A name that is already registered keeps its first owner.
func (r *Runtime) RegisterLibrary(lib Library) {
	funcs := lib.Functions()
	added := 0
	for _, name := range slices.Sorted(maps.Keys(funcs)) {
		if owner, taken := r.owners[name]; taken {
			r.Logger.Warn("native already registered", "name", name, "library", lib.Name(), "owner", owner)
			continue
		}
		fn := funcs[name]
		if fn.FuncName == "" {
			fn.FuncName = name
		}
		r.owners[name] = lib.Name()
		r.Globals().Define(name, FuncValue(fn))
		added++
	}
	r.Logger.Debug("registered library", "library", lib.Name(), "functions", added)
}

// Owner reports which library registered the native called name.
func (r *Runtime) Owner(name string) (string, bool) {
	owner, ok := r.owners[name]
	return owner, ok
}

// Helpers for natives checking their arguments.  Positions are 0 based.

func argError(fn string, pos int, want string, got Value) error {
	return fmt.Errorf("%w: %s expects a %s for argument %d, got %s", ErrTypeMismatch, fn, want, pos+1, got.Type)
}

func ExpectNumber(fn string, args []Value, pos int) (float64, error) {
	if args[pos].Type != NumberType {
		return 0, argError(fn, pos, "number", args[pos])
	}
	return args[pos].Number(), nil
}

func ExpectString(fn string, args []Value, pos int) (string, error) {
	if args[pos].Type != StringType {
		return "", argError(fn, pos, "string", args[pos])
	}
	return args[pos].Str(), nil
}

func ExpectList(fn string, args []Value, pos int) (*List, error) {
	if args[pos].Type != ListType {
		return nil, argError(fn, pos, "list", args[pos])
	}
	return args[pos].List(), nil
}

func ExpectDict(fn string, args []Value, pos int) (*Dict, error) {
	if args[pos].Type != DictType {
		return nil, argError(fn, pos, "dict", args[pos])
	}
	return args[pos].Dict(), nil
}

func ExpectFunction(fn string, args []Value, pos int) (Value, error) {
	if args[pos].Type != FunctionType {
		return Null, argError(fn, pos, "function", args[pos])
	}
	return args[pos], nil
}
