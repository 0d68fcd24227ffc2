package runtime

import (
	"fmt"
)

// Callable is anything a call expression can invoke.
type Callable interface {
	Name() string
	Arity() int
	Call(it *Interpreter, args []Value) (Value, error)
	String() string
}

// NativeFunc is a host function with a fixed arity.
type NativeFunc struct {
	FuncName string
	NumArgs  int
	Fn       func(it *Interpreter, args []Value) (Value, error)
}

// Native is shorthand for building a NativeFunc.
func Native(name string, arity int, fn func(it *Interpreter, args []Value) (Value, error)) *NativeFunc {
	return &NativeFunc{FuncName: name, NumArgs: arity, Fn: fn}
}

func (n *NativeFunc) Name() string   { return n.FuncName }
func (n *NativeFunc) Arity() int     { return n.NumArgs }
func (n *NativeFunc) String() string { return fmt.Sprintf("<native fn %s>", n.FuncName) }

func (n *NativeFunc) Call(it *Interpreter, args []Value) (Value, error) {
	return n.Fn(it, args)
}

// Function is a user defined wea_flow bound to the scope it was declared in.
type Function struct {
	Decl    *FunctionDecl
	Closure *Scope
}

func (f *Function) Name() string   { return f.Decl.Name }
func (f *Function) Arity() int     { return len(f.Decl.Params) }
func (f *Function) String() string { return fmt.Sprintf("<fn %s>", f.Decl.Name) }

func (f *Function) Call(it *Interpreter, args []Value) (Value, error) {
	return it.callBody(f.Decl.Name, f.Decl.Params, f.Decl.Body.Statements, f.Closure, args)
}

// Lambda is an anonymous function bound to the scope it was created in.
type Lambda struct {
	Decl    *LambdaExpr
	Closure *Scope
}

func (l *Lambda) Name() string   { return "lambda" }
func (l *Lambda) Arity() int     { return len(l.Decl.Params) }
func (l *Lambda) String() string { return "<lambda>" }

func (l *Lambda) Call(it *Interpreter, args []Value) (Value, error) {
	if l.Decl.Expr != nil {
		scope := bindParams(l.Decl.Params, l.Closure, args)
		return it.callExpr(l.Decl.Expr, scope)
	}
	return it.callBody("lambda", l.Decl.Params, l.Decl.Body.Statements, l.Closure, args)
}

func bindParams(params []string, closure *Scope, args []Value) *Scope {
	scope := NewScope(closure)
	for i, p := range params {
		scope.Define(p, args[i])
	}
	return scope
}
