package runtime

import (
	"slices"

	gfn "github.com/panyam/goutils/fn"
)

// Exec runs one statement.  A non-None signal carries break, continue or
// return (with its value in result) up to the construct that consumes it.
func (it *Interpreter) Exec(stmt Stmt, scope *Scope) (result Value, sig Signal, err error) {
	switch n := stmt.(type) {
	case *ExprStmt:
		_, err = it.Eval(n.Expression, scope)
	case *EmitStmt:
		var v Value
		if v, err = it.Eval(n.Value, scope); err == nil {
			it.Notify(v.String())
		}
	case *VarDeclStmt:
		v := Null
		if n.Init != nil {
			if v, err = it.Eval(n.Init, scope); err != nil {
				return
			}
		}
		scope.Define(n.Name, v)
	case *BlockStmt:
		// Blocks get their own frame so declarations inside do not leak out
		return it.ExecBlock(n.Statements, NewScope(scope))
	case *FunctionDecl:
		scope.Define(n.Name, FuncValue(&Function{Decl: n, Closure: scope}))
	case *IfStmt:
		return it.execIf(n, scope)
	case *WhileStmt:
		return it.execWhile(n, scope)
	case *ForeachStmt:
		return it.execForeach(n, scope)
	case *TryStmt:
		return it.execTry(n, scope)
	case *ReturnStmt:
		result = Null
		if n.Value != nil {
			if result, err = it.Eval(n.Value, scope); err != nil {
				return
			}
		}
		sig = SignalReturn
	case *BreakStmt:
		sig = SignalBreak
	case *ContinueStmt:
		sig = SignalContinue
	default:
		err = failf(stmt, ErrNotImplemented, "%T", stmt)
	}
	return
}

// ExecBlock runs stmts in scope, stopping at the first error or signal.
func (it *Interpreter) ExecBlock(stmts []Stmt, scope *Scope) (Value, Signal, error) {
	for _, stmt := range stmts {
		result, sig, err := it.Exec(stmt, scope)
		if err != nil || sig != SignalNone {
			return result, sig, err
		}
	}
	return Null, SignalNone, nil
}

func (it *Interpreter) execIf(n *IfStmt, scope *Scope) (Value, Signal, error) {
	cond, err := it.Eval(n.Condition, scope)
	if err != nil {
		return Null, SignalNone, err
	}
	if cond.Truthy() {
		return it.Exec(n.Then, scope)
	}
	if n.Else != nil {
		return it.Exec(n.Else, scope)
	}
	return Null, SignalNone, nil
}

func (it *Interpreter) execWhile(n *WhileStmt, scope *Scope) (Value, Signal, error) {
	for {
		cond, err := it.Eval(n.Condition, scope)
		if err != nil {
			return Null, SignalNone, err
		}
		if !cond.Truthy() {
			return Null, SignalNone, nil
		}
		result, sig, err := it.Exec(n.Body, scope)
		if err != nil {
			return Null, SignalNone, err
		}
		switch sig {
		case SignalBreak:
			return Null, SignalNone, nil
		case SignalReturn:
			return result, sig, nil
		}
	}
}

// execForeach binds each element of a list, each key of a dict or each
// character of a string in a fresh frame per iteration.  Lists are
// snapshotted so the body may mutate them.
func (it *Interpreter) execForeach(n *ForeachStmt, scope *Scope) (Value, Signal, error) {
	iterable, err := it.Eval(n.Iterable, scope)
	if err != nil {
		return Null, SignalNone, err
	}
	var items []Value
	switch iterable.Type {
	case ListType:
		items = slices.Clone(iterable.List().Items)
	case DictType:
		items = gfn.Map(iterable.Dict().Keys(), StringValue)
	case StringType:
		for _, ch := range iterable.Str() {
			items = append(items, StringValue(string(ch)))
		}
	default:
		return Null, SignalNone, failf(n, ErrNotIterable, "foreach expects a list, dict or string, got %s", iterable.Type)
	}

	for _, item := range items {
		frame := NewScope(scope)
		frame.Define(n.VarName, item)
		result, sig, err := it.ExecBlock(n.Body.Statements, frame)
		if err != nil {
			return Null, SignalNone, err
		}
		switch sig {
		case SignalBreak:
			return Null, SignalNone, nil
		case SignalReturn:
			return result, sig, nil
		}
	}
	return Null, SignalNone, nil
}

// execTry runs the try block and, on failure, the catch block with the
// failure message bound to wea_error.  Signals pass through untouched.
func (it *Interpreter) execTry(n *TryStmt, scope *Scope) (Value, Signal, error) {
	result, sig, err := it.ExecBlock(n.Try.Statements, NewScope(scope))
	if err == nil {
		return result, sig, nil
	}
	it.Logger.Debug("wea_eman caught failure", "line", n.Pos(), "error", err)
	if n.Catch == nil {
		return Null, SignalNone, nil
	}
	frame := NewScope(scope)
	frame.Define("wea_error", StringValue(ErrorMessage(err)))
	return it.ExecBlock(n.Catch.Statements, frame)
}
