package runtime

// Eval evaluates an expression in scope.
func (it *Interpreter) Eval(expr Expr, scope *Scope) (Value, error) {
	switch n := expr.(type) {
	case *LiteralExpr:
		v, err := ToValue(n.Value)
		return v, atNode(n, err)
	case *VariableExpr:
		if v, ok := scope.Get(n.Name); ok {
			return v, nil
		}
		return Null, failf(n, ErrUndefined, "'%s'", n.Name)
	case *AssignExpr:
		v, err := it.Eval(n.Value, scope)
		if err != nil {
			return Null, err
		}
		if !scope.Assign(n.Name, v) {
			return Null, failf(n, ErrUndefined, "cannot assign to '%s'", n.Name)
		}
		return v, nil
	case *GroupingExpr:
		return it.Eval(n.Inner, scope)
	case *UnaryExpr:
		right, err := it.Eval(n.Right, scope)
		if err != nil {
			return Null, err
		}
		return unaryOp(n, right)
	case *BinaryExpr:
		left, err := it.Eval(n.Left, scope)
		if err != nil {
			return Null, err
		}
		right, err := it.Eval(n.Right, scope)
		if err != nil {
			return Null, err
		}
		return binaryOp(n, left, right)
	case *LogicalExpr:
		left, err := it.Eval(n.Left, scope)
		if err != nil {
			return Null, err
		}
		if n.Operator == "||" && left.Truthy() || n.Operator == "&&" && !left.Truthy() {
			return left, nil
		}
		return it.Eval(n.Right, scope)
	case *CallExpr:
		return it.evalCall(n, scope)
	case *LambdaExpr:
		return FuncValue(&Lambda{Decl: n, Closure: scope}), nil
	case *ListExpr:
		items := make([]Value, len(n.Elements))
		for i, e := range n.Elements {
			v, err := it.Eval(e, scope)
			if err != nil {
				return Null, err
			}
			items[i] = v
		}
		return ListOf(items...), nil
	case *DictExpr:
		return it.evalDict(n, scope)
	case *GetExpr:
		return it.evalGet(n, scope)
	case *SetExpr:
		return it.evalSet(n, scope)
	case *IndexExpr:
		return it.evalIndex(n, scope)
	case *IndexSetExpr:
		return it.evalIndexSet(n, scope)
	case *IsKeyExpr:
		return it.evalIsKey(n, scope)
	}
	return Null, failf(expr, ErrNotImplemented, "%T", expr)
}

func (it *Interpreter) evalCall(n *CallExpr, scope *Scope) (Value, error) {
	callee, err := it.Eval(n.Callee, scope)
	if err != nil {
		return Null, err
	}
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		if args[i], err = it.Eval(a, scope); err != nil {
			return Null, err
		}
	}
	result, err := it.Invoke(callee, args)
	return result, atNode(n, err)
}

func (it *Interpreter) evalDict(n *DictExpr, scope *Scope) (Value, error) {
	d := NewDict()
	for i := range n.Keys {
		key, err := it.Eval(n.Keys[i], scope)
		if err != nil {
			return Null, err
		}
		if key.Type != StringType {
			return Null, failf(n.Keys[i], ErrTypeMismatch, "dict keys must be strings, got %s", key.Type)
		}
		v, err := it.Eval(n.Values[i], scope)
		if err != nil {
			return Null, err
		}
		d.Set(key.Str(), v)
	}
	return DictValue(d), nil
}

func (it *Interpreter) evalGet(n *GetExpr, scope *Scope) (Value, error) {
	obj, err := it.Eval(n.Object, scope)
	if err != nil {
		return Null, err
	}
	if obj.Type != DictType {
		return Null, failf(n, ErrTypeMismatch, "cannot read field '%s' of %s", n.Name, obj.Type)
	}
	v, ok := obj.Dict().Get(n.Name)
	if !ok {
		return Null, failf(n, ErrKeyNotFound, "field '%s'", n.Name)
	}
	return v, nil
}

func (it *Interpreter) evalSet(n *SetExpr, scope *Scope) (Value, error) {
	obj, err := it.Eval(n.Object, scope)
	if err != nil {
		return Null, err
	}
	if obj.Type != DictType {
		return Null, failf(n, ErrTypeMismatch, "cannot set field '%s' of %s", n.Name, obj.Type)
	}
	v, err := it.Eval(n.Value, scope)
	if err != nil {
		return Null, err
	}
	obj.Dict().Set(n.Name, v)
	return v, nil
}

func (it *Interpreter) evalIndex(n *IndexExpr, scope *Scope) (Value, error) {
	obj, err := it.Eval(n.Object, scope)
	if err != nil {
		return Null, err
	}
	start, err := it.Eval(n.Start, scope)
	if err != nil {
		return Null, err
	}
	if !n.IsSlice() {
		return indexOp(n, obj, start)
	}
	end, err := it.Eval(n.End, scope)
	if err != nil {
		return Null, err
	}
	return sliceOp(n, obj, start, end)
}

func (it *Interpreter) evalIndexSet(n *IndexSetExpr, scope *Scope) (Value, error) {
	obj, err := it.Eval(n.Object, scope)
	if err != nil {
		return Null, err
	}
	index, err := it.Eval(n.Index, scope)
	if err != nil {
		return Null, err
	}
	v, err := it.Eval(n.Value, scope)
	if err != nil {
		return Null, err
	}
	return v, indexSetOp(n, obj, index, v)
}

func (it *Interpreter) evalIsKey(n *IsKeyExpr, scope *Scope) (Value, error) {
	obj, err := it.Eval(n.Object, scope)
	if err != nil {
		return Null, err
	}
	key, err := it.Eval(n.Key, scope)
	if err != nil {
		return Null, err
	}
	if obj.Type != DictType {
		return Null, failf(n, ErrTypeMismatch, "is_key expects a dict, got %s", obj.Type)
	}
	if key.Type != StringType {
		return Null, failf(n, ErrTypeMismatch, "is_key expects a string key, got %s", key.Type)
	}
	return BoolValue(obj.Dict().Has(key.Str())), nil
}
