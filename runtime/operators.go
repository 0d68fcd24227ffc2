package runtime

import (
	"math"
)

func unaryOp(n *UnaryExpr, right Value) (Value, error) {
	switch n.Operator {
	case "!":
		return BoolValue(!right.Truthy()), nil
	case "-":
		if right.Type != NumberType {
			return Null, failf(n, ErrTypeMismatch, "operator '-' expects a number, got %s", right.Type)
		}
		return NumberValue(-right.Number()), nil
	}
	return Null, failf(n, ErrNotImplemented, "unary operator '%s'", n.Operator)
}

func binaryOp(n *BinaryExpr, left, right Value) (Value, error) {
	op := n.Operator
	switch op {
	case "==":
		return BoolValue(Equal(left, right)), nil
	case "!=":
		return BoolValue(!Equal(left, right)), nil
	case "+":
		return addOp(n, left, right)
	case "-":
		if left.Type == ListType && right.Type == ListType {
			return zipNumbers(n, left, right, func(a, b float64) float64 { return a - b })
		}
	case "*":
		return mulOp(n, left, right)
	}

	if left.Type != NumberType || right.Type != NumberType {
		return Null, failf(n, ErrTypeMismatch, "operator '%s' expects numbers, got %s and %s", op, left.Type, right.Type)
	}
	a, b := left.Number(), right.Number()
	switch op {
	case "-":
		return NumberValue(a - b), nil
	case "/", "%":
		if b == 0 {
			return Null, failf(n, ErrDivisionByZero, "operator '%s'", op)
		}
		if op == "/" {
			return NumberValue(a / b), nil
		}
		return NumberValue(math.Mod(a, b)), nil
	case "<":
		return BoolValue(a < b), nil
	case "<=":
		return BoolValue(a <= b), nil
	case ">":
		return BoolValue(a > b), nil
	case ">=":
		return BoolValue(a >= b), nil
	}
	return Null, failf(n, ErrNotImplemented, "binary operator '%s'", op)
}

func addOp(n *BinaryExpr, left, right Value) (Value, error) {
	switch {
	case left.Type == NumberType && right.Type == NumberType:
		return NumberValue(left.Number() + right.Number()), nil
	case left.Type == StringType || right.Type == StringType:
		return StringValue(left.String() + right.String()), nil
	case left.Type == ListType && right.Type == ListType:
		return zipNumbers(n, left, right, func(a, b float64) float64 { return a + b })
	}
	return Null, failf(n, ErrTypeMismatch, "operator '+' cannot combine %s and %s", left.Type, right.Type)
}

func mulOp(n *BinaryExpr, left, right Value) (Value, error) {
	switch {
	case left.Type == NumberType && right.Type == NumberType:
		return NumberValue(left.Number() * right.Number()), nil
	case left.Type == NumberType && right.Type == ListType:
		return scaleList(n, right, left.Number())
	case left.Type == ListType && right.Type == NumberType:
		return scaleList(n, left, right.Number())
	case left.Type == ListType && right.Type == ListType:
		products, err := zipNumbers(n, left, right, func(a, b float64) float64 { return a * b })
		if err != nil {
			return Null, err
		}
		sum := 0.0
		for _, p := range products.List().Items {
			sum += p.Number()
		}
		return NumberValue(sum), nil
	}
	return Null, failf(n, ErrTypeMismatch, "operator '*' cannot combine %s and %s", left.Type, right.Type)
}

// numbersIn returns the elements of a list that must hold only numbers.
func numbersIn(n *BinaryExpr, l Value) ([]float64, error) {
	items := l.List().Items
	out := make([]float64, len(items))
	for i, item := range items {
		if item.Type != NumberType {
			return nil, failf(n, ErrTypeMismatch, "operator '%s' expects numeric list elements, got %s at index %d", n.Operator, item.Type, i)
		}
		out[i] = item.Number()
	}
	return out, nil
}

func zipNumbers(n *BinaryExpr, left, right Value, f func(a, b float64) float64) (Value, error) {
	a, err := numbersIn(n, left)
	if err != nil {
		return Null, err
	}
	b, err := numbersIn(n, right)
	if err != nil {
		return Null, err
	}
	if len(a) != len(b) {
		return Null, failf(n, ErrLengthMismatch, "operator '%s' on lists of length %d and %d", n.Operator, len(a), len(b))
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = f(a[i], b[i])
	}
	return NumbersOf(out...), nil
}

func scaleList(n *BinaryExpr, l Value, k float64) (Value, error) {
	nums, err := numbersIn(n, l)
	if err != nil {
		return Null, err
	}
	for i := range nums {
		nums[i] *= k
	}
	return NumbersOf(nums...), nil
}

// toIndex truncates a numeric index towards zero.
func toIndex(node Node, v Value) (int, error) {
	if v.Type != NumberType || math.IsNaN(v.Number()) {
		return 0, failf(node, ErrTypeMismatch, "index must be a number, got %s", v.Type)
	}
	f := math.Trunc(v.Number())
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, failf(node, ErrIndexOutOfRange, "index %s", formatNumber(f))
	}
	return int(f), nil
}

func indexOp(n *IndexExpr, obj, index Value) (Value, error) {
	switch obj.Type {
	case ListType:
		i, err := toIndex(n, index)
		if err != nil {
			return Null, err
		}
		items := obj.List().Items
		if i < 0 || i >= len(items) {
			return Null, failf(n, ErrIndexOutOfRange, "index %d for list of length %d", i, len(items))
		}
		return items[i], nil
	case StringType:
		i, err := toIndex(n, index)
		if err != nil {
			return Null, err
		}
		chars := []rune(obj.Str())
		if i < 0 || i >= len(chars) {
			return Null, failf(n, ErrIndexOutOfRange, "index %d for string of length %d", i, len(chars))
		}
		return StringValue(string(chars[i])), nil
	case DictType:
		if index.Type != StringType {
			return Null, failf(n, ErrTypeMismatch, "dict index must be a string, got %s", index.Type)
		}
		v, ok := obj.Dict().Get(index.Str())
		if !ok {
			return Null, failf(n, ErrKeyNotFound, "key %q", index.Str())
		}
		return v, nil
	}
	return Null, failf(n, ErrTypeMismatch, "cannot index %s", obj.Type)
}

// clampBound converts a slice bound, clamping it into [0, size].
func clampBound(node Node, v Value, size int) (int, error) {
	if v.Type != NumberType || math.IsNaN(v.Number()) {
		return 0, failf(node, ErrTypeMismatch, "slice bound must be a number, got %s", v.Type)
	}
	f := math.Trunc(v.Number())
	switch {
	case f < 0:
		return 0, nil
	case f > float64(size):
		return size, nil
	}
	return int(f), nil
}

func sliceOp(n *IndexExpr, obj, start, end Value) (Value, error) {
	var size int
	switch obj.Type {
	case ListType:
		size = len(obj.List().Items)
	case StringType:
		size = len([]rune(obj.Str()))
	default:
		return Null, failf(n, ErrTypeMismatch, "cannot slice %s", obj.Type)
	}
	s, err := clampBound(n, start, size)
	if err != nil {
		return Null, err
	}
	e, err := clampBound(n, end, size)
	if err != nil {
		return Null, err
	}
	if s >= e {
		s, e = 0, 0
	}
	if obj.Type == StringType {
		return StringValue(string([]rune(obj.Str())[s:e])), nil
	}
	items := make([]Value, e-s)
	copy(items, obj.List().Items[s:e])
	return ListOf(items...), nil
}

func indexSetOp(n *IndexSetExpr, obj, index, v Value) error {
	switch obj.Type {
	case ListType:
		i, err := toIndex(n, index)
		if err != nil {
			return err
		}
		items := obj.List().Items
		if i < 0 || i >= len(items) {
			return failf(n, ErrIndexOutOfRange, "index %d for list of length %d", i, len(items))
		}
		items[i] = v
		return nil
	case DictType:
		if index.Type != StringType {
			return failf(n, ErrTypeMismatch, "dict index must be a string, got %s", index.Type)
		}
		obj.Dict().Set(index.Str(), v)
		return nil
	}
	return failf(n, ErrTypeMismatch, "cannot assign an element of %s", obj.Type)
}
