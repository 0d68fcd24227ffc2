package stdlib

import (
	"fmt"
	"math"
	"slices"
	"strings"

	gfn "github.com/panyam/goutils/fn"
	"github.com/panyam/wea/runtime"
)

func Lists() Library {
	return NewLibrary("list",
		Native("push", 2, func(it *Interpreter, args []Value) (Value, error) {
			l, err := ExpectList("push", args, 0)
			if err != nil {
				return Null, err
			}
			l.Items = append(l.Items, args[1])
			return args[0], nil
		}),
		Native("pop", 1, func(it *Interpreter, args []Value) (Value, error) {
			l, err := ExpectList("pop", args, 0)
			if err != nil {
				return Null, err
			}
			if len(l.Items) == 0 {
				return Null, fmt.Errorf("%w: pop from empty list", ErrEmpty)
			}
			last := l.Items[len(l.Items)-1]
			l.Items = l.Items[:len(l.Items)-1]
			return last, nil
		}),
		Native("map", 2, listMap),
		Native("filter", 2, listFilter),
		Native("reduce", 3, listReduce),
		Native("sort", 1, listSort),
		Native("reverse", 1, func(it *Interpreter, args []Value) (Value, error) {
			l, err := ExpectList("reverse", args, 0)
			if err != nil {
				return Null, err
			}
			items := slices.Clone(l.Items)
			slices.Reverse(items)
			return ListOf(items...), nil
		}),
		Native("contains", 2, func(it *Interpreter, args []Value) (Value, error) {
			if args[0].Type == runtime.StringType && args[1].Type == runtime.StringType {
				return BoolValue(strings.Contains(args[0].Str(), args[1].Str())), nil
			}
			l, err := ExpectList("contains", args, 0)
			if err != nil {
				return Null, err
			}
			return BoolValue(slices.ContainsFunc(l.Items, func(v Value) bool { return Equal(v, args[1]) })), nil
		}),
		Native("join", 2, func(it *Interpreter, args []Value) (Value, error) {
			l, err := ExpectList("join", args, 0)
			if err != nil {
				return Null, err
			}
			sep, err := ExpectString("join", args, 1)
			if err != nil {
				return Null, err
			}
			return StringValue(strings.Join(gfn.Map(l.Items, Value.String), sep)), nil
		}),
		aggregate("sum", false, func(nums []float64) float64 {
			total := 0.0
			for _, n := range nums {
				total += n
			}
			return total
		}),
		aggregate("avg", true, mean),
		aggregate("max", true, func(nums []float64) float64 { return slices.Max(nums) }),
		aggregate("min", true, func(nums []float64) float64 { return slices.Min(nums) }),
		aggregate("std_dev", true, func(nums []float64) float64 {
			m := mean(nums)
			variance := 0.0
			for _, n := range nums {
				variance += (n - m) * (n - m)
			}
			return math.Sqrt(variance / float64(len(nums)))
		}),
	)
}

func mean(nums []float64) float64 {
	total := 0.0
	for _, n := range nums {
		total += n
	}
	return total / float64(len(nums))
}

// numbers extracts the elements of a list argument that must all be numbers.
func numbers(name string, args []Value, pos int) ([]float64, error) {
	l, err := ExpectList(name, args, pos)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(l.Items))
	for i, item := range l.Items {
		if item.Type != runtime.NumberType {
			return nil, fmt.Errorf("%w: %s expects numbers, got %s at index %d", runtime.ErrTypeMismatch, name, item.Type, i)
		}
		out[i] = item.Number()
	}
	return out, nil
}

func aggregate(name string, needsItems bool, f func([]float64) float64) *NativeFunc {
	return Native(name, 1, func(it *Interpreter, args []Value) (Value, error) {
		nums, err := numbers(name, args, 0)
		if err != nil {
			return Null, err
		}
		if needsItems && len(nums) == 0 {
			return Null, fmt.Errorf("%w: %s of an empty list", ErrEmpty, name)
		}
		return NumberValue(f(nums)), nil
	})
}

func listMap(it *Interpreter, args []Value) (Value, error) {
	l, err := ExpectList("map", args, 0)
	if err != nil {
		return Null, err
	}
	out := make([]Value, 0, len(l.Items))
	for _, item := range slices.Clone(l.Items) {
		v, err := it.Invoke(args[1], []Value{item})
		if err != nil {
			return Null, err
		}
		out = append(out, v)
	}
	return ListOf(out...), nil
}

func listFilter(it *Interpreter, args []Value) (Value, error) {
	l, err := ExpectList("filter", args, 0)
	if err != nil {
		return Null, err
	}
	out := []Value{}
	for _, item := range slices.Clone(l.Items) {
		keep, err := it.Invoke(args[1], []Value{item})
		if err != nil {
			return Null, err
		}
		if keep.Truthy() {
			out = append(out, item)
		}
	}
	return ListOf(out...), nil
}

func listReduce(it *Interpreter, args []Value) (Value, error) {
	l, err := ExpectList("reduce", args, 0)
	if err != nil {
		return Null, err
	}
	acc := args[2]
	for _, item := range slices.Clone(l.Items) {
		if acc, err = it.Invoke(args[1], []Value{acc, item}); err != nil {
			return Null, err
		}
	}
	return acc, nil
}

// listSort returns a sorted copy.  Elements must be all numbers or all strings.
func listSort(it *Interpreter, args []Value) (Value, error) {
	l, err := ExpectList("sort", args, 0)
	if err != nil {
		return Null, err
	}
	items := slices.Clone(l.Items)
	if len(items) == 0 {
		return ListOf(), nil
	}
	kind := items[0].Type
	for i, item := range items {
		if item.Type != kind || (kind != runtime.NumberType && kind != runtime.StringType) {
			return Null, fmt.Errorf("%w: sort expects all numbers or all strings, got %s at index %d", runtime.ErrTypeMismatch, item.Type, i)
		}
	}
	slices.SortStableFunc(items, func(a, b Value) int {
		if kind == runtime.StringType {
			return strings.Compare(a.Str(), b.Str())
		}
		switch {
		case a.Number() < b.Number():
			return -1
		case a.Number() > b.Number():
			return 1
		}
		return 0
	})
	return ListOf(items...), nil
}
