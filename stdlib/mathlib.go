package stdlib

import (
	"fmt"
	"math"
)

// unary lifts a float function into a one argument native.
func unary(name string, f func(float64) float64) *NativeFunc {
	return Native(name, 1, func(it *Interpreter, args []Value) (Value, error) {
		x, err := ExpectNumber(name, args, 0)
		if err != nil {
			return Null, err
		}
		return NumberValue(f(x)), nil
	})
}

func Math() Library {
	return NewLibrary("math",
		Native("sqrt", 1, func(it *Interpreter, args []Value) (Value, error) {
			x, err := ExpectNumber("sqrt", args, 0)
			if err != nil {
				return Null, err
			}
			if x < 0 {
				return Null, fmt.Errorf("%w: sqrt of negative number %s", ErrDomain, args[0])
			}
			return NumberValue(math.Sqrt(x)), nil
		}),
		Native("pow", 2, func(it *Interpreter, args []Value) (Value, error) {
			x, err := ExpectNumber("pow", args, 0)
			if err != nil {
				return Null, err
			}
			y, err := ExpectNumber("pow", args, 1)
			if err != nil {
				return Null, err
			}
			return NumberValue(math.Pow(x, y)), nil
		}),
		Native("pi", 0, func(it *Interpreter, args []Value) (Value, error) {
			return NumberValue(math.Pi), nil
		}),
		unary("abs", math.Abs),
		unary("floor", math.Floor),
		unary("ceil", math.Ceil),
		unary("round", math.Round),
		unary("sin", math.Sin),
		unary("cos", math.Cos),
	)
}
