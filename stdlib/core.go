package stdlib

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/panyam/wea/runtime"
)

// maxRange bounds the list range() may build.
const maxRange = 1 << 24

func Core() Library {
	toStr := func(it *Interpreter, args []Value) (Value, error) {
		return StringValue(args[0].String()), nil
	}
	return NewLibrary("core",
		Native("len", 1, coreLen),
		Native("typeof", 1, func(it *Interpreter, args []Value) (Value, error) {
			return StringValue(args[0].Type.String()), nil
		}),
		Native("to_str", 1, toStr),
		Native("wea_to_str", 1, toStr),
		Native("to_number", 1, toNumber),
		Native("to_int", 1, func(it *Interpreter, args []Value) (Value, error) {
			n, err := toNumber(it, args)
			if err != nil {
				return Null, err
			}
			return NumberValue(math.Trunc(n.Number())), nil
		}),
		Native("range", 2, coreRange),
		Native("keys", 1, func(it *Interpreter, args []Value) (Value, error) {
			d, err := ExpectDict("keys", args, 0)
			if err != nil {
				return Null, err
			}
			items := []Value{}
			for _, k := range d.Keys() {
				items = append(items, StringValue(k))
			}
			return ListOf(items...), nil
		}),
		Native("values", 1, func(it *Interpreter, args []Value) (Value, error) {
			d, err := ExpectDict("values", args, 0)
			if err != nil {
				return Null, err
			}
			items := []Value{}
			for _, k := range d.Keys() {
				v, _ := d.Get(k)
				items = append(items, v)
			}
			return ListOf(items...), nil
		}),
		Native("clock", 0, func(it *Interpreter, args []Value) (Value, error) {
			return NumberValue(float64(time.Now().UnixNano()) / 1e9), nil
		}),
		Native("uuid", 0, func(it *Interpreter, args []Value) (Value, error) {
			return StringValue(uuid.NewString()), nil
		}),
	)
}

func coreLen(it *Interpreter, args []Value) (Value, error) {
	switch v := args[0]; v.Type {
	case runtime.ListType:
		return NumberValue(float64(len(v.List().Items))), nil
	case runtime.StringType:
		return NumberValue(float64(len([]rune(v.Str())))), nil
	case runtime.DictType:
		return NumberValue(float64(v.Dict().Len())), nil
	}
	return Null, fmt.Errorf("%w: len expects a list, string or dict, got %s", runtime.ErrTypeMismatch, args[0].Type)
}

func toNumber(it *Interpreter, args []Value) (Value, error) {
	switch v := args[0]; v.Type {
	case runtime.NumberType:
		return v, nil
	case runtime.BoolType:
		if v.Bool() {
			return NumberValue(1), nil
		}
		return NumberValue(0), nil
	case runtime.StringType:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str()), 64)
		if err != nil {
			return Null, fmt.Errorf("%w: to_number cannot read %q", ErrParse, v.Str())
		}
		return NumberValue(f), nil
	}
	return Null, fmt.Errorf("%w: to_number cannot convert %s", runtime.ErrTypeMismatch, args[0].Type)
}

// coreRange builds [a, a+1, ... ) up to but excluding b.
func coreRange(it *Interpreter, args []Value) (Value, error) {
	a, err := ExpectNumber("range", args, 0)
	if err != nil {
		return Null, err
	}
	b, err := ExpectNumber("range", args, 1)
	if err != nil {
		return Null, err
	}
	span := math.Ceil(b - a)
	if math.IsNaN(span) || span > maxRange {
		return Null, fmt.Errorf("%w: range from %v to %v is too large", ErrDomain, a, b)
	}
	// Count steps up front; past 2^53 a float x++ no longer moves x
	n := max(int(span), 0)
	nums := make([]float64, n)
	for i := range nums {
		nums[i] = a + float64(i)
	}
	return NumbersOf(nums...), nil
}
