package runtime

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/panyam/wea/decl"
)

type ValueType int

const (
	NullType ValueType = iota
	NumberType
	StringType
	BoolType
	ListType
	DictType
	FunctionType
)

func (t ValueType) String() string {
	switch t {
	case NullType:
		return "null"
	case NumberType:
		return "number"
	case StringType:
		return "string"
	case BoolType:
		return "bool"
	case ListType:
		return "list"
	case DictType:
		return "dict"
	case FunctionType:
		return "function"
	}
	return fmt.Sprintf("ValueType(%d)", int(t))
}

// Value is the tagged union every expression evaluates to.  Lists and dicts
// are held by pointer so copies of a Value alias the same storage.
type Value struct {
	Type  ValueType
	Value any
}

// List is a mutable, ordered sequence shared by every Value that holds it.
type List struct {
	Items []Value
}

// Dict maps string keys to values.  Key order is kept so iteration and
// display are deterministic.
type Dict struct {
	entries map[string]Value
	keys    []string
}

func NewDict() *Dict {
	return &Dict{entries: map[string]Value{}}
}

func (d *Dict) Len() int { return len(d.keys) }

func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.entries[key]
	return v, ok
}

func (d *Dict) Has(key string) bool {
	_, ok := d.entries[key]
	return ok
}

// Set inserts or overwrites key.  New keys go to the end of the order.
func (d *Dict) Set(key string, v Value) {
	if _, ok := d.entries[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.entries[key] = v
}

func (d *Dict) Delete(key string) {
	if _, ok := d.entries[key]; !ok {
		return
	}
	delete(d.entries, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Keys returns a copy of the keys in insertion order.
func (d *Dict) Keys() []string {
	return append([]string(nil), d.keys...)
}

var Null = Value{Type: NullType}

func NumberValue(f float64) Value { return Value{Type: NumberType, Value: f} }
func StringValue(s string) Value { return Value{Type: StringType, Value: s} }
func BoolValue(b bool) Value { return Value{Type: BoolType, Value: b} }
func ListValue(l *List) Value { return Value{Type: ListType, Value: l} }
func DictValue(d *Dict) Value { return Value{Type: DictType, Value: d} }
func FuncValue(c Callable) Value { return Value{Type: FunctionType, Value: c} }
func ListOf(items ...Value) Value { return ListValue(&List{Items: items}) }
func NumbersOf(nums ...float64) Value {
	items := make([]Value, len(nums))
	for i, n := range nums {
		items[i] = NumberValue(n)
	}
	return ListOf(items...)
}

func (v Value) IsNull() bool { return v.Type == NullType }

func (v Value) Number() float64 {
	f, _ := v.Value.(float64)
	return f
}

func (v Value) Str() string {
	s, _ := v.Value.(string)
	return s
}

func (v Value) Bool() bool {
	b, _ := v.Value.(bool)
	return b
}

func (v Value) List() *List {
	l, _ := v.Value.(*List)
	return l
}

func (v Value) Dict() *Dict {
	d, _ := v.Value.(*Dict)
	return d
}

func (v Value) Callable() Callable {
	c, _ := v.Value.(Callable)
	return c
}

// Truthy: bos is false, booleans are themselves, numbers are false only when
// zero, everything else is true.
func (v Value) Truthy() bool {
	switch v.Type {
	case NullType:
		return false
	case BoolType:
		return v.Bool()
	case NumberType:
		return v.Number() != 0
	}
	return true
}

// Equal compares tag then payload.  Lists, dicts and functions compare by
// identity.
func Equal(a, b Value) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case NumberType:
		return a.Number() == b.Number()
	case StringType:
		return a.Str() == b.Str()
	case BoolType:
		return a.Bool() == b.Bool()
	case ListType:
		return a.List() == b.List()
	case DictType:
		return a.Dict() == b.Dict()
	case FunctionType:
		return a.Value == b.Value
	}
	return false
}

// String is the display form used by wea_emit and string concatenation.
func (v Value) String() string {
	return v.display(false, nil)
}

// display renders v.  open holds the containers being rendered further up,
// so a container that holds itself prints as [...] or {...}.
func (v Value) display(nested bool, open map[any]bool) string {
	switch v.Type {
	case NullType:
		return "bos"
	case BoolType:
		if v.Bool() {
			return "dogru"
		}
		return "yanlis"
	case NumberType:
		return formatNumber(v.Number())
	case StringType:
		if nested {
			return strconv.Quote(v.Str())
		}
		return v.Str()
	case ListType:
		l := v.List()
		if open[l] {
			return "[...]"
		}
		open = enter(open, l)
		defer delete(open, l)
		parts := make([]string, len(l.Items))
		for i, item := range l.Items {
			parts[i] = item.display(true, open)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case DictType:
		d := v.Dict()
		if open[d] {
			return "{...}"
		}
		open = enter(open, d)
		defer delete(open, d)
		parts := make([]string, 0, d.Len())
		for _, k := range d.keys {
			parts = append(parts, strconv.Quote(k)+": "+d.entries[k].display(true, open))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case FunctionType:
		return v.Callable().String()
	}
	return fmt.Sprintf("%v", v.Value)
}

func enter(open map[any]bool, container any) map[any]bool {
	if open == nil {
		open = map[any]bool{}
	}
	open[container] = true
	return open
}

func formatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	}
	return decl.FormatNumber(f)
}

// ToValue classifies a host value.  Every Go numeric kind becomes a number.
func ToValue(in any) (Value, error) {
	switch v := in.(type) {
	case nil:
		return Null, nil
	case Value:
		return v, nil
	case Callable:
		return FuncValue(v), nil
	case *List:
		return ListValue(v), nil
	case *Dict:
		return DictValue(v), nil
	case bool:
		return BoolValue(v), nil
	case string:
		return StringValue(v), nil
	case []Value:
		return ListOf(v...), nil
	case []any:
		items := make([]Value, len(v))
		for i, item := range v {
			iv, err := ToValue(item)
			if err != nil {
				return Null, err
			}
			items[i] = iv
		}
		return ListOf(items...), nil
	case map[string]any:
		d := NewDict()
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			iv, err := ToValue(v[k])
			if err != nil {
				return Null, err
			}
			d.Set(k, iv)
		}
		return DictValue(d), nil
	}

	rv := reflect.ValueOf(in)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NumberValue(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return NumberValue(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return NumberValue(rv.Float()), nil
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return ToValue(items)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return ToValue(m)
	}
	return Null, fmt.Errorf("%w: cannot convert %T to a value", ErrTypeMismatch, in)
}

// FromValue converts a value back to plain Go data: float64, string, bool,
// nil, []any and map[string]any.  Functions and containers that hold
// themselves cannot be converted.
func FromValue(v Value) (any, error) {
	return fromValue(v, nil)
}

func fromValue(v Value, open map[any]bool) (any, error) {
	switch v.Type {
	case NullType:
		return nil, nil
	case NumberType:
		return v.Number(), nil
	case StringType:
		return v.Str(), nil
	case BoolType:
		return v.Bool(), nil
	case ListType:
		l := v.List()
		if open[l] {
			return nil, fmt.Errorf("%w: list contains itself", ErrTypeMismatch)
		}
		open = enter(open, l)
		defer delete(open, l)
		out := make([]any, len(l.Items))
		for i, item := range l.Items {
			conv, err := fromValue(item, open)
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}
		return out, nil
	case DictType:
		d := v.Dict()
		if open[d] {
			return nil, fmt.Errorf("%w: dict contains itself", ErrTypeMismatch)
		}
		open = enter(open, d)
		defer delete(open, d)
		out := make(map[string]any, d.Len())
		for _, k := range d.keys {
			conv, err := fromValue(d.entries[k], open)
			if err != nil {
				return nil, err
			}
			out[k] = conv
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: cannot convert %s to data", ErrTypeMismatch, v.Type)
}
