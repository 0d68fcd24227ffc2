package runtime

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", Null, false},
		{"true", BoolValue(true), true},
		{"false", BoolValue(false), false},
		{"zero", NumberValue(0), false},
		{"nonzero", NumberValue(-2), true},
		{"empty string", StringValue(""), true},
		{"empty list", ListOf(), true},
		{"empty dict", DictValue(NewDict()), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Truthy())
		})
	}
}

func TestEqualComparesContainersByIdentity(t *testing.T) {
	l := ListOf(NumberValue(1))
	assert.True(t, Equal(l, l))
	assert.False(t, Equal(l, ListOf(NumberValue(1))))

	d := DictValue(NewDict())
	assert.True(t, Equal(d, d))
	assert.False(t, Equal(d, DictValue(NewDict())))

	assert.True(t, Equal(Null, Null))
	assert.True(t, Equal(StringValue("a"), StringValue("a")))
	assert.False(t, Equal(NumberValue(1), StringValue("1")))
	assert.False(t, Equal(NumberValue(0), BoolValue(false)))
}

func TestDisplayStrings(t *testing.T) {
	d := NewDict()
	d.Set("z", StringValue("q"))
	d.Set("a", ListOf(Null, BoolValue(true)))
	assert.Equal(t, `{"z": "q", "a": [bos, dogru]}`, DictValue(d).String())
	assert.Equal(t, "0.1", NumberValue(0.1).String())
	assert.Equal(t, "-3", NumberValue(-3).String())
	assert.Equal(t, "Infinity", NumberValue(math.Inf(1)).String())
	assert.Equal(t, "NaN", NumberValue(math.NaN()).String())
	assert.Equal(t, "1000000000000000000000", NumberValue(1e21).String())
}

func TestDictKeepsInsertionOrder(t *testing.T) {
	d := NewDict()
	d.Set("b", NumberValue(1))
	d.Set("a", NumberValue(2))
	d.Set("b", NumberValue(3))
	assert.Equal(t, []string{"b", "a"}, d.Keys())
	d.Delete("b")
	d.Delete("missing")
	assert.Equal(t, []string{"a"}, d.Keys())
	assert.False(t, d.Has("b"))
	assert.Equal(t, 1, d.Len())
}

func TestToValueClassifiesHostData(t *testing.T) {
	for _, in := range []any{1, int8(2), uint16(3), int64(4), float32(5), 6.5} {
		v, err := ToValue(in)
		require.NoError(t, err)
		assert.Equal(t, NumberType, v.Type, "%T", in)
	}

	v, err := ToValue(map[string]any{"b": []any{1, "x", nil}, "a": true})
	require.NoError(t, err)
	require.Equal(t, DictType, v.Type)
	assert.Equal(t, `{"a": dogru, "b": [1, "x", bos]}`, v.String())

	fn, err := ToValue(Native("f", 0, nil))
	require.NoError(t, err)
	assert.Equal(t, FunctionType, fn.Type)

	_, err = ToValue(struct{}{})
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestFromValue(t *testing.T) {
	d := NewDict()
	d.Set("n", NumberValue(1))
	d.Set("l", ListOf(StringValue("x"), Null))
	out, err := FromValue(DictValue(d))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"n": 1.0, "l": []any{"x", nil}}, out)

	_, err = FromValue(ListOf(FuncValue(Native("f", 0, nil))))
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestSelfReferenceDisplay(t *testing.T) {
	l := &List{Items: []Value{NumberValue(1)}}
	l.Items = append(l.Items, ListValue(l))
	assert.Equal(t, "[1, [...]]", ListValue(l).String())

	d := NewDict()
	d.Set("k", NumberValue(1))
	d.Set("self", DictValue(d))
	d.Set("l", ListValue(l))
	assert.Equal(t, `{"k": 1, "self": {...}, "l": [1, [...]]}`, DictValue(d).String())

	shared := ListOf(NumberValue(2))
	assert.Equal(t, "[[2], [2]]", ListOf(shared, shared).String())
}

func TestFromValueRejectsSelfReference(t *testing.T) {
	l := &List{}
	l.Items = append(l.Items, ListValue(l))
	_, err := FromValue(ListValue(l))
	assert.ErrorIs(t, err, ErrTypeMismatch)

	d := NewDict()
	d.Set("self", DictValue(d))
	_, err = FromValue(ListOf(DictValue(d)))
	assert.ErrorIs(t, err, ErrTypeMismatch)

	shared := ListOf(NumberValue(2))
	out, err := FromValue(ListOf(shared, shared))
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{2.0}, []any{2.0}}, out)
}
