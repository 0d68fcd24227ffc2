package stdlib

import (
	"github.com/panyam/wea/runtime"
)

type Value = runtime.Value
type Interpreter = runtime.Interpreter
type NativeFunc = runtime.NativeFunc
type Library = runtime.Library

var (
	Null         = runtime.Null
	Native       = runtime.Native
	NumberValue  = runtime.NumberValue
	StringValue  = runtime.StringValue
	BoolValue    = runtime.BoolValue
	ListOf       = runtime.ListOf
	NumbersOf    = runtime.NumbersOf
	DictValue    = runtime.DictValue
	NewDict      = runtime.NewDict
	NewLibrary   = runtime.NewLibrary
	Equal        = runtime.Equal
	ExpectNumber = runtime.ExpectNumber
	ExpectString = runtime.ExpectString
	ExpectList   = runtime.ExpectList
	ExpectDict   = runtime.ExpectDict
)
