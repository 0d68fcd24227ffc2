package stdlib

import (
	"strings"

	gfn "github.com/panyam/goutils/fn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// stringFunc lifts a string transform into a one argument native.
func stringFunc(name string, f func(string) string) *NativeFunc {
	return Native(name, 1, func(it *Interpreter, args []Value) (Value, error) {
		s, err := ExpectString(name, args, 0)
		if err != nil {
			return Null, err
		}
		return StringValue(f(s)), nil
	})
}

// Text holds the string natives.  Case mapping is Unicode aware so Turkish
// text such as "çay" upper cases to "ÇAY".
func Text() Library {
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und)
	return NewLibrary("text",
		Native("split", 2, func(it *Interpreter, args []Value) (Value, error) {
			s, err := ExpectString("split", args, 0)
			if err != nil {
				return Null, err
			}
			sep, err := ExpectString("split", args, 1)
			if err != nil {
				return Null, err
			}
			return ListOf(gfn.Map(strings.Split(s, sep), StringValue)...), nil
		}),
		Native("replace", 3, func(it *Interpreter, args []Value) (Value, error) {
			var parts [3]string
			for i := range parts {
				s, err := ExpectString("replace", args, i)
				if err != nil {
					return Null, err
				}
				parts[i] = s
			}
			return StringValue(strings.ReplaceAll(parts[0], parts[1], parts[2])), nil
		}),
		Native("starts_with", 2, func(it *Interpreter, args []Value) (Value, error) {
			s, err := ExpectString("starts_with", args, 0)
			if err != nil {
				return Null, err
			}
			prefix, err := ExpectString("starts_with", args, 1)
			if err != nil {
				return Null, err
			}
			return BoolValue(strings.HasPrefix(s, prefix)), nil
		}),
		stringFunc("trim", strings.TrimSpace),
		stringFunc("wea_str_upper", upper.String),
		stringFunc("wea_str_lower", lower.String),
		stringFunc("wea_str_title", title.String),
	)
}
