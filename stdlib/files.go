package stdlib

import (
	"fmt"

	"github.com/panyam/wea/loader"
)

// Files exposes a loader.FileSystem to scripts.  Relative paths resolve
// against the file system's base.
func Files(fs loader.FileSystem) Library {
	return NewLibrary("file",
		Native("file_read", 1, func(it *Interpreter, args []Value) (Value, error) {
			path, err := ExpectString("file_read", args, 0)
			if err != nil {
				return Null, err
			}
			data, err := fs.ReadFile(path)
			if err != nil {
				return Null, fmt.Errorf("%w: file_read %s: %v", ErrIO, path, err)
			}
			return StringValue(string(data)), nil
		}),
		Native("file_write", 2, func(it *Interpreter, args []Value) (Value, error) {
			path, err := ExpectString("file_write", args, 0)
			if err != nil {
				return Null, err
			}
			text := args[1].String()
			if err := fs.WriteFile(path, []byte(text)); err != nil {
				return Null, fmt.Errorf("%w: file_write %s: %v", ErrIO, path, err)
			}
			return BoolValue(true), nil
		}),
		Native("file_exists", 1, func(it *Interpreter, args []Value) (Value, error) {
			path, err := ExpectString("file_exists", args, 0)
			if err != nil {
				return Null, err
			}
			return BoolValue(fs.Exists(path)), nil
		}),
	)
}
