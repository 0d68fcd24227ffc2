package stdlib

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Console backs wea_read.  The prompt goes to Out and one line is read from
// In with the trailing newline removed.
type Console struct {
	In  *bufio.Reader
	Out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{In: bufio.NewReader(in), Out: out}
}

func (c *Console) Name() string { return "io" }

func (c *Console) Functions() map[string]*NativeFunc {
	return map[string]*NativeFunc{
		"wea_read": Native("wea_read", 1, c.read),
	}
}

// read returns bos once the input is exhausted.
func (c *Console) read(it *Interpreter, args []Value) (Value, error) {
	if prompt := args[0].String(); prompt != "" && c.Out != nil {
		fmt.Fprint(c.Out, prompt)
	}
	line, err := c.In.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return Null, fmt.Errorf("%w: wea_read: %v", ErrIO, err)
	}
	if err != nil && line == "" {
		return Null, nil
	}
	return StringValue(strings.TrimRight(line, "\r\n")), nil
}
