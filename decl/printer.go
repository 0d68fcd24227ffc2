package decl

import (
	"fmt"
	"strings"
)

type CodePrinter interface {
	Indent(n int)
	Unindent(n int)
	Print(str string)
	Printf(fmt string, args ...any)
	Println(str string)
}

func WithIndent(n int, cp CodePrinter, block func(cp CodePrinter)) {
	cp.Indent(n)
	defer cp.Unindent(n)
	block(cp)
}

// codePrinter writes indented source.  Indentation is only emitted once a
// line has content so blank lines stay blank.
type codePrinter struct {
	indent  int
	atStart bool
	builder strings.Builder
}

func (c *codePrinter) Indent(n int) {
	c.indent += n
}

func (c *codePrinter) Unindent(n int) {
	c.indent -= n
	if c.indent < 0 {
		c.indent = 0
	}
}

func (c *codePrinter) Print(str string) {
	for idx, l := range strings.Split(str, "\n") {
		if idx > 0 {
			c.builder.WriteByte('\n')
			c.atStart = true
		}
		if l == "" {
			continue
		}
		if c.atStart {
			c.builder.WriteString(strings.Repeat("  ", c.indent))
			c.atStart = false
		}
		c.builder.WriteString(l)
	}
}

func (c *codePrinter) Println(str string) {
	c.Print(str + "\n")
}

func (c *codePrinter) Printf(format string, args ...any) {
	c.Print(fmt.Sprintf(format, args...))
}

func (c *codePrinter) String() string {
	return c.builder.String()
}

func NewCodePrinter() CodePrinter {
	return &codePrinter{atStart: true}
}

// Printable is anything that can render itself as source.
type Printable interface {
	PrettyPrint(cp CodePrinter)
}

// Sprint renders a node as source text.
func Sprint(node Printable) string {
	cp := &codePrinter{atStart: true}
	node.PrettyPrint(cp)
	return cp.String()
}

func PPrint(node Printable) {
	fmt.Println(Sprint(node))
}
