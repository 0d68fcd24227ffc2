package decl

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr represents an expression node (evaluates to a value).
type Expr interface {
	Node
	exprNode() // Marker method for expressions
}

type ExprBase struct {
	NodeInfo
}

func (me *ExprBase) exprNode() {}

// --- Expressions ---

// LiteralExpr holds a float64, string, bool or nil (for bos).
type LiteralExpr struct {
	ExprBase
	Value any
}

func (l *LiteralExpr) String() string {
	switch v := l.Value.(type) {
	case nil:
		return "bos"
	case bool:
		if v {
			return "dogru"
		}
		return "yanlis"
	case float64:
		return FormatNumber(v)
	case string:
		return `"` + v + `"`
	}
	return fmt.Sprintf("%v", l.Value)
}
func (l *LiteralExpr) PrettyPrint(cp CodePrinter) { cp.Print(l.String()) }

// FormatNumber renders a number the way the language displays it: integers
// without a fraction, everything else in the shortest round-tripping form.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// VariableExpr refers to a name in scope
type VariableExpr struct {
	ExprBase
	Name string
}

func (v *VariableExpr) String() string             { return v.Name }
func (v *VariableExpr) PrettyPrint(cp CodePrinter) { cp.Print(v.Name) }

// AssignExpr represents `name = value`
type AssignExpr struct {
	ExprBase
	Name  string
	Value Expr
}

func (a *AssignExpr) String() string { return fmt.Sprintf("%s = %s", a.Name, a.Value) }
func (a *AssignExpr) PrettyPrint(cp CodePrinter) {
	cp.Print(a.Name + " = ")
	a.Value.PrettyPrint(cp)
}

// BinaryExpr represents `left operator right`
type BinaryExpr struct {
	ExprBase
	Left     Expr
	Operator string // "==", "!=", "<", "<=", ">", ">=", "+", "-", "*", "/", "%"
	Right    Expr
}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("%s %s %s", b.Left, b.Operator, b.Right)
}
func (b *BinaryExpr) PrettyPrint(cp CodePrinter) {
	b.Left.PrettyPrint(cp)
	cp.Printf(" %s ", b.Operator)
	b.Right.PrettyPrint(cp)
}

// LogicalExpr represents the short circuiting `left && right` and `left || right`
type LogicalExpr struct {
	ExprBase
	Left     Expr
	Operator string
	Right    Expr
}

func (l *LogicalExpr) String() string {
	return fmt.Sprintf("%s %s %s", l.Left, l.Operator, l.Right)
}
func (l *LogicalExpr) PrettyPrint(cp CodePrinter) {
	l.Left.PrettyPrint(cp)
	cp.Printf(" %s ", l.Operator)
	l.Right.PrettyPrint(cp)
}

// UnaryExpr represents `operator operand`
type UnaryExpr struct {
	ExprBase
	Operator string // "!", "-"
	Right    Expr
}

func (u *UnaryExpr) String() string { return u.Operator + u.Right.String() }
func (u *UnaryExpr) PrettyPrint(cp CodePrinter) {
	cp.Print(u.Operator)
	u.Right.PrettyPrint(cp)
}

// GroupingExpr is a parenthesized expression.  It is kept in the tree so
// printing reproduces the written precedence.
type GroupingExpr struct {
	ExprBase
	Inner Expr
}

func (g *GroupingExpr) String() string { return "(" + g.Inner.String() + ")" }
func (g *GroupingExpr) PrettyPrint(cp CodePrinter) {
	cp.Print("(")
	g.Inner.PrettyPrint(cp)
	cp.Print(")")
}

// CallExpr represents `callee(args...)`.  Pipes are desugared into these.
type CallExpr struct {
	ExprBase
	Callee Expr
	Args   []Expr
}

func (c *CallExpr) String() string {
	return fmt.Sprintf("%s(%s)", c.Callee, joinExprs(c.Args, ", "))
}
func (c *CallExpr) PrettyPrint(cp CodePrinter) {
	c.Callee.PrettyPrint(cp)
	cp.Print("(")
	printExprList(cp, c.Args)
	cp.Print(")")
}

// ListExpr represents `[a, b, c]`
type ListExpr struct {
	ExprBase
	Elements []Expr
}

func (l *ListExpr) String() string { return "[" + joinExprs(l.Elements, ", ") + "]" }
func (l *ListExpr) PrettyPrint(cp CodePrinter) {
	cp.Print("[")
	printExprList(cp, l.Elements)
	cp.Print("]")
}

// DictExpr represents `{k1: v1, k2: v2}`.  Keys must evaluate to strings.
type DictExpr struct {
	ExprBase
	Keys   []Expr
	Values []Expr
}

func (d *DictExpr) String() string {
	pairs := make([]string, len(d.Keys))
	for i := range d.Keys {
		pairs[i] = fmt.Sprintf("%s: %s", d.Keys[i], d.Values[i])
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}
func (d *DictExpr) PrettyPrint(cp CodePrinter) {
	cp.Print("{")
	for i := range d.Keys {
		if i > 0 {
			cp.Print(", ")
		}
		d.Keys[i].PrettyPrint(cp)
		cp.Print(": ")
		d.Values[i].PrettyPrint(cp)
	}
	cp.Print("}")
}

// GetExpr represents dict field access `object.name`
type GetExpr struct {
	ExprBase
	Object Expr
	Name   string
}

func (g *GetExpr) String() string { return fmt.Sprintf("%s.%s", g.Object, g.Name) }
func (g *GetExpr) PrettyPrint(cp CodePrinter) {
	g.Object.PrettyPrint(cp)
	cp.Print("." + g.Name)
}

// SetExpr represents `object.name = value`
type SetExpr struct {
	ExprBase
	Object Expr
	Name   string
	Value  Expr
}

func (s *SetExpr) String() string { return fmt.Sprintf("%s.%s = %s", s.Object, s.Name, s.Value) }
func (s *SetExpr) PrettyPrint(cp CodePrinter) {
	s.Object.PrettyPrint(cp)
	cp.Print("." + s.Name + " = ")
	s.Value.PrettyPrint(cp)
}

// IndexExpr represents `object[start]` or the slice `object[start:end]`.
type IndexExpr struct {
	ExprBase
	Object Expr
	Start  Expr
	End    Expr // nil for element access
}

func (i *IndexExpr) IsSlice() bool { return i.End != nil }

func (i *IndexExpr) String() string {
	if i.End != nil {
		return fmt.Sprintf("%s[%s:%s]", i.Object, i.Start, i.End)
	}
	return fmt.Sprintf("%s[%s]", i.Object, i.Start)
}
func (i *IndexExpr) PrettyPrint(cp CodePrinter) {
	i.Object.PrettyPrint(cp)
	cp.Print("[")
	i.Start.PrettyPrint(cp)
	if i.End != nil {
		cp.Print(":")
		i.End.PrettyPrint(cp)
	}
	cp.Print("]")
}

// IndexSetExpr represents `object[index] = value` on lists and dicts.
type IndexSetExpr struct {
	ExprBase
	Object Expr
	Index  Expr
	Value  Expr
}

func (s *IndexSetExpr) String() string {
	return fmt.Sprintf("%s[%s] = %s", s.Object, s.Index, s.Value)
}
func (s *IndexSetExpr) PrettyPrint(cp CodePrinter) {
	s.Object.PrettyPrint(cp)
	cp.Print("[")
	s.Index.PrettyPrint(cp)
	cp.Print("] = ")
	s.Value.PrettyPrint(cp)
}

// LambdaExpr represents `(a, b) => expr` or `x => { ... }`.
// Exactly one of Body and Expr is set.
type LambdaExpr struct {
	ExprBase
	Params []string
	Body   *BlockStmt
	Expr   Expr
}

func (l *LambdaExpr) String() string {
	params := "(" + strings.Join(l.Params, ", ") + ")"
	if l.Expr != nil {
		return fmt.Sprintf("%s => %s", params, l.Expr)
	}
	return params + " => { ... }"
}
func (l *LambdaExpr) PrettyPrint(cp CodePrinter) {
	cp.Print("(" + strings.Join(l.Params, ", ") + ") => ")
	if l.Expr != nil {
		l.Expr.PrettyPrint(cp)
	} else {
		l.Body.PrettyPrint(cp)
	}
}

// IsKeyExpr represents `is_key(object, key)`
type IsKeyExpr struct {
	ExprBase
	Object Expr
	Key    Expr
}

func (k *IsKeyExpr) String() string { return fmt.Sprintf("is_key(%s, %s)", k.Object, k.Key) }
func (k *IsKeyExpr) PrettyPrint(cp CodePrinter) {
	cp.Print("is_key(")
	printExprList(cp, []Expr{k.Object, k.Key})
	cp.Print(")")
}

func printExprList(cp CodePrinter, exprs []Expr) {
	for idx, e := range exprs {
		if idx > 0 {
			cp.Print(", ")
		}
		e.PrettyPrint(cp)
	}
}

