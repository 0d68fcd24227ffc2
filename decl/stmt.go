package decl

import (
	"fmt"
	"strings"
)

// --- Statements ---

// Stmt represents a statement node (performs an action, controls flow).
type Stmt interface {
	Node
	stmtNode() // Marker method for statements
}

type StmtBase struct {
	NodeInfo
}

func (s *StmtBase) stmtNode() {}

// ExprStmt is an expression evaluated for its side effects
type ExprStmt struct {
	StmtBase
	Expression Expr
}

func (e *ExprStmt) String() string             { return e.Expression.String() }
func (e *ExprStmt) PrettyPrint(cp CodePrinter) { e.Expression.PrettyPrint(cp) }

// VarDeclStmt represents `wea_unit name = init`.  Init may be nil.
type VarDeclStmt struct {
	StmtBase
	Name string
	Init Expr
}

func (v *VarDeclStmt) String() string {
	if v.Init == nil {
		return "wea_unit " + v.Name
	}
	return fmt.Sprintf("wea_unit %s = %s", v.Name, v.Init)
}
func (v *VarDeclStmt) PrettyPrint(cp CodePrinter) {
	cp.Print("wea_unit " + v.Name)
	if v.Init != nil {
		cp.Print(" = ")
		v.Init.PrettyPrint(cp)
	}
}

// BlockStmt represents a sequence of statements `{ stmt1 stmt2 ... }`
type BlockStmt struct {
	StmtBase
	Statements []Stmt
}

func (b *BlockStmt) String() string { return "{ ...statements... }" } // Simplified
func (b *BlockStmt) PrettyPrint(cp CodePrinter) {
	if len(b.Statements) == 0 {
		cp.Print("{}")
		return
	}
	cp.Println("{")
	cp.Indent(1)
	printStmts(cp, b.Statements)
	cp.Unindent(1)
	cp.Print("}")
}

// IfStmt represents `wea_verify cond { ... } wea_else { ... }`
type IfStmt struct {
	StmtBase
	Condition Expr
	Then      *BlockStmt
	Else      Stmt // Can be another IfStmt or a BlockStmt
}

func (i *IfStmt) String() string { return fmt.Sprintf("wea_verify %s { ... }", i.Condition) }
func (i *IfStmt) PrettyPrint(cp CodePrinter) {
	cp.Print("wea_verify ")
	i.Condition.PrettyPrint(cp)
	cp.Print(" ")
	i.Then.PrettyPrint(cp)
	if i.Else != nil {
		cp.Print(" wea_else ")
		i.Else.PrettyPrint(cp)
	}
}

// WhileStmt represents `wea_cycle cond { ... }`
type WhileStmt struct {
	StmtBase
	Condition Expr
	Body      *BlockStmt
}

func (w *WhileStmt) String() string { return fmt.Sprintf("wea_cycle %s { ... }", w.Condition) }
func (w *WhileStmt) PrettyPrint(cp CodePrinter) {
	cp.Print("wea_cycle ")
	w.Condition.PrettyPrint(cp)
	cp.Print(" ")
	w.Body.PrettyPrint(cp)
}

// ForeachStmt represents `foreach (name in iterable) { ... }`
type ForeachStmt struct {
	StmtBase
	VarName  string
	Iterable Expr
	Body     *BlockStmt
}

func (f *ForeachStmt) String() string {
	return fmt.Sprintf("foreach (%s in %s) { ... }", f.VarName, f.Iterable)
}
func (f *ForeachStmt) PrettyPrint(cp CodePrinter) {
	cp.Printf("foreach (%s in ", f.VarName)
	f.Iterable.PrettyPrint(cp)
	cp.Print(") ")
	f.Body.PrettyPrint(cp)
}

// FunctionDecl represents `wea_flow name(params) { ... }`
type FunctionDecl struct {
	StmtBase
	Name   string
	Params []string
	Body   *BlockStmt
}

func (f *FunctionDecl) String() string {
	return fmt.Sprintf("wea_flow %s(%s) { ... }", f.Name, strings.Join(f.Params, ", "))
}
func (f *FunctionDecl) PrettyPrint(cp CodePrinter) {
	cp.Printf("wea_flow %s(%s) ", f.Name, strings.Join(f.Params, ", "))
	f.Body.PrettyPrint(cp)
}

// ReturnStmt represents `wea_return value`.  Value may be nil.
type ReturnStmt struct {
	StmtBase
	Value Expr
}

func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "wea_return"
	}
	return "wea_return " + r.Value.String()
}
func (r *ReturnStmt) PrettyPrint(cp CodePrinter) {
	cp.Print("wea_return")
	if r.Value != nil {
		cp.Print(" ")
		r.Value.PrettyPrint(cp)
	}
}

type BreakStmt struct {
	StmtBase
}

func (b *BreakStmt) String() string             { return "break" }
func (b *BreakStmt) PrettyPrint(cp CodePrinter) { cp.Print("break") }

type ContinueStmt struct {
	StmtBase
}

func (c *ContinueStmt) String() string             { return "continue" }
func (c *ContinueStmt) PrettyPrint(cp CodePrinter) { cp.Print("continue") }

// TryStmt represents `wea_eman { ... } wea_fail { ... }`.  Catch may be nil.
type TryStmt struct {
	StmtBase
	Try   *BlockStmt
	Catch *BlockStmt
}

func (t *TryStmt) String() string { return "wea_eman { ... }" }
func (t *TryStmt) PrettyPrint(cp CodePrinter) {
	cp.Print("wea_eman ")
	t.Try.PrettyPrint(cp)
	if t.Catch != nil {
		cp.Print(" wea_fail ")
		t.Catch.PrettyPrint(cp)
	}
}

// EmitStmt represents `wea_emit expr`
type EmitStmt struct {
	StmtBase
	Value Expr
}

func (e *EmitStmt) String() string { return "wea_emit " + e.Value.String() }
func (e *EmitStmt) PrettyPrint(cp CodePrinter) {
	cp.Print("wea_emit ")
	e.Value.PrettyPrint(cp)
}

