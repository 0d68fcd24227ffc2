package decl

import (
	"strings"

	gfn "github.com/panyam/goutils/fn"
)

// --- Interfaces ---

// Node represents any node in the Abstract Syntax Tree.
type Node interface {
	Pos() int       // Source line the node starts on (for error reporting)
	String() string // String representation for debugging/printing
	PrettyPrint(cp CodePrinter)
}

// --- Base Struct ---

// NodeInfo embeddable struct for position tracking.
type NodeInfo struct{ Line int }

func (n *NodeInfo) Pos() int { return n.Line }

// ExprAt and StmtAt build the embedded bases for nodes starting on line.
func ExprAt(line int) ExprBase { return ExprBase{NodeInfo{Line: line}} }
func StmtAt(line int) StmtBase { return StmtBase{NodeInfo{Line: line}} }

// Program is the top-level list of statements produced by a single parse.
type Program struct {
	Statements []Stmt
}

func (p *Program) String() string {
	return Sprint(p)
}

// PrettyPrint writes every top level statement on its own line.
func (p *Program) PrettyPrint(cp CodePrinter) {
	printStmts(cp, p.Statements)
}

func printStmts(cp CodePrinter, stmts []Stmt) {
	for _, stmt := range stmts {
		stmt.PrettyPrint(cp)
		cp.Println("")
	}
}

func joinExprs(exprs []Expr, sep string) string {
	return strings.Join(gfn.Map(exprs, func(e Expr) string { return e.String() }), sep)
}
