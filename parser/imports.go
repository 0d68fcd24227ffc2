package parser

import "github.com/panyam/wea/decl"

type Node = decl.Node
type Expr = decl.Expr
type Stmt = decl.Stmt
type Program = decl.Program

type LiteralExpr = decl.LiteralExpr
type VariableExpr = decl.VariableExpr
type AssignExpr = decl.AssignExpr
type BinaryExpr = decl.BinaryExpr
type LogicalExpr = decl.LogicalExpr
type UnaryExpr = decl.UnaryExpr
type GroupingExpr = decl.GroupingExpr
type CallExpr = decl.CallExpr
type ListExpr = decl.ListExpr
type DictExpr = decl.DictExpr
type GetExpr = decl.GetExpr
type SetExpr = decl.SetExpr
type IndexExpr = decl.IndexExpr
type IndexSetExpr = decl.IndexSetExpr
type LambdaExpr = decl.LambdaExpr
type IsKeyExpr = decl.IsKeyExpr

type ExprStmt = decl.ExprStmt
type VarDeclStmt = decl.VarDeclStmt
type BlockStmt = decl.BlockStmt
type IfStmt = decl.IfStmt
type WhileStmt = decl.WhileStmt
type ForeachStmt = decl.ForeachStmt
type FunctionDecl = decl.FunctionDecl
type ReturnStmt = decl.ReturnStmt
type BreakStmt = decl.BreakStmt
type ContinueStmt = decl.ContinueStmt
type TryStmt = decl.TryStmt
type EmitStmt = decl.EmitStmt
