package ast

import "github.com/loxbrew/loxbrew/lexer"

// Stmt is the closed sum type of statement nodes spec.md §3 defines.
type Stmt interface {
	stmtNode()
}

// ExprStmt evaluates Expr and discards the result.
type ExprStmt struct {
	Expr Expr
}

// PrintStmt evaluates Expr, formats it, and writes it followed by a
// newline.
type PrintStmt struct {
	Expr Expr
}

// VarDecl declares Name in the current frame, bound to Initializer's
// value or Nil if Initializer is nil.
type VarDecl struct {
	Name        lexer.Token
	Initializer Expr // nil if omitted
}

// Block is a brace-delimited statement sequence that pushes and pops its
// own environment frame.
type Block struct {
	Stmts []Stmt
}

// If runs Then when Condition is truthy, else Else if present.
type If struct {
	Condition Expr
	Then      Stmt
	Else      Stmt // nil if omitted
}

// While runs Body repeatedly while Condition is truthy. Per spec.md §4.4
// and §9, a Return signal from Body is not propagated past the loop.
type While struct {
	Condition Expr
	Body      Stmt
}

// FunDecl declares a function value named Name, capturing the environment
// current at the declaration site.
type FunDecl struct {
	Name   lexer.Token
	Params []lexer.Token
	Body   *Block
}

// Return yields a Return control signal carrying Expr's value.
type Return struct {
	Expr Expr
}

func (*ExprStmt) stmtNode() {}
func (*PrintStmt) stmtNode() {}
func (*VarDecl) stmtNode()   {}
func (*Block) stmtNode()     {}
func (*If) stmtNode()        {}
func (*While) stmtNode()     {}
func (*FunDecl) stmtNode()   {}
func (*Return) stmtNode()    {}
