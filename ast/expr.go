package ast

import "github.com/loxbrew/loxbrew/lexer"

// Expr is the closed sum type of expression nodes spec.md §3 defines. The
// unexported exprNode method keeps it a closed interface: only types in
// this package can be an Expr, so a type switch in parser/resolver/interp
// is exhaustive by construction.
type Expr interface {
	exprNode()
}

// Unary is `-right` or `!right`.
type Unary struct {
	Op    lexer.Token
	Right Expr
}

// Binary is `left op right` for arithmetic, comparison, and equality
// operators.
type Binary struct {
	Left  Expr
	Op    lexer.Token
	Right Expr
}

// Grouping is a parenthesized sub-expression, kept distinct from its
// Inner expression so a printer can show the explicit grouping.
type Grouping struct {
	Inner Expr
}

// Literal is a constant Number/Str/Bool/Nil value baked in at parse time.
type Literal struct {
	Value Value
}

// Variable is a read of the variable named by Name. ID is the parser's
// monotonically-assigned use-site id the resolver binds to a lexical
// depth.
type Variable struct {
	ID   int
	Name lexer.Token
}

// Assignment is `name = rhs`. Only a bare Variable target is legal;
// the parser enforces this before constructing the node.
type Assignment struct {
	ID   int
	Name lexer.Token
	Rhs  Expr
}

// Logical is `left and right` / `left or right`, evaluated with
// short-circuiting and a Bool-coercing result (spec.md §4.4, §9).
type Logical struct {
	Left  Expr
	Op    lexer.Token
	Right Expr
}

// FunCall is `callee(args...)`. ClosingParen is retained for runtime
// diagnostics (arity mismatch, non-callable callee) that point at the
// call site's closing paren.
type FunCall struct {
	Callee       Expr
	ClosingParen lexer.Token
	Args         []Expr
}

func (*Unary) exprNode()      {}
func (*Binary) exprNode()     {}
func (*Grouping) exprNode()   {}
func (*Literal) exprNode()    {}
func (*Variable) exprNode()   {}
func (*Assignment) exprNode() {}
func (*Logical) exprNode()    {}
func (*FunCall) exprNode()    {}
