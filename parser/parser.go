// Package parser implements loxbrew's recursive-descent parser: a single
// pass over a lexer.Token stream producing an ast.Stmt sequence plus any
// parse diagnostics, with panic-mode synchronization so one malformed
// declaration doesn't hide the rest. Grounded on the teacher's
// (go-mix) pos-indexed token cursor and on original_source/src/parser/mod.rs
// for the exact grammar and synchronization behavior spec.md pins down.
package parser

import (
	"github.com/loxbrew/loxbrew/ast"
	"github.com/loxbrew/loxbrew/lexer"
)

// syncSet is the token-kind set synchronize() scans forward to. Unlike
// many Pratt/recursive-descent Lox ports, this variant does not stop on
// semicolons (spec.md §4.2).
var syncSet = map[lexer.Kind]bool{
	lexer.Class:  true,
	lexer.Fun:    true,
	lexer.Var:    true,
	lexer.For:    true,
	lexer.If:     true,
	lexer.While:  true,
	lexer.Print:  true,
	lexer.Return: true,
	lexer.Eof:    true,
}

// Parser consumes a fixed token slice (which must end in exactly one Eof)
// and produces statements, assigning each Variable/Assignment node a
// fresh, globally-unique id as it goes.
type Parser struct {
	tokens []lexer.Token
	pos    int
	errors []*Error
	nextID int
}

// New builds a Parser over tokens. Panics if tokens is empty or does not
// end with an Eof token — spec.md's lexer always produces one, so this
// signals a caller bug rather than a user error.
func New(tokens []lexer.Token) *Parser {
	if len(tokens) == 0 {
		panic("parser: token list must not be empty")
	}
	if tokens[len(tokens)-1].Kind != lexer.Eof {
		panic("parser: token list must end with Eof")
	}
	return &Parser{tokens: tokens}
}

// Parse parses every declaration until Eof, synchronizing past errors so
// a single malformed statement doesn't abort the whole parse. Callers
// must check Errors() — a non-empty list means the returned statements
// are not a complete or trustworthy program per spec.md §4.2.
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.synchronize(err)
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

// Errors returns every parse diagnostic collected during Parse.
func (p *Parser) Errors() []*Error {
	return p.errors
}

func (p *Parser) nextVarID() int {
	p.nextID++
	return p.nextID
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) prevAt(offset int) lexer.Token {
	return p.tokens[p.pos-offset]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == lexer.Eof
}

// advance consumes and returns the current token, refusing to step past
// a trailing Eof.
func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if tok.Kind != lexer.Eof {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind lexer.Kind) bool {
	return p.peek().Kind == kind
}

// match consumes the current token and returns true if it has kind,
// otherwise leaves the cursor untouched and returns false.
func (p *Parser) match(kind lexer.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

// expect consumes the current token if it has kind, else returns an
// Expected error naming want (recording it is left to synchronize).
func (p *Parser) expect(kind lexer.Kind, want string) (lexer.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return lexer.Token{}, &Error{Token: p.peek(), Kind: Expected, Want: want}
}

// expectIdentifier is expect(lexer.Identifier, "identifier"), its own
// helper since it's needed at every declaration site.
func (p *Parser) expectIdentifier() (lexer.Token, error) {
	return p.expect(lexer.Identifier, "identifier")
}

// synchronize records err, then discards tokens until the next one starts
// a new declaration (per syncSet), so Parse can resume there.
func (p *Parser) synchronize(err error) {
	pe, ok := err.(*Error)
	if !ok {
		panic(err)
	}
	p.errors = append(p.errors, pe)
	for {
		if syncSet[p.peek().Kind] {
			return
		}
		p.advance()
	}
}

func (p *Parser) declaration() (ast.Stmt, error) {
	switch p.peek().Kind {
	case lexer.Var:
		return p.varDecl()
	case lexer.Fun:
		return p.funDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) varDecl() (ast.Stmt, error) {
	if _, err := p.expect(lexer.Var, "var"); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	var init ast.Expr
	if p.match(lexer.Equal) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.Semicolon, ";"); err != nil {
		return nil, err
	}
	return &ast.VarDecl{Name: name, Initializer: init}, nil
}

func (p *Parser) funDecl() (ast.Stmt, error) {
	if _, err := p.expect(lexer.Fun, "function"); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LeftParen, "("); err != nil {
		return nil, err
	}
	params, err := p.parameters()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RightParen, ")"); err != nil {
		return nil, err
	}
	body, err := p.blockStmt()
	if err != nil {
		return nil, err
	}
	return &ast.FunDecl{Name: name, Params: params, Body: body.(*ast.Block)}, nil
}

func (p *Parser) parameters() ([]lexer.Token, error) {
	var params []lexer.Token
	if p.check(lexer.RightParen) {
		return params, nil
	}
	for {
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		params = append(params, name)
		if p.check(lexer.RightParen) {
			break
		}
		if _, err := p.expect(lexer.Comma, ","); err != nil {
			return nil, err
		}
	}
	return params, nil
}

func (p *Parser) statement() (ast.Stmt, error) {
	switch p.peek().Kind {
	case lexer.Print:
		return p.printStmt()
	case lexer.LeftBrace:
		return p.blockStmt()
	case lexer.If:
		return p.ifStmt()
	case lexer.While:
		return p.whileStmt()
	case lexer.For:
		return p.forStmt()
	case lexer.Return:
		return p.returnStmt()
	default:
		return p.exprStmt()
	}
}

func (p *Parser) printStmt() (ast.Stmt, error) {
	if _, err := p.expect(lexer.Print, "print"); err != nil {
		return nil, err
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon, ";"); err != nil {
		return nil, err
	}
	return &ast.PrintStmt{Expr: expr}, nil
}

func (p *Parser) blockStmt() (ast.Stmt, error) {
	if _, err := p.expect(lexer.LeftBrace, "{"); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for !p.check(lexer.RightBrace) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(lexer.RightBrace, "}"); err != nil {
		return nil, err
	}
	return &ast.Block{Stmts: stmts}, nil
}

func (p *Parser) ifStmt() (ast.Stmt, error) {
	if _, err := p.expect(lexer.If, "if"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LeftParen, "("); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RightParen, ")"); err != nil {
		return nil, err
	}
	thenStmt, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Stmt
	if p.match(lexer.Else) {
		elseStmt, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &ast.If{Condition: cond, Then: thenStmt, Else: elseStmt}, nil
}

func (p *Parser) whileStmt() (ast.Stmt, error) {
	if _, err := p.expect(lexer.While, "while"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LeftParen, "("); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RightParen, ")"); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.While{Condition: cond, Body: body}, nil
}

// forStmt desugars `for (init; cond; incr) body` into
// `Block{[init, While{cond, Block{[body, ExprStmt(incr)]}}]}`: a missing
// initializer yields the bare While with no enclosing Block, a missing
// condition becomes literal true, a missing increment leaves body
// untouched.
func (p *Parser) forStmt() (ast.Stmt, error) {
	if _, err := p.expect(lexer.For, "for"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LeftParen, "("); err != nil {
		return nil, err
	}

	var init ast.Stmt
	var err error
	switch {
	case p.match(lexer.Semicolon):
		init = nil
	case p.check(lexer.Var):
		init, err = p.varDecl()
	default:
		init, err = p.exprStmt()
	}
	if err != nil {
		return nil, err
	}

	var cond ast.Expr
	if p.check(lexer.Semicolon) {
		cond = &ast.Literal{Value: ast.Bool(true)}
	} else {
		cond, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.Semicolon, ";"); err != nil {
		return nil, err
	}

	var incr ast.Expr
	if !p.check(lexer.RightParen) {
		incr, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.RightParen, ")"); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if incr != nil {
		body = &ast.Block{Stmts: []ast.Stmt{body, &ast.ExprStmt{Expr: incr}}}
	}

	whileStmt := &ast.While{Condition: cond, Body: body}

	if init != nil {
		return &ast.Block{Stmts: []ast.Stmt{init, whileStmt}}, nil
	}
	return whileStmt, nil
}

func (p *Parser) returnStmt() (ast.Stmt, error) {
	if _, err := p.expect(lexer.Return, "return"); err != nil {
		return nil, err
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon, ";"); err != nil {
		return nil, err
	}
	return &ast.Return{Expr: expr}, nil
}

func (p *Parser) exprStmt() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Semicolon, ";"); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: expr}, nil
}

func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

// assignment parses `or ( "=" assignment )?`. The only legal assignment
// target is a bare Variable; anything else is an Expected("identifier")
// error pointing at the token just before the `=`.
func (p *Parser) assignment() (ast.Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(lexer.Equal) {
		variable, ok := expr.(*ast.Variable)
		if !ok {
			return nil, &Error{Token: p.prevAt(2), Kind: Expected, Want: "identifier"}
		}
		rhs, err := p.assignment()
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{ID: variable.ID, Name: variable.Name, Rhs: rhs}, nil
	}

	return expr, nil
}

func (p *Parser) or() (ast.Expr, error) {
	return p.parseLogical(p.and, lexer.Or)
}

func (p *Parser) and() (ast.Expr, error) {
	return p.parseLogical(p.equality, lexer.And)
}

func (p *Parser) parseLogical(sub func() (ast.Expr, error), ops ...lexer.Kind) (ast.Expr, error) {
	expr, err := sub()
	if err != nil {
		return nil, err
	}
	for p.matchesAny(ops...) {
		op := p.advance()
		right, err := sub()
		if err != nil {
			return nil, err
		}
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expr, error) {
	return p.parseBinary(p.comparison, lexer.EqualEqual, lexer.BangEqual)
}

func (p *Parser) comparison() (ast.Expr, error) {
	return p.parseBinary(p.term, lexer.Greater, lexer.GreaterEqual, lexer.Less, lexer.LessEqual)
}

func (p *Parser) term() (ast.Expr, error) {
	return p.parseBinary(p.factor, lexer.Plus, lexer.Minus)
}

func (p *Parser) factor() (ast.Expr, error) {
	return p.parseBinary(p.unary, lexer.Star, lexer.Slash)
}

func (p *Parser) parseBinary(sub func() (ast.Expr, error), ops ...lexer.Kind) (ast.Expr, error) {
	expr, err := sub()
	if err != nil {
		return nil, err
	}
	for p.matchesAny(ops...) {
		op := p.advance()
		right, err := sub()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) matchesAny(kinds ...lexer.Kind) bool {
	cur := p.peek().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

func (p *Parser) unary() (ast.Expr, error) {
	if p.check(lexer.Bang) || p.check(lexer.Minus) {
		op := p.advance()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op, Right: right}, nil
	}
	return p.call()
}

// call parses a primary expression followed by at most ONE `(...)`
// suffix — chained calls like `f()()` are deliberately not supported, per
// spec.md §4.2 and original_source/src/parser/mod.rs's `call()`.
func (p *Parser) call() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	if p.check(lexer.LeftParen) {
		p.advance()
		args, err := p.arguments()
		if err != nil {
			return nil, err
		}
		closingParen, err := p.expect(lexer.RightParen, ")")
		if err != nil {
			return nil, err
		}
		expr = &ast.FunCall{Callee: expr, ClosingParen: closingParen, Args: args}
	}

	return expr, nil
}

func (p *Parser) arguments() ([]ast.Expr, error) {
	var args []ast.Expr
	if p.check(lexer.RightParen) {
		return args, nil
	}
	for {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.check(lexer.RightParen) {
			break
		}
		if _, err := p.expect(lexer.Comma, ","); err != nil {
			return nil, err
		}
	}
	return args, nil
}

func (p *Parser) primary() (ast.Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case lexer.Number:
		p.advance()
		return &ast.Literal{Value: ast.Number(tok.Num)}, nil
	case lexer.String:
		p.advance()
		return &ast.Literal{Value: ast.Str(tok.Text)}, nil
	case lexer.True:
		p.advance()
		return &ast.Literal{Value: ast.Bool(true)}, nil
	case lexer.False:
		p.advance()
		return &ast.Literal{Value: ast.Bool(false)}, nil
	case lexer.Nil:
		p.advance()
		return &ast.Literal{Value: ast.Nil{}}, nil
	case lexer.Identifier:
		p.advance()
		return &ast.Variable{ID: p.nextVarID(), Name: tok}, nil
	case lexer.LeftParen:
		p.advance()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RightParen, ")"); err != nil {
			return nil, err
		}
		return &ast.Grouping{Inner: inner}, nil
	default:
		return nil, &Error{Token: tok, Kind: ExpectedExpression}
	}
}
