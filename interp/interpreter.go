// Package interp evaluates a resolved statement tree: it is the last
// stage of the pipeline, walking ast.Stmt/ast.Expr nodes against a chain
// of Environment frames and an io.Writer sink for `print`. Grounded on
// original_source/src/interpreter/mod.rs, adapted from Rust's
// Rc<RefCell<Environment>> sharing to Go pointer sharing, and on the
// teacher's pluggable-writer convention (repl/repl.go, file/file.go).
package interp

import (
	"fmt"
	"io"
	"os"

	"github.com/loxbrew/loxbrew/ast"
	"github.com/loxbrew/loxbrew/lexer"
	"github.com/loxbrew/loxbrew/resolver"
)

// Interpreter holds the live environment chain, the resolver's binding
// table, and the sink print statements write to.
type Interpreter struct {
	environment *Environment
	resolver    *resolver.Resolver
	out         io.Writer
}

// New builds an Interpreter over res, whose Resolve must already have
// run against the same statement tree Interpret will receive. Output
// defaults to os.Stdout; override with SetOutput.
func New(res *resolver.Resolver) *Interpreter {
	return &Interpreter{
		environment: newEnvironment(),
		resolver:    res,
		out:         os.Stdout,
	}
}

// SetOutput redirects where print statements write, matching the
// teacher's pattern of an injectable io.Writer instead of a hardcoded
// stdout (repl/repl.go, file/file.go).
func (in *Interpreter) SetOutput(out io.Writer) {
	in.out = out
}

// Interpret runs every top-level statement in order, stopping at the
// first runtime error.
func (in *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if _, err := in.ExecStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// BeginScope pushes a fresh frame enclosed by the current one.
func (in *Interpreter) BeginScope() {
	in.environment = newEnvironmentWithEnclosing(in.environment)
}

// EndScope pops back to the enclosing frame.
func (in *Interpreter) EndScope() {
	if in.environment.enclosing == nil {
		panic("interp: expected enclosing to exist")
	}
	in.environment = in.environment.enclosing
}

// SwapEnvironment installs other as the current frame and returns the
// previous one, so a function call can restore it afterward.
func (in *Interpreter) SwapEnvironment(other ast.Environment) ast.Environment {
	old := in.environment
	in.environment = other.(*Environment)
	return old
}

// Declare binds name in the current frame.
func (in *Interpreter) Declare(name string, value ast.Value) {
	in.environment.declare(name, value)
}

func (in *Interpreter) get(id int, name string) ast.Value {
	depth := in.resolver.BoundDepth(id)
	return in.environment.getAtDepth(depth, name)
}

func (in *Interpreter) assign(id int, name string, value ast.Value) {
	depth := in.resolver.BoundDepth(id)
	in.environment.assignAtDepth(depth, name, value)
}

func (in *Interpreter) evalExpr(expr ast.Expr) (ast.Value, error) {
	switch e := expr.(type) {
	case *ast.Unary:
		return in.evalUnary(e)
	case *ast.Binary:
		return in.evalBinary(e)
	case *ast.Grouping:
		return in.evalExpr(e.Inner)
	case *ast.Literal:
		return e.Value, nil
	case *ast.Variable:
		return in.get(e.ID, e.Name.Identifier()), nil
	case *ast.Assignment:
		return in.evalAssignment(e)
	case *ast.Logical:
		return in.evalLogical(e)
	case *ast.FunCall:
		return in.evalFunCall(e)
	}
	panic("interp: unknown expr type")
}

func (in *Interpreter) evalUnary(e *ast.Unary) (ast.Value, error) {
	value, err := in.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Op.Kind {
	case lexer.Minus:
		n, ok := value.(ast.Number)
		if !ok {
			return nil, &Error{Token: e.Op, Kind: ExpectedNumber}
		}
		return -n, nil
	case lexer.Bang:
		return ast.Bool(!value.IsTruthy()), nil
	}
	panic("interp: unary node with non-unary token")
}

func (in *Interpreter) evalBinary(e *ast.Binary) (ast.Value, error) {
	left, err := in.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}

	ln, lok := left.(ast.Number)
	rn, rok := right.(ast.Number)
	numbers := lok && rok
	ls, lsok := left.(ast.Str)
	rs, rsok := right.(ast.Str)
	strings := lsok && rsok

	undefined := func() error {
		return &Error{Token: e.Op, Kind: UndefinedOpBetween, Left: left, Right: right}
	}

	switch e.Op.Kind {
	case lexer.Star:
		if numbers {
			return ln * rn, nil
		}
		return nil, undefined()
	case lexer.Slash:
		if numbers {
			return ln / rn, nil
		}
		return nil, undefined()
	case lexer.Plus:
		if numbers {
			return ln + rn, nil
		}
		if strings {
			return ls + rs, nil
		}
		return nil, undefined()
	case lexer.Minus:
		if numbers {
			return ln - rn, nil
		}
		return nil, undefined()
	case lexer.Greater:
		if numbers {
			return ast.Bool(ln > rn), nil
		}
		if strings {
			return ast.Bool(ls > rs), nil
		}
		return nil, undefined()
	case lexer.GreaterEqual:
		if numbers {
			return ast.Bool(ln >= rn), nil
		}
		if strings {
			return ast.Bool(ls >= rs), nil
		}
		return nil, undefined()
	case lexer.Less:
		if numbers {
			return ast.Bool(ln < rn), nil
		}
		if strings {
			return ast.Bool(ls < rs), nil
		}
		return nil, undefined()
	case lexer.LessEqual:
		if numbers {
			return ast.Bool(ln <= rn), nil
		}
		if strings {
			return ast.Bool(ls <= rs), nil
		}
		return nil, undefined()
	case lexer.EqualEqual:
		return ast.Bool(valuesEqual(left, right)), nil
	case lexer.BangEqual:
		return ast.Bool(!valuesEqual(left, right)), nil
	}
	panic("interp: binary node received non-binary token")
}

// valuesEqual implements spec.md's equality table: cross-type comparisons
// (including Number/Str) are always false, never an error.
func valuesEqual(left, right ast.Value) bool {
	switch l := left.(type) {
	case ast.Number:
		r, ok := right.(ast.Number)
		return ok && l == r
	case ast.Str:
		r, ok := right.(ast.Str)
		return ok && l == r
	case ast.Bool:
		r, ok := right.(ast.Bool)
		return ok && l == r
	case ast.Nil:
		_, ok := right.(ast.Nil)
		return ok
	}
	return false
}

func (in *Interpreter) evalAssignment(e *ast.Assignment) (ast.Value, error) {
	value, err := in.evalExpr(e.Rhs)
	if err != nil {
		return nil, err
	}
	in.assign(e.ID, e.Name.Identifier(), value)
	return value, nil
}

// evalLogical short-circuits and coerces the result to Bool rather than
// returning either operand verbatim (spec.md §4.4, §9).
func (in *Interpreter) evalLogical(e *ast.Logical) (ast.Value, error) {
	left, err := in.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	switch e.Op.Kind {
	case lexer.Or:
		if left.IsTruthy() {
			return ast.Bool(true), nil
		}
		right, err := in.evalExpr(e.Right)
		if err != nil {
			return nil, err
		}
		return ast.Bool(right.IsTruthy()), nil
	case lexer.And:
		if !left.IsTruthy() {
			return ast.Bool(false), nil
		}
		right, err := in.evalExpr(e.Right)
		if err != nil {
			return nil, err
		}
		return ast.Bool(right.IsTruthy()), nil
	}
	panic("interp: logical node received non-logical token")
}

func (in *Interpreter) evalFunCall(e *ast.FunCall) (ast.Value, error) {
	callee, err := in.evalExpr(e.Callee)
	if err != nil {
		return nil, err
	}
	cv, ok := callee.(ast.CallableValue)
	if !ok {
		return nil, &Error{Token: e.ClosingParen, Kind: ExpectedCallable}
	}
	if cv.Callable.Arity() != len(e.Args) {
		return nil, &Error{Token: e.ClosingParen, Kind: CallableBadArgsCount}
	}
	args := make([]ast.Value, len(e.Args))
	for i, argExpr := range e.Args {
		v, err := in.evalExpr(argExpr)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return cv.Callable.Call(in, args)
}

// ExecStmt runs one statement, returning any pending ControlSignal a
// Return statement (propagated up through blocks/conditionals) produced.
func (in *Interpreter) ExecStmt(stmt ast.Stmt) (ast.ControlSignal, error) {
	switch s := stmt.(type) {
	case *ast.PrintStmt:
		return in.execPrintStmt(s)
	case *ast.ExprStmt:
		_, err := in.evalExpr(s.Expr)
		return ast.None, err
	case *ast.VarDecl:
		return in.execVarDecl(s)
	case *ast.Block:
		return in.execBlock(s.Stmts)
	case *ast.If:
		return in.execIfStmt(s)
	case *ast.While:
		return in.execWhileStmt(s)
	case *ast.FunDecl:
		return in.execFunDecl(s)
	case *ast.Return:
		value, err := in.evalExpr(s.Expr)
		if err != nil {
			return ast.None, err
		}
		return ast.ReturnSignal(value), nil
	}
	panic("interp: unknown stmt type")
}

func (in *Interpreter) execPrintStmt(s *ast.PrintStmt) (ast.ControlSignal, error) {
	value, err := in.evalExpr(s.Expr)
	if err != nil {
		return ast.None, err
	}
	fmt.Fprintln(in.out, value.String())
	return ast.None, nil
}

func (in *Interpreter) execVarDecl(s *ast.VarDecl) (ast.ControlSignal, error) {
	var value ast.Value = ast.Nil{}
	if s.Initializer != nil {
		v, err := in.evalExpr(s.Initializer)
		if err != nil {
			return ast.None, err
		}
		value = v
	}
	in.Declare(s.Name.Identifier(), value)
	return ast.None, nil
}

// execBlock pushes a fresh frame, runs each statement, and pops the
// frame on the way out — including the early-return path, so a Return
// signal propagating through a block never leaks its frame.
func (in *Interpreter) execBlock(stmts []ast.Stmt) (ast.ControlSignal, error) {
	in.BeginScope()
	for _, stmt := range stmts {
		signal, err := in.ExecStmt(stmt)
		if err != nil {
			in.EndScope()
			return ast.None, err
		}
		if signal.IsReturn() {
			in.EndScope()
			return signal, nil
		}
	}
	in.EndScope()
	return ast.None, nil
}

func (in *Interpreter) execIfStmt(s *ast.If) (ast.ControlSignal, error) {
	value, err := in.evalExpr(s.Condition)
	if err != nil {
		return ast.None, err
	}
	if value.IsTruthy() {
		return in.ExecStmt(s.Then)
	}
	if s.Else != nil {
		return in.ExecStmt(s.Else)
	}
	return ast.None, nil
}

// execWhileStmt deliberately discards the body's ControlSignal: a
// Return inside a while loop ends the loop iteration but does not
// propagate out of the loop (spec.md §4.4, §9).
func (in *Interpreter) execWhileStmt(s *ast.While) (ast.ControlSignal, error) {
	for {
		value, err := in.evalExpr(s.Condition)
		if err != nil {
			return ast.None, err
		}
		if !value.IsTruthy() {
			break
		}
		if _, err := in.ExecStmt(s.Body); err != nil {
			return ast.None, err
		}
	}
	return ast.None, nil
}

func (in *Interpreter) execFunDecl(s *ast.FunDecl) (ast.ControlSignal, error) {
	fn := newLoxFunction(s.Name, s.Params, s.Body, in.environment)
	in.environment.declare(s.Name.Identifier(), ast.CallableValue{Callable: fn})
	return ast.None, nil
}
