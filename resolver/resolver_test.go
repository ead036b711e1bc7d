package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loxbrew/loxbrew/ast"
	"github.com/loxbrew/loxbrew/lexer"
	"github.com/loxbrew/loxbrew/parser"
)

func resolveSource(t *testing.T, src string) (*Resolver, []*Error) {
	t.Helper()
	tokens, lexErr := lexer.Tokenize(src)
	assert.Nil(t, lexErr)
	p := parser.New(tokens)
	stmts := p.Parse()
	assert.Empty(t, p.Errors())
	r := New()
	r.Resolve(stmts)
	return r, r.Errors()
}

func TestResolve_SimpleVarUseIsClean(t *testing.T) {
	_, errs := resolveSource(t, `var x = 1; print x;`)
	assert.Empty(t, errs)
}

func TestResolve_UndeclaredVariable(t *testing.T) {
	_, errs := resolveSource(t, `print x;`)
	if assert.Equal(t, 1, len(errs)) {
		assert.Equal(t, UndeclaredVariable, errs[0].Kind)
	}
}

func TestResolve_UnassignedVariable(t *testing.T) {
	_, errs := resolveSource(t, `{ var x; print x; }`)
	if assert.Equal(t, 1, len(errs)) {
		assert.Equal(t, UnassignedVariable, errs[0].Kind)
	}
}

func TestResolve_UnusedVariable(t *testing.T) {
	_, errs := resolveSource(t, `{ var x = 1; }`)
	if assert.Equal(t, 1, len(errs)) {
		assert.Equal(t, UnusedVariable, errs[0].Kind)
	}
}

func TestResolve_OvershadowingSameBlock(t *testing.T) {
	_, errs := resolveSource(t, `{ var x = 1; var x = 2; print x; }`)
	if assert.Equal(t, 1, len(errs)) {
		assert.Equal(t, OvershadowingSameBlock, errs[0].Kind)
	}
}

func TestResolve_ShadowingAcrossBlocksIsFine(t *testing.T) {
	_, errs := resolveSource(t, `var x = 1; { var x = 2; print x; } print x;`)
	assert.Empty(t, errs)
}

func TestResolve_InitializerBindsToOuterScope(t *testing.T) {
	r, errs := resolveSource(t, `var a = 1; { var a = a; print a; }`)
	assert.Empty(t, errs)
	_ = r
}

func TestResolve_FunctionParamsAreDeclaredAssigned(t *testing.T) {
	_, errs := resolveSource(t, `fun f(a) { print a; } f(1);`)
	assert.Empty(t, errs)
}

func TestResolve_BoundDepthMatchesNesting(t *testing.T) {
	tokens, _ := lexer.Tokenize(`var x = 1; { print x; }`)
	p := parser.New(tokens)
	stmts := p.Parse()
	r := New()
	r.Resolve(stmts)
	assert.Empty(t, r.Errors())
	use := stmts[1].(*ast.Block).Stmts[0].(*ast.PrintStmt).Expr.(*ast.Variable)
	assert.Equal(t, 1, r.BoundDepth(use.ID))
}
