package interp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loxbrew/loxbrew/ast"
	"github.com/loxbrew/loxbrew/lexer"
	"github.com/loxbrew/loxbrew/parser"
	"github.com/loxbrew/loxbrew/resolver"
)

func run(t *testing.T, src string) string {
	t.Helper()
	tokens, lexErr := lexer.Tokenize(src)
	assert.Nil(t, lexErr)
	p := parser.New(tokens)
	stmts := p.Parse()
	assert.Empty(t, p.Errors())
	r := resolver.New()
	r.Resolve(stmts)
	assert.Empty(t, r.Errors())
	in := New(r)
	var out strings.Builder
	in.SetOutput(&out)
	assert.Nil(t, in.Interpret(stmts))
	return strings.TrimRight(out.String(), "\n")
}

func TestInterpret_NumberFormatting(t *testing.T) {
	assert.Equal(t, "3", run(t, `print 1 + 2;`))
	assert.Equal(t, "1.5", run(t, `print 3 / 2;`))
}

func TestInterpret_StringConcatenation(t *testing.T) {
	assert.Equal(t, "ab", run(t, `print "a" + "b";`))
}

func TestInterpret_EqualityAcrossTypesIsFalse(t *testing.T) {
	assert.Equal(t, "false", run(t, `print 1 == "1";`))
	assert.Equal(t, "true", run(t, `print nil == nil;`))
}

func TestInterpret_AssignmentReturnsAssignedValue(t *testing.T) {
	assert.Equal(t, "5", run(t, `var a = 1; print a = a + 4;`))
}

func TestInterpret_EnvironmentSharedByReferenceForClosures(t *testing.T) {
	env := newEnvironment()
	env.declare("x", ast.Number(1))

	inner := newEnvironmentWithEnclosing(env)
	assert.Equal(t, ast.Number(1), inner.getAtDepth(1, "x"))

	env.assignAtDepth(0, "x", ast.Number(2))
	assert.Equal(t, ast.Number(2), inner.getAtDepth(1, "x"))
}

func TestInterpret_UnaryMinusRequiresNumber(t *testing.T) {
	tokens, _ := lexer.Tokenize(`print -"a";`)
	p := parser.New(tokens)
	stmts := p.Parse()
	r := resolver.New()
	r.Resolve(stmts)
	in := New(r)
	var out strings.Builder
	in.SetOutput(&out)
	err := in.Interpret(stmts)
	if assert.NotNil(t, err) {
		rtErr, ok := err.(*Error)
		assert.True(t, ok)
		assert.Equal(t, ExpectedNumber, rtErr.Kind)
	}
}
