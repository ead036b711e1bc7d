package loxbrew

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loxbrew/loxbrew/lexer"
	"github.com/loxbrew/loxbrew/resolver"
)

func runToString(t *testing.T, src string) (string, *Diagnostics) {
	t.Helper()
	var out strings.Builder
	diags := Run(src, &out)
	return strings.TrimRight(out.String(), "\n"), diags
}

func TestRun_ArithmeticScenario(t *testing.T) {
	out, diags := runToString(t, `var a = 1 + 2 * (3 - 3) - 1; print a;`)
	assert.True(t, diags.Empty())
	assert.Equal(t, "0", out)
}

func TestRun_FunctionAndConditionalScenario(t *testing.T) {
	out, diags := runToString(t, `
fun boolT(t){ if(t){ print "true"; } else { print "false"; } }
boolT(true); boolT(false);
`)
	assert.True(t, diags.Empty())
	assert.Equal(t, "true\nfalse", out)
}

func TestRun_WhileLoopScenario(t *testing.T) {
	out, diags := runToString(t, `var i = 0; while (i < 2) { print i; i = i + 1; }`)
	assert.True(t, diags.Empty())
	assert.Equal(t, "0\n1", out)
}

func TestRun_ClosureOverLaterParamsScenario(t *testing.T) {
	out, diags := runToString(t, `
fun make_adder(a,b){ fun add(){ return a + b; } return add; }
var adder = make_adder(1,1); print adder();
`)
	assert.True(t, diags.Empty())
	assert.Equal(t, "2", out)
}

func TestRun_ClosureCapturesByReferenceScenario(t *testing.T) {
	out, diags := runToString(t, `
var a = "global";
{ fun showA(){ print a; }
  showA();
  var a = "local";
  showA();
  print a; }
`)
	assert.True(t, diags.Empty())
	assert.Equal(t, "global\nglobal\nlocal", out)
}

func TestRun_NestedShadowingScenario(t *testing.T) {
	out, diags := runToString(t, `var a = 1; { var a = 2; { var a = 3; print a; } print a; } print a;`)
	assert.True(t, diags.Empty())
	assert.Equal(t, "3\n2\n1", out)
}

func TestRun_UndeclaredVariableDiagnostic(t *testing.T) {
	_, diags := runToString(t, `print a;`)
	assert.False(t, diags.Empty())
	if assert.Equal(t, 1, len(diags.Resolve)) {
		assert.Equal(t, resolver.UndeclaredVariable, diags.Resolve[0].Kind)
	}
}

func TestRun_UnassignedVariableDiagnostic(t *testing.T) {
	_, diags := runToString(t, `var a;`)
	assert.False(t, diags.Empty())
	assert.Equal(t, resolver.UnassignedVariable, diags.Resolve[0].Kind)
}

func TestRun_UnassignedVariableReadDiagnostic(t *testing.T) {
	_, diags := runToString(t, `var a; print a;`)
	assert.False(t, diags.Empty())
	assert.Equal(t, resolver.UnassignedVariable, diags.Resolve[0].Kind)
}

func TestRun_OvershadowingSameBlockDiagnostic(t *testing.T) {
	_, diags := runToString(t, `var a = 1; var a = 2;`)
	assert.False(t, diags.Empty())
	assert.Equal(t, resolver.OvershadowingSameBlock, diags.Resolve[0].Kind)
}

func TestRun_UnterminatedStringDiagnostic(t *testing.T) {
	_, diags := runToString(t, `"Hello`)
	assert.False(t, diags.Empty())
	assert.Equal(t, lexer.UnterminatedString, diags.Lex[0].Kind)
}

func TestRun_InvalidNumberDiagnostic(t *testing.T) {
	_, diags := runToString(t, `3.14.15`)
	assert.False(t, diags.Empty())
	assert.Equal(t, lexer.InvalidNumber, diags.Lex[0].Kind)
}

// TestRun_ReturnDoesNotEscapeWhileLoop checks spec.md §9's explicit
// decision: a Return inside a while body ends that body statement early
// (skipping whatever follows it in the same block) but does not stop
// the loop itself. The increment is placed before the conditional
// return so the loop still terminates.
func TestRun_ReturnDoesNotEscapeWhileLoop(t *testing.T) {
	out, diags := runToString(t, `
fun f() {
  var i = 0;
  while (i < 3) {
    i = i + 1;
    if (i == 2) { return i; }
    print i;
  }
  print "after";
  return 99;
}
print f();
`)
	assert.True(t, diags.Empty())
	assert.Equal(t, "1\n3\nafter\n99", out)
}

func TestRun_StrictTruthiness(t *testing.T) {
	out, diags := runToString(t, `
if (0) { print "zero truthy"; } else { print "zero falsy"; }
if ("") { print "empty truthy"; } else { print "empty falsy"; }
`)
	assert.True(t, diags.Empty())
	assert.Equal(t, "zero falsy\nempty falsy", out)
}

func TestRun_LogicalOperatorsCoerceToBool(t *testing.T) {
	out, diags := runToString(t, `print 1 or 2; print nil and 2;`)
	assert.True(t, diags.Empty())
	assert.Equal(t, "true\nfalse", out)
}

func TestRun_SingleCallSuffixOnly(t *testing.T) {
	_, diags := runToString(t, `
fun make_adder(a,b){ fun add(){ return a + b; } return add; }
print make_adder(1,1)();
`)
	assert.False(t, diags.Empty())
	assert.NotEmpty(t, diags.Parse)
}

func TestRun_UndefinedOperatorBetweenTypes(t *testing.T) {
	_, diags := runToString(t, `print "a" - 1;`)
	assert.False(t, diags.Empty())
	assert.NotNil(t, diags.Runtime)
}

func TestRun_CallableArityMismatch(t *testing.T) {
	_, diags := runToString(t, `
fun f(a) { print a; }
f(1, 2);
`)
	assert.False(t, diags.Empty())
	assert.NotNil(t, diags.Runtime)
}
