package interp

import (
	"github.com/loxbrew/loxbrew/ast"
	"github.com/loxbrew/loxbrew/lexer"
)

// LoxFunction is a user-declared function value: its parameter list, its
// body, and the environment frame live at the point it was declared
// (its closure). Grounded on
// original_source/src/interpreter/callable/fun.rs's LoxFunction.
type LoxFunction struct {
	name        lexer.Token
	params      []lexer.Token
	body        *ast.Block
	environment *Environment
}

func newLoxFunction(name lexer.Token, params []lexer.Token, body *ast.Block, environment *Environment) *LoxFunction {
	return &LoxFunction{name: name, params: params, body: body, environment: environment}
}

func (f *LoxFunction) Name() string {
	return f.name.Identifier()
}

func (f *LoxFunction) Arity() int {
	return len(f.params)
}

// Call swaps in the closure's environment, pushes a fresh frame for the
// call, binds each argument to its parameter name, runs the body, then
// restores the caller's environment. A body that falls off the end
// without hitting Return yields Nil.
func (f *LoxFunction) Call(interpreter ast.Interpreter, args []ast.Value) (ast.Value, error) {
	old := interpreter.SwapEnvironment(f.environment)
	interpreter.BeginScope()
	for i, arg := range args {
		interpreter.Declare(f.params[i].Identifier(), arg)
	}

	signal, err := interpreter.ExecStmt(f.body)
	if err != nil {
		interpreter.EndScope()
		interpreter.SwapEnvironment(old)
		return nil, err
	}

	var result ast.Value = ast.Nil{}
	if signal.IsReturn() {
		result = signal.Value()
	}

	interpreter.EndScope()
	interpreter.SwapEnvironment(old)
	return result, nil
}
