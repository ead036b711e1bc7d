package interp

import "github.com/loxbrew/loxbrew/ast"

// Environment is one frame of variable bindings plus a pointer to the
// enclosing frame. Frames are shared by reference — a closure keeps a
// pointer to the frame chain live at the time its function was declared,
// so later assignments in an enclosing frame are visible to it. This is
// the opposite of the teacher's Scope.Copy(), which shallow-copies
// bindings; copying would break closures over variables assigned after
// the closure is created, which spec.md's closure tests require.
type Environment struct {
	variables map[string]ast.Value
	enclosing *Environment
}

func newEnvironment() *Environment {
	return &Environment{variables: make(map[string]ast.Value)}
}

func newEnvironmentWithEnclosing(enclosing *Environment) *Environment {
	return &Environment{variables: make(map[string]ast.Value), enclosing: enclosing}
}

func (e *Environment) environmentMarker() {}

func (e *Environment) declare(name string, value ast.Value) {
	e.variables[name] = value
}

// getAtDepth fetches a variable known (via the resolver) to live exactly
// depth frames out. Panics if the resolver's depth is stale relative to
// the live frame chain, which would be a resolver/interpreter bug, not a
// user-facing error.
func (e *Environment) getAtDepth(depth int, name string) ast.Value {
	if depth == 0 {
		v, ok := e.variables[name]
		if !ok {
			panic("interp: expected env at depth to contain reference")
		}
		return v
	}
	if e.enclosing == nil {
		panic("interp: expected env at depth to exist")
	}
	return e.enclosing.getAtDepth(depth-1, name)
}

func (e *Environment) assignAtDepth(depth int, name string, value ast.Value) {
	if depth == 0 {
		if _, ok := e.variables[name]; !ok {
			panic("interp: expected env at depth to contain reference")
		}
		e.variables[name] = value
		return
	}
	if e.enclosing == nil {
		panic("interp: expected env at depth to exist")
	}
	e.enclosing.assignAtDepth(depth-1, name, value)
}
