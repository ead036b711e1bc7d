package resolver

import (
	"fmt"

	"github.com/loxbrew/loxbrew/lexer"
)

// ErrorKind distinguishes the four static diagnostics the resolver can
// raise against a single identifier token (spec.md §4.3).
type ErrorKind int

const (
	UnassignedVariable ErrorKind = iota
	UnusedVariable
	UndeclaredVariable
	OvershadowingSameBlock
)

// Error is one static-binding diagnostic, anchored to the offending
// identifier token.
type Error struct {
	Token lexer.Token
	Kind  ErrorKind
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnassignedVariable:
		return fmt.Sprintf("%s unassigned reference", e.Token)
	case UnusedVariable:
		return fmt.Sprintf("%s unused reference", e.Token)
	case UndeclaredVariable:
		return fmt.Sprintf("%s undeclared reference", e.Token)
	case OvershadowingSameBlock:
		return fmt.Sprintf("%s overshadowing reference in the same block", e.Token)
	}
	return fmt.Sprintf("%s resolve error", e.Token)
}
