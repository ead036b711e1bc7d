package interp

import (
	"fmt"

	"github.com/loxbrew/loxbrew/ast"
	"github.com/loxbrew/loxbrew/lexer"
)

// ErrorKind enumerates the ways evaluating an otherwise well-formed,
// resolved program can still fail at runtime (spec.md §4.4, §7).
type ErrorKind int

const (
	UndefinedOpBetween ErrorKind = iota
	ExpectedNumber
	CallableBadArgsCount
	ExpectedCallable
)

// Error is one runtime diagnostic, anchored to the operator or call-site
// token responsible.
type Error struct {
	Token ErrorToken
	Kind  ErrorKind
	Left  ast.Value // set only for UndefinedOpBetween
	Right ast.Value // set only for UndefinedOpBetween
}

// ErrorToken is the subset of lexer.Token an Error needs to render;
// kept as its own alias so callers don't need to import lexer just to
// build an interp.Error by hand in tests.
type ErrorToken = lexer.Token

func (e *Error) Error() string {
	switch e.Kind {
	case UndefinedOpBetween:
		return fmt.Sprintf("%s is not defined between %s and %s", e.Token, e.Left.String(), e.Right.String())
	case ExpectedNumber:
		return fmt.Sprintf("%s expected a number", e.Token)
	case CallableBadArgsCount:
		return fmt.Sprintf("%s called with too few or too many args", e.Token)
	case ExpectedCallable:
		return fmt.Sprintf("%s expected callable", e.Token)
	}
	return fmt.Sprintf("%s runtime error", e.Token)
}
