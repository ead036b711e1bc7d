package parser

import (
	"fmt"

	"github.com/loxbrew/loxbrew/lexer"
)

// ErrorKind distinguishes the two ways the grammar rejects a token
// stream: an expected-but-missing construct, or a general "nothing here
// parses as an expression".
type ErrorKind int

const (
	// ExpectedExpression means the current token starts no valid primary.
	ExpectedExpression ErrorKind = iota
	// Expected means a specific token/construct (named by Want) was
	// required but not found.
	Expected
)

// Error is one parse diagnostic, always anchored to the offending token.
type Error struct {
	Token lexer.Token
	Kind  ErrorKind
	// Want names the expected construct when Kind is Expected, e.g. "identifier" or ";".
	Want string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ExpectedExpression:
		return fmt.Sprintf("%s, expected an expression", e.Token)
	case Expected:
		return fmt.Sprintf("%s, expected '%s'", e.Token, e.Want)
	}
	return fmt.Sprintf("%s, parse error", e.Token)
}
