package resolver

import "github.com/loxbrew/loxbrew/lexer"

// variableState tracks one declared name's lifecycle within a single
// scope frame: whether it was ever given a value, and whether it was
// ever read, so end-of-scope can flag dead declarations.
type variableState struct {
	token        lexer.Token
	everAssigned bool
	everRead     bool
}

func newVariableState(token lexer.Token) *variableState {
	return &variableState{token: token}
}

func (v *variableState) markAssigned() {
	v.everAssigned = true
}

func (v *variableState) markRead() {
	v.everRead = true
}

// check reports the variable's fate at scope exit: unassigned takes
// priority over unused, matching original_source's VariableState::check.
func (v *variableState) check() error {
	if !v.everAssigned {
		return &Error{Token: v.token, Kind: UnassignedVariable}
	}
	if !v.everRead {
		return &Error{Token: v.token, Kind: UnusedVariable}
	}
	return nil
}
