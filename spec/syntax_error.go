package spec

import "fmt"

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.message)
}

var (
	// lexical errors
	synErrInvalidToken = newSyntaxError("invalid token")

	// syntax errors
	synErrNoProduction        = newSyntaxError("a description must have at least one production")
	synErrNoProductionName    = newSyntaxError("a production name is missing")
	synErrNoDefine            = newSyntaxError("`::=` must follow the name of a production")
	synErrDirNoParameter      = newSyntaxError("a directive needs at least one parameter")
	synErrDefineInRHS         = newSyntaxError("`::=` cannot appear in a right-hand side")
	synErrDirectiveInRHS      = newSyntaxError("a directive cannot appear in a right-hand side")
	synErrDirectiveAfterProds = newSyntaxError("directives must precede productions")
)
