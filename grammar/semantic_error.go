package grammar

import (
	"fmt"
	"strings"
)

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	// construction
	semErrNoProduction      = newSemanticError("a grammar needs at least one production")
	semErrNoProductionForNT = newSemanticError("a non-terminal needs at least one production")
	semErrUndefinedSym      = newSemanticError("undefined symbol")
	semErrUndefinedStart    = newSemanticError("the start symbol must be a declared non-terminal")
	semErrLHSNotNonTerminal = newSemanticError("the LHS of a production must be a non-terminal")
	semErrDuplicateName     = newSemanticError("duplicate names are not allowed between terminals and non-terminals")
	semErrReservedName      = newSemanticError("reserved name")
	semErrInvalidNTName     = newSemanticError("a non-terminal name must not contain '/'")
	semErrUnclosedBracket   = newSemanticError("unclosed bracket")
	semErrUnopenedBracket   = newSemanticError("a closing bracket has no opening bracket")
	semErrMismatchedBracket = newSemanticError("mismatched brackets")
	semErrEmptyBranch       = newSemanticError("an alternation branch must not be empty")
	semErrEmptyGroup        = newSemanticError("a group must not be empty")
	semErrEmptyRepetition   = newSemanticError("a repetition must not be empty")

	// description file
	semErrDirInvalidName  = newSemanticError("invalid directive name")
	semErrDirInvalidParam = newSemanticError("invalid parameter")
	semErrDuplicateDir    = newSemanticError("a directive must not be duplicated")

	// query
	semErrUndefinedNonTerminal = newSemanticError("undefined non-terminal")
)

// ValidationError is an error found while constructing a grammar. A grammar that
// produced one is never usable.
type ValidationError struct {
	Cause  *SemanticError
	Detail string

	// Production is the 1-based position of the offending production in the input, or 0.
	Production int
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Production > 0 {
		fmt.Fprintf(&b, "production %v: ", e.Production)
	}
	fmt.Fprintf(&b, "%v", e.Cause)
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %v", e.Detail)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%v", e[0])
	for _, err := range e[1:] {
		fmt.Fprintf(&b, "\n%v", err)
	}
	return b.String()
}

// QueryError is an error of a single query. The engine stays usable.
type QueryError struct {
	Cause  *SemanticError
	Detail string
}

func (e *QueryError) Error() string {
	if e.Detail == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%v: %v", e.Cause, e.Detail)
}

func (e *QueryError) Unwrap() error {
	return e.Cause
}
