package parser

import (
	"fmt"

	"github.com/dhamidi/rsx/markup/token"
)

// ErrorKind classifies a SyntaxError. It implements error so callers can
// write errors.Is(err, parser.TagNameMismatch).
type ErrorKind int

const (
	GrammarMismatch ErrorKind = iota
	OrphanCloseTag
	UnterminatedOpenTag
	TagNameMismatch
	MalformedAttribute
	MalformedEmbeddedExpression
)

var errorKindNames = map[ErrorKind]string{
	GrammarMismatch:             "GrammarMismatch",
	OrphanCloseTag:              "OrphanCloseTag",
	UnterminatedOpenTag:         "UnterminatedOpenTag",
	TagNameMismatch:             "TagNameMismatch",
	MalformedAttribute:          "MalformedAttribute",
	MalformedEmbeddedExpression: "MalformedEmbeddedExpression",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

func (k ErrorKind) Error() string {
	return k.String()
}

// SyntaxError is the single error type returned by Parse. Pos is the start of
// the token that caused it.
type SyntaxError struct {
	Kind    ErrorKind
	Pos     token.Position
	Message string
	Err     error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func (e *SyntaxError) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

func errorf(kind ErrorKind, pos token.Position, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Kind:    kind,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}
