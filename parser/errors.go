package parser

import (
	"fmt"
	"strings"

	"github.com/juju/errors"

	"github.com/litesql/litesql/internal/token"
)

// ParseError is the taxonomy described in spec §7: UnexpectedEOF,
// UnexpectedToken, Custom. Input the lexer cannot classify arrives as an
// ILLEGAL token and is reported as UnexpectedToken. Every production that fails wraps one of these with
// github.com/juju/errors so callers that want the underlying cause can
// recover it with errors.Cause.
type ParseError struct {
	Kind     ErrorKind
	Offset   int
	Expected []token.Type
	Got      token.Type
	Message  string
}

type ErrorKind int

const (
	ErrUnexpectedEOF ErrorKind = iota
	ErrUnexpectedToken
	ErrCustom
)

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrUnexpectedEOF:
		return fmt.Sprintf("unexpected end of input at offset %d", e.Offset)
	case ErrUnexpectedToken:
		names := make([]string, len(e.Expected))
		for i, t := range e.Expected {
			names[i] = token.Name(t)
		}
		return fmt.Sprintf("at offset %d: expected %s, got %s",
			e.Offset, strings.Join(names, " or "), token.Name(e.Got))
	default:
		return fmt.Sprintf("at offset %d: %s", e.Offset, e.Message)
	}
}

func unexpectedEOF(offset int) error {
	return errors.Trace(&ParseError{Kind: ErrUnexpectedEOF, Offset: offset})
}

func unexpectedToken(offset int, got token.Type, expected ...token.Type) error {
	return errors.Trace(&ParseError{
		Kind:     ErrUnexpectedToken,
		Offset:   offset,
		Expected: expected,
		Got:      got,
	})
}

func customErrorf(offset int, format string, args ...interface{}) error {
	return errors.Trace(&ParseError{
		Kind:    ErrCustom,
		Offset:  offset,
		Message: fmt.Sprintf(format, args...),
	})
}

// AsParseError unwraps err (which may be wrapped by juju/errors) back to
// the underlying *ParseError, the required test oracle for error kind.
func AsParseError(err error) (*ParseError, bool) {
	cause := errors.Cause(err)
	pe, ok := cause.(*ParseError)
	return pe, ok
}
