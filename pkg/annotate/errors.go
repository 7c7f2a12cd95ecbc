package annotate

import (
	"errors"

	annotateerrors "github.com/toyz/annotate/internal/errors"
)

// Error types surfaced by annotation queries. Use errors.As to inspect them.
type (
	// ParseError reports malformed tag syntax or an unparseable value
	ParseError = annotateerrors.ParseError
	// TargetViolation reports a kind attached to an element category it does not permit
	TargetViolation = annotateerrors.TargetViolation
	// InvalidProperty reports a named property the kind does not declare
	InvalidProperty = annotateerrors.InvalidProperty
	// RegistrationError reports a kind, type or constant that cannot be registered
	RegistrationError = annotateerrors.RegistrationError
	// SourceLocation is where an element is declared, when known
	SourceLocation = annotateerrors.SourceLocation
	// ErrorCode classifies annotation errors
	ErrorCode = annotateerrors.ErrorCode
)

// Error codes
const (
	ParseErrorCode        = annotateerrors.ParseErrorCode
	TargetViolationCode   = annotateerrors.TargetViolationCode
	InvalidPropertyCode   = annotateerrors.InvalidPropertyCode
	RegistrationErrorCode = annotateerrors.RegistrationErrorCode
	LoadErrorCode         = annotateerrors.LoadErrorCode
)

// ErrTypeNotFound is returned when an inspected type is not declared
var ErrTypeNotFound = errors.New("type not found")

// CodeOf returns the error code carried by err, or the unknown code
func CodeOf(err error) ErrorCode {
	return annotateerrors.CodeOf(err)
}

// asAnnotateError wraps errors raised by a Host implementation that do not
// already carry an annotation error code
func asAnnotateError(kind string, err error) error {
	var ae annotateerrors.AnnotateError
	if errors.As(err, &ae) {
		return err
	}
	perr := annotateerrors.NewParseError(kind, "cannot instantiate annotation \""+kind+"\"")
	perr.WithCause(err)
	return perr
}
