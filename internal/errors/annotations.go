package errors

import (
	"fmt"
	"strings"
)

// ParseError reports malformed tag syntax or an unparseable value token
type ParseError struct {
	*BaseError
	Kind  string // tag name being parsed
	Token string // offending token, if any
}

// NewParseError creates a parse error for the named tag
func NewParseError(kind, message string) *ParseError {
	err := &ParseError{
		BaseError: New(ParseErrorCode, message),
		Kind:      kind,
	}
	if kind != "" {
		err.WithContext("annotation", kind)
	}
	return err
}

// NewParseErrorWithToken creates a parse error that names the offending token
func NewParseErrorWithToken(kind, token string, cause error) *ParseError {
	err := &ParseError{
		BaseError: Wrap(ParseErrorCode, fmt.Sprintf("cannot evaluate %q", token), cause),
		Kind:      kind,
		Token:     token,
	}
	err.WithSuggestion(generateParseSuggestion(token))
	if kind != "" {
		err.WithContext("annotation", kind)
	}
	return err
}

// WithLocation adds location information to the error
func (e *ParseError) WithLocation(loc SourceLocation) *ParseError {
	e.BaseError.WithLocation(loc)
	return e
}

// WithElement records the element whose documentation failed to parse
func (e *ParseError) WithElement(element string) *ParseError {
	e.BaseError.WithContext("element", element)
	return e
}

// TargetViolation reports an annotation kind attached to an element category
// it does not permit
type TargetViolation struct {
	*BaseError
	Kind    string // annotation kind name
	Element string // offending element name
	Allowed int    // allowed category mask
	Actual  int    // element category mask
}

// NewTargetViolation creates a target violation for kind on element
func NewTargetViolation(kind, element string, allowed, actual int) *TargetViolation {
	err := &TargetViolation{
		BaseError: Newf(TargetViolationCode, "invalid annotation %q for %q", kind, element),
		Kind:      kind,
		Element:   element,
		Allowed:   allowed,
		Actual:    actual,
	}
	err.WithContext("annotation", kind)
	err.WithContext("element", element)
	err.WithSuggestion(fmt.Sprintf("Move @%s to an element it targets, or widen its @AnnotationTarget", kind))
	return err
}

// WithLocation adds location information to the error
func (e *TargetViolation) WithLocation(loc SourceLocation) *TargetViolation {
	e.BaseError.WithLocation(loc)
	return e
}

// InvalidProperty reports a named property that the kind does not declare, or
// a value that cannot be stored in it
type InvalidProperty struct {
	*BaseError
	Kind     string // annotation kind name
	Property string // property name
}

// NewInvalidProperty creates an error for an undeclared property
func NewInvalidProperty(kind, property string) *InvalidProperty {
	err := &InvalidProperty{
		BaseError: Newf(InvalidPropertyCode, "invalid property %s for annotation %s", property, kind),
		Kind:      kind,
		Property:  property,
	}
	err.WithContext("annotation", kind)
	err.WithSuggestion(fmt.Sprintf("Check the spelling of %q against the fields of %s", property, kind))
	return err
}

// NewInvalidPropertyValue creates an error for a value that does not fit the property
func NewInvalidPropertyValue(kind, property string, cause error) *InvalidProperty {
	err := &InvalidProperty{
		BaseError: Wrapf(InvalidPropertyCode, cause, "cannot assign property %s of annotation %s", property, kind),
		Kind:      kind,
		Property:  property,
	}
	err.WithContext("annotation", kind)
	return err
}

// WithLocation adds location information to the error
func (e *InvalidProperty) WithLocation(loc SourceLocation) *InvalidProperty {
	e.BaseError.WithLocation(loc)
	return e
}

// RegistrationError reports a kind, type or constant that cannot be registered
type RegistrationError struct {
	*BaseError
	ItemType string // "kind", "type" or "constant"
	ItemName string
}

// NewRegistrationError creates a new registration error
func NewRegistrationError(itemType, itemName, message string) *RegistrationError {
	return &RegistrationError{
		BaseError: Newf(RegistrationErrorCode, "failed to register %s '%s': %s", itemType, itemName, message),
		ItemType:  itemType,
		ItemName:  itemName,
	}
}

// NewLoadError creates an error for packages that could not be loaded
func NewLoadError(pattern string, cause error) *BaseError {
	return Wrapf(LoadErrorCode, cause, "failed to load %s", pattern).
		WithContext("pattern", pattern)
}

// generateParseSuggestion provides a hint for the most common token mistakes
func generateParseSuggestion(token string) string {
	switch {
	case token == "":
		return "Remove the empty argument"
	case token[0] == '\'' || token[0] == '"':
		return "Close the quoted string with the same quote character"
	case strings.ContainsAny(token, "()+*/"):
		return "Only literals, quoted strings, lists and constant references are allowed"
	default:
		return "Constant references must name a registered constant, e.g. Type::NAME or Type.NAME"
	}
}
