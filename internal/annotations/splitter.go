package annotations

import (
	"regexp"
	"strings"

	"github.com/toyz/annotate/internal/errors"
)

var propertyKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Property is a named key/value pair from a tag's argument list
type Property struct {
	Name  string
	Value any
}

// Arguments holds the evaluated contents of a tag's parentheses. At most one
// of Positional and Named is non-empty.
type Arguments struct {
	Positional []any      // constructor arguments, in order
	Named      []Property // named properties, in source order
}

// IsEmpty reports whether the tag carried no arguments at all
func (a *Arguments) IsEmpty() bool {
	return len(a.Positional) == 0 && len(a.Named) == 0
}

// NamedMap returns the named properties keyed by name; later duplicates win
func (a *Arguments) NamedMap() map[string]any {
	result := make(map[string]any, len(a.Named))
	for _, p := range a.Named {
		result[p.Name] = p.Value
	}
	return result
}

// SplitArguments splits a raw argument list on top-level commas. Commas inside
// brackets or quotes do not split. Blank tokens are dropped.
func SplitArguments(raw string) []string {
	var tokens []string
	for _, token := range splitTopLevel(raw) {
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// ParseArguments splits and evaluates the argument list of the tag named kind.
// Mixing positional arguments and named properties is a parse error.
func ParseArguments(kind, raw string, eval *Evaluator) (*Arguments, error) {
	args := &Arguments{}

	for _, token := range SplitArguments(raw) {
		if key, value, ok := splitProperty(token); ok {
			evaluated, err := eval.Evaluate(value)
			if err != nil {
				return nil, errors.NewParseErrorWithToken(kind, strings.TrimSpace(value), err)
			}
			args.Named = append(args.Named, Property{Name: key, Value: evaluated})
			continue
		}

		evaluated, err := eval.Evaluate(token)
		if err != nil {
			return nil, errors.NewParseErrorWithToken(kind, token, err)
		}
		args.Positional = append(args.Positional, evaluated)
	}

	if len(args.Positional) > 0 && len(args.Named) > 0 {
		return nil, errors.NewParseError(kind,
			"annotation \""+kind+"\" cannot use both named properties and constructor arguments")
	}

	return args, nil
}

// splitProperty recognizes "key=value" where key is an identifier and the
// = sign is past the first character
func splitProperty(token string) (key, value string, ok bool) {
	idx := strings.IndexByte(token, '=')
	if idx <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(token[:idx])
	if !propertyKeyPattern.MatchString(key) {
		return "", "", false
	}
	return key, token[idx+1:], true
}
