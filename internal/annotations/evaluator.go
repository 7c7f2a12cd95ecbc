package annotations

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	// ErrEmptyValue is returned for a blank value token
	ErrEmptyValue = errors.New("empty value")

	// ErrUnknownConstant is returned for a constant path nothing resolves
	ErrUnknownConstant = errors.New("unknown constant")
)

// ConstantResolver looks up a constant by its dotted path, e.g. "Holder.FOO"
type ConstantResolver func(path string) (any, bool)

// literal is the restricted grammar accepted for unquoted values
type literal struct {
	Float *float64 `parser:"  @Float"`
	Int   *string  `parser:"| @Int"`
	Path  []string `parser:"| @Ident ( Scope @Ident )*"`
}

var literalLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Float", Pattern: `[-+]?(\d+\.\d*|\.\d+)([eE][-+]?\d+)?|[-+]?\d+[eE][-+]?\d+`},
	{Name: "Int", Pattern: `[-+]?(0[xX][0-9a-fA-F_]+|0[bB][01_]+|0[oO][0-7_]+|\d[\d_]*)`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Scope", Pattern: `::|\.`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// Evaluator converts raw value tokens into typed values: strings, int64,
// float64, bool, nil, []any lists and resolved constants. It never executes
// the token.
type Evaluator struct {
	parser  *participle.Parser[literal]
	resolve ConstantResolver
}

// NewEvaluator creates an evaluator that resolves constant paths with resolve.
// A nil resolver rejects every constant reference.
func NewEvaluator(resolve ConstantResolver) *Evaluator {
	parser := participle.MustBuild[literal](
		participle.Lexer(literalLexer),
		participle.Elide("Whitespace"),
	)

	return &Evaluator{
		parser:  parser,
		resolve: resolve,
	}
}

// Evaluate converts a single token.
//
// Priority: bracketed list, comma-separated list, quoted string, then the
// literal grammar (numbers, booleans, null and constant paths).
func (e *Evaluator) Evaluate(token string) (any, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrEmptyValue
	}

	if isBracketed(token) {
		inner := strings.TrimSpace(token[1 : len(token)-1])
		if inner == "" {
			return []any{}, nil
		}
		return e.evaluateList(splitTopLevel(inner))
	}

	if parts := splitTopLevel(token); len(parts) > 1 {
		return e.evaluateList(parts)
	}

	if isQuoted(token) {
		return token[1 : len(token)-1], nil
	}

	return e.evaluateLiteral(token)
}

func (e *Evaluator) evaluateList(parts []string) ([]any, error) {
	values := make([]any, 0, len(parts))
	for _, part := range parts {
		value, err := e.Evaluate(part)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

func (e *Evaluator) evaluateLiteral(token string) (any, error) {
	lit, err := e.parser.ParseString("", token)
	if err != nil {
		return nil, fmt.Errorf("not a literal or constant reference: %w", err)
	}

	switch {
	case lit.Float != nil:
		return *lit.Float, nil
	case lit.Int != nil:
		n, err := strconv.ParseInt(*lit.Int, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %s: %w", *lit.Int, err)
		}
		return n, nil
	default:
		return e.evaluatePath(lit.Path)
	}
}

func (e *Evaluator) evaluatePath(segments []string) (any, error) {
	if len(segments) == 1 {
		switch strings.ToLower(segments[0]) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "null", "nil":
			return nil, nil
		}
	}

	path := strings.Join(segments, ".")
	if e.resolve != nil {
		if value, ok := e.resolve(path); ok {
			return value, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownConstant, path)
}

// NormalizePath rewrites a constant path to its dotted form: "A::B" becomes "A.B"
func NormalizePath(path string) string {
	return strings.ReplaceAll(strings.TrimSpace(path), "::", ".")
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	return (first == '"' || first == '\'') && first == last
}

func isBracketed(s string) bool {
	return len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']' && closingBracket(s) == len(s)-1
}

// closingBracket returns the index of the bracket closing s[0], or -1
func closingBracket(s string) int {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits s on commas that are outside brackets and quotes.
// Parts are trimmed; a single part is returned when s has no such comma.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			if depth > 0 {
				depth--
			}
		case c == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}

	return append(parts, strings.TrimSpace(s[start:]))
}
