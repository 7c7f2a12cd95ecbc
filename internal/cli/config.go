package cli

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Output formats
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Config holds the configuration for the annotate CLI
type Config struct {
	// Patterns are the package patterns to load, e.g. ./...
	Patterns []string

	// Dir is the directory patterns are resolved against
	Dir string

	// Types restricts the report to type names matching these glob
	// patterns, e.g. "User*"; empty means all
	Types []string

	// Tests includes _test.go files
	Tests bool

	// Format selects the report output: text or yaml
	Format string

	// Verbose enables debug logging and detailed error reporting
	Verbose bool

	// Quiet only shows errors
	Quiet bool
}

// Validate checks the output format and type patterns
func (c *Config) Validate() error {
	switch c.Format {
	case "", FormatText, FormatYAML:
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", c.Format, FormatText, FormatYAML)
	}
	for _, pattern := range c.Types {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid type pattern %q", pattern)
		}
	}
	return nil
}

// wantsType reports whether name passes the type filter
func (c *Config) wantsType(name string) bool {
	if len(c.Types) == 0 {
		return true
	}
	for _, pattern := range c.Types {
		if matchType(pattern, name) {
			return true
		}
	}
	return false
}

func matchType(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	if err != nil {
		return pattern == name
	}
	return ok
}
