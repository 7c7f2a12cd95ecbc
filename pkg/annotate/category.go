package annotate

import "strings"

// ElementCategory is a bitmask classifying an annotated declaration. A single
// element may carry several categories, e.g. a constructor is also a method.
type ElementCategory int

const (
	// CategoryAnnotationType is an annotation kind declaration
	CategoryAnnotationType ElementCategory = 1 << iota
	// CategoryConstructor is a type's designated constructor
	CategoryConstructor
	// CategoryMethod is a method declaration
	CategoryMethod
	// CategoryProperty is a property (struct field) declaration
	CategoryProperty
	// CategoryType is a type declaration, including annotation kinds
	CategoryType
)

// elementTypeConstants are the category names exposed to tag arguments as
// ElementType.NAME constants
var elementTypeConstants = map[string]ElementCategory{
	"ANNOTATION_TYPE": CategoryAnnotationType,
	"CONSTRUCTOR":     CategoryConstructor,
	"METHOD":          CategoryMethod,
	"PROPERTY":        CategoryProperty,
	"TYPE":            CategoryType,
}

// categoryNames keeps String output in bit order
var categoryNames = []struct {
	bit  ElementCategory
	name string
}{
	{CategoryAnnotationType, "ANNOTATION_TYPE"},
	{CategoryConstructor, "CONSTRUCTOR"},
	{CategoryMethod, "METHOD"},
	{CategoryProperty, "PROPERTY"},
	{CategoryType, "TYPE"},
}

// Has reports whether every bit of other is set in c
func (c ElementCategory) Has(other ElementCategory) bool {
	return c&other == other
}

// Intersects reports whether c and other share at least one bit
func (c ElementCategory) Intersects(other ElementCategory) bool {
	return c&other != 0
}

// String returns the set categories joined by "|", e.g. "METHOD|CONSTRUCTOR"
func (c ElementCategory) String() string {
	if c == 0 {
		return "NONE"
	}
	var names []string
	for _, entry := range categoryNames {
		if c&entry.bit != 0 {
			names = append(names, entry.name)
		}
	}
	return strings.Join(names, "|")
}
