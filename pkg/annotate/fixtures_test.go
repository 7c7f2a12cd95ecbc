package annotate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type ConstructorAnnotation struct{ Annotation }

type MethodAnnotation struct{ Annotation }

type PropertyAnnotation struct{ Annotation }

type TypeAnnotation struct{ Annotation }

type AnnotationValues struct {
	Annotation
	Foo any `annotate:"foo"`
	Bar any `annotate:"bar"`
}

// newFixtureRegistry declares one kind per element category, a value kind
// and a documented type exercising each of them
func newFixtureRegistry(t *testing.T) *Registry {
	t.Helper()

	reg := NewRegistry()
	MustRegisterKind[ConstructorAnnotation](reg, WithDoc("@AnnotationTarget(AnnotatedElementType::CONSTRUCTOR)"))
	MustRegisterKind[MethodAnnotation](reg, WithDoc("@AnnotationTarget(AnnotatedElementType::METHOD)"))
	MustRegisterKind[PropertyAnnotation](reg, WithDoc("@AnnotationTarget(ElementType.PROPERTY)"))
	MustRegisterKind[TypeAnnotation](reg, WithDoc("@AnnotationTarget(ElementType.TYPE)"))
	MustRegisterKind[AnnotationValues](reg, WithDoc("@AnnotationTarget(ElementType.PROPERTY)"))

	require.NoError(t, reg.RegisterConstants("ConstValueHolder", map[string]any{
		"FOO": 1,
		"BAR": 2,
	}))

	require.NoError(t, reg.RegisterType(TypeDecl{
		Name: "AnnotateTest",
		Doc:  "/**\n * @TypeAnnotation\n */",
		Methods: []MethodDecl{
			{Name: "NewAnnotateTest", Doc: "@ConstructorAnnotation", Constructor: true},
			{Name: "TestAnnotationTypeTarget", Doc: "@MethodAnnotation"},
			{Name: "TestDocTags", Doc: "@throws AssertionError"},
		},
		Properties: []PropertyDecl{
			{Name: "property", Doc: "@PropertyAnnotation"},
			{Name: "propertyForFailure", Doc: "This is annotated incorrectly for the purpose of testing\n@MethodAnnotation"},
			{Name: "noArgs", Doc: "@AnnotationValues"},
			{Name: "args", Doc: "@AnnotationValues('This is foo', 'This is bar')"},
			{Name: "props", Doc: "@AnnotationValues(bar='abc', foo=123)"},
			{Name: "propsReversed", Doc: "@AnnotationValues(foo=123, bar='abc')"},
			{Name: "consts", Doc: "@AnnotationValues(ConstValueHolder::FOO, ConstValueHolder::BAR)"},
			{Name: "plain"},
		},
	}))

	return reg
}

func fixtureType(t *testing.T) *Type {
	t.Helper()
	typ, err := NewInspector(newFixtureRegistry(t)).Type("AnnotateTest")
	require.NoError(t, err)
	return typ
}
