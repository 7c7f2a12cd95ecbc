package annotate

// Host is the introspection facility annotations are discovered through. It
// exposes declared types with their documentation text and resolves named
// constants. Registry and the source package both implement it.
type Host interface {
	// ResolveType looks up a declared type by name
	ResolveType(name string) (TypeHandle, bool)

	// ResolveConstant looks up a constant by dotted path, e.g. "Holder.FOO".
	// Paths written as "Holder::FOO" are normalized before the call.
	ResolveConstant(path string) (any, bool)
}

// TypeHandle describes one declared type
type TypeHandle interface {
	Name() string
	Doc() string

	// IsAnnotation reports whether the type is an annotation kind
	IsAnnotation() bool

	Methods() []MethodHandle
	Properties() []PropertyHandle

	// New constructs an instance from positional constructor arguments.
	// Missing arguments take their zero value.
	New(args []any) (any, error)

	// HasProperty reports whether the type declares an assignable property
	HasProperty(name string) bool

	// SetProperty assigns a property on an instance returned by New
	SetProperty(instance any, name string, value any) error
}

// MethodHandle describes a method (or constructor) of a type
type MethodHandle interface {
	Name() string
	Doc() string
	IsConstructor() bool
}

// PropertyHandle describes a property of a type
type PropertyHandle interface {
	Name() string
	Doc() string
}

// Locator is implemented by handles that know where they are declared
type Locator interface {
	Location() SourceLocation
}

// targeted is implemented by kinds that carry an explicit target mask
type targeted interface {
	Target() (ElementCategory, bool)
}

// validating is implemented by kinds with post-instantiation checks
type validating interface {
	Validate(instance any) error
}

// Annotation marks a struct type as an annotation kind. Embed it:
//
//	type Route struct {
//		annotate.Annotation
//		Method string `annotate:"method"`
//		Path   string `annotate:"path"`
//	}
type Annotation struct{}
