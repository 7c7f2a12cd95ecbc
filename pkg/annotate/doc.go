// Package annotate discovers declarative metadata written as @Name(...) tags
// in the documentation comments of types, methods and properties.
//
// Annotation kinds are Go structs that embed Annotation:
//
//	type Route struct {
//		annotate.Annotation
//		Method string `annotate:"method"`
//		Path   string `annotate:"path"`
//	}
//
// Kinds, documented types and constants are declared on a Host. Registry is
// the static host; the source sub-package reads them from Go source.
//
//	reg := annotate.NewRegistry()
//	annotate.MustRegisterKind[Route](reg, annotate.WithTarget(annotate.CategoryMethod))
//	reg.RegisterType(annotate.TypeDecl{
//		Name: "Users",
//		Methods: []annotate.MethodDecl{
//			{Name: "List", Doc: `@Route(method="GET", path="/users")`},
//		},
//	})
//
//	users, _ := annotate.NewInspector(reg).Type("Users")
//	route, err := annotate.Get[Route](users.Method("List"), "Route")
//
// Tag arguments are either positional, assigned to the kind's constructor
// parameters in order, or named properties (key=value); one tag cannot mix
// both. Values may be quoted strings, numbers, booleans, null, lists
// ([a, b] or a, b) and references to registered constants (Holder::FOO or
// Holder.FOO). Nothing is ever executed.
//
// A kind can restrict where it appears with an explicit WithTarget mask or
// with the built-in @AnnotationTarget tag in its own documentation:
//
//	@AnnotationTarget(ElementType.METHOD)
//
// Placing it elsewhere makes the element's queries fail with a
// *TargetViolation.
package annotate
