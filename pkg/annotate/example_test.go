package annotate_test

import (
	"errors"
	"fmt"

	"github.com/toyz/annotate/pkg/annotate"
)

type Route struct {
	annotate.Annotation
	Method string `annotate:"method"`
	Path   string `annotate:"path"`
}

func Example() {
	reg := annotate.NewRegistry()
	annotate.MustRegisterKind[Route](reg, annotate.WithTarget(annotate.CategoryMethod))
	_ = reg.RegisterType(annotate.TypeDecl{
		Name: "Users",
		Methods: []annotate.MethodDecl{
			{Name: "List", Doc: "List returns every user.\n@Route(method=\"GET\", path=\"/users\")"},
		},
	})

	users, _ := annotate.NewInspector(reg).Type("Users")
	route, _ := annotate.Get[Route](users.Method("List"), "Route")
	fmt.Println(route.Method, route.Path)
	// Output: GET /users
}

func ExampleTargetViolation() {
	reg := annotate.NewRegistry()
	annotate.MustRegisterKind[Route](reg, annotate.WithDoc("@AnnotationTarget(ElementType.METHOD)"))
	_ = reg.RegisterType(annotate.TypeDecl{
		Name:       "Users",
		Properties: []annotate.PropertyDecl{{Name: "store", Doc: "@Route"}},
	})

	users, _ := annotate.NewInspector(reg).Type("Users")
	_, err := users.Property("store").HasAnnotation("Route")

	var tv *annotate.TargetViolation
	fmt.Println(errors.As(err, &tv), tv.Kind, tv.Element)
	// Output: true Route store
}
