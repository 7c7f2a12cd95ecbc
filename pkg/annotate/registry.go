package annotate

import (
	"fmt"
	"sync"

	"github.com/toyz/annotate/internal/annotations"
	"github.com/toyz/annotate/internal/errors"
	"github.com/toyz/annotate/internal/utils"
)

// TypeDecl describes a plain (non-annotation) type for the static registry:
// its documentation text and that of its members
type TypeDecl struct {
	Name       string
	Doc        string
	Methods    []MethodDecl
	Properties []PropertyDecl
}

// MethodDecl describes a method. Constructor marks the type's designated
// constructor, e.g. NewT.
type MethodDecl struct {
	Name        string
	Doc         string
	Constructor bool
}

// PropertyDecl describes a property (struct field)
type PropertyDecl struct {
	Name string
	Doc  string
}

// Registry is a Host populated explicitly at startup with annotation kinds,
// documented types and named constants. It is safe for concurrent use.
type Registry struct {
	types     *utils.BaseRegistry[string, TypeHandle]
	constants *utils.BaseRegistry[string, any]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	types := utils.NewBaseRegistry[string, TypeHandle]("type")
	types.SetValidator(utils.ChainValidators(
		utils.NotEmptyKeyValidator[TypeHandle]("type name"),
		reservedNameValidator,
		utils.NoDuplicateValidator[string, TypeHandle]("type name"),
	))

	constants := utils.NewBaseRegistry[string, any]("constant")
	constants.SetValidator(utils.ChainValidators(
		utils.NotEmptyKeyValidator[any]("constant path"),
		utils.NoDuplicateValidator[string, any]("constant path"),
	))

	return &Registry{types: types, constants: constants}
}

func reservedNameValidator(name string, _ TypeHandle, _ map[string]TypeHandle) error {
	if name == MetaKindName {
		return fmt.Errorf("%q is reserved for the built-in target kind", name)
	}
	return nil
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register adds a type handle under its name. Kinds built with NewKind or
// NewRecordKind and handles from other hosts are accepted.
func (r *Registry) Register(handle TypeHandle) error {
	if handle == nil {
		return errors.NewRegistrationError("type", "", "handle cannot be nil")
	}
	return r.RegisterAs(handle.Name(), handle)
}

// RegisterAs adds handle under an additional name, e.g. a package-qualified
// one. Annotations are still keyed by the handle's own name.
func (r *Registry) RegisterAs(name string, handle TypeHandle) error {
	if handle == nil {
		return errors.NewRegistrationError("type", name, "handle cannot be nil")
	}
	name = annotations.NormalizePath(name)
	if err := r.types.Register(name, handle); err != nil {
		itemType := "type"
		if handle.IsAnnotation() {
			itemType = "kind"
		}
		return errors.NewRegistrationError(itemType, name, err.Error())
	}
	return nil
}

// RegisterKind builds the kind for struct type T and registers it
func RegisterKind[T any](r *Registry, opts ...KindOption) (*Kind, error) {
	kind, err := NewKind[T](opts...)
	if err != nil {
		return nil, err
	}
	if err := r.Register(kind); err != nil {
		return nil, err
	}
	return kind, nil
}

// MustRegisterKind is like RegisterKind but panics on error. It suits
// package-level registration.
func MustRegisterKind[T any](r *Registry, opts ...KindOption) *Kind {
	kind, err := RegisterKind[T](r, opts...)
	if err != nil {
		panic(err)
	}
	return kind
}

// RegisterType registers the documentation of a plain type
func (r *Registry) RegisterType(decl TypeDecl) error {
	seen := make(map[string]bool)
	for _, m := range decl.Methods {
		if m.Name == "" || seen["m:"+m.Name] {
			return errors.NewRegistrationError("type", decl.Name, fmt.Sprintf("invalid or duplicate method %q", m.Name))
		}
		seen["m:"+m.Name] = true
	}
	for _, p := range decl.Properties {
		if p.Name == "" || seen["p:"+p.Name] {
			return errors.NewRegistrationError("type", decl.Name, fmt.Sprintf("invalid or duplicate property %q", p.Name))
		}
		seen["p:"+p.Name] = true
	}
	return r.Register(&declHandle{decl: decl})
}

// RegisterConstant makes value available to tag arguments under path.
// "Holder::FOO" and "Holder.FOO" name the same constant.
func (r *Registry) RegisterConstant(path string, value any) error {
	path = annotations.NormalizePath(path)
	if err := r.constants.Register(path, value); err != nil {
		return errors.NewRegistrationError("constant", path, err.Error())
	}
	return nil
}

// RegisterConstants registers each value under prefix.name
func (r *Registry) RegisterConstants(prefix string, values map[string]any) error {
	prefix = annotations.NormalizePath(prefix)
	for name, value := range values {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		if err := r.RegisterConstant(path, value); err != nil {
			return err
		}
	}
	return nil
}

// ResolveType implements Host
func (r *Registry) ResolveType(name string) (TypeHandle, bool) {
	return r.types.Get(annotations.NormalizePath(name))
}

// ResolveConstant implements Host
func (r *Registry) ResolveConstant(path string) (any, bool) {
	return r.constants.Get(annotations.NormalizePath(path))
}

// TypeNames returns the registered type and kind names, sorted
func (r *Registry) TypeNames() []string {
	return r.types.List()
}

// declHandle adapts a TypeDecl to TypeHandle
type declHandle struct {
	decl TypeDecl
}

type declMethod struct{ MethodDecl }

func (m declMethod) Name() string        { return m.MethodDecl.Name }
func (m declMethod) Doc() string         { return m.MethodDecl.Doc }
func (m declMethod) IsConstructor() bool { return m.Constructor }

type declProperty struct{ PropertyDecl }

func (p declProperty) Name() string { return p.PropertyDecl.Name }
func (p declProperty) Doc() string  { return p.PropertyDecl.Doc }

func (h *declHandle) Name() string       { return h.decl.Name }
func (h *declHandle) Doc() string        { return h.decl.Doc }
func (h *declHandle) IsAnnotation() bool { return false }

func (h *declHandle) Methods() []MethodHandle {
	methods := make([]MethodHandle, len(h.decl.Methods))
	for i, m := range h.decl.Methods {
		methods[i] = declMethod{m}
	}
	return methods
}

func (h *declHandle) Properties() []PropertyHandle {
	props := make([]PropertyHandle, len(h.decl.Properties))
	for i, p := range h.decl.Properties {
		props[i] = declProperty{p}
	}
	return props
}

func (h *declHandle) HasProperty(name string) bool {
	for _, p := range h.decl.Properties {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (h *declHandle) New([]any) (any, error) {
	return nil, fmt.Errorf("%s is not an annotation kind", h.decl.Name)
}

func (h *declHandle) SetProperty(any, string, any) error {
	return fmt.Errorf("%s is not an annotation kind", h.decl.Name)
}
