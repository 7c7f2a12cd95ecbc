package annotate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/toyz/annotate/internal/errors"
)

// Kind is an annotation kind backed by a Go struct type. Properties are the
// struct's exported fields, named by their `annotate` tag or field name.
// Constructor parameters are the properties in declaration order unless
// WithParams says otherwise.
type Kind struct {
	name       string
	typ        reflect.Type
	doc        string
	fields     []kindField
	byName     map[string]kindField
	params     []kindField
	target     ElementCategory
	hasTarget  bool
	validators []func(any) error
}

type kindField struct {
	name  string
	index []int
	typ   reflect.Type
}

// fieldHandle exposes a kind field as a PropertyHandle
type fieldHandle struct {
	name string
}

func (f fieldHandle) Name() string { return f.name }
func (f fieldHandle) Doc() string  { return "" }

var annotationMarker = reflect.TypeFor[Annotation]()

// KindOption configures a Kind
type KindOption func(*kindConfig)

type kindConfig struct {
	name       string
	doc        string
	target     ElementCategory
	hasTarget  bool
	params     []string
	validators []func(any) error
}

// WithName overrides the kind name; the Go type name is used otherwise
func WithName(name string) KindOption {
	return func(c *kindConfig) { c.name = name }
}

// WithDoc sets the kind's own documentation text. Tags in it, such as
// @AnnotationTarget, decorate the kind itself.
func WithDoc(doc string) KindOption {
	return func(c *kindConfig) { c.doc = doc }
}

// WithTarget restricts the element categories the kind may decorate,
// taking precedence over an @AnnotationTarget tag in its doc
func WithTarget(categories ...ElementCategory) KindOption {
	return func(c *kindConfig) {
		c.hasTarget = true
		for _, category := range categories {
			c.target |= category
		}
	}
}

// WithParams names the properties positional arguments are assigned to, in order
func WithParams(names ...string) KindOption {
	return func(c *kindConfig) { c.params = names }
}

// WithValidator adds a check run on every new instance of the kind
func WithValidator[T any](fn func(*T) error) KindOption {
	return func(c *kindConfig) {
		c.validators = append(c.validators, func(instance any) error {
			typed, ok := instance.(*T)
			if !ok {
				return fmt.Errorf("validator expects *%s, got %T", reflect.TypeFor[T]().Name(), instance)
			}
			return fn(typed)
		})
	}
}

// NewKind builds the kind descriptor for struct type T. T must embed Annotation.
func NewKind[T any](opts ...KindOption) (*Kind, error) {
	return newKind(reflect.TypeFor[T](), opts...)
}

func newKind(typ reflect.Type, opts ...KindOption) (*Kind, error) {
	cfg := &kindConfig{name: typ.Name()}
	for _, opt := range opts {
		opt(cfg)
	}

	if typ.Kind() != reflect.Struct {
		return nil, errors.NewRegistrationError("kind", cfg.name, fmt.Sprintf("%s is not a struct type", typ))
	}
	if cfg.name == "" {
		return nil, errors.NewRegistrationError("kind", typ.String(), "anonymous types need WithName")
	}
	if !embedsAnnotation(typ) {
		return nil, errors.NewRegistrationError("kind", cfg.name, "struct must embed annotate.Annotation")
	}

	k := &Kind{
		name:       cfg.name,
		typ:        typ,
		doc:        cfg.doc,
		byName:     make(map[string]kindField),
		target:     cfg.target,
		hasTarget:  cfg.hasTarget,
		validators: cfg.validators,
	}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.Anonymous || !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("annotate"); ok {
			tag, _, _ = strings.Cut(tag, ",")
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		if _, dup := k.byName[name]; dup {
			return nil, errors.NewRegistrationError("kind", cfg.name, fmt.Sprintf("duplicate property %q", name))
		}
		kf := kindField{name: name, index: field.Index, typ: field.Type}
		k.fields = append(k.fields, kf)
		k.byName[name] = kf
	}

	if cfg.params == nil {
		k.params = k.fields
	} else {
		for _, name := range cfg.params {
			kf, ok := k.byName[name]
			if !ok {
				return nil, errors.NewRegistrationError("kind", cfg.name, fmt.Sprintf("unknown constructor parameter %q", name))
			}
			k.params = append(k.params, kf)
		}
	}

	return k, nil
}

func embedsAnnotation(typ reflect.Type) bool {
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.Anonymous && field.Type == annotationMarker {
			return true
		}
	}
	return false
}

// Name returns the kind name
func (k *Kind) Name() string { return k.name }

// Doc returns the kind's own documentation text
func (k *Kind) Doc() string { return k.doc }

// GoType returns the struct type backing the kind
func (k *Kind) GoType() reflect.Type { return k.typ }

// IsAnnotation always reports true
func (k *Kind) IsAnnotation() bool { return true }

// Methods returns nil; kinds expose no annotated methods
func (k *Kind) Methods() []MethodHandle { return nil }

// Properties returns the kind's properties in declaration order
func (k *Kind) Properties() []PropertyHandle {
	props := make([]PropertyHandle, len(k.fields))
	for i, f := range k.fields {
		props[i] = fieldHandle{name: f.name}
	}
	return props
}

// Params returns the constructor parameter names in order
func (k *Kind) Params() []string {
	names := make([]string, len(k.params))
	for i, p := range k.params {
		names[i] = p.name
	}
	return names
}

// Target returns the explicit target mask, if one was configured
func (k *Kind) Target() (ElementCategory, bool) {
	return k.target, k.hasTarget
}

// HasProperty reports whether the kind declares the named property
func (k *Kind) HasProperty(name string) bool {
	_, ok := k.byName[name]
	return ok
}

// New allocates a *T and assigns args to the constructor parameters in order
func (k *Kind) New(args []any) (any, error) {
	if len(args) > len(k.params) {
		return nil, errors.NewParseError(k.name,
			fmt.Sprintf("annotation %q accepts at most %d arguments, got %d", k.name, len(k.params), len(args)))
	}

	instance := reflect.New(k.typ)
	for i, arg := range args {
		param := k.params[i]
		if err := assign(instance.Elem().FieldByIndex(param.index), arg); err != nil {
			return nil, errors.NewInvalidPropertyValue(k.name, param.name, err)
		}
	}
	return instance.Interface(), nil
}

// SetProperty assigns value to the named property of instance
func (k *Kind) SetProperty(instance any, name string, value any) error {
	kf, ok := k.byName[name]
	if !ok {
		return errors.NewInvalidProperty(k.name, name)
	}

	v := reflect.ValueOf(instance)
	if v.Type() != reflect.PointerTo(k.typ) || v.IsNil() {
		return errors.NewInvalidPropertyValue(k.name, name,
			fmt.Errorf("instance is %T, not *%s", instance, k.typ.Name()))
	}

	if err := assign(v.Elem().FieldByIndex(kf.index), value); err != nil {
		return errors.NewInvalidPropertyValue(k.name, name, err)
	}
	return nil
}

// Validate runs the kind's validators against instance
func (k *Kind) Validate(instance any) error {
	for _, validate := range k.validators {
		if err := validate(instance); err != nil {
			return err
		}
	}
	return nil
}
