package annotate

import (
	"fmt"
	"sync"

	"github.com/toyz/annotate/internal/annotations"
)

// Element is an introspected declaration: a type, method or property
type Element interface {
	Name() string
	Category() ElementCategory
	Doc() string
	Location() SourceLocation

	// Annotations returns every annotation on the element keyed by kind
	// name. The map is computed on first use and the same map is returned
	// afterwards; callers must not modify it.
	Annotations() (map[string]any, error)

	// Annotation returns the instance of kind, or nil when absent
	Annotation(kind string) (any, error)

	// HasAnnotation reports whether the element carries kind
	HasAnnotation(kind string) (bool, error)
}

// element holds what every wrapper shares: identity, documentation and the
// memoised annotation map
type element struct {
	inspector *Inspector
	name      string
	category  ElementCategory
	doc       string
	location  SourceLocation
	self      TypeHandle // set on type wrappers only

	mu          sync.Mutex
	annotations map[string]any
}

func (e *element) init(in *Inspector, name, doc string, category ElementCategory, handle any) {
	e.inspector = in
	e.name = name
	e.category = category
	e.doc = doc
	if loc, ok := handle.(Locator); ok {
		e.location = loc.Location()
	}
}

func (e *element) Name() string              { return e.name }
func (e *element) Category() ElementCategory { return e.category }
func (e *element) Doc() string               { return e.doc }
func (e *element) Location() SourceLocation  { return e.location }

func (e *element) Annotations() (map[string]any, error) {
	return e.annotationsWith(nil)
}

func (e *element) annotationsWith(chain *visitChain) (map[string]any, error) {
	e.mu.Lock()
	cached := e.annotations
	e.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	if e.self != nil {
		chain = chain.push(e.name)
	}

	// Parsing may need other wrappers' annotations, so it runs unlocked
	computed, err := e.inspector.parse(e, chain)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.annotations == nil {
		e.annotations = computed
	}
	return e.annotations, nil
}

func (e *element) Annotation(kind string) (any, error) {
	anns, err := e.Annotations()
	if err != nil {
		return nil, err
	}
	if instance, ok := anns[kind]; ok {
		return instance, nil
	}
	// Aliases such as "pkg.Route" map to the kind's canonical name
	if resolved, ok := e.inspector.resolveKind(kind); ok {
		return anns[resolved.Name()], nil
	}
	return nil, nil
}

func (e *element) HasAnnotation(kind string) (bool, error) {
	instance, err := e.Annotation(kind)
	if err != nil {
		return false, err
	}
	return instance != nil, nil
}

// Type wraps a declared type
type Type struct {
	element
	handle TypeHandle

	membersOnce   sync.Once
	methods       []*Method
	methodIndex   map[string]*Method
	properties    []*Property
	propertyIndex map[string]*Property
}

func newType(in *Inspector, handle TypeHandle) *Type {
	category := CategoryType
	if handle.IsAnnotation() {
		category |= CategoryAnnotationType
	}
	t := &Type{handle: handle}
	t.init(in, handle.Name(), handle.Doc(), category, handle)
	t.self = handle
	return t
}

// Handle returns the host's description of the type
func (t *Type) Handle() TypeHandle { return t.handle }

// IsAnnotation reports whether the type is an annotation kind
func (t *Type) IsAnnotation() bool { return t.handle.IsAnnotation() }

func (t *Type) loadMembers() {
	t.membersOnce.Do(func() {
		methods := t.handle.Methods()
		t.methods = make([]*Method, 0, len(methods))
		t.methodIndex = make(map[string]*Method, len(methods))
		for _, m := range methods {
			category := CategoryMethod
			if m.IsConstructor() {
				category |= CategoryConstructor
			}
			wrapper := &Method{owner: t}
			wrapper.init(t.inspector, m.Name(), m.Doc(), category, m)
			t.methods = append(t.methods, wrapper)
			t.methodIndex[m.Name()] = wrapper
		}

		props := t.handle.Properties()
		t.properties = make([]*Property, 0, len(props))
		t.propertyIndex = make(map[string]*Property, len(props))
		for _, p := range props {
			wrapper := &Property{owner: t}
			wrapper.init(t.inspector, p.Name(), p.Doc(), CategoryProperty, p)
			t.properties = append(t.properties, wrapper)
			t.propertyIndex[p.Name()] = wrapper
		}
	})
}

// Methods returns the type's methods in declaration order
func (t *Type) Methods() []*Method {
	t.loadMembers()
	return t.methods
}

// Method returns the named method, or nil
func (t *Type) Method(name string) *Method {
	t.loadMembers()
	return t.methodIndex[name]
}

// HasMethod reports whether the type declares the named method
func (t *Type) HasMethod(name string) bool {
	return t.Method(name) != nil
}

// Constructor returns the designated constructor, or nil
func (t *Type) Constructor() *Method {
	for _, m := range t.Methods() {
		if m.IsConstructor() {
			return m
		}
	}
	return nil
}

// Properties returns the type's properties in declaration order
func (t *Type) Properties() []*Property {
	t.loadMembers()
	return t.properties
}

// Property returns the named property, or nil
func (t *Type) Property(name string) *Property {
	t.loadMembers()
	return t.propertyIndex[name]
}

// HasProperty reports whether the type declares the named property
func (t *Type) HasProperty(name string) bool {
	return t.Property(name) != nil
}

func (t *Type) String() string { return t.name }

// Method wraps a method or constructor of a type
type Method struct {
	element
	owner *Type
}

// Owner returns the declaring type
func (m *Method) Owner() *Type { return m.owner }

// IsConstructor reports whether the method is the type's constructor
func (m *Method) IsConstructor() bool { return m.category.Has(CategoryConstructor) }

func (m *Method) String() string { return m.owner.name + "." + m.name }

// Property wraps a property of a type
type Property struct {
	element
	owner *Type
}

// Owner returns the declaring type
func (p *Property) Owner() *Type { return p.owner }

func (p *Property) String() string { return p.owner.name + "." + p.name }

// Get returns the annotation of kind on el as a *T. It returns nil when the
// element does not carry kind.
func Get[T any](el Element, kind string) (*T, error) {
	instance, err := el.Annotation(kind)
	if err != nil || instance == nil {
		return nil, err
	}
	typed, ok := instance.(*T)
	if !ok {
		return nil, fmt.Errorf("annotation %s on %s is %T, not *%T", kind, el.Name(), instance, *new(T))
	}
	return typed, nil
}

// TagNames lists the annotation tag names written in doc, in order,
// without resolving them
func TagNames(doc string) []string {
	var names []string
	for tag := range annotations.Tags(doc) {
		names = append(names, tag.Name)
	}
	return names
}
