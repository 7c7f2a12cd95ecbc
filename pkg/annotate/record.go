package annotate

import (
	"fmt"
	"maps"
	"slices"

	"github.com/toyz/annotate/internal/errors"
)

// Record is an annotation instance of a kind that has no compiled Go type,
// such as kinds discovered from source. Fields hold evaluated tag values.
type Record struct {
	kind   string
	fields map[string]any
}

// Kind returns the name of the record's annotation kind
func (r *Record) Kind() string { return r.kind }

// Get returns the value of a field; unset fields report false
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Fields returns a copy of the set fields
func (r *Record) Fields() map[string]any {
	return maps.Clone(r.fields)
}

func (r *Record) String() string {
	keys := slices.Sorted(maps.Keys(r.fields))
	s := r.kind + "("
	for i, k := range keys {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s=%v", k, r.fields[k])
	}
	return s + ")"
}

// RecordKind is an annotation kind described only by its field names.
// Instances are *Record values.
type RecordKind struct {
	name       string
	doc        string
	fields     []string
	params     []string
	target     ElementCategory
	hasTarget  bool
	validators []func(any) error
}

// NewRecordKind creates a kind with the given fields. WithName, WithDoc,
// WithTarget, WithParams and WithValidator[Record] apply.
func NewRecordKind(name string, fields []string, opts ...KindOption) (*RecordKind, error) {
	cfg := &kindConfig{name: name}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.name == "" {
		return nil, errors.NewRegistrationError("kind", name, "record kinds need a name")
	}

	k := &RecordKind{
		name:       cfg.name,
		doc:        cfg.doc,
		fields:     slices.Clone(fields),
		params:     cfg.params,
		target:     cfg.target,
		hasTarget:  cfg.hasTarget,
		validators: cfg.validators,
	}
	if k.params == nil {
		k.params = k.fields
	}
	for _, p := range k.params {
		if !slices.Contains(k.fields, p) {
			return nil, errors.NewRegistrationError("kind", k.name, fmt.Sprintf("unknown constructor parameter %q", p))
		}
	}
	return k, nil
}

func (k *RecordKind) Name() string                    { return k.name }
func (k *RecordKind) Doc() string                     { return k.doc }
func (k *RecordKind) IsAnnotation() bool              { return true }
func (k *RecordKind) Methods() []MethodHandle         { return nil }
func (k *RecordKind) Target() (ElementCategory, bool) { return k.target, k.hasTarget }

// Properties returns the kind's fields in declaration order
func (k *RecordKind) Properties() []PropertyHandle {
	props := make([]PropertyHandle, len(k.fields))
	for i, f := range k.fields {
		props[i] = fieldHandle{name: f}
	}
	return props
}

// HasProperty reports whether the kind declares the named field
func (k *RecordKind) HasProperty(name string) bool {
	return slices.Contains(k.fields, name)
}

// New creates a record with args assigned to the constructor parameters in order
func (k *RecordKind) New(args []any) (any, error) {
	if len(args) > len(k.params) {
		return nil, errors.NewParseError(k.name,
			fmt.Sprintf("annotation %q accepts at most %d arguments, got %d", k.name, len(k.params), len(args)))
	}
	r := &Record{kind: k.name, fields: make(map[string]any, len(k.fields))}
	for i, arg := range args {
		r.fields[k.params[i]] = arg
	}
	return r, nil
}

// SetProperty sets a field on a record created by New
func (k *RecordKind) SetProperty(instance any, name string, value any) error {
	if !k.HasProperty(name) {
		return errors.NewInvalidProperty(k.name, name)
	}
	r, ok := instance.(*Record)
	if !ok || r.kind != k.name {
		return errors.NewInvalidPropertyValue(k.name, name, fmt.Errorf("instance is %T, not a %s record", instance, k.name))
	}
	r.fields[name] = value
	return nil
}

// Validate runs the kind's validators against instance
func (k *RecordKind) Validate(instance any) error {
	for _, validate := range k.validators {
		if err := validate(instance); err != nil {
			return err
		}
	}
	return nil
}
