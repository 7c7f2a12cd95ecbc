package source

import (
	"fmt"

	"github.com/toyz/annotate/pkg/annotate"
)

// kindHandle is an annotation kind declared in source. Instances are
// *annotate.Record values.
type kindHandle struct {
	*annotate.RecordKind
	loc annotate.SourceLocation
}

func (k *kindHandle) Location() annotate.SourceLocation { return k.loc }

// typeHandle is a plain type declared in source
type typeHandle struct {
	decl *typeDecl
}

func (t *typeHandle) Name() string                      { return t.decl.name }
func (t *typeHandle) Doc() string                       { return t.decl.doc }
func (t *typeHandle) IsAnnotation() bool                { return false }
func (t *typeHandle) Location() annotate.SourceLocation { return t.decl.loc }

func (t *typeHandle) Methods() []annotate.MethodHandle {
	methods := make([]annotate.MethodHandle, len(t.decl.methods))
	for i, m := range t.decl.methods {
		methods[i] = m
	}
	return methods
}

func (t *typeHandle) Properties() []annotate.PropertyHandle {
	props := make([]annotate.PropertyHandle, len(t.decl.properties))
	for i, p := range t.decl.properties {
		props[i] = p
	}
	return props
}

func (t *typeHandle) HasProperty(name string) bool {
	for _, p := range t.decl.properties {
		if p.name == name {
			return true
		}
	}
	return false
}

func (t *typeHandle) New([]any) (any, error) {
	return nil, fmt.Errorf("%s is not an annotation kind", t.decl.name)
}

func (t *typeHandle) SetProperty(any, string, any) error {
	return fmt.Errorf("%s is not an annotation kind", t.decl.name)
}

// memberHandle is a method, constructor or field declared in source
type memberHandle struct {
	name        string
	doc         string
	loc         annotate.SourceLocation
	constructor bool
}

func (m *memberHandle) Name() string                      { return m.name }
func (m *memberHandle) Doc() string                       { return m.doc }
func (m *memberHandle) IsConstructor() bool               { return m.constructor }
func (m *memberHandle) Location() annotate.SourceLocation { return m.loc }
